package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Not found errors
	ErrNotFound    = errors.New("resource not found")
	ErrRunNotFound = fmt.Errorf("%w: analysis run", ErrNotFound)

	// Workbook format errors. Both are fatal: no partial result is produced.
	ErrUnsupportedFormat = errors.New("unsupported workbook format")
	ErrWorkbookParse     = errors.New("unable to parse workbook")

	// ErrMissingActionColumn aborts an analysis when no header matches the
	// action heuristics. The message text is part of the external contract
	// and is surfaced to callers verbatim.
	ErrMissingActionColumn = errors.New("Action column not found. Please ensure your Excel file has an 'Action' column.")
)

// Error constructors with context
func NewNotFoundError(resource string, id string) error {
	return fmt.Errorf("%w: %s with id %s", ErrNotFound, resource, id)
}

func NewUnsupportedFormatError(extension string) error {
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, extension)
}

func NewParseError(filename string, cause error) error {
	return fmt.Errorf("%w: %s: %v", ErrWorkbookParse, filename, cause)
}

// Error checking helpers
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsFormatError reports whether err means the input bytes could not be
// understood as a supported workbook.
func IsFormatError(err error) bool {
	return errors.Is(err, ErrUnsupportedFormat) ||
		errors.Is(err, ErrWorkbookParse)
}

func IsMissingActionColumn(err error) bool {
	return errors.Is(err, ErrMissingActionColumn)
}
