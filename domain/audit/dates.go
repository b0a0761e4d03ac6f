package audit

import (
	"math"
	"strings"
	"time"
)

// ReportTimezone is the fixed civil timezone every analysis dates against,
// regardless of where the process runs.
const ReportTimezone = "Asia/Kolkata"

// serialEpochCorrectionDays shifts the nominal 1900-01-01 day-one epoch back
// two days, compensating for the historical spreadsheet convention that
// treats 1900 as a leap year and counts from day 1, not day 0. The effective
// epoch is 1899-12-30.
const serialEpochCorrectionDays = 2

// SerialEpoch returns the date that serial value 0 maps to.
func SerialEpoch() time.Time {
	return time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC).
		AddDate(0, 0, -serialEpochCorrectionDays)
}

// SerialToDate converts a spreadsheet serial number to its calendar date.
// Fractional day parts (the time of day) are discarded.
func SerialToDate(serial float64) time.Time {
	return SerialEpoch().AddDate(0, 0, int(math.Floor(serial)))
}

// DateOnly strips the clock and zone from an instant, keeping its civil
// date. All date comparisons in the audit happen on these midnight-UTC
// values.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ReportLocation resolves the report timezone, falling back to its fixed
// +05:30 offset when the host has no timezone database.
func ReportLocation() *time.Location {
	loc, err := time.LoadLocation(ReportTimezone)
	if err != nil {
		return time.FixedZone("IST", 5*60*60+30*60)
	}
	return loc
}

// TodayAt converts an instant to the audit's reference date: the wall-clock
// date in the report timezone. Callers resolve it once per analysis and
// thread it through, so one run never straddles a midnight.
func TodayAt(now time.Time) time.Time {
	return DateOnly(now.In(ReportLocation()))
}

// dateLayouts are tried in order; the first successful parse wins. Numeric
// slash and dash forms read month-first.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006/01/02",
	"1/2/2006",
	"1-2-2006",
	"2006.01.02",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
}

// ParseDateText parses a free-text date. The second return is false when no
// known layout matches.
func ParseDateText(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return DateOnly(t), true
		}
	}
	return time.Time{}, false
}

// NormalizeDueDate resolves a cell to a calendar date. Numeric cells are
// spreadsheet serials; date cells already carry their date; text cells go
// through layout parsing. Text that merely looks numeric is not treated as
// a serial. The second return is false when the cell has no usable date,
// which downstream means "never overdue" rather than an error.
func NormalizeDueDate(cell Cell) (time.Time, bool) {
	if cell.IsBlank() {
		return time.Time{}, false
	}
	switch cell.Kind {
	case CellNumber:
		return SerialToDate(cell.Number), true
	case CellDate:
		return DateOnly(cell.Date), true
	case CellText:
		return ParseDateText(cell.Text())
	default:
		return time.Time{}, false
	}
}
