package audit

import (
	"strings"
)

// ColumnNotFound marks a column the locator could not find.
const ColumnNotFound = -1

// Columns holds the zero-based indices of the two semantically-located
// columns. Action is required downstream; DueDate is optional.
type Columns struct {
	Action  int
	DueDate int
}

func (c Columns) HasAction() bool  { return c.Action != ColumnNotFound }
func (c Columns) HasDueDate() bool { return c.DueDate != ColumnNotFound }

// LocateColumns scans the header row left to right and returns the first
// header matching each heuristic. The two scans are independent: one header
// may satisfy both. Matching is substring-based over the normalized text, so
// "Action Items" and even "Transaction" match the action heuristic; that
// looseness is deliberate and accepted.
func LocateColumns(headers []Cell) Columns {
	cols := Columns{Action: ColumnNotFound, DueDate: ColumnNotFound}
	for idx, cell := range headers {
		header := normalizeHeader(cell.Text())
		if header == "" {
			continue
		}
		if cols.Action == ColumnNotFound && matchesAction(header) {
			cols.Action = idx
		}
		if cols.DueDate == ColumnNotFound && matchesDueDate(header) {
			cols.DueDate = idx
		}
		if cols.HasAction() && cols.HasDueDate() {
			break
		}
	}
	return cols
}

func matchesAction(header string) bool {
	return strings.Contains(header, "action")
}

func matchesDueDate(header string) bool {
	if header == "due date" {
		return true
	}
	return strings.Contains(header, "due") && strings.Contains(header, "date")
}

// normalizeHeader lowercases and trims a header for matching. Interior
// whitespace is preserved so "due date" stays two words.
func normalizeHeader(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// ColumnLabel converts a zero-based column index to its spreadsheet letter
// code (A, B, ..., Z, AA, AB, ...).
func ColumnLabel(colIdx int) string {
	result := ""
	colIdx++ // letter codes are 1-indexed internally
	for colIdx > 0 {
		colIdx--
		result = string(rune('A'+(colIdx%26))) + result
		colIdx /= 26
	}
	return result
}
