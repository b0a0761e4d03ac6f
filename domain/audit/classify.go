package audit

import (
	"strings"
	"time"
)

// RowClassification is the per-row outcome the aggregator folds.
type RowClassification struct {
	Counted  bool
	Assigned bool
	Overdue  bool
}

// affirmativeTokens always classify a row as assigned.
var affirmativeTokens = map[string]struct{}{
	"yes":      {},
	"true":     {},
	"assigned": {},
	"done":     {},
	"1":        {},
}

// negativeTokens classify a row as unassigned. Every other non-empty value
// also counts as assigned: the default is deliberately liberal, since these
// sheets usually put an owner's name in the action column.
var negativeTokens = map[string]struct{}{
	"no":         {},
	"false":      {},
	"unassigned": {},
	"0":          {},
}

// IsAssigned classifies an action cell's text. Blank means unassigned.
func IsAssigned(actionText string) bool {
	normalized := strings.ToLower(strings.TrimSpace(actionText))
	if normalized == "" {
		return false
	}
	if _, ok := affirmativeTokens[normalized]; ok {
		return true
	}
	if _, ok := negativeTokens[normalized]; ok {
		return false
	}
	return true
}

// ClassifyRow classifies one data row. A row with a blank action cell is
// skipped outright when the sheet has no due-date column; with a due-date
// column present it still counts, as unassigned. Overdue requires an
// assigned row whose due date resolves and falls strictly before today;
// unresolvable dates never make a row overdue.
func ClassifyRow(action, due Cell, hasDueDate bool, today time.Time) RowClassification {
	actionText := action.Text()
	if strings.TrimSpace(actionText) == "" && !hasDueDate {
		return RowClassification{}
	}

	rc := RowClassification{Counted: true}
	rc.Assigned = IsAssigned(actionText)
	if !rc.Assigned || !hasDueDate {
		return rc
	}

	if dueDate, ok := NormalizeDueDate(due); ok && dueDate.Before(today) {
		rc.Overdue = true
	}
	return rc
}
