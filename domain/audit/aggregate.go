package audit

import (
	"fmt"
	"math"
	"time"
)

// dueDateMissingNote is surfaced verbatim when the locator found no
// due-date column; its wording is part of the external contract.
const dueDateMissingNote = "Due Date column not found. Overdue analysis skipped."

// columnMissingLabel replaces the letter code of an absent column.
const columnMissingLabel = "not found"

// isoDateLayout formats today_iso.
const isoDateLayout = "2006-01-02"

// round1 rounds to one decimal place, half away from zero.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Aggregate folds row classifications into a Result. Percentages are zero
// whenever their denominator is zero, never NaN.
func Aggregate(rows []RowClassification, cols Columns, today time.Time) *Result {
	total, assigned, overdue := 0, 0, 0
	for _, rc := range rows {
		if !rc.Counted {
			continue
		}
		total++
		if rc.Assigned {
			assigned++
		}
		if rc.Overdue {
			overdue++
		}
	}

	assignedPct := 0.0
	if total > 0 {
		assignedPct = round1(100 * float64(assigned) / float64(total))
	}
	overduePct := 0.0
	if assigned > 0 {
		overduePct = round1(100 * float64(overdue) / float64(assigned))
	}

	notes := []string{}
	dueLabel := columnMissingLabel
	if cols.HasDueDate() {
		dueLabel = ColumnLabel(cols.DueDate)
	} else {
		notes = append(notes, dueDateMissingNote)
	}

	return &Result{
		TotalRows:            total,
		AssignedCount:        assigned,
		AssignedPct:          assignedPct,
		OverdueCount:         overdue,
		OverduePctOfAssigned: overduePct,
		TodayISO:             today.Format(isoDateLayout),
		Timezone:             ReportTimezone,
		ColumnsUsed: ColumnsUsed{
			Action:  ColumnLabel(cols.Action),
			DueDate: dueLabel,
		},
		Notes: notes,
		Summary: fmt.Sprintf("Total: %d | Assigned: %d (%.0f%%) | Overdue: %d (%.0f%%)",
			total, assigned, assignedPct, overdue, overduePct),
	}
}
