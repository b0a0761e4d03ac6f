// Package audit implements the action-item analysis pipeline: locating the
// action and due-date columns by header heuristics, classifying each data
// row as assigned and overdue, and folding the rows into an aggregate
// result. Everything here is pure over its inputs; decoding workbooks and
// resolving the current time stay outside.
package audit

import (
	"time"

	"actionaudit/domain/core"
)

// Analyze runs the pipeline over a decoded grid against a fixed reference
// date. It fails only when no action column can be located; every other
// anomaly degrades to a note or a skipped value.
func Analyze(grid *Grid, today time.Time) (*Result, error) {
	cols := LocateColumns(grid.HeaderRow())
	if !cols.HasAction() {
		return nil, core.ErrMissingActionColumn
	}

	rows := make([]RowClassification, 0, grid.DataRowCount())
	for r := 1; r < grid.RowCount(); r++ {
		action := grid.At(r, cols.Action)
		due := BlankCell
		if cols.HasDueDate() {
			due = grid.At(r, cols.DueDate)
		}
		rows = append(rows, ClassifyRow(action, due, cols.HasDueDate(), today))
	}

	return Aggregate(rows, cols, today), nil
}
