package audit

import (
	"time"

	"github.com/montanaflynn/stats"
)

// ComputeInsights measures how late the overdue rows are, in whole days
// before the reference date. A grid without both columns, or without any
// overdue rows, yields zero-valued insights rather than an error.
func ComputeInsights(grid *Grid, today time.Time) (*Insights, error) {
	cols := LocateColumns(grid.HeaderRow())
	if !cols.HasAction() || !cols.HasDueDate() {
		return &Insights{}, nil
	}

	var gaps []float64
	for r := 1; r < grid.RowCount(); r++ {
		action := grid.At(r, cols.Action)
		due := grid.At(r, cols.DueDate)
		rc := ClassifyRow(action, due, true, today)
		if !rc.Overdue {
			continue
		}
		dueDate, ok := NormalizeDueDate(due)
		if !ok {
			continue
		}
		gaps = append(gaps, today.Sub(dueDate).Hours()/24)
	}

	if len(gaps) == 0 {
		return &Insights{}, nil
	}

	mean, err := stats.Mean(gaps)
	if err != nil {
		return nil, err
	}
	median, err := stats.Median(gaps)
	if err != nil {
		return nil, err
	}
	max, err := stats.Max(gaps)
	if err != nil {
		return nil, err
	}

	return &Insights{
		OverdueSampled:    len(gaps),
		MeanDaysOverdue:   round1(mean),
		MedianDaysOverdue: round1(median),
		MaxDaysOverdue:    max,
	}, nil
}
