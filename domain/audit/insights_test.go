package audit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeInsights(t *testing.T) {
	today := date(2025, time.June, 15)

	grid := testGrid(
		[]string{"Action", "Due Date"},
		[]Cell{TextCell("Alice"), TextCell("2025-06-14")}, // 1 day overdue
		[]Cell{TextCell("Bob"), TextCell("2025-06-12")},   // 3 days overdue
		[]Cell{TextCell("Cara"), TextCell("2025-06-05")},  // 10 days overdue
		[]Cell{TextCell("Dan"), TextCell("2025-07-01")},   // not overdue
		[]Cell{TextCell("no"), TextCell("2025-01-01")},    // unassigned, ignored
	)

	insights, err := ComputeInsights(grid, today)
	require.NoError(t, err)

	assert.Equal(t, 3, insights.OverdueSampled)
	assert.Equal(t, 4.7, insights.MeanDaysOverdue) // (1+3+10)/3 rounded
	assert.Equal(t, 3.0, insights.MedianDaysOverdue)
	assert.Equal(t, 10.0, insights.MaxDaysOverdue)
}

func TestComputeInsightsNoOverdueRows(t *testing.T) {
	today := date(2025, time.June, 15)

	grid := testGrid(
		[]string{"Action", "Due Date"},
		[]Cell{TextCell("Alice"), TextCell("2025-07-01")},
	)

	insights, err := ComputeInsights(grid, today)
	require.NoError(t, err)
	assert.Equal(t, &Insights{}, insights)
}

func TestComputeInsightsWithoutDueDateColumn(t *testing.T) {
	grid := testGrid(
		[]string{"Action"},
		[]Cell{TextCell("Alice")},
	)

	insights, err := ComputeInsights(grid, date(2025, time.June, 15))
	require.NoError(t, err)
	assert.Equal(t, &Insights{}, insights)
}
