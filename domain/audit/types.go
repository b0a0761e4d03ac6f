package audit

// ColumnsUsed reports which columns the locator settled on, as spreadsheet
// letter codes. DueDate is "not found" when the sheet has no due-date
// column.
type ColumnsUsed struct {
	Action  string `json:"action"`
	DueDate string `json:"due_date"`
}

// Result is the outcome of one analysis. The JSON field names are a
// compatibility contract with downstream consumers; do not rename them.
type Result struct {
	TotalRows            int         `json:"total_rows"`
	AssignedCount        int         `json:"assigned_count"`
	AssignedPct          float64     `json:"assigned_pct"`
	OverdueCount         int         `json:"overdue_count"`
	OverduePctOfAssigned float64     `json:"overdue_pct_of_assigned"`
	TodayISO             string      `json:"today_iso"`
	Timezone             string      `json:"timezone"`
	ColumnsUsed          ColumnsUsed `json:"columns_used"`
	Notes                []string    `json:"notes"`
	Summary              string      `json:"summary"`
}

// Insights carries descriptive statistics over the overdue rows of one
// analysis. It travels beside a Result, never inside it.
type Insights struct {
	OverdueSampled    int     `json:"overdue_sampled"`
	MeanDaysOverdue   float64 `json:"mean_days_overdue"`
	MedianDaysOverdue float64 `json:"median_days_overdue"`
	MaxDaysOverdue    float64 `json:"max_days_overdue"`
}
