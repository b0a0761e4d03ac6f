// Package report renders an analysis result as a markdown document. The web
// UI converts the markdown to HTML for the result page; the CLI prints it
// verbatim.
package report

import (
	"fmt"
	"strings"

	"actionaudit/domain/audit"
)

// Markdown builds a deterministic markdown report for one analysis.
func Markdown(filename string, result *audit.Result) string {
	var b strings.Builder

	b.WriteString("# Action Item Audit\n\n")
	if filename != "" {
		fmt.Fprintf(&b, "**%s** analyzed %s (%s)\n\n", filename, result.TodayISO, result.Timezone)
	} else {
		fmt.Fprintf(&b, "Analyzed %s (%s)\n\n", result.TodayISO, result.Timezone)
	}

	b.WriteString(result.Summary)
	b.WriteString("\n\n")

	b.WriteString("| Metric | Value |\n")
	b.WriteString("| --- | --- |\n")
	fmt.Fprintf(&b, "| Total rows | %d |\n", result.TotalRows)
	fmt.Fprintf(&b, "| Assigned | %d (%.1f%%) |\n", result.AssignedCount, result.AssignedPct)
	fmt.Fprintf(&b, "| Overdue | %d (%.1f%% of assigned) |\n", result.OverdueCount, result.OverduePctOfAssigned)
	b.WriteString("\n")

	fmt.Fprintf(&b, "Columns used: action=%s, due date=%s\n", result.ColumnsUsed.Action, result.ColumnsUsed.DueDate)

	if len(result.Notes) > 0 {
		b.WriteString("\nNotes:\n\n")
		for _, note := range result.Notes {
			fmt.Fprintf(&b, "- %s\n", note)
		}
	}

	return b.String()
}

// MarkdownWithInsights appends an insights section when insights carry any
// overdue samples.
func MarkdownWithInsights(filename string, result *audit.Result, insights *audit.Insights) string {
	out := Markdown(filename, result)
	if insights == nil || insights.OverdueSampled == 0 {
		return out
	}

	var b strings.Builder
	b.WriteString(out)
	b.WriteString("\n## Overdue gap\n\n")
	fmt.Fprintf(&b, "| Days overdue | Value |\n")
	fmt.Fprintf(&b, "| --- | --- |\n")
	fmt.Fprintf(&b, "| Mean | %.1f |\n", insights.MeanDaysOverdue)
	fmt.Fprintf(&b, "| Median | %.1f |\n", insights.MedianDaysOverdue)
	fmt.Fprintf(&b, "| Max | %.0f |\n", insights.MaxDaysOverdue)
	return b.String()
}
