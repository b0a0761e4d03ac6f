// Package main provides the CLI entry point for the action item audit.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"actionaudit/adapters/excel"
	"actionaudit/app"
	"actionaudit/internal/report"

	"github.com/spf13/cobra"
)

var (
	outputPath   string
	format       string
	withInsights bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "actionaudit",
		Short: "Audit action-item spreadsheets for assignment and overdue status",
		Long: `Audit action-item spreadsheets for assignment and overdue status.

Reads an Excel workbook or CSV file, locates the action and due-date
columns, and reports how many items are assigned and how many of those
are overdue. Due dates are judged against today in Asia/Kolkata.`,
		SilenceUsage: true,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [input file]",
		Short: "Analyze one workbook and print the audit result",
		Args:  cobra.ExactArgs(1),
		RunE:  runAnalyze,
	}

	analyzeCmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, markdown, or json")
	analyzeCmd.Flags().StringVarP(&outputPath, "out", "o", "", "Write the report to a file instead of stdout")
	analyzeCmd.Flags().BoolVar(&withInsights, "insights", false, "Include overdue-days statistics")

	rootCmd.AddCommand(analyzeCmd)

	return rootCmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", inputPath)
	}

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", inputPath, err)
	}

	analyzer := app.NewAnalyzerService(excel.NewWorkbookDecoder(), nil, nil)

	resp, err := analyzer.Analyze(cmd.Context(), app.AnalyzeRequest{
		Data:         data,
		Filename:     filepath.Base(inputPath),
		WithInsights: withInsights,
	})
	if err != nil {
		return err
	}

	out, err := renderOutput(filepath.Base(inputPath), resp)
	if err != nil {
		return err
	}

	if outputPath != "" {
		if err := os.WriteFile(outputPath, []byte(out), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", outputPath, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", outputPath)
		return nil
	}

	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}

func renderOutput(filename string, resp *app.AnalyzeResponse) (string, error) {
	switch format {
	case "text":
		return textReport(resp), nil
	case "markdown":
		return report.MarkdownWithInsights(filename, resp.Result, resp.Insights), nil
	case "json":
		data, err := json.MarshalIndent(resp, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to encode result: %w", err)
		}
		return string(data) + "\n", nil
	default:
		return "", fmt.Errorf("invalid format: %s (must be text, markdown, or json)", format)
	}
}

func textReport(resp *app.AnalyzeResponse) string {
	var b strings.Builder

	r := resp.Result
	fmt.Fprintf(&b, "%s\n", r.Summary)
	fmt.Fprintf(&b, "Today: %s (%s)\n", r.TodayISO, r.Timezone)
	fmt.Fprintf(&b, "Columns: action=%s, due date=%s\n", r.ColumnsUsed.Action, r.ColumnsUsed.DueDate)
	for _, note := range r.Notes {
		fmt.Fprintf(&b, "Note: %s\n", note)
	}
	if resp.Insights != nil && resp.Insights.OverdueSampled > 0 {
		fmt.Fprintf(&b, "Days overdue: mean %.1f, median %.1f, max %.0f (over %d rows)\n",
			resp.Insights.MeanDaysOverdue, resp.Insights.MedianDaysOverdue,
			resp.Insights.MaxDaysOverdue, resp.Insights.OverdueSampled)
	}

	return b.String()
}
