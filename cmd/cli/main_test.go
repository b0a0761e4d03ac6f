package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixtureCSV = "Action,Due Date\nAlice,2000-01-02\nno,2000-01-02\nBob,2100-01-02\n"

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "tasks.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestAnalyzeTextOutput(t *testing.T) {
	path := writeTempCSV(t, fixtureCSV)

	out, err := runCLI(t, "analyze", path)
	require.NoError(t, err)

	assert.Contains(t, out, "Total: 3 | Assigned: 2 (67%) | Overdue: 1 (50%)")
	assert.Contains(t, out, "Asia/Kolkata")
	assert.Contains(t, out, "action=A")
	assert.NotContains(t, out, "Days overdue:")
}

func TestAnalyzeJSONOutput(t *testing.T) {
	path := writeTempCSV(t, fixtureCSV)

	out, err := runCLI(t, "analyze", path, "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Result struct {
			TotalRows   int     `json:"total_rows"`
			AssignedPct float64 `json:"assigned_pct"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, 3, resp.Result.TotalRows)
	assert.InDelta(t, 66.7, resp.Result.AssignedPct, 0.01)
}

func TestAnalyzeMarkdownToFile(t *testing.T) {
	path := writeTempCSV(t, fixtureCSV)
	outPath := filepath.Join(t.TempDir(), "report.md")

	out, err := runCLI(t, "analyze", path, "--format", "markdown", "--out", outPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Report written to")

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Action Item Audit")
	assert.Contains(t, string(data), "Total: 3 | Assigned: 2 (67%) | Overdue: 1 (50%)")
}

func TestAnalyzeInsightsFlag(t *testing.T) {
	path := writeTempCSV(t, fixtureCSV)

	out, err := runCLI(t, "analyze", path, "--insights")
	require.NoError(t, err)

	assert.Contains(t, out, "Days overdue:")
	assert.Contains(t, out, "(over 1 rows)")
}

func TestAnalyzeMissingActionColumn(t *testing.T) {
	path := writeTempCSV(t, "Task,Due Date\nAlice,2000-01-02\n")

	_, err := runCLI(t, "analyze", path)
	require.Error(t, err)
	assert.Equal(t, "Action column not found. Please ensure your Excel file has an 'Action' column.", err.Error())
}

func TestAnalyzeInvalidFormat(t *testing.T) {
	path := writeTempCSV(t, fixtureCSV)

	_, err := runCLI(t, "analyze", path, "--format", "yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestAnalyzeMissingFile(t *testing.T) {
	_, err := runCLI(t, "analyze", filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file not found")
}
