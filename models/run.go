package models

import (
	"time"

	"actionaudit/domain/audit"
	"actionaudit/domain/core"
)

// AnalysisRun records one completed analysis: upload metadata, headline
// counts for listing, and the full result. The uploaded workbook itself is
// never stored; only its fingerprint is kept so repeat uploads are
// recognizable.
type AnalysisRun struct {
	ID            core.RunID   `json:"id" db:"id"`
	Filename      string       `json:"filename" db:"filename"`
	FileSize      int64        `json:"file_size" db:"file_size"`
	WorkbookHash  string       `json:"workbook_hash" db:"workbook_hash"`
	TotalRows     int          `json:"total_rows" db:"total_rows"`
	AssignedCount int          `json:"assigned_count" db:"assigned_count"`
	OverdueCount  int          `json:"overdue_count" db:"overdue_count"`
	TodayISO      string       `json:"today_iso" db:"today_iso"`
	Result        audit.Result `json:"result" db:"result"`
	CreatedAt     time.Time    `json:"created_at" db:"created_at"`
}

// NewAnalysisRun builds a run record from an upload and its finished result.
func NewAnalysisRun(filename string, size int64, hash core.WorkbookHash, result *audit.Result) *AnalysisRun {
	return &AnalysisRun{
		ID:            core.NewRunID(),
		Filename:      filename,
		FileSize:      size,
		WorkbookHash:  hash.String(),
		TotalRows:     result.TotalRows,
		AssignedCount: result.AssignedCount,
		OverdueCount:  result.OverdueCount,
		TodayISO:      result.TodayISO,
		Result:        *result,
		CreatedAt:     time.Now().UTC(),
	}
}
