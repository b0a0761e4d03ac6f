package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"actionaudit/domain/core"
	"actionaudit/models"
	"actionaudit/ports"

	"github.com/jmoiron/sqlx"
)

// runRepository implements the RunRepository interface
type runRepository struct {
	db *sqlx.DB
}

// NewRunRepository creates a new analysis-run repository
func NewRunRepository(db *sqlx.DB) ports.RunRepository {
	return &runRepository{db: db}
}

// EnsureSchema creates the analysis_runs table and its indexes when they do
// not exist yet.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	schema := `CREATE TABLE IF NOT EXISTS analysis_runs (
		id UUID PRIMARY KEY,
		filename TEXT NOT NULL,
		file_size BIGINT NOT NULL DEFAULT 0,
		workbook_hash TEXT NOT NULL,
		total_rows INTEGER NOT NULL DEFAULT 0,
		assigned_count INTEGER NOT NULL DEFAULT 0,
		overdue_count INTEGER NOT NULL DEFAULT 0,
		today_iso TEXT NOT NULL,
		result JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	CREATE INDEX IF NOT EXISTS idx_analysis_runs_created_at ON analysis_runs (created_at DESC);
	CREATE INDEX IF NOT EXISTS idx_analysis_runs_workbook_hash ON analysis_runs (workbook_hash);`

	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to ensure analysis_runs schema: %w", err)
	}
	return nil
}

// Create inserts a new analysis run into the database
func (r *runRepository) Create(ctx context.Context, run *models.AnalysisRun) error {
	resultJSON, err := json.Marshal(run.Result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	query := `INSERT INTO analysis_runs (
		id, filename, file_size, workbook_hash, total_rows, assigned_count,
		overdue_count, today_iso, result, created_at
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10
	)`

	_, err = r.db.ExecContext(ctx, query,
		run.ID, run.Filename, run.FileSize, run.WorkbookHash, run.TotalRows,
		run.AssignedCount, run.OverdueCount, run.TodayISO, resultJSON, run.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create analysis run: %w", err)
	}

	return nil
}

// GetByID retrieves an analysis run by its ID
func (r *runRepository) GetByID(ctx context.Context, id core.RunID) (*models.AnalysisRun, error) {
	query := `SELECT
		id, filename, COALESCE(file_size, 0) as file_size, workbook_hash,
		COALESCE(total_rows, 0) as total_rows, COALESCE(assigned_count, 0) as assigned_count,
		COALESCE(overdue_count, 0) as overdue_count, today_iso, result, created_at
	FROM analysis_runs WHERE id = $1`

	var run models.AnalysisRun
	var resultJSON []byte

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&run.ID, &run.Filename, &run.FileSize, &run.WorkbookHash,
		&run.TotalRows, &run.AssignedCount, &run.OverdueCount,
		&run.TodayISO, &resultJSON, &run.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%w: %s", core.ErrRunNotFound, id)
		}
		return nil, fmt.Errorf("failed to get analysis run: %w", err)
	}

	if len(resultJSON) > 0 {
		if err := json.Unmarshal(resultJSON, &run.Result); err != nil {
			return nil, fmt.Errorf("failed to unmarshal result: %w", err)
		}
	}

	return &run, nil
}

// ListRecent retrieves analysis runs ordered newest first with pagination
func (r *runRepository) ListRecent(ctx context.Context, limit, offset int) ([]*models.AnalysisRun, error) {
	query := `SELECT
		id, filename, COALESCE(file_size, 0) as file_size, workbook_hash,
		COALESCE(total_rows, 0) as total_rows, COALESCE(assigned_count, 0) as assigned_count,
		COALESCE(overdue_count, 0) as overdue_count, today_iso, result, created_at
	FROM analysis_runs
	ORDER BY created_at DESC
	LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query analysis runs: %w", err)
	}
	defer rows.Close()

	return r.scanRuns(rows)
}

// scanRuns is a helper function to scan multiple run rows
func (r *runRepository) scanRuns(rows *sql.Rows) ([]*models.AnalysisRun, error) {
	var runs []*models.AnalysisRun
	for rows.Next() {
		var run models.AnalysisRun
		var resultJSON []byte

		err := rows.Scan(
			&run.ID, &run.Filename, &run.FileSize, &run.WorkbookHash,
			&run.TotalRows, &run.AssignedCount, &run.OverdueCount,
			&run.TodayISO, &resultJSON, &run.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan analysis run: %w", err)
		}

		if len(resultJSON) > 0 {
			if err := json.Unmarshal(resultJSON, &run.Result); err != nil {
				return nil, fmt.Errorf("failed to unmarshal result: %w", err)
			}
		}

		runs = append(runs, &run)
	}

	return runs, rows.Err()
}
