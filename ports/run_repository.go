package ports

import (
	"context"

	"actionaudit/domain/core"
	"actionaudit/models"
)

// RunRepository defines the interface for analysis-run storage operations.
// Persistence is optional: the analyzer works fully without a repository
// wired in.
type RunRepository interface {
	Create(ctx context.Context, run *models.AnalysisRun) error
	GetByID(ctx context.Context, id core.RunID) (*models.AnalysisRun, error)
	ListRecent(ctx context.Context, limit, offset int) ([]*models.AnalysisRun, error)
}
