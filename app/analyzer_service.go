package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"actionaudit/domain/audit"
	"actionaudit/domain/core"
	"actionaudit/models"
	"actionaudit/ports"

	"golang.org/x/sync/semaphore"
)

// maxConcurrentAnalyses caps in-flight analyses; decoding a workbook is the
// memory-heavy step.
const maxConcurrentAnalyses = 4

// systemClock is the default Clock when none is injected.
type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// AnalyzeRequest carries one uploaded workbook into the analyzer.
type AnalyzeRequest struct {
	Data         []byte
	Filename     string
	WithInsights bool
}

// AnalyzeResponse pairs the result with its recorded run id and optional
// insights. RunID stays empty when no run repository is wired in.
type AnalyzeResponse struct {
	Result   *audit.Result   `json:"result"`
	RunID    core.RunID      `json:"run_id,omitempty"`
	Insights *audit.Insights `json:"insights,omitempty"`
}

// AnalyzerService orchestrates one analysis: decode, resolve the reference
// date once, classify and aggregate, then optionally record the run. It
// holds no per-call state, so concurrent calls are independent.
type AnalyzerService struct {
	decoder ports.WorkbookDecoder
	runs    ports.RunRepository // nil disables run history
	clock   ports.Clock
	sem     *semaphore.Weighted
}

// NewAnalyzerService creates an analyzer. runs may be nil to disable run
// history; clock may be nil to use the system clock.
func NewAnalyzerService(decoder ports.WorkbookDecoder, runs ports.RunRepository, clock ports.Clock) *AnalyzerService {
	if clock == nil {
		clock = systemClock{}
	}
	return &AnalyzerService{
		decoder: decoder,
		runs:    runs,
		clock:   clock,
		sem:     semaphore.NewWeighted(maxConcurrentAnalyses), // Allow 4 concurrent analyses
	}
}

// Analyze runs the pipeline over one upload. Run recording is best-effort:
// a failed insert logs a warning and never fails the analysis.
func (s *AnalyzerService) Analyze(ctx context.Context, req AnalyzeRequest) (*AnalyzeResponse, error) {
	if err := s.sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("waiting for analysis slot: %w", err)
	}
	defer s.sem.Release(1)

	startTime := time.Now()

	grid, err := s.decoder.Decode(req.Data, req.Filename)
	if err != nil {
		return nil, err
	}

	// The reference date is resolved exactly once, before any row is
	// classified, so a run never straddles a midnight.
	today := audit.TodayAt(s.clock.Now())

	result, err := audit.Analyze(grid, today)
	if err != nil {
		return nil, err
	}

	resp := &AnalyzeResponse{Result: result}
	if req.WithInsights {
		insights, err := audit.ComputeInsights(grid, today)
		if err != nil {
			return nil, fmt.Errorf("computing insights: %w", err)
		}
		resp.Insights = insights
	}

	if s.runs != nil {
		run := models.NewAnalysisRun(req.Filename, int64(len(req.Data)), core.NewWorkbookHash(req.Data), result)
		if err := s.runs.Create(ctx, run); err != nil {
			log.Printf("[AnalyzerService] Failed to record run for %s: %v", req.Filename, err)
		} else {
			resp.RunID = run.ID
		}
	}

	log.Printf("[AnalyzerService] Analyzed %s in %.2fms (%d rows, %d assigned, %d overdue)",
		req.Filename, float64(time.Since(startTime).Nanoseconds())/1e6,
		result.TotalRows, result.AssignedCount, result.OverdueCount)

	return resp, nil
}

// HistoryEnabled reports whether analyses are being recorded.
func (s *AnalyzerService) HistoryEnabled() bool {
	return s.runs != nil
}

// GetRun fetches one recorded run. With history disabled every id is
// not-found.
func (s *AnalyzerService) GetRun(ctx context.Context, id core.RunID) (*models.AnalysisRun, error) {
	if s.runs == nil {
		return nil, core.ErrRunNotFound
	}
	return s.runs.GetByID(ctx, id)
}

// ListRuns returns recent recorded runs, newest first. With history
// disabled the list is empty.
func (s *AnalyzerService) ListRuns(ctx context.Context, limit, offset int) ([]*models.AnalysisRun, error) {
	if s.runs == nil {
		return []*models.AnalysisRun{}, nil
	}
	return s.runs.ListRecent(ctx, limit, offset)
}
