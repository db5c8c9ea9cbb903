// Package pipeline sequences the ingest, analyze, and cleanup flows over a
// Domain. The flows are generic; everything idea- or job-specific (sources,
// rubric, natural key, analysis shape) lives behind the Domain interface.
package pipeline

import (
	"context"

	"prospector/internal/gate"
	"prospector/internal/model"
	"prospector/internal/source"
)

// Record is the slice of a stored row the cleanup pass needs: identity plus
// the text the gate re-validates.
type Record struct {
	ID          int64
	Title       string
	Description string
}

// AnalysisTask is one pending enrichment. Run performs the LLM call,
// persists the result, and returns a short result line for the log.
type AnalysisTask struct {
	ID    int64
	Title string
	Run   func(ctx context.Context) (string, error)
}

// Domain binds one vertical (ideas or jobs) to the generic flows.
type Domain interface {
	Name() string
	Sources() []source.Adapter
	Gate() *gate.Gate

	// InsertAccepted upserts gated candidates in one transaction and
	// returns how many were actually new.
	InsertAccepted(ctx context.Context, accepted []model.Candidate) (int, error)

	// PendingAnalyses lists every stored record without an analysis.
	PendingAnalyses(ctx context.Context) ([]AnalysisTask, error)

	// Stored lists every record for cleanup re-validation.
	Stored(ctx context.Context) ([]Record, error)

	// Delete removes records by id, cascading to their analyses.
	Delete(ctx context.Context, ids []int64) (int64, error)
}
