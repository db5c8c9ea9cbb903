package pipeline

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"prospector/internal/enrich"
	"prospector/internal/gate"
	"prospector/internal/llm"
	"prospector/internal/model"
	"prospector/internal/source"
	"prospector/internal/store"
)

// IdeaDomain wires the SaaS-idea vertical: Reddit + Hacker News feeds, the
// idea rubric, and the ideas tables.
type IdeaDomain struct {
	store    *store.Store
	enricher *enrich.IdeaEnricher
	gate     *gate.Gate
	sources  []source.Adapter
}

func NewIdeaDomain(st *store.Store, client llm.Client, cache *redis.Client, adapters ...source.Adapter) *IdeaDomain {
	if len(adapters) == 0 {
		adapters = source.IdeaAdapters()
	}
	return &IdeaDomain{
		store:    st,
		enricher: &enrich.IdeaEnricher{LLM: client},
		gate:     gate.NewIdeaGate(client, cache),
		sources:  adapters,
	}
}

func (d *IdeaDomain) Name() string              { return "ideas" }
func (d *IdeaDomain) Sources() []source.Adapter { return d.sources }
func (d *IdeaDomain) Gate() *gate.Gate          { return d.gate }

func (d *IdeaDomain) InsertAccepted(ctx context.Context, accepted []model.Candidate) (int, error) {
	return d.store.InsertIdeas(ctx, accepted)
}

func (d *IdeaDomain) PendingAnalyses(ctx context.Context) ([]AnalysisTask, error) {
	ideas, err := d.store.UnanalyzedIdeas(ctx)
	if err != nil {
		return nil, err
	}

	tasks := make([]AnalysisTask, 0, len(ideas))
	for _, idea := range ideas {
		tasks = append(tasks, AnalysisTask{
			ID:    idea.ID,
			Title: idea.Title,
			Run: func(ctx context.Context) (string, error) {
				analysis, err := d.enricher.Analyze(ctx, idea)
				if err != nil {
					return "", err
				}
				if err := d.store.AttachIdeaAnalysis(ctx, idea.ID, analysis); err != nil {
					return "", err
				}
				return fmt.Sprintf("%s (score: %s/10)",
					strOr(analysis.Verdict, "?"), intOr(analysis.OverallScore, "?")), nil
			},
		})
	}
	return tasks, nil
}

func (d *IdeaDomain) Stored(ctx context.Context) ([]Record, error) {
	ideas, err := d.store.AllIdeas(ctx)
	if err != nil {
		return nil, err
	}
	records := make([]Record, 0, len(ideas))
	for _, idea := range ideas {
		records = append(records, Record{ID: idea.ID, Title: idea.Title, Description: idea.Description})
	}
	return records, nil
}

func (d *IdeaDomain) Delete(ctx context.Context, ids []int64) (int64, error) {
	return d.store.DeleteIdeas(ctx, ids)
}

func strOr(v *string, fallback string) string {
	if v == nil {
		return fallback
	}
	return *v
}

func intOr(v *int, fallback string) string {
	if v == nil {
		return fallback
	}
	return fmt.Sprintf("%d", *v)
}
