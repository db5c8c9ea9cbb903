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

// JobDomain wires the remote-job vertical: the job board feeds, the job
// rubric, and the jobs tables.
type JobDomain struct {
	store    *store.Store
	enricher *enrich.JobEnricher
	gate     *gate.Gate
	sources  []source.Adapter
}

func NewJobDomain(st *store.Store, client llm.Client, cache *redis.Client, adapters ...source.Adapter) *JobDomain {
	if len(adapters) == 0 {
		adapters = source.JobAdapters()
	}
	return &JobDomain{
		store:    st,
		enricher: &enrich.JobEnricher{LLM: client},
		gate:     gate.NewJobGate(client, cache),
		sources:  adapters,
	}
}

func (d *JobDomain) Name() string              { return "jobs" }
func (d *JobDomain) Sources() []source.Adapter { return d.sources }
func (d *JobDomain) Gate() *gate.Gate          { return d.gate }

func (d *JobDomain) InsertAccepted(ctx context.Context, accepted []model.Candidate) (int, error) {
	return d.store.InsertJobs(ctx, accepted)
}

func (d *JobDomain) PendingAnalyses(ctx context.Context) ([]AnalysisTask, error) {
	jobs, err := d.store.UnanalyzedJobs(ctx)
	if err != nil {
		return nil, err
	}

	tasks := make([]AnalysisTask, 0, len(jobs))
	for _, job := range jobs {
		tasks = append(tasks, AnalysisTask{
			ID:    job.ID,
			Title: job.Title,
			Run: func(ctx context.Context) (string, error) {
				analysis, err := d.enricher.Analyze(ctx, job)
				if err != nil {
					return "", err
				}
				if err := d.store.AttachJobAnalysis(ctx, job.ID, analysis); err != nil {
					return "", err
				}
				return fmt.Sprintf("%s (relevance: %s/10)",
					strOr(analysis.Verdict, "?"), intOr(analysis.RelevanceScore, "?")), nil
			},
		})
	}
	return tasks, nil
}

func (d *JobDomain) Stored(ctx context.Context) ([]Record, error) {
	jobs, err := d.store.AllJobs(ctx)
	if err != nil {
		return nil, err
	}
	records := make([]Record, 0, len(jobs))
	for _, job := range jobs {
		records = append(records, Record{ID: job.ID, Title: job.Title, Description: job.Description})
	}
	return records, nil
}

func (d *JobDomain) Delete(ctx context.Context, ids []int64) (int64, error) {
	return d.store.DeleteJobs(ctx, ids)
}
