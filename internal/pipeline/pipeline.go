package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"prospector/internal/gate"
	"prospector/internal/model"
)

// DefaultPacing is the pause between consecutive LLM calls in one batch.
const DefaultPacing = 1500 * time.Millisecond

// Pipeline runs the three flows for one Domain. LLM calls are strictly
// serialized; Sleep and Confirm are injectable for tests.
type Pipeline struct {
	Domain  Domain
	Pacing  time.Duration
	Sleep   func(time.Duration)
	Confirm func(prompt string) bool
}

func New(d Domain, pacing time.Duration) *Pipeline {
	return &Pipeline{
		Domain: d,
		Pacing: pacing,
		Sleep:  time.Sleep,
		Confirm: func(string) bool {
			return false
		},
	}
}

// IngestSummary aggregates one ingest run across all sources.
type IngestSummary struct {
	Fetched  int
	Accepted int
	Rejected int
	Inserted int
}

// AnalyzeSummary aggregates one analysis run.
type AnalyzeSummary struct {
	Pending  int
	Analyzed int
	Failed   int
}

// CleanupSummary aggregates one cleanup run.
type CleanupSummary struct {
	Total   int
	Flagged int
	Deleted int64
	Aborted bool
}

// Ingest fetches every source, gates each candidate serially with pacing,
// and upserts the survivors one transaction per source. A source that fails
// to fetch, parse, or commit is logged and skipped; the others proceed.
func (p *Pipeline) Ingest(ctx context.Context) (IngestSummary, error) {
	var sum IngestSummary
	g := p.Domain.Gate()

	for _, src := range p.Domain.Sources() {
		if err := ctx.Err(); err != nil {
			return sum, err
		}

		candidates, err := src.Fetch(ctx)
		if err != nil {
			log.Printf("[pipeline] %s: fetch error: %v", src.Name(), err)
			continue
		}
		log.Printf("[pipeline] %s: fetched %d candidate(s)", src.Name(), len(candidates))
		sum.Fetched += len(candidates)

		var accepted []model.Candidate
		rejected := 0
		paced := false
		for _, c := range candidates {
			if err := ctx.Err(); err != nil {
				return sum, err
			}
			if c.Title == "" {
				rejected++
				continue
			}
			if paced {
				p.Sleep(p.Pacing)
			}
			paced = true

			ok, reason := g.Validate(ctx, c.Title, c.Description, gate.FailReject)
			if !ok {
				log.Printf("[pipeline] rejected: %s — %s", clip(c.Title), reason)
				rejected++
				continue
			}
			log.Printf("[pipeline] accepted: %s", clip(c.Title))
			accepted = append(accepted, c)
		}

		inserted, err := p.Domain.InsertAccepted(ctx, accepted)
		if err != nil {
			log.Printf("[pipeline] %s: insert error: %v", src.Name(), err)
			sum.Rejected += rejected
			continue
		}

		sum.Accepted += len(accepted)
		sum.Rejected += rejected
		sum.Inserted += inserted
		log.Printf("[pipeline] %s: fetched %d | accepted %d | inserted %d new",
			src.Name(), len(candidates), len(accepted), inserted)
	}

	return sum, nil
}

// Analyze enriches every stored record that has no analysis yet. Each
// record is its own unit: a failed analysis is logged and the record stays
// pending for the next run.
func (p *Pipeline) Analyze(ctx context.Context) (AnalyzeSummary, error) {
	tasks, err := p.Domain.PendingAnalyses(ctx)
	if err != nil {
		return AnalyzeSummary{}, err
	}

	sum := AnalyzeSummary{Pending: len(tasks)}
	if len(tasks) == 0 {
		log.Printf("[pipeline] all %s already analyzed", p.Domain.Name())
		return sum, nil
	}

	log.Printf("[pipeline] analyzing %d unanalyzed %s", len(tasks), p.Domain.Name())
	for i, t := range tasks {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		if i > 0 {
			p.Sleep(p.Pacing)
		}

		line, err := t.Run(ctx)
		if err != nil {
			log.Printf("[pipeline] analysis error '%s': %v", clip(t.Title), err)
			sum.Failed++
			continue
		}
		log.Printf("[pipeline] analyzed: %s -> %s", clip(t.Title), line)
		sum.Analyzed++
	}

	return sum, nil
}

// Cleanup re-validates every stored record with the gate in keep-on-failure
// mode, then deletes the rejected set in one transaction — but only after
// the Confirm callback approves it. Declining is a normal, zero-mutation
// termination.
func (p *Pipeline) Cleanup(ctx context.Context) (CleanupSummary, error) {
	records, err := p.Domain.Stored(ctx)
	if err != nil {
		return CleanupSummary{}, err
	}

	sum := CleanupSummary{Total: len(records)}
	log.Printf("[pipeline] found %d stored %s, re-validating", len(records), p.Domain.Name())

	g := p.Domain.Gate()
	var toDelete []int64
	for i, r := range records {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		if i > 0 {
			p.Sleep(p.Pacing)
		}

		ok, reason := g.Validate(ctx, r.Title, r.Description, gate.FailKeep)
		if !ok {
			log.Printf("[pipeline] delete: id=%d '%s' — %s", r.ID, clip(r.Title), reason)
			toDelete = append(toDelete, r.ID)
		} else {
			log.Printf("[pipeline] keep:   id=%d '%s'", r.ID, clip(r.Title))
		}
	}
	sum.Flagged = len(toDelete)

	log.Printf("[pipeline] total %d | keep %d | delete %d",
		len(records), len(records)-len(toDelete), len(toDelete))

	if len(toDelete) == 0 {
		log.Printf("[pipeline] nothing to delete")
		return sum, nil
	}

	prompt := fmt.Sprintf("Delete %d rejected %s? (yes/no): ", len(toDelete), p.Domain.Name())
	if !p.Confirm(prompt) {
		log.Printf("[pipeline] aborted, no rows deleted")
		sum.Aborted = true
		return sum, nil
	}

	deleted, err := p.Domain.Delete(ctx, toDelete)
	if err != nil {
		return sum, fmt.Errorf("delete: %w", err)
	}
	sum.Deleted = deleted
	log.Printf("[pipeline] deleted %d row(s), analyses removed via cascade", deleted)

	return sum, nil
}

func clip(s string) string {
	if len(s) > 60 {
		return s[:60]
	}
	return s
}
