// Package scheduler wires up the cron job that periodically runs the ingest
// and analysis flows for every registered pipeline.
package scheduler

import (
	"context"
	"fmt"
	"log"

	"github.com/robfig/cron/v3"

	"prospector/internal/pipeline"
)

// Scheduler wraps robfig/cron and manages the ingest loop.
type Scheduler struct {
	cron      *cron.Cron
	pipelines []*pipeline.Pipeline
	spec      string // cron spec, e.g. "@every 6h"
}

// New creates a Scheduler that fires every intervalHours hours.
func New(pipelines []*pipeline.Pipeline, intervalHours int) *Scheduler {
	return &Scheduler{
		cron:      cron.New(cron.WithLogger(cron.DefaultLogger)),
		pipelines: pipelines,
		spec:      fmt.Sprintf("@every %dh", intervalHours),
	}
}

// Start registers the job and starts the scheduler. Also runs one cycle
// immediately so the tables are populated without waiting for the first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.runCycle(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	log.Printf("[scheduler] Cron started — spec: %s", s.spec)

	// Run immediately on startup (non-blocking)
	go s.runCycle(ctx)

	return nil
}

// Stop gracefully shuts down the scheduler.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("[scheduler] Cron stopped")
}

// runCycle ingests then analyzes each pipeline in turn. LLM calls stay
// serialized across pipelines; a failing pipeline doesn't stop the others.
func (s *Scheduler) runCycle(ctx context.Context) {
	log.Println("[scheduler] Ingest cycle started")

	for _, p := range s.pipelines {
		name := p.Domain.Name()

		sum, err := p.Ingest(ctx)
		if err != nil {
			log.Printf("[scheduler] %s ingest error: %v", name, err)
			continue
		}
		log.Printf("[scheduler] %s ingest: fetched %d | accepted %d | inserted %d new",
			name, sum.Fetched, sum.Accepted, sum.Inserted)

		asum, err := p.Analyze(ctx)
		if err != nil {
			log.Printf("[scheduler] %s analyze error: %v", name, err)
			continue
		}
		log.Printf("[scheduler] %s analyze: %d analyzed, %d failed",
			name, asum.Analyzed, asum.Failed)
	}

	log.Println("[scheduler] Ingest cycle complete")
}
