// prospector-scheduler — long-running ingest loop.
//
// Runs the idea and job pipelines (ingest + analyze) immediately on startup
// and then on a fixed interval, until SIGINT/SIGTERM.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"prospector/internal/config"
	"prospector/internal/db"
	"prospector/internal/llm"
	"prospector/internal/pipeline"
	"prospector/internal/scheduler"
	"prospector/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[scheduler] Config error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	log.Println("[scheduler] Connecting to PostgreSQL…")
	pool, err := db.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("[scheduler] PostgreSQL: %v", err)
	}
	defer pool.Close()
	log.Println("[scheduler] PostgreSQL connected ✓")

	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatalf("[scheduler] Redis: %v", err)
	}
	if rdb != nil {
		defer rdb.Close()
		log.Println("[scheduler] Redis connected ✓")
	}

	st := store.New(pool)
	if err := st.EnsureSchema(ctx); err != nil {
		log.Fatalf("[scheduler] Schema: %v", err)
	}

	pacing := time.Duration(cfg.PacingMS) * time.Millisecond
	pipelines := []*pipeline.Pipeline{
		pipeline.New(pipeline.NewIdeaDomain(st, llm.NewAnthropicClient(cfg.AnthropicAPIKey, cfg.AnthropicModel), rdb), pacing),
		pipeline.New(pipeline.NewJobDomain(st, llm.NewOllamaClient(cfg.OllamaURL, cfg.OllamaModel), rdb), pacing),
	}

	sched := scheduler.New(pipelines, cfg.IngestIntervalHours)
	if err := sched.Start(ctx); err != nil {
		log.Fatalf("[scheduler] Start: %v", err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[scheduler] Shutting down…")
	cancel()
	sched.Stop()
	log.Println("[scheduler] Stopped.")
}
