// prospector-ingest — one full ingest pass for a single domain.
//
// Fetches every feed, gates each candidate through the validation LLM,
// upserts survivors, then analyzes any stored record still missing an
// analysis. Run-to-completion; safe to re-run at any time.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"prospector/internal/config"
	"prospector/internal/db"
	"prospector/internal/llm"
	"prospector/internal/pipeline"
	"prospector/internal/store"

	"github.com/redis/go-redis/v9"
)

func main() {
	domainFlag := flag.String("domain", "ideas", "pipeline to run: ideas or jobs")
	skipAnalyze := flag.Bool("skip-analyze", false, "skip the analysis pass")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[ingest] Config error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Println("[ingest] Connecting to PostgreSQL…")
	pool, err := db.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("[ingest] PostgreSQL: %v", err)
	}
	defer pool.Close()

	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatalf("[ingest] Redis: %v", err)
	}
	if rdb != nil {
		defer rdb.Close()
	}

	st := store.New(pool)
	if err := st.EnsureSchema(ctx); err != nil {
		log.Fatalf("[ingest] Schema: %v", err)
	}

	dom, err := buildDomain(*domainFlag, st, cfg, rdb)
	if err != nil {
		log.Fatalf("[ingest] %v", err)
	}

	p := pipeline.New(dom, time.Duration(cfg.PacingMS)*time.Millisecond)

	sum, err := p.Ingest(ctx)
	if err != nil {
		log.Fatalf("[ingest] Ingest aborted: %v", err)
	}
	log.Printf("[ingest] Done: fetched %d | accepted %d | rejected %d | inserted %d new",
		sum.Fetched, sum.Accepted, sum.Rejected, sum.Inserted)

	if *skipAnalyze {
		return
	}

	asum, err := p.Analyze(ctx)
	if err != nil {
		log.Fatalf("[ingest] Analyze aborted: %v", err)
	}
	log.Printf("[ingest] Analysis done: %d pending | %d analyzed | %d failed",
		asum.Pending, asum.Analyzed, asum.Failed)
}

// buildDomain picks the LLM backend per domain: ideas go to the hosted
// Anthropic API, jobs to the local Ollama endpoint.
func buildDomain(name string, st *store.Store, cfg *config.Config, rdb *redis.Client) (pipeline.Domain, error) {
	switch name {
	case "ideas":
		if cfg.AnthropicAPIKey == "" {
			log.Println("[ingest] ANTHROPIC_API_KEY not set — idea gating will fail closed")
		}
		client := llm.NewAnthropicClient(cfg.AnthropicAPIKey, cfg.AnthropicModel)
		return pipeline.NewIdeaDomain(st, client, rdb), nil
	case "jobs":
		client := llm.NewOllamaClient(cfg.OllamaURL, cfg.OllamaModel)
		return pipeline.NewJobDomain(st, client, rdb), nil
	default:
		fmt.Fprintln(os.Stderr, "usage: ingest -domain ideas|jobs [-skip-analyze]")
		return nil, fmt.Errorf("unknown domain %q", name)
	}
}
