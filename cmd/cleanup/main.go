// prospector-cleanup — re-validate stored records and delete the junk.
//
// Every stored record is pushed back through the validation LLM. Records
// that no longer pass are listed and deleted only after an explicit yes on
// the terminal (or -yes). A failed LLM call always keeps the record.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"prospector/internal/config"
	"prospector/internal/db"
	"prospector/internal/llm"
	"prospector/internal/pipeline"
	"prospector/internal/store"
)

func main() {
	domainFlag := flag.String("domain", "ideas", "pipeline to clean: ideas or jobs")
	yes := flag.Bool("yes", false, "delete without asking")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[cleanup] Config error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Println("[cleanup] Connecting to PostgreSQL…")
	pool, err := db.NewPostgresPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("[cleanup] PostgreSQL: %v", err)
	}
	defer pool.Close()

	st := store.New(pool)
	if err := st.EnsureSchema(ctx); err != nil {
		log.Fatalf("[cleanup] Schema: %v", err)
	}

	// Cleanup re-validation never reads a cached verdict, so no Redis here.
	var dom pipeline.Domain
	switch *domainFlag {
	case "ideas":
		client := llm.NewAnthropicClient(cfg.AnthropicAPIKey, cfg.AnthropicModel)
		dom = pipeline.NewIdeaDomain(st, client, nil)
	case "jobs":
		client := llm.NewOllamaClient(cfg.OllamaURL, cfg.OllamaModel)
		dom = pipeline.NewJobDomain(st, client, nil)
	default:
		fmt.Fprintln(os.Stderr, "usage: cleanup -domain ideas|jobs [-yes]")
		os.Exit(2)
	}

	p := pipeline.New(dom, time.Duration(cfg.PacingMS)*time.Millisecond)
	p.Confirm = confirmOnTerminal(*yes)

	sum, err := p.Cleanup(ctx)
	if err != nil {
		log.Fatalf("[cleanup] %v", err)
	}

	switch {
	case sum.Aborted:
		log.Printf("[cleanup] Aborted: %d flagged, nothing deleted", sum.Flagged)
	case sum.Flagged == 0:
		log.Printf("[cleanup] All %d record(s) still pass, nothing to delete", sum.Total)
	default:
		log.Printf("[cleanup] Deleted %d of %d record(s)", sum.Deleted, sum.Total)
	}
}

func confirmOnTerminal(skip bool) func(string) bool {
	return func(prompt string) bool {
		if skip {
			return true
		}
		fmt.Print(prompt)
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return false
		}
		return strings.ToLower(strings.TrimSpace(line)) == "yes"
	}
}
