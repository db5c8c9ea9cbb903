// Package config loads and validates environment variables at startup.
// Fail-fast: if a required variable is missing, the process exits.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration for the prospector pipelines.
type Config struct {
	DatabaseURL string
	RedisURL    string // optional; empty disables the gate verdict cache

	AnthropicAPIKey string
	AnthropicModel  string

	OllamaURL   string
	OllamaModel string

	IngestIntervalHours int // how often the scheduler fires
	PacingMS            int // delay between consecutive LLM calls in one batch
}

// Load reads a .env file if present, then environment variables, and returns
// a validated Config.
func Load() (*Config, error) {
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	model := os.Getenv("ANTHROPIC_MODEL")
	if model == "" {
		model = "claude-haiku-4-5-20251001"
	}

	ollamaURL := os.Getenv("OLLAMA_URL")
	if ollamaURL == "" {
		ollamaURL = "http://localhost:11434/api/generate"
	}
	ollamaModel := os.Getenv("OLLAMA_MODEL")
	if ollamaModel == "" {
		ollamaModel = "minimax-m2.5:cloud"
	}

	interval := 6
	if s := os.Getenv("INGEST_INTERVAL_HOURS"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 1 {
			return nil, fmt.Errorf("INGEST_INTERVAL_HOURS must be a positive integer, got %q", s)
		}
		interval = v
	}

	pacing := 1500
	if s := os.Getenv("LLM_PACING_MS"); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 {
			return nil, fmt.Errorf("LLM_PACING_MS must be a non-negative integer, got %q", s)
		}
		pacing = v
	}

	return &Config{
		DatabaseURL:         dbURL,
		RedisURL:            os.Getenv("REDIS_URL"),
		AnthropicAPIKey:     os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicModel:      model,
		OllamaURL:           ollamaURL,
		OllamaModel:         ollamaModel,
		IngestIntervalHours: interval,
		PacingMS:            pacing,
	}, nil
}
