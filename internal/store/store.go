// Package store persists ideas, jobs, and their analyses in Postgres.
// All writes are idempotent: inserts are conditional on the natural key,
// analyses attach at most once per record, deletes cascade to analyses.
package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// The user_* tables carry no FK to a users table here; account data lives in
// a separate service and only the job_id side is enforced.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS ideas (
		id           SERIAL PRIMARY KEY,
		idea         TEXT NOT NULL UNIQUE,
		description  TEXT,
		difficulty   TEXT,
		effort_est   TEXT,
		monetization TEXT,
		source       TEXT,
		date_found   TIMESTAMP DEFAULT NOW(),
		notes        TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS idea_analysis (
		id                      SERIAL PRIMARY KEY,
		idea_id                 INTEGER REFERENCES ideas(id) ON DELETE CASCADE,
		summary                 TEXT,
		feasibility_score       INTEGER,
		market_potential_score  INTEGER,
		effort_score            INTEGER,
		overall_score           INTEGER,
		monetization_suggestion TEXT,
		strengths               TEXT,
		weaknesses              TEXT,
		verdict                 TEXT,
		llm_opinion             TEXT,
		analyzed_at             TIMESTAMP DEFAULT NOW(),
		UNIQUE(idea_id)
	)`,
	`CREATE TABLE IF NOT EXISTS jobs (
		id          SERIAL PRIMARY KEY,
		title       TEXT NOT NULL,
		company     TEXT,
		description TEXT,
		salary      TEXT,
		job_type    TEXT,
		location    TEXT,
		source      TEXT,
		url         TEXT,
		date_found  TIMESTAMP DEFAULT NOW(),
		UNIQUE(title, company)
	)`,
	`CREATE TABLE IF NOT EXISTS job_analysis (
		id              SERIAL PRIMARY KEY,
		job_id          INTEGER REFERENCES jobs(id) ON DELETE CASCADE,
		summary         TEXT,
		relevance_score INTEGER,
		seniority_level TEXT,
		skills          TEXT,
		strengths       TEXT,
		weaknesses      TEXT,
		verdict         TEXT,
		llm_opinion     TEXT,
		analyzed_at     TIMESTAMP DEFAULT NOW(),
		UNIQUE(job_id)
	)`,
	`CREATE TABLE IF NOT EXISTS user_bookmarked_jobs (
		user_id    UUID NOT NULL,
		job_id     INTEGER REFERENCES jobs(id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ DEFAULT NOW(),
		PRIMARY KEY (user_id, job_id)
	)`,
	`CREATE TABLE IF NOT EXISTS user_hidden_jobs (
		user_id    UUID NOT NULL,
		job_id     INTEGER REFERENCES jobs(id) ON DELETE CASCADE,
		created_at TIMESTAMPTZ DEFAULT NOW(),
		PRIMARY KEY (user_id, job_id)
	)`,
}

// EnsureSchema creates every table this service relies on. Safe to run on
// every startup.
func (s *Store) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
