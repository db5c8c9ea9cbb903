package store

import (
	"context"
	"fmt"

	"prospector/internal/model"
)

// InsertJobs inserts candidates not already present, keyed on
// (title, company). The company comparison is NULL-safe so that two postings
// with the same title and no company still dedupe.
func (s *Store) InsertJobs(ctx context.Context, candidates []model.Candidate) (int, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	inserted := 0
	for _, c := range candidates {
		tag, err := tx.Exec(ctx, `
			INSERT INTO jobs (title, company, description, salary, job_type, location, source, url)
			SELECT $1, $2, $3, $4, $5, $6, $7, $8
			WHERE NOT EXISTS (
				SELECT 1 FROM jobs WHERE title = $1 AND company IS NOT DISTINCT FROM $2
			)`,
			c.Title, c.Company, c.Description, c.Salary, c.JobType, c.Location, c.Source, c.URL)
		if err != nil {
			return 0, fmt.Errorf("insert job %q: %w", c.Title, err)
		}
		if tag.RowsAffected() > 0 {
			inserted++
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return inserted, nil
}

// UnanalyzedJobs returns every job without an analysis row.
func (s *Store) UnanalyzedJobs(ctx context.Context) ([]model.Job, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT j.id, j.title, j.company, COALESCE(j.description, ''), j.salary,
		       j.job_type, j.location, COALESCE(j.source, ''), j.url
		FROM jobs j
		LEFT JOIN job_analysis a ON j.id = a.job_id
		WHERE a.id IS NULL
		ORDER BY j.id`)
	if err != nil {
		return nil, fmt.Errorf("select unanalyzed jobs: %w", err)
	}
	defer rows.Close()

	var jobs []model.Job
	for rows.Next() {
		var job model.Job
		if err := rows.Scan(&job.ID, &job.Title, &job.Company, &job.Description,
			&job.Salary, &job.JobType, &job.Location, &job.Source, &job.URL); err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

// AttachJobAnalysis stores the analysis for one job, at most once.
func (s *Store) AttachJobAnalysis(ctx context.Context, jobID int64, a model.JobAnalysis) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO job_analysis
			(job_id, summary, relevance_score, seniority_level, skills,
			 strengths, weaknesses, verdict, llm_opinion)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (job_id) DO NOTHING`,
		jobID, a.Summary, a.RelevanceScore, a.SeniorityLevel, a.Skills,
		a.Strengths, a.Weaknesses, a.Verdict, a.LLMOpinion)
	if err != nil {
		return fmt.Errorf("attach job analysis: %w", err)
	}
	return nil
}

// AllJobs returns every stored job in id order, for cleanup re-validation.
func (s *Store) AllJobs(ctx context.Context) ([]model.Job, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, title, COALESCE(description, '')
		FROM jobs
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("select jobs: %w", err)
	}
	defer rows.Close()

	var jobs []model.Job
	for rows.Next() {
		var job model.Job
		if err := rows.Scan(&job.ID, &job.Title, &job.Description); err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

// DeleteJobs removes the given jobs in one statement; analyses, bookmarks,
// and hidden markers cascade. Returns the number of rows deleted.
func (s *Store) DeleteJobs(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	tag, err := s.pool.Exec(ctx, `DELETE FROM jobs WHERE id = ANY($1)`, ids)
	if err != nil {
		return 0, fmt.Errorf("delete jobs: %w", err)
	}
	return tag.RowsAffected(), nil
}
