package store

import (
	"context"
	"fmt"

	"prospector/internal/model"
)

// InsertIdeas inserts candidates that are not already present, keyed on the
// idea title. The whole batch is one transaction: a failed insert rolls the
// source's batch back and the next source starts clean.
func (s *Store) InsertIdeas(ctx context.Context, candidates []model.Candidate) (int, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	inserted := 0
	for _, c := range candidates {
		tag, err := tx.Exec(ctx, `
			INSERT INTO ideas (idea, description, source)
			SELECT $1, $2, $3
			WHERE NOT EXISTS (SELECT 1 FROM ideas WHERE idea = $1)`,
			c.Title, c.Description, c.Source)
		if err != nil {
			return 0, fmt.Errorf("insert idea %q: %w", c.Title, err)
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

// UnanalyzedIdeas returns every idea without an analysis row.
func (s *Store) UnanalyzedIdeas(ctx context.Context) ([]model.Idea, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT i.id, i.idea, COALESCE(i.description, ''), i.difficulty,
		       i.effort_est, i.monetization, COALESCE(i.source, '')
		FROM ideas i
		LEFT JOIN idea_analysis a ON i.id = a.idea_id
		WHERE a.id IS NULL
		ORDER BY i.id`)
	if err != nil {
		return nil, fmt.Errorf("select unanalyzed ideas: %w", err)
	}
	defer rows.Close()

	var ideas []model.Idea
	for rows.Next() {
		var idea model.Idea
		if err := rows.Scan(&idea.ID, &idea.Title, &idea.Description,
			&idea.Difficulty, &idea.EffortEst, &idea.Monetization, &idea.Source); err != nil {
			return nil, fmt.Errorf("scan idea: %w", err)
		}
		ideas = append(ideas, idea)
	}
	return ideas, rows.Err()
}

// AttachIdeaAnalysis stores the analysis for one idea. A concurrent or
// repeated attach is a no-op thanks to the unique idea_id constraint.
func (s *Store) AttachIdeaAnalysis(ctx context.Context, ideaID int64, a model.IdeaAnalysis) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO idea_analysis
			(idea_id, summary, feasibility_score, market_potential_score, effort_score,
			 overall_score, monetization_suggestion, strengths, weaknesses, verdict, llm_opinion)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (idea_id) DO NOTHING`,
		ideaID, a.Summary, a.FeasibilityScore, a.MarketPotentialScore, a.EffortScore,
		a.OverallScore, a.MonetizationSuggestion, a.Strengths, a.Weaknesses, a.Verdict, a.LLMOpinion)
	if err != nil {
		return fmt.Errorf("attach idea analysis: %w", err)
	}
	return nil
}

// AllIdeas returns every stored idea in id order, for cleanup re-validation.
func (s *Store) AllIdeas(ctx context.Context) ([]model.Idea, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, idea, COALESCE(description, '')
		FROM ideas
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("select ideas: %w", err)
	}
	defer rows.Close()

	var ideas []model.Idea
	for rows.Next() {
		var idea model.Idea
		if err := rows.Scan(&idea.ID, &idea.Title, &idea.Description); err != nil {
			return nil, fmt.Errorf("scan idea: %w", err)
		}
		ideas = append(ideas, idea)
	}
	return ideas, rows.Err()
}

// DeleteIdeas removes the given ideas in one statement; analyses go with
// them via the FK cascade. Returns the number of rows deleted.
func (s *Store) DeleteIdeas(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	tag, err := s.pool.Exec(ctx, `DELETE FROM ideas WHERE id = ANY($1)`, ids)
	if err != nil {
		return 0, fmt.Errorf("delete ideas: %w", err)
	}
	return tag.RowsAffected(), nil
}
