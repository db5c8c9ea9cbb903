// Package enrich runs LLM analysis over stored records and produces the
// fixed-shape rows of the analysis tables. Fields the model omits stay nil
// and land as NULLs; a record whose analysis cannot be decoded at all fails
// hard and stays unanalyzed for the next run.
package enrich

import (
	"context"
	"fmt"
	"strings"

	"prospector/internal/llm"
	"prospector/internal/model"
)

const (
	analysisMaxTokens = 1024
	analysisRetries   = 2
)

// IdeaEnricher scores SaaS ideas.
type IdeaEnricher struct {
	LLM llm.Client
}

// JobEnricher scores remote job postings.
type JobEnricher struct {
	LLM llm.Client
}

func (e *IdeaEnricher) Analyze(ctx context.Context, idea model.Idea) (model.IdeaAnalysis, error) {
	user := fmt.Sprintf(`Evaluate this SaaS idea:

Title: %s
Description: %s
Difficulty: %s
Estimated effort (hours): %s
Current monetization idea: %s
Source: %s`,
		idea.Title,
		orDefault(optionalStr(idea.Description), "No description provided"),
		orDefault(idea.Difficulty, "Unknown"),
		orDefault(idea.EffortEst, "Unknown"),
		orDefault(idea.Monetization, "None"),
		orDefault(optionalStr(idea.Source), "Unknown"),
	)

	var analysis model.IdeaAnalysis
	if err := llm.Invoke(ctx, e.LLM, IdeaAnalysisRubric, user, analysisMaxTokens, analysisRetries, &analysis); err != nil {
		return model.IdeaAnalysis{}, err
	}

	analysis.Verdict = inSet(analysis.Verdict,
		model.IdeaVerdictBuild, model.IdeaVerdictConsider, model.IdeaVerdictDiscard)

	return analysis, nil
}

func (e *JobEnricher) Analyze(ctx context.Context, job model.Job) (model.JobAnalysis, error) {
	user := fmt.Sprintf(`Evaluate this remote job posting:

Title: %s
Company: %s
Description: %s
Salary: %s
Type: %s
Location: %s
Source: %s`,
		job.Title,
		orDefault(job.Company, "Unknown"),
		orDefault(optionalStr(job.Description), "No description provided"),
		orDefault(job.Salary, "Not specified"),
		orDefault(job.JobType, "Unknown"),
		orDefault(job.Location, "Remote"),
		orDefault(optionalStr(job.Source), "Unknown"),
	)

	var analysis model.JobAnalysis
	if err := llm.Invoke(ctx, e.LLM, JobAnalysisRubric, user, analysisMaxTokens, analysisRetries, &analysis); err != nil {
		return model.JobAnalysis{}, err
	}

	analysis.Verdict = inSet(analysis.Verdict,
		model.JobVerdictApply, model.JobVerdictConsider, model.JobVerdictSkip)
	analysis.SeniorityLevel = inSet(analysis.SeniorityLevel, model.SeniorityLevels...)

	return analysis, nil
}

// inSet normalises a closed-set field: values outside the set (case folded)
// become nil rather than polluting the column.
func inSet(v *string, allowed ...string) *string {
	if v == nil {
		return nil
	}
	folded := strings.ToLower(strings.TrimSpace(*v))
	for _, a := range allowed {
		if folded == a {
			return &a
		}
	}
	return nil
}

func orDefault(v *string, fallback string) string {
	if v == nil || *v == "" {
		return fallback
	}
	return *v
}

func optionalStr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
