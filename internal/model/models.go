// Package model defines shared data structures for the prospector pipelines.
package model

import "time"

// Candidate is a normalised, not-yet-persisted document produced by a source
// adapter. Title is the only required field; everything else degrades to
// empty/nil when the upstream document omits it.
type Candidate struct {
	Title       string
	Description string
	Company     *string
	Salary      *string
	JobType     *string
	Location    *string
	URL         *string
	Source      string
}

// Idea mirrors a row of the ideas table.
type Idea struct {
	ID           int64
	Title        string
	Description  string
	Difficulty   *string
	EffortEst    *string
	Monetization *string
	Source       string
	DateFound    time.Time
	Notes        *string
}

// Job mirrors a row of the jobs table.
type Job struct {
	ID          int64
	Title       string
	Company     *string
	Description string
	Salary      *string
	JobType     *string
	Location    *string
	Source      string
	URL         *string
	DateFound   time.Time
}

// Idea verdicts form a closed set; anything else from the model is stored as NULL.
const (
	IdeaVerdictBuild    = "build"
	IdeaVerdictConsider = "consider"
	IdeaVerdictDiscard  = "discard"
)

// Job verdicts form a closed set; anything else from the model is stored as NULL.
const (
	JobVerdictApply    = "apply"
	JobVerdictConsider = "consider"
	JobVerdictSkip     = "skip"
)

// SeniorityLevels is the closed set accepted for job_analysis.seniority_level.
var SeniorityLevels = []string{"junior", "mid", "senior", "lead", "executive", "unknown"}

// IdeaAnalysis is the fixed-shape enrichment result for one Idea.
// Pointer fields become NULL columns when the model omits them.
// The json tags match the reply schema the analysis rubric demands.
type IdeaAnalysis struct {
	Summary                *string `json:"summary"`
	FeasibilityScore       *int    `json:"feasibility_score"`
	MarketPotentialScore   *int    `json:"market_potential_score"`
	EffortScore            *int    `json:"effort_score"`
	OverallScore           *int    `json:"overall_score"`
	MonetizationSuggestion *string `json:"monetization_suggestion"`
	Strengths              *string `json:"strengths"`
	Weaknesses             *string `json:"weaknesses"`
	Verdict                *string `json:"verdict"`
	LLMOpinion             *string `json:"llm_opinion"`
}

// JobAnalysis is the fixed-shape enrichment result for one Job.
type JobAnalysis struct {
	Summary        *string `json:"summary"`
	RelevanceScore *int    `json:"relevance_score"`
	SeniorityLevel *string `json:"seniority_level"`
	Skills         *string `json:"skills"`
	Strengths      *string `json:"strengths"`
	Weaknesses     *string `json:"weaknesses"`
	Verdict        *string `json:"verdict"`
	LLMOpinion     *string `json:"llm_opinion"`
}
