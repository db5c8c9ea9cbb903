package enrich

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prospector/internal/model"
)

type fakeLLM struct {
	reply    string
	err      error
	lastUser string
}

func (f *fakeLLM) Complete(ctx context.Context, system, user string, maxTokens int) (string, error) {
	f.lastUser = user
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func TestIdeaAnalyzeFullReply(t *testing.T) {
	e := &IdeaEnricher{LLM: &fakeLLM{reply: `{
		"summary": "A CRM for groomers",
		"feasibility_score": 8,
		"market_potential_score": 5,
		"effort_score": 7,
		"overall_score": 6,
		"monetization_suggestion": "monthly subscription",
		"strengths": "niche",
		"weaknesses": "small market",
		"verdict": "consider",
		"llm_opinion": "workable"
	}`}}

	a, err := e.Analyze(context.Background(), model.Idea{ID: 1, Title: "Groomer CRM"})
	require.NoError(t, err)
	require.NotNil(t, a.OverallScore)
	assert.Equal(t, 6, *a.OverallScore)
	require.NotNil(t, a.Verdict)
	assert.Equal(t, model.IdeaVerdictConsider, *a.Verdict)
}

func TestIdeaAnalyzeMissingFieldsStayNil(t *testing.T) {
	e := &IdeaEnricher{LLM: &fakeLLM{reply: `{"summary": "thin reply", "verdict": "build"}`}}

	a, err := e.Analyze(context.Background(), model.Idea{ID: 1, Title: "x"})
	require.NoError(t, err)
	assert.Nil(t, a.FeasibilityScore)
	assert.Nil(t, a.OverallScore)
	assert.Nil(t, a.Strengths)
	require.NotNil(t, a.Summary)
	assert.Equal(t, "thin reply", *a.Summary)
}

func TestIdeaAnalyzeUnknownVerdictBecomesNil(t *testing.T) {
	e := &IdeaEnricher{LLM: &fakeLLM{reply: `{"verdict": "maybe-ship-it"}`}}

	a, err := e.Analyze(context.Background(), model.Idea{ID: 1, Title: "x"})
	require.NoError(t, err)
	assert.Nil(t, a.Verdict)
}

func TestIdeaAnalyzeFailureIsHard(t *testing.T) {
	e := &IdeaEnricher{LLM: &fakeLLM{err: errors.New("empty response")}}

	_, err := e.Analyze(context.Background(), model.Idea{ID: 1, Title: "x"})
	assert.Error(t, err, "a failed analysis must leave the record unanalyzed")
}

func TestIdeaPromptFallbacks(t *testing.T) {
	f := &fakeLLM{reply: `{}`}
	e := &IdeaEnricher{LLM: f}

	_, err := e.Analyze(context.Background(), model.Idea{ID: 1, Title: "Bare idea"})
	require.NoError(t, err)
	assert.Contains(t, f.lastUser, "No description provided")
	assert.Contains(t, f.lastUser, "Current monetization idea: None")
}

func TestJobAnalyzeSeniorityNormalized(t *testing.T) {
	e := &JobEnricher{LLM: &fakeLLM{reply: `{
		"relevance_score": 9,
		"seniority_level": "Senior",
		"verdict": "APPLY"
	}`}}

	a, err := e.Analyze(context.Background(), model.Job{ID: 1, Title: "Backend Engineer"})
	require.NoError(t, err)
	require.NotNil(t, a.SeniorityLevel)
	assert.Equal(t, "senior", *a.SeniorityLevel, "closed-set values are case folded")
	require.NotNil(t, a.Verdict)
	assert.Equal(t, model.JobVerdictApply, *a.Verdict)
}

func TestJobAnalyzeInventedSeniorityBecomesNil(t *testing.T) {
	e := &JobEnricher{LLM: &fakeLLM{reply: `{"seniority_level": "rockstar"}`}}

	a, err := e.Analyze(context.Background(), model.Job{ID: 1, Title: "x"})
	require.NoError(t, err)
	assert.Nil(t, a.SeniorityLevel)
}

func TestJobPromptIncludesRow(t *testing.T) {
	f := &fakeLLM{reply: `{}`}
	e := &JobEnricher{LLM: f}

	company := "Acme"
	salary := "100k-120k"
	_, err := e.Analyze(context.Background(), model.Job{
		ID: 1, Title: "SRE", Company: &company, Salary: &salary, Description: "keep the pagers quiet",
	})
	require.NoError(t, err)
	for _, want := range []string{"Title: SRE", "Company: Acme", "Salary: 100k-120k", "Location: Remote"} {
		assert.True(t, strings.Contains(f.lastUser, want), "prompt missing %q", want)
	}
}
