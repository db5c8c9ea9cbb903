package pipeline

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prospector/internal/gate"
	"prospector/internal/model"
	"prospector/internal/source"
)

// ── Fakes ───────────────────────────────────────────────────────────────────

type fakeAdapter struct {
	name  string
	cands []model.Candidate
	err   error
}

func (f fakeAdapter) Name() string { return f.name }
func (f fakeAdapter) Fetch(ctx context.Context) ([]model.Candidate, error) {
	return f.cands, f.err
}

type scriptedLLM struct {
	replies []string
	err     error
	calls   int
}

func (s *scriptedLLM) Complete(ctx context.Context, system, user string, maxTokens int) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	reply := s.replies[0]
	if len(s.replies) > 1 {
		s.replies = s.replies[1:]
	}
	return reply, nil
}

type fakeDomain struct {
	sources   []source.Adapter
	g         *gate.Gate
	inserted  [][]model.Candidate
	insertErr error
	tasks     []AnalysisTask
	stored    []Record
	deleted   [][]int64
}

func (d *fakeDomain) Name() string              { return "ideas" }
func (d *fakeDomain) Sources() []source.Adapter { return d.sources }
func (d *fakeDomain) Gate() *gate.Gate          { return d.g }

func (d *fakeDomain) InsertAccepted(ctx context.Context, accepted []model.Candidate) (int, error) {
	if d.insertErr != nil {
		return 0, d.insertErr
	}
	d.inserted = append(d.inserted, accepted)
	return len(accepted), nil
}

func (d *fakeDomain) PendingAnalyses(ctx context.Context) ([]AnalysisTask, error) {
	return d.tasks, nil
}

func (d *fakeDomain) Stored(ctx context.Context) ([]Record, error) {
	return d.stored, nil
}

func (d *fakeDomain) Delete(ctx context.Context, ids []int64) (int64, error) {
	d.deleted = append(d.deleted, ids)
	return int64(len(ids)), nil
}

func newTestPipeline(d Domain) (*Pipeline, *int) {
	sleeps := 0
	p := New(d, DefaultPacing)
	p.Sleep = func(time.Duration) { sleeps++ }
	return p, &sleeps
}

// ── Ingest ──────────────────────────────────────────────────────────────────

func TestIngestIsolatesFailedSource(t *testing.T) {
	llmClient := &scriptedLLM{replies: []string{
		`{"is_idea": true, "reason": "ok"}`,
		`{"is_idea": false, "reason": "rant"}`,
	}}
	d := &fakeDomain{
		g: &gate.Gate{LLM: llmClient, Rubric: gate.IdeaRubric},
		sources: []source.Adapter{
			fakeAdapter{name: "broken", err: errors.New("connection refused")},
			fakeAdapter{name: "good", cands: []model.Candidate{
				{Title: "", Description: "untitled"},
				{Title: "A real idea", Description: "builds a thing"},
				{Title: "Not an idea", Description: "venting"},
			}},
		},
	}
	p, sleeps := newTestPipeline(d)

	sum, err := p.Ingest(context.Background())
	require.NoError(t, err, "a failing source must not abort the run")

	assert.Equal(t, 3, sum.Fetched)
	assert.Equal(t, 1, sum.Accepted)
	assert.Equal(t, 2, sum.Rejected, "empty title plus gate reject")
	assert.Equal(t, 1, sum.Inserted)

	require.Len(t, d.inserted, 1)
	require.Len(t, d.inserted[0], 1)
	assert.Equal(t, "A real idea", d.inserted[0][0].Title)

	assert.Equal(t, 2, llmClient.calls, "untitled candidates never reach the LLM")
	assert.Equal(t, 1, *sleeps, "pacing sleeps sit between gated calls, not before the first")
}

func TestIngestGateFailureRejects(t *testing.T) {
	d := &fakeDomain{
		g: &gate.Gate{LLM: &scriptedLLM{err: errors.New("timeout")}, Rubric: gate.IdeaRubric},
		sources: []source.Adapter{
			fakeAdapter{name: "feed", cands: []model.Candidate{{Title: "Dubious", Description: "?"}}},
		},
	}
	p, _ := newTestPipeline(d)

	sum, err := p.Ingest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, sum.Accepted)
	assert.Equal(t, 1, sum.Rejected)
	require.Len(t, d.inserted, 1)
	assert.Empty(t, d.inserted[0])
}

func TestIngestInsertErrorIsolatedPerSource(t *testing.T) {
	d := &fakeDomain{
		g:         &gate.Gate{LLM: &scriptedLLM{replies: []string{`{"is_idea": true}`}}, Rubric: gate.IdeaRubric},
		insertErr: errors.New("deadlock"),
		sources: []source.Adapter{
			fakeAdapter{name: "feed", cands: []model.Candidate{{Title: "Idea", Description: "d"}}},
		},
	}
	p, _ := newTestPipeline(d)

	sum, err := p.Ingest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, sum.Inserted)
	assert.Equal(t, 0, sum.Accepted, "a rolled-back batch counts nothing as accepted")
}

// ── Analyze ─────────────────────────────────────────────────────────────────

func TestAnalyzeIsolatesFailures(t *testing.T) {
	ran := []int64{}
	task := func(id int64, fail bool) AnalysisTask {
		return AnalysisTask{
			ID:    id,
			Title: fmt.Sprintf("record %d", id),
			Run: func(ctx context.Context) (string, error) {
				if fail {
					return "", errors.New("empty response")
				}
				ran = append(ran, id)
				return "consider (score: 5/10)", nil
			},
		}
	}
	d := &fakeDomain{tasks: []AnalysisTask{task(1, false), task(2, true), task(3, false)}}
	p, sleeps := newTestPipeline(d)

	sum, err := p.Analyze(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, sum.Pending)
	assert.Equal(t, 2, sum.Analyzed)
	assert.Equal(t, 1, sum.Failed)
	assert.Equal(t, []int64{1, 3}, ran, "the failed record is skipped, not retried inline")
	assert.Equal(t, 2, *sleeps)
}

func TestAnalyzeNothingPending(t *testing.T) {
	p, sleeps := newTestPipeline(&fakeDomain{})

	sum, err := p.Analyze(context.Background())
	require.NoError(t, err)
	assert.Zero(t, sum.Pending)
	assert.Zero(t, *sleeps)
}

// ── Cleanup ─────────────────────────────────────────────────────────────────

func cleanupDomain(llmClient *scriptedLLM) *fakeDomain {
	return &fakeDomain{
		g: &gate.Gate{LLM: llmClient, Rubric: gate.IdeaRubric},
		stored: []Record{
			{ID: 1, Title: "Solid idea", Description: "a buildable product"},
			{ID: 2, Title: "My success story", Description: "revenue milestone"},
		},
	}
}

func TestCleanupDeletesOnConfirm(t *testing.T) {
	d := cleanupDomain(&scriptedLLM{replies: []string{
		`{"is_idea": true, "reason": "still good"}`,
		`{"is_idea": false, "reason": "not an idea"}`,
	}})
	p, sleeps := newTestPipeline(d)
	p.Confirm = func(string) bool { return true }

	sum, err := p.Cleanup(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, sum.Total)
	assert.Equal(t, 1, sum.Flagged)
	assert.Equal(t, int64(1), sum.Deleted)
	assert.False(t, sum.Aborted)
	require.Len(t, d.deleted, 1)
	assert.Equal(t, []int64{2}, d.deleted[0])
	assert.Equal(t, 1, *sleeps)
}

func TestCleanupDeclineMutatesNothing(t *testing.T) {
	d := cleanupDomain(&scriptedLLM{replies: []string{
		`{"is_idea": false, "reason": "junk"}`,
	}})
	p, _ := newTestPipeline(d)
	p.Confirm = func(string) bool { return false }

	sum, err := p.Cleanup(context.Background())
	require.NoError(t, err)

	assert.True(t, sum.Aborted)
	assert.Equal(t, 2, sum.Flagged)
	assert.Empty(t, d.deleted, "declining the prompt must delete nothing")
}

func TestCleanupKeepsOnGateFailure(t *testing.T) {
	d := cleanupDomain(&scriptedLLM{err: errors.New("timeout")})
	p, _ := newTestPipeline(d)
	p.Confirm = func(string) bool { return true }

	sum, err := p.Cleanup(context.Background())
	require.NoError(t, err)

	assert.Zero(t, sum.Flagged, "failed re-validation keeps every record")
	assert.Empty(t, d.deleted)
}

func TestCleanupNothingFlaggedSkipsConfirm(t *testing.T) {
	d := cleanupDomain(&scriptedLLM{replies: []string{`{"is_idea": true}`}})
	p, _ := newTestPipeline(d)
	confirmed := false
	p.Confirm = func(string) bool { confirmed = true; return true }

	_, err := p.Cleanup(context.Background())
	require.NoError(t, err)
	assert.False(t, confirmed, "no prompt when there is nothing to delete")
}
