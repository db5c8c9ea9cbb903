// Package gate runs LLM accept/reject validation of candidates before they
// are persisted and again during cleanup re-validation.
package gate

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"prospector/internal/llm"
)

const (
	validateMaxTokens = 256
	validateRetries   = 2

	cacheTTL = 24 * time.Hour
)

// FailMode decides what a verdict degrades to when the LLM cannot be
// reached or keeps replying garbage.
type FailMode int

const (
	// FailReject drops the candidate on failure. Used at ingest: a missed
	// insert costs nothing, junk in the database does.
	FailReject FailMode = iota
	// FailKeep retains the record on failure. Used at cleanup: deleting
	// rows on the strength of a failed call is never acceptable.
	FailKeep
)

// Gate validates one candidate at a time against a rubric.
type Gate struct {
	LLM    llm.Client
	Rubric string
	Cache  *redis.Client // nil disables caching
}

// NewIdeaGate validates SaaS idea candidates.
func NewIdeaGate(client llm.Client, cache *redis.Client) *Gate {
	return &Gate{LLM: client, Rubric: IdeaRubric, Cache: cache}
}

// NewJobGate validates remote job candidates.
func NewJobGate(client llm.Client, cache *redis.Client) *Gate {
	return &Gate{LLM: client, Rubric: JobRubric, Cache: cache}
}

// verdictReply tolerates both rubrics' reply shapes; whichever boolean the
// model sets wins, a missing one counts as false.
type verdictReply struct {
	IsIdea *bool  `json:"is_idea"`
	IsJob  *bool  `json:"is_job"`
	Reason string `json:"reason"`
}

func (r verdictReply) accepted() bool {
	if r.IsIdea != nil {
		return *r.IsIdea
	}
	if r.IsJob != nil {
		return *r.IsJob
	}
	return false
}

type cachedVerdict struct {
	Accept bool   `json:"accept"`
	Reason string `json:"reason"`
}

// Validate asks the LLM whether the candidate passes the rubric. The verdict
// cache is consulted only in FailReject mode: cleanup re-validation must
// always go back to the model.
func (g *Gate) Validate(ctx context.Context, title, description string, mode FailMode) (bool, string) {
	key := g.cacheKey(title, description)

	if g.Cache != nil && mode == FailReject {
		if raw, err := g.Cache.Get(ctx, key).Result(); err == nil {
			var v cachedVerdict
			if json.Unmarshal([]byte(raw), &v) == nil {
				return v.Accept, v.Reason
			}
		}
	}

	if description == "" {
		description = "No description provided"
	}
	user := fmt.Sprintf("Title: %s\nDescription: %s", title, description)

	var reply verdictReply
	if err := llm.Invoke(ctx, g.LLM, g.Rubric, user, validateMaxTokens, validateRetries, &reply); err != nil {
		if mode == FailKeep {
			return true, fmt.Sprintf("validation failed, keeping: %v", err)
		}
		return false, "LLM call failed"
	}

	accept := reply.accepted()

	if g.Cache != nil && mode == FailReject {
		raw, _ := json.Marshal(cachedVerdict{Accept: accept, Reason: reply.Reason})
		if err := g.Cache.Set(ctx, key, raw, cacheTTL).Err(); err != nil {
			log.Printf("[gate] cache write failed: %v", err)
		}
	}

	return accept, reply.Reason
}

func (g *Gate) cacheKey(title, description string) string {
	h := sha256.New()
	h.Write([]byte(g.Rubric))
	h.Write([]byte{0})
	h.Write([]byte(title))
	h.Write([]byte{0})
	h.Write([]byte(description))
	return "gate:" + hex.EncodeToString(h.Sum(nil))
}
