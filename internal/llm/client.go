// Package llm abstracts over chat completion backends and provides tolerant
// decoding of the JSON objects the rubrics ask the models to return.
package llm

import "context"

// Client is a single-turn completion backend. Complete returns the raw model
// text; an empty completion is an error, never an empty string.
type Client interface {
	Complete(ctx context.Context, system, user string, maxTokens int) (string, error)
}
