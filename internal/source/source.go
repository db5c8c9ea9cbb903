// Package source fetches candidate documents from public idea and job feeds
// and normalises them into model.Candidate values.
package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"prospector/internal/model"
)

const (
	userAgent   = "saas-ideas-bot/1.0"
	httpTimeout = 15 * time.Second

	// descLimit bounds stored descriptions; feeds routinely ship multi-page
	// HTML bodies that would bloat both the database and the LLM prompts.
	descLimit = 2000
)

// Adapter fetches one upstream feed and returns normalised candidates.
// Fetch errors abort only that adapter's batch; callers log and move on.
type Adapter interface {
	Name() string
	Fetch(ctx context.Context) ([]model.Candidate, error)
}

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: httpTimeout}
}

// get performs an HTTP GET with the shared User-Agent and returns the body.
// Non-200 responses are errors; the body prefix is included for diagnosis.
func get(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http GET: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s returned %d: %s", url, resp.StatusCode, Truncate(string(body), 100))
	}

	return body, nil
}

// optional maps an empty string to a NULL column value.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func ptrTo(s string) *string {
	return &s
}
