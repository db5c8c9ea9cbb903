package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"prospector/internal/model"
)

// Reddit fetches a subreddit's JSON listing. The same parser serves both the
// idea and job pipelines; job listings additionally carry a permalink URL and
// a Remote location.
type Reddit struct {
	URL       string
	SourceTag string // value stored in the source column
	AsJobs    bool

	client *http.Client
}

// NewRedditIdeas fetches SaaS idea posts from r/SaaS.
func NewRedditIdeas() *Reddit {
	return &Reddit{
		URL:       "https://www.reddit.com/r/SaaS/.json",
		SourceTag: "Reddit r/SaaS",
		client:    newHTTPClient(),
	}
}

// NewRedditJobs fetches remote job posts from r/RemoteJobs.
func NewRedditJobs() *Reddit {
	return &Reddit{
		URL:       "https://www.reddit.com/r/RemoteJobs/.json",
		SourceTag: "Reddit r/RemoteJobs",
		AsJobs:    true,
		client:    newHTTPClient(),
	}
}

func (r *Reddit) Name() string { return r.SourceTag }

type redditListing struct {
	Data struct {
		Children []struct {
			Data redditPost `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type redditPost struct {
	Title     string `json:"title"`
	SelfText  string `json:"selftext"`
	Permalink string `json:"permalink"`
}

func (r *Reddit) Fetch(ctx context.Context) ([]model.Candidate, error) {
	if r.client == nil {
		r.client = newHTTPClient()
	}

	body, err := get(ctx, r.client, r.URL)
	if err != nil {
		return nil, err
	}

	var listing redditListing
	if err := json.Unmarshal(body, &listing); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}

	candidates := make([]model.Candidate, 0, len(listing.Data.Children))
	for _, child := range listing.Data.Children {
		post := child.Data
		c := model.Candidate{
			Title:       post.Title,
			Description: post.SelfText,
			Source:      r.SourceTag,
		}
		if r.AsJobs {
			c.Location = ptrTo("Remote")
			c.URL = ptrTo("https://reddit.com" + post.Permalink)
		}
		candidates = append(candidates, c)
	}

	return candidates, nil
}
