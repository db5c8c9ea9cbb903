package source

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"prospector/internal/model"
)

const hnMaxItems = 10 // each story needs its own request, so keep this small

// HackerNews fetches the newest story IDs and resolves each to an item.
// The story URL doubles as the candidate description; the gate weeds out
// anything that isn't an actual product idea.
type HackerNews struct {
	ListURL string
	ItemURL string // fmt pattern taking the story ID

	client *http.Client
}

func NewHackerNews() *HackerNews {
	return &HackerNews{
		ListURL: "https://hacker-news.firebaseio.com/v0/newstories.json",
		ItemURL: "https://hacker-news.firebaseio.com/v0/item/%d.json",
		client:  newHTTPClient(),
	}
}

func (h *HackerNews) Name() string { return "Hacker News" }

type hnItem struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

func (h *HackerNews) Fetch(ctx context.Context) ([]model.Candidate, error) {
	if h.client == nil {
		h.client = newHTTPClient()
	}

	body, err := get(ctx, h.client, h.ListURL)
	if err != nil {
		return nil, err
	}

	var ids []int64
	if err := json.Unmarshal(body, &ids); err != nil {
		return nil, fmt.Errorf("json unmarshal story ids: %w", err)
	}

	if len(ids) > hnMaxItems {
		ids = ids[:hnMaxItems]
	}

	var candidates []model.Candidate
	for _, id := range ids {
		itemBody, err := get(ctx, h.client, fmt.Sprintf(h.ItemURL, id))
		if err != nil {
			log.Printf("[source] hackernews item %d: %v", id, err)
			continue
		}

		// Dead or dangling IDs resolve to a JSON null.
		var story *hnItem
		if err := json.Unmarshal(itemBody, &story); err != nil {
			log.Printf("[source] hackernews item %d: %v", id, err)
			continue
		}
		if story == nil {
			continue
		}

		candidates = append(candidates, model.Candidate{
			Title:       story.Title,
			Description: story.URL,
			Source:      "Hacker News",
		})
	}

	return candidates, nil
}
