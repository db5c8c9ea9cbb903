package source

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"strings"

	"prospector/internal/model"
)

// WeWorkRemotely fetches the remote-programming-jobs RSS feed. Item titles
// come in the form "Company: Role", so the company is split off at the first
// colon.
type WeWorkRemotely struct {
	URL string

	client *http.Client
}

func NewWeWorkRemotely() *WeWorkRemotely {
	return &WeWorkRemotely{
		URL:    "https://weworkremotely.com/categories/remote-programming-jobs.rss",
		client: newHTTPClient(),
	}
}

func (w *WeWorkRemotely) Name() string { return "We Work Remotely" }

type wwrFeed struct {
	Items []wwrItem `xml:"channel>item"`
}

type wwrItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	Content     string `xml:"http://purl.org/rss/1.0/modules/content/ encoded"`
}

func (w *WeWorkRemotely) Fetch(ctx context.Context) ([]model.Candidate, error) {
	if w.client == nil {
		w.client = newHTTPClient()
	}

	body, err := get(ctx, w.client, w.URL)
	if err != nil {
		return nil, err
	}

	var feed wwrFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("xml unmarshal: %w", err)
	}

	var candidates []model.Candidate
	for _, item := range feed.Items {
		rawBody := item.Content
		if rawBody == "" {
			rawBody = item.Description
		}

		var company *string
		title := strings.TrimSpace(item.Title)
		if before, after, found := strings.Cut(title, ":"); found {
			company = optional(strings.TrimSpace(before))
			title = strings.TrimSpace(after)
		}
		if title == "" {
			continue
		}

		candidates = append(candidates, model.Candidate{
			Title:       title,
			Description: Truncate(CleanHTML(rawBody), descLimit),
			Company:     company,
			JobType:     ptrTo("full-time"),
			Location:    ptrTo("Remote"),
			URL:         optional(strings.TrimSpace(item.Link)),
			Source:      "We Work Remotely",
		})
	}

	return candidates, nil
}
