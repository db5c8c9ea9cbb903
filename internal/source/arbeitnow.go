package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"prospector/internal/model"
)

const arbeitnowMaxJobs = 25

// arbeitnowTechKeywords prefilters listings by title and tags; Arbeitnow
// carries many non-tech roles the gate shouldn't have to pay for.
var arbeitnowTechKeywords = []string{
	"developer", "engineer", "engineering", "backend", "frontend",
	"fullstack", "devops", "cloud", "python", "javascript", "golang",
	"rust", "java", "react", "node", "aws", "azure", "gcp",
	"kubernetes", "docker", "sre", "infrastructure", "data", "ml",
	"ai", "security", "mobile", "ios", "android", "architect", "lead",
}

// Arbeitnow fetches the Arbeitnow job board API. Only remote-flagged,
// tech-keyword-matching listings are kept.
type Arbeitnow struct {
	URL string

	client *http.Client
}

func NewArbeitnow() *Arbeitnow {
	return &Arbeitnow{
		URL:    "https://www.arbeitnow.com/api/job-board-api",
		client: newHTTPClient(),
	}
}

func (a *Arbeitnow) Name() string { return "Arbeitnow" }

type arbeitnowResponse struct {
	Data []arbeitnowJob `json:"data"`
}

type arbeitnowJob struct {
	Title       string   `json:"title"`
	CompanyName string   `json:"company_name"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	Remote      bool     `json:"remote"`
	URL         string   `json:"url"`
	Tags        []string `json:"tags"`
	JobTypes    []string `json:"job_types"`
}

func (a *Arbeitnow) Fetch(ctx context.Context) ([]model.Candidate, error) {
	if a.client == nil {
		a.client = newHTTPClient()
	}

	body, err := get(ctx, a.client, a.URL)
	if err != nil {
		return nil, err
	}

	var resp arbeitnowResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}

	jobs := resp.Data
	if len(jobs) > arbeitnowMaxJobs {
		jobs = jobs[:arbeitnowMaxJobs]
	}

	var candidates []model.Candidate
	for _, j := range jobs {
		if !j.Remote {
			continue
		}
		haystack := strings.ToLower(j.Title) + " " + strings.ToLower(strings.Join(j.Tags, " "))
		if !containsAny(haystack, arbeitnowTechKeywords) {
			continue
		}

		location := j.Location
		if location == "" {
			location = "Remote"
		}

		candidates = append(candidates, model.Candidate{
			Title:       j.Title,
			Description: Truncate(CleanHTML(j.Description), descLimit),
			Company:     optional(j.CompanyName),
			JobType:     optional(strings.Join(j.JobTypes, ", ")),
			Location:    ptrTo(location),
			URL:         optional(j.URL),
			Source:      "Arbeitnow",
		})
	}

	return candidates, nil
}

func containsAny(haystack string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(haystack, kw) {
			return true
		}
	}
	return false
}
