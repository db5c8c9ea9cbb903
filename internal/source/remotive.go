package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"prospector/internal/model"
)

const remotiveMaxJobs = 25

// Remotive fetches software-dev listings from the Remotive public API.
type Remotive struct {
	URL string

	client *http.Client
}

func NewRemotive() *Remotive {
	return &Remotive{
		URL:    "https://remotive.com/api/remote-jobs?category=software-dev&limit=25",
		client: newHTTPClient(),
	}
}

func (r *Remotive) Name() string { return "Remotive" }

type remotiveResponse struct {
	Jobs []remotiveJob `json:"jobs"`
}

type remotiveJob struct {
	Title       string `json:"title"`
	CompanyName string `json:"company_name"`
	Description string `json:"description"`
	Salary      string `json:"salary"`
	JobType     string `json:"job_type"`
	Location    string `json:"candidate_required_location"`
	URL         string `json:"url"`
}

func (r *Remotive) Fetch(ctx context.Context) ([]model.Candidate, error) {
	if r.client == nil {
		r.client = newHTTPClient()
	}

	body, err := get(ctx, r.client, r.URL)
	if err != nil {
		return nil, err
	}

	var resp remotiveResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}

	jobs := resp.Jobs
	if len(jobs) > remotiveMaxJobs {
		jobs = jobs[:remotiveMaxJobs]
	}

	candidates := make([]model.Candidate, 0, len(jobs))
	for _, j := range jobs {
		location := j.Location
		if location == "" {
			location = "Remote"
		}
		candidates = append(candidates, model.Candidate{
			Title:       j.Title,
			Description: Truncate(CleanHTML(j.Description), descLimit),
			Company:     optional(j.CompanyName),
			Salary:      optional(j.Salary),
			JobType:     optional(j.JobType),
			Location:    ptrTo(location),
			URL:         optional(j.URL),
			Source:      "Remotive",
		})
	}

	return candidates, nil
}
