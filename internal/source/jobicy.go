package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"prospector/internal/model"
)

const jobicyMaxJobs = 25

// Jobicy fetches the Jobicy v2 remote-jobs API, technology industry only.
type Jobicy struct {
	URL string

	client *http.Client
}

func NewJobicy() *Jobicy {
	return &Jobicy{
		URL:    "https://jobicy.com/api/v2/remote-jobs?count=25&industry=technology",
		client: newHTTPClient(),
	}
}

func (j *Jobicy) Name() string { return "Jobicy" }

type jobicyResponse struct {
	Jobs []jobicyJob `json:"jobs"`
}

type jobicyJob struct {
	JobTitle       string     `json:"jobTitle"`
	CompanyName    string     `json:"companyName"`
	JobDescription string     `json:"jobDescription"`
	JobExcerpt     string     `json:"jobExcerpt"`
	JobType        stringList `json:"jobType"`
	JobGeo         string     `json:"jobGeo"`
	URL            string     `json:"url"`
}

// stringList tolerates both a bare string and an array of strings; the
// Jobicy API has shipped jobType in both shapes.
type stringList []string

func (s *stringList) UnmarshalJSON(data []byte) error {
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*s = list
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	*s = []string{single}
	return nil
}

func (j *Jobicy) Fetch(ctx context.Context) ([]model.Candidate, error) {
	if j.client == nil {
		j.client = newHTTPClient()
	}

	body, err := get(ctx, j.client, j.URL)
	if err != nil {
		return nil, err
	}

	var resp jobicyResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}

	jobs := resp.Jobs
	if len(jobs) > jobicyMaxJobs {
		jobs = jobs[:jobicyMaxJobs]
	}

	candidates := make([]model.Candidate, 0, len(jobs))
	for _, job := range jobs {
		desc := job.JobDescription
		if desc == "" {
			desc = job.JobExcerpt
		}
		location := job.JobGeo
		if location == "" {
			location = "Remote"
		}

		candidates = append(candidates, model.Candidate{
			Title:       job.JobTitle,
			Description: Truncate(CleanHTML(desc), descLimit),
			Company:     optional(job.CompanyName),
			JobType:     optional(strings.Join(job.JobType, ", ")),
			Location:    ptrTo(location),
			URL:         optional(job.URL),
			Source:      "Jobicy",
		})
	}

	return candidates, nil
}
