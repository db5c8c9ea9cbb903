package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"prospector/internal/model"
)

const remoteokMaxJobs = 25

// remoteokTechTags is the tag allowlist; a tagged listing with no overlap is
// dropped before it ever reaches the LLM gate.
var remoteokTechTags = map[string]struct{}{
	"dev": {}, "engineer": {}, "engineering": {}, "backend": {}, "frontend": {},
	"fullstack": {}, "devops": {}, "cloud": {}, "python": {}, "javascript": {},
	"golang": {}, "rust": {}, "java": {}, "react": {}, "node": {}, "aws": {},
	"azure": {}, "gcp": {}, "kubernetes": {}, "docker": {}, "sre": {},
	"infra": {}, "data": {}, "ml": {}, "ai": {}, "security": {},
	"devsecops": {}, "software": {}, "senior": {}, "lead": {}, "architect": {},
	"mobile": {}, "ios": {}, "android": {},
}

// RemoteOK fetches the RemoteOK public API feed. The feed's first element is
// a legal notice rather than a listing; entries without an id are skipped.
type RemoteOK struct {
	URL string

	client *http.Client
}

func NewRemoteOK() *RemoteOK {
	return &RemoteOK{
		URL:    "https://remoteok.com/api",
		client: newHTTPClient(),
	}
}

func (r *RemoteOK) Name() string { return "RemoteOK" }

type remoteokJob struct {
	ID          json.RawMessage `json:"id"`
	Position    string          `json:"position"`
	Company     string          `json:"company"`
	Description string          `json:"description"`
	Location    string          `json:"location"`
	URL         string          `json:"url"`
	Tags        []string        `json:"tags"`
	SalaryMin   int             `json:"salary_min"`
	SalaryMax   int             `json:"salary_max"`
}

func (r *RemoteOK) Fetch(ctx context.Context) ([]model.Candidate, error) {
	if r.client == nil {
		r.client = newHTTPClient()
	}

	body, err := get(ctx, r.client, r.URL)
	if err != nil {
		return nil, err
	}

	var entries []remoteokJob
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}

	if len(entries) > remoteokMaxJobs {
		entries = entries[:remoteokMaxJobs]
	}

	var candidates []model.Candidate
	for _, j := range entries {
		if len(j.ID) == 0 || string(j.ID) == "null" {
			continue
		}
		if len(j.Tags) > 0 && !hasTechTag(j.Tags) {
			continue
		}

		salary := ""
		if j.SalaryMin > 0 {
			salary = fmt.Sprintf("%d-%d", j.SalaryMin, j.SalaryMax)
		}
		location := j.Location
		if location == "" {
			location = "Remote"
		}

		candidates = append(candidates, model.Candidate{
			Title:       j.Position,
			Description: Truncate(CleanHTML(j.Description), descLimit),
			Company:     optional(j.Company),
			Salary:      optional(salary),
			Location:    ptrTo(location),
			URL:         optional(j.URL),
			Source:      "RemoteOK",
		})
	}

	return candidates, nil
}

func hasTechTag(tags []string) bool {
	for _, t := range tags {
		if _, ok := remoteokTechTags[strings.ToLower(t)]; ok {
			return true
		}
	}
	return false
}
