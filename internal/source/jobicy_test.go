package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobicyFetchToleratesJobTypeShapes(t *testing.T) {
	// jobType has shipped as both a string and an array.
	fixture := `{"jobs": [
	  {"jobTitle": "Platform Engineer", "companyName": "Acme",
	   "jobDescription": "<p>Terraform all day</p>", "jobType": ["full-time", "contract"],
	   "jobGeo": "Europe", "url": "https://jobicy.com/j/1"},
	  {"jobTitle": "Data Engineer", "companyName": "Pipes Inc",
	   "jobExcerpt": "short blurb", "jobType": "full-time", "jobGeo": ""}
	]}`

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(fixture))
	}))
	defer ts.Close()

	j := &Jobicy{URL: ts.URL}
	got, err := j.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "full-time, contract", *got[0].JobType)
	assert.Equal(t, "Europe", *got[0].Location)
	assert.Equal(t, "Terraform all day", got[0].Description)

	assert.Equal(t, "full-time", *got[1].JobType)
	assert.Equal(t, "short blurb", got[1].Description, "excerpt used when description missing")
	assert.Equal(t, "Remote", *got[1].Location)
}
