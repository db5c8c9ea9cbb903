package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wwrFixture = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:content="http://purl.org/rss/1.0/modules/content/">
<channel>
  <title>We Work Remotely</title>
  <item>
    <title>Acme Corp: Senior Go Developer</title>
    <link>https://weworkremotely.com/jobs/1</link>
    <description>&lt;p&gt;short form&lt;/p&gt;</description>
    <content:encoded>&lt;p&gt;Build &lt;b&gt;distributed&lt;/b&gt; systems&lt;/p&gt;</content:encoded>
  </item>
  <item>
    <title>Untagged Posting</title>
    <link>https://weworkremotely.com/jobs/2</link>
    <description>plain description</description>
  </item>
  <item>
    <title></title>
    <link>https://weworkremotely.com/jobs/3</link>
  </item>
</channel>
</rss>`

func TestWeWorkRemotelyFetch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, userAgent, r.Header.Get("User-Agent"))
		w.Write([]byte(wwrFixture))
	}))
	defer ts.Close()

	w := &WeWorkRemotely{URL: ts.URL}
	got, err := w.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2, "the titleless item is dropped")

	first := got[0]
	assert.Equal(t, "Senior Go Developer", first.Title, "role split off after the colon")
	require.NotNil(t, first.Company)
	assert.Equal(t, "Acme Corp", *first.Company)
	assert.Equal(t, "Build distributed systems", first.Description, "content:encoded preferred over description")
	assert.Equal(t, "full-time", *first.JobType)
	assert.Equal(t, "Remote", *first.Location)
	assert.Equal(t, "https://weworkremotely.com/jobs/1", *first.URL)
	assert.Equal(t, "We Work Remotely", first.Source)

	second := got[1]
	assert.Equal(t, "Untagged Posting", second.Title)
	assert.Nil(t, second.Company, "no colon means no company")
	assert.Equal(t, "plain description", second.Description)
}

func TestWeWorkRemotelyTruncatesLongBodies(t *testing.T) {
	long := strings.Repeat("word ", 1000)
	feed := `<rss xmlns:content="http://purl.org/rss/1.0/modules/content/"><channel><item>
		<title>Co: Role</title><link>https://x</link><description>` + long + `</description>
	</item></channel></rss>`

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(feed))
	}))
	defer ts.Close()

	w := &WeWorkRemotely{URL: ts.URL}
	got, err := w.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.LessOrEqual(t, len([]rune(got[0].Description)), descLimit)
}

func TestWeWorkRemotelyHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	w := &WeWorkRemotely{URL: ts.URL}
	_, err := w.Fetch(context.Background())
	assert.Error(t, err)
}
