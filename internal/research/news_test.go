package research

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
<title>Company News</title>
<item>
  <title>Acme raises Series B to expand its internship program</title>
  <description>The round funds new graduate hiring across three offices and positions the company for further growth.</description>
  <link>https://news.example/acme-series-b</link>
  <pubDate>Mon, 04 May 2026 10:00:00 GMT</pubDate>
</item>
<item>
  <title>Acme short item</title>
  <description>Brief.</description>
  <link>https://news.example/acme-short</link>
</item>
<item>
  <title>Item three</title>
  <description>A third story with enough words in its description to stand on its own without fetching the full article body at all.</description>
  <link>https://news.example/three</link>
</item>
<item>
  <title>Item four never read</title>
  <description>This one is past the per-company cap and should not produce a fragment in the result set whatsoever.</description>
  <link>https://news.example/four</link>
</item>
</channel>
</rss>`

func TestFeedNewsReaderCompanyNews(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.RawQuery, "Acme+Corp")
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, testFeed)
	}))
	defer srv.Close()

	reader := NewFeedNewsReader(srv.URL + "/rss?q=%s")
	reader.now = func() time.Time { return time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC) }
	reader.readArticle = func(_ context.Context, link string) (string, error) {
		return "Full article body fetched for " + link, nil
	}

	frags, err := reader.CompanyNews(context.Background(), "Acme Corp")
	require.NoError(t, err)
	require.Len(t, frags, maxNewsItems)

	first := frags[0]
	assert.Contains(t, first.Data, "Series B")
	assert.Equal(t, SourceNewsArticle, first.SourceClass)
	assert.Equal(t, 0.8, first.SourceCredibility)
	assert.Equal(t, time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC), first.CapturedAt)
	assert.Equal(t, 1.0, first.TemporalScore)

	// Thin summary fell back to the article body.
	assert.Contains(t, frags[1].Data, "Full article body fetched for https://news.example/acme-short")

	for _, f := range frags {
		assert.False(t, strings.Contains(f.Data, "never read"))
	}
}

func TestFeedNewsReaderFeedError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	reader := NewFeedNewsReader(srv.URL + "/rss?q=%s")
	frags, err := reader.CompanyNews(context.Background(), "Acme")
	assert.Error(t, err)
	assert.Nil(t, frags)
}

func TestTruncateKeepsRuneBoundaries(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "exact", truncate("exact", 5))
	assert.Equal(t, "abc", truncate("abcdef", 3))

	// A cap landing inside a multi-byte rune backs off to the boundary.
	s := "abécd" // é is two bytes, occupying s[2:4]
	got := truncate(s, 3)
	assert.Equal(t, "ab", got)
	assert.True(t, utf8.ValidString(got))
	assert.True(t, utf8.ValidString(truncate("naïve résumé", 8)))
}
