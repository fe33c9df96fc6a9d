package feed

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
	<title>"solar tariffs" - Google News</title>
	<item>
		<title>Senate passes solar tariff bill - Reuters</title>
		<link>https://news.google.com/rss/articles/abc1</link>
		<pubDate>Mon, 06 Oct 2026 15:04:05 GMT</pubDate>
	</item>
	<item>
		<title>No date on this one</title>
		<link>https://news.google.com/rss/articles/abc2</link>
	</item>
	<item>
		<title>Panel makers brace for new duties - AP</title>
		<link>https://news.google.com/rss/articles/abc3</link>
		<pubDate>Tue, 07 Oct 2026 10:00:00 GMT</pubDate>
	</item>
</channel>
</rss>`

func TestHarvester_Harvest(t *testing.T) {
	var gotQuery atomic.Value
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery.Store(r.URL.RawQuery)
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		assert.NotEmpty(t, r.Header.Get("Accept-Language"))
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(testRSS))
	}))
	defer ts.Close()

	h := NewHarvester(Params{SearchURL: ts.URL + "/rss/search?q={query}+when:{hours}h", UserAgent: "test-agent"})
	now := time.Date(2026, 10, 8, 12, 0, 0, 0, time.UTC)
	h.now = func() time.Time { return now }

	harvest, digest, err := h.Harvest(context.Background(), "solar tariffs", now.Add(-36*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, "q=solar%20tariffs+when:36h", gotQuery.Load())

	require.Equal(t, 2, harvest.Len())
	assert.Equal(t, []string{"Senate passes solar tariff bill - Reuters", "Panel makers brace for new duties - AP"}, harvest.Titles())

	rec, ok := harvest.Get("Senate passes solar tariff bill - Reuters")
	require.True(t, ok)
	assert.Equal(t, "https://news.google.com/rss/articles/abc1", rec.Link)
	assert.Equal(t, "Mon, 06 Oct 2026 15:04:05 GMT", rec.Published)
	assert.Equal(t, time.Date(2026, 10, 6, 15, 4, 5, 0, time.UTC), rec.Time)

	_, ok = harvest.Get("No date on this one")
	assert.False(t, ok, "entries without publish time are skipped")

	assert.Equal(t, "Senate passes solar tariff bill - Reuters - Mon, 06 Oct 2026 15:04:05 GMT\n\n"+
		"Panel makers brace for new duties - AP - Tue, 07 Oct 2026 10:00:00 GMT", digest)
}

func TestHarvester_Limit(t *testing.T) {
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0"?><rss version="2.0"><channel><title>t</title>`)
	for i := 0; i < 30; i++ {
		fmt.Fprintf(&sb, "<item><title>item %d</title><link>https://example.com/%d</link>"+
			"<pubDate>Mon, 06 Oct 2026 15:04:05 GMT</pubDate></item>", i, i)
	}
	sb.WriteString(`</channel></rss>`)

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sb.String()))
	}))
	defer ts.Close()

	h := NewHarvester(Params{SearchURL: ts.URL + "?q={query}"})
	harvest, digest, err := h.Harvest(context.Background(), "anything", time.Time{})
	require.NoError(t, err)
	assert.Equal(t, 15, harvest.Len())
	assert.Equal(t, "item 14", harvest.Titles()[14])
	assert.Equal(t, 15, strings.Count(digest, "item "))
}

func TestHarvester_EmptyFeed(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<?xml version="1.0"?><rss version="2.0"><channel><title>empty</title></channel></rss>`))
	}))
	defer ts.Close()

	h := NewHarvester(Params{SearchURL: ts.URL + "?q={query}"})
	harvest, digest, err := h.Harvest(context.Background(), "nothing here", time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 0, harvest.Len())
	assert.Empty(t, digest)
}

func TestHarvester_Idempotent(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(testRSS))
	}))
	defer ts.Close()

	h := NewHarvester(Params{SearchURL: ts.URL + "?q={query}"})
	since := time.Now().Add(-2 * time.Hour)
	first, d1, err := h.Harvest(context.Background(), "solar", since)
	require.NoError(t, err)
	second, d2, err := h.Harvest(context.Background(), "solar", since)
	require.NoError(t, err)
	assert.Equal(t, first.Titles(), second.Titles())
	assert.Equal(t, d1, d2)

	first.Merge(second)
	assert.Equal(t, 2, first.Len(), "merging identical harvests does not duplicate titles")
}

func TestHarvester_AllowUpdated(t *testing.T) {
	atom := `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
	<title>atom</title>
	<entry>
		<title>Updated only entry</title>
		<link href="https://example.com/entry1"/>
		<id>urn:1</id>
		<updated>2026-10-02T15:04:05Z</updated>
	</entry>
</feed>`
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(atom))
	}))
	defer ts.Close()

	relaxed := NewHarvester(Params{SearchURL: ts.URL + "?q={query}", AllowUpdated: true})
	harvest, digest, err := relaxed.Harvest(context.Background(), "x", time.Time{})
	require.NoError(t, err)
	require.Equal(t, 1, harvest.Len())
	assert.Contains(t, digest, "Updated only entry - ")
}

func TestHarvester_Errors(t *testing.T) {
	t.Run("http error", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer ts.Close()
		h := NewHarvester(Params{SearchURL: ts.URL + "?q={query}"})
		_, _, err := h.Harvest(context.Background(), "x", time.Time{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unexpected status code: 503")
	})

	t.Run("invalid feed", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("this is not a feed"))
		}))
		defer ts.Close()
		h := NewHarvester(Params{SearchURL: ts.URL + "?q={query}"})
		_, _, err := h.Harvest(context.Background(), "x", time.Time{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse feed")
	})

	t.Run("canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		h := NewHarvester(Params{SearchURL: "http://127.0.0.1:1/?q={query}"})
		_, _, err := h.Harvest(ctx, "x", time.Time{})
		require.Error(t, err)
	})
}

func TestHarvester_SearchFeedURL(t *testing.T) {
	h := NewHarvester(Params{})
	now := time.Date(2026, 10, 8, 12, 0, 0, 0, time.UTC)
	h.now = func() time.Time { return now }

	tests := []struct {
		name   string
		search string
		since  time.Time
		want   string
	}{
		{"hours window", "AI safety rules", now.Add(-49 * time.Hour),
			"https://news.google.com/rss/search?q=AI%20safety%20rules+when:49h"},
		{"minimum one hour", "x", now.Add(-10 * time.Minute), "https://news.google.com/rss/search?q=x+when:1h"},
		{"zero since", "x", time.Time{}, "https://news.google.com/rss/search?q=x+when:1h"},
		{"escaped", "r&d / tax", now.Add(-2 * time.Hour), "https://news.google.com/rss/search?q=r%26d%20%2F%20tax+when:2h"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, h.SearchFeedURL(tt.search, tt.since))
		})
	}
}
