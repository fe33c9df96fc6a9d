// Package feed harvests headlines for a single search from a news search feed.
package feed

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/umputun/topicwatch/pkg/domain"
)

// DefaultSearchURL is the Google News RSS search template
const DefaultSearchURL = "https://news.google.com/rss/search?q={query}+when:{hours}h"

// Params defines harvester settings
type Params struct {
	SearchURL    string        // template with {query} and {hours} placeholders
	Limit        int           // max records per search
	Timeout      time.Duration // http timeout
	UserAgent    string
	AllowUpdated bool // use updated time when publish time is missing
}

// Harvester fetches one search feed and converts it to an ordered harvest
type Harvester struct {
	Params
	client *http.Client
	now    func() time.Time
}

// NewHarvester makes a harvester with defaults for empty params
func NewHarvester(params Params) *Harvester {
	if params.SearchURL == "" {
		params.SearchURL = DefaultSearchURL
	}
	if params.Limit <= 0 {
		params.Limit = 15
	}
	if params.Timeout <= 0 {
		params.Timeout = 30 * time.Second
	}
	return &Harvester{
		Params: params,
		client: &http.Client{
			Timeout: params.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 5,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		now: time.Now,
	}
}

// Harvest queries the feed for items matching search published since the given time.
// Returns the ordered harvest and a digest with one "title - published" line per record.
// An empty feed is not an error, it returns an empty harvest and an empty digest.
func (h *Harvester) Harvest(ctx context.Context, search string, since time.Time) (*domain.Harvest, string, error) {
	feedURL := h.SearchFeedURL(search, since)
	body, err := h.fetch(ctx, feedURL)
	if err != nil {
		return nil, "", fmt.Errorf("fetch feed for %q: %w", search, err)
	}
	defer body.Close()

	parsed, err := gofeed.NewParser().Parse(body)
	if err != nil {
		return nil, "", fmt.Errorf("parse feed for %q: %w", search, err)
	}

	harvest := domain.NewHarvest()
	lines := make([]string, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		if harvest.Len() >= h.Limit {
			break
		}
		if item == nil || strings.TrimSpace(item.Title) == "" {
			continue
		}

		published, ts, ok := h.publishedTime(item)
		if !ok {
			continue // entries without a publish timestamp are skipped
		}

		title := strings.TrimSpace(item.Title)
		if _, seen := harvest.Get(title); !seen {
			lines = append(lines, title+" - "+published)
		}
		harvest.Add(title, domain.HarvestRecord{Link: item.Link, Published: published, Time: ts})
	}

	return harvest, strings.TrimSpace(strings.Join(lines, "\n\n")), nil
}

// SearchFeedURL builds the feed url for the search and the window since the given time
func (h *Harvester) SearchFeedURL(search string, since time.Time) string {
	hours := 1
	if !since.IsZero() {
		if diff := int(h.now().Sub(since).Hours()); diff > hours {
			hours = diff
		}
	}
	query := strings.ReplaceAll(url.QueryEscape(search), "+", "%20")
	res := strings.ReplaceAll(h.SearchURL, "{query}", query)
	return strings.ReplaceAll(res, "{hours}", strconv.Itoa(hours))
}

func (h *Harvester) publishedTime(item *gofeed.Item) (raw string, ts time.Time, ok bool) {
	if item.PublishedParsed != nil {
		raw = item.Published
		if raw == "" {
			raw = item.PublishedParsed.Format(time.RFC1123Z)
		}
		return raw, item.PublishedParsed.UTC(), true
	}
	if h.AllowUpdated && item.UpdatedParsed != nil {
		raw = item.Updated
		if raw == "" {
			raw = item.UpdatedParsed.Format(time.RFC1123Z)
		}
		return raw, item.UpdatedParsed.UTC(), true
	}
	return "", time.Time{}, false
}

func (h *Harvester) fetch(ctx context.Context, feedURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if h.UserAgent != "" {
		req.Header.Set("User-Agent", h.UserAgent)
	}
	addFeedHeaders(req)

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch URL: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	return resp.Body, nil
}

var feedLanguages = []string{
	"en-US,en;q=0.9",
	"en-GB,en;q=0.9",
	"en-US,en;q=0.9,es;q=0.8",
	"en-US,en;q=0.9,de;q=0.8",
}

// addFeedHeaders makes feed requests look like they come from a browser
func addFeedHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/rss+xml,application/atom+xml,application/xml;q=0.9,text/xml;q=0.8,*/*;q=0.5")
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Accept-Language", feedLanguages[rand.Intn(len(feedLanguages))]) //nolint:gosec // header variation only
	if rand.Float32() < 0.3 { //nolint:gosec // header variation only
		req.Header.Set("DNT", "1")
	}
}
