package content

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/publicsuffix"
)

const maxPageSize = 5 * 1024 * 1024

// Article is the readable part of a page
type Article struct {
	Text     string
	SiteName string
}

// HTTPExtractor downloads pages and extracts their main text with trafilatura,
// falling back to readability when trafilatura finds nothing
type HTTPExtractor struct {
	client    *http.Client
	userAgent string
}

// NewHTTPExtractor makes an extractor with the request timeout and user agent
func NewHTTPExtractor(timeout time.Duration, userAgent string) *HTTPExtractor {
	if userAgent == "" {
		userAgent = "Mozilla/5.0 (compatible; Topicwatch/1.0)"
	}
	return &HTTPExtractor{client: &http.Client{Timeout: timeout}, userAgent: userAgent}
}

// Extract downloads the page and returns its main text and the site name
func (e *HTTPExtractor) Extract(ctx context.Context, urlStr string) (Article, error) {
	pageURL, err := url.Parse(urlStr)
	if err != nil {
		return Article{}, fmt.Errorf("parse URL: %w", err)
	}
	if pageURL.Scheme == "" || pageURL.Host == "" {
		return Article{}, fmt.Errorf("invalid URL: %s", urlStr)
	}

	body, err := e.download(ctx, urlStr)
	if err != nil {
		return Article{}, err
	}

	res := Article{}
	opts := trafilatura.Options{
		EnableFallback:  true,
		ExcludeComments: true,
		Deduplicate:     true,
		OriginalURL:     pageURL,
	}
	if extracted, terr := trafilatura.Extract(bytes.NewReader(body), opts); terr == nil && extracted != nil {
		res.Text = strings.TrimSpace(extracted.ContentText)
		res.SiteName = strings.TrimSpace(extracted.Metadata.Sitename)
	}

	if res.Text == "" {
		article, rerr := readability.FromReader(bytes.NewReader(body), pageURL)
		if rerr != nil {
			return Article{}, fmt.Errorf("extract content from %s: %w", urlStr, rerr)
		}
		res.Text = strings.TrimSpace(article.TextContent)
		if res.SiteName == "" {
			res.SiteName = strings.TrimSpace(article.SiteName)
		}
	}
	if res.Text == "" {
		return Article{}, fmt.Errorf("no text content extracted from %s", urlStr)
	}

	if res.SiteName == "" {
		res.SiteName = SiteName(body, pageURL)
	}
	return res, nil
}

func (e *HTTPExtractor) download(ctx context.Context, urlStr string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", e.userAgent)
	addPageHeaders(req)

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch URL %s: %w", urlStr, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d for URL %s", resp.StatusCode, urlStr)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageSize))
	if err != nil {
		return nil, fmt.Errorf("read body of %s: %w", urlStr, err)
	}
	return body, nil
}

// SiteName returns og:site_name of the page, or the registrable domain of its url
func SiteName(page []byte, pageURL *url.URL) string {
	if doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page)); err == nil {
		for _, sel := range []string{`meta[property="og:site_name"]`, `meta[name="application-name"]`} {
			if name := strings.TrimSpace(doc.Find(sel).First().AttrOr("content", "")); name != "" {
				return name
			}
		}
	}
	if pageURL == nil {
		return ""
	}
	host := strings.TrimPrefix(pageURL.Hostname(), "www.")
	if domain, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
		return domain
	}
	return host
}
