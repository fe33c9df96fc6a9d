// Package content resolves candidate links to their final url and readable text.
// Every failure is expressed as a sentinel "ERROR: ..." string that the length gate drops.
package content

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-pkgz/lgr"
)

//go:generate moq -out mocks/navigator.go -pkg mocks -skip-ensure -fmt goimports . Navigator
//go:generate moq -out mocks/extractor.go -pkg mocks -skip-ensure -fmt goimports . Extractor

// SentinelPrefix marks failure strings returned instead of errors
const SentinelPrefix = "ERROR:"

// Navigator loads a link and reports the final url
type Navigator interface {
	Navigate(ctx context.Context, link string) (string, error)
}

// Extractor downloads a page and returns its readable text
type Extractor interface {
	Extract(ctx context.Context, url string) (Article, error)
}

// Page is a resolved and gated candidate page
type Page struct {
	Link     string // final url after redirects
	Text     string // truncated main text
	SiteName string
}

// Resolver combines navigation, extraction and the stub page gate
type Resolver struct {
	nav      Navigator
	ext      Extractor
	maxChars int
	minChars int
}

// NewResolver makes a resolver, text is truncated to maxChars and shorter than minChars is dropped
func NewResolver(nav Navigator, ext Extractor, maxChars, minChars int) *Resolver {
	if maxChars <= 0 {
		maxChars = 3000
	}
	if minChars < 0 {
		minChars = 0
	}
	return &Resolver{nav: nav, ext: ext, maxChars: maxChars, minChars: minChars}
}

// ResolveURL returns the final url of the link or a sentinel string
func (r *Resolver) ResolveURL(ctx context.Context, link string) string {
	if strings.TrimSpace(link) == "" {
		return SentinelPrefix + " navigation failed (empty link)"
	}
	final, err := r.nav.Navigate(ctx, link)
	if err != nil {
		return fmt.Sprintf("%s navigation failed (%v)", SentinelPrefix, err)
	}
	return final
}

// MainContent returns the text of the page at finalURL, or a sentinel string.
// A sentinel passed as finalURL is returned as is.
func (r *Resolver) MainContent(ctx context.Context, finalURL string) (text, siteName string) {
	if IsSentinel(finalURL) {
		return finalURL, ""
	}
	article, err := r.ext.Extract(ctx, finalURL)
	if err != nil {
		return fmt.Sprintf("%s failed to get main content (%v)", SentinelPrefix, err), ""
	}
	return article.Text, article.SiteName
}

// Resolve follows the link, extracts and truncates the text and applies the length gate.
// Returns false if the page is a stub or any step failed.
func (r *Resolver) Resolve(ctx context.Context, link string) (Page, bool) {
	final := r.ResolveURL(ctx, link)
	text, site := r.MainContent(ctx, final)
	text = Truncate(text, r.maxChars)

	if IsSentinel(text) {
		lgr.Printf("[DEBUG] dropped %s: %s", link, text)
		return Page{}, false
	}
	if n := len([]rune(text)); n < r.minChars {
		lgr.Printf("[DEBUG] dropped %s, text is a stub of %d chars", link, n)
		return Page{}, false
	}
	return Page{Link: final, Text: text, SiteName: site}, true
}

// IsSentinel reports whether s is a failure string
func IsSentinel(s string) bool {
	return strings.HasPrefix(s, SentinelPrefix)
}

// Truncate cuts s to at most n characters
func Truncate(s string, n int) string {
	rs := []rune(s)
	if len(rs) <= n {
		return s
	}
	return string(rs[:n])
}
