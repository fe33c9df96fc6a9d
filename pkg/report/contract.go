package report

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrContract is returned when a draft breaks the formatting and citation rules
var ErrContract = errors.New("report breaks citation contract")

var (
	// link targets are ignored by the date check, article urls often carry dates
	linkTarget = regexp.MustCompile(`\]\([^)]*\)`)

	absoluteDates = []*regexp.Regexp{
		regexp.MustCompile(`\b\d{4}[-/.]\d{1,2}[-/.]\d{1,2}\b`),                               // 2025-09-29
		regexp.MustCompile(`\b\d{1,2}[-/.]\d{1,2}[-/.]\d{4}\b`),                               // 09/29/2025
		regexp.MustCompile(`(?i)\b` + monthNames + `\.?\s+\d{1,2}(st|nd|rd|th)?,?\s+\d{4}\b`), // Sep 29, 2025
		regexp.MustCompile(`(?i)\b\d{1,2}(st|nd|rd|th)?\s+` + monthNames + `\.?,?\s+\d{4}\b`), // 29 Sep 2025
		regexp.MustCompile(`\b\d{1,2}:\d{2}(:\d{2})?\s*(UTC|GMT)\b`),                          // 14:05 UTC
		regexp.MustCompile(`(?i)\b` + monthNames + `\.?,?\s+\d{4}\b`),                         // Sept. 2025
		regexp.MustCompile(`\b\d{4}[/.](0?[1-9]|1[0-2])\b`),                                   // 2025/09
		regexp.MustCompile(`\b\d{4}-(0[1-9]|1[0-2])\b`),                                       // 2025-09
		regexp.MustCompile(`\b(0?[1-9]|1[0-2])/\d{4}\b`),                                      // 09/2025
	}

	// ([Site Name](https://link) - 3 hours ago)
	citation = regexp.MustCompile(`\(\[([^\]]+)\]\((https?://[^)\s]+)\)\s*[-–—]\s*([^)]+?)\)`)
)

const monthNames = `(january|february|march|april|may|june|july|august|september|october|november|december|` +
	`jan|feb|mar|apr|jun|jul|aug|sep|sept|oct|nov|dec)\b`

// Citation is one inline citation found in a draft
type Citation struct {
	Site string
	Link string
	Age  string
}

// HasAbsoluteDate reports whether text outside of link targets contains an absolute date
func HasAbsoluteDate(md string) bool {
	text := linkTarget.ReplaceAllString(md, "]()")
	for _, re := range absoluteDates {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// Citations returns inline citations in the order they appear
func Citations(md string) []Citation {
	matches := citation.FindAllStringSubmatch(md, -1)
	res := make([]Citation, 0, len(matches))
	for _, m := range matches {
		res = append(res, Citation{Site: strings.TrimSpace(m[1]), Link: m[2], Age: strings.TrimSpace(m[3])})
	}
	return res
}

// WordCount returns the number of whitespace separated words
func WordCount(md string) int {
	return len(strings.Fields(md))
}

// CheckContract verifies a markdown draft: it must not be empty, must not contain
// absolute dates, must carry at least one citation and citations must name the site
// rather than show the raw link.
func CheckContract(md string) error {
	if strings.TrimSpace(md) == "" {
		return fmt.Errorf("%w: empty draft", ErrContract)
	}
	if HasAbsoluteDate(md) {
		return fmt.Errorf("%w: absolute date in text", ErrContract)
	}
	cites := Citations(md)
	if len(cites) == 0 {
		return fmt.Errorf("%w: no inline citations", ErrContract)
	}
	for _, c := range cites {
		if strings.HasPrefix(c.Site, "http://") || strings.HasPrefix(c.Site, "https://") {
			return fmt.Errorf("%w: citation names a raw link %q", ErrContract, c.Site)
		}
	}
	return nil
}
