package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/topicwatch/pkg/domain"
)

//go:generate moq -out mocks/drafter.go -pkg mocks -skip-ensure -fmt goimports . Drafter

// Request is everything a drafter needs to write one report
type Request struct {
	Interest   string
	Items      []domain.VettedItem
	LastReport time.Time
	Now        time.Time
	MinWords   int
}

// Drafter writes the markdown body of a report
type Drafter interface {
	DraftReport(ctx context.Context, req Request) (string, error)
}

// Report is a synthesized report ready for delivery
type Report struct {
	Subject  string
	Markdown string
	HTML     string
	Items    int
}

// Synthesizer drafts reports and retries drafts that break the contract
type Synthesizer struct {
	drafter  Drafter
	attempts int
	minWords int
	now      func() time.Time
}

// NewSynthesizer makes a synthesizer, attempts and minWords fall back to 3 and 750
func NewSynthesizer(drafter Drafter, attempts, minWords int) *Synthesizer {
	if attempts < 1 {
		attempts = 3
	}
	if minWords < 1 {
		minWords = 750
	}
	return &Synthesizer{drafter: drafter, attempts: attempts, minWords: minWords, now: time.Now}
}

// Synthesize writes a report on items for the topic. Drafts with absolute dates or without
// inline citations are regenerated up to attempts times; if none passes, ErrContract is returned
// and nothing should be delivered.
func (s *Synthesizer) Synthesize(ctx context.Context, topic domain.Topic, items []domain.VettedItem) (Report, error) {
	if len(items) == 0 {
		return Report{}, errors.New("no items to report")
	}
	req := Request{
		Interest:   topic.Interest,
		Items:      items,
		LastReport: topic.LastReport,
		Now:        s.now(),
		MinWords:   s.minWords,
	}

	var lastErr error
	for i := 0; i < s.attempts; i++ {
		md, err := s.drafter.DraftReport(ctx, req)
		if err != nil {
			if ctx.Err() != nil {
				return Report{}, fmt.Errorf("draft report: %w", err)
			}
			lastErr = err
			lgr.Printf("[WARN] report draft %d/%d for topic %d failed: %v", i+1, s.attempts, topic.ID, err)
			continue
		}
		if err := CheckContract(md); err != nil {
			lastErr = err
			lgr.Printf("[WARN] report draft %d/%d for topic %d rejected: %v", i+1, s.attempts, topic.ID, err)
			continue
		}
		if words := WordCount(md); words < s.minWords {
			lgr.Printf("[DEBUG] report for topic %d has %d words, asked for %d", topic.ID, words, s.minWords)
		}

		html, err := Render(md)
		if err != nil {
			return Report{}, err
		}
		return Report{Subject: Subject(topic), Markdown: md, HTML: html, Items: len(items)}, nil
	}
	return Report{}, fmt.Errorf("synthesize report after %d attempts: %w", s.attempts, lastErr)
}

// Subject makes the delivery subject for the topic
func Subject(topic domain.Topic) string {
	title := topic.Title
	if title == "" {
		title = topic.Interest
	}
	return title + " update"
}
