package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/umputun/topicwatch/pkg/domain"
)

var (
	// ErrNoStructuredResult is returned when the judge never produced the required action
	ErrNoStructuredResult = errors.New("judge produced no structured result")
	// ErrInvalidPlan is returned when the judge produced a plan without enough distinct searches
	ErrInvalidPlan = errors.New("invalid search plan")
)

// GenerateSearches turns an interest text into a plan of exactly domain.SearchPlanSize searches.
// Entries are trimmed, empty and duplicate entries dropped and extra entries truncated.
func (c *Client) GenerateSearches(ctx context.Context, interest string) ([]string, error) {
	interest = strings.TrimSpace(interest)
	if interest == "" {
		return nil, errors.New("empty interest")
	}

	msgs := conversation(openai.ChatCompletionMessage{Role: openai.ChatMessageRoleUser, Content: interest})
	p, err := c.Chat(ctx, msgs, planTools, true)
	if err != nil {
		return nil, fmt.Errorf("generate searches: %w", err)
	}
	if !p.Structured() || (p.Action != "" && p.Action != ActionHook) {
		return nil, fmt.Errorf("generate searches, got %s %q: %w", p.Kind, p.Action, ErrNoStructuredResult)
	}

	var args HookArgs
	if err := p.Decode(&args); err != nil {
		return nil, fmt.Errorf("decode searches: %w", ErrNoStructuredResult)
	}

	searches := normalizePlan(args.Searches)
	if len(searches) < domain.SearchPlanSize {
		return nil, fmt.Errorf("got %d distinct searches, need %d: %w", len(searches), domain.SearchPlanSize, ErrInvalidPlan)
	}
	return searches[:domain.SearchPlanSize], nil
}

func normalizePlan(searches []string) []string {
	seen := make(map[string]bool, len(searches))
	res := make([]string, 0, len(searches))
	for _, s := range searches {
		s = strings.TrimSpace(s)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		res = append(res, s)
	}
	return res
}
