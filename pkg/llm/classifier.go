package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

// Verdict is the fine stage judgment for one article
type Verdict struct {
	Relevant bool
	Reason   string
}

// MarkTitles asks the judge to mark every harvested title of one search that might relate
// to the interest. The result is deduplicated and keeps the judge order.
func (c *Client) MarkTitles(ctx context.Context, interest, search, digest string) ([]string, error) {
	msgs := conversation(openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleAssistant,
		Content: fmt.Sprintf(markTitlesPrompt, digest, search, interest),
	})
	p, err := c.Chat(ctx, msgs, markTitlesTools, true)
	if err != nil {
		return nil, fmt.Errorf("mark titles for %q: %w", search, err)
	}
	if !p.Structured() || (p.Action != "" && p.Action != ActionMark) {
		return nil, fmt.Errorf("mark titles for %q, got %s %q: %w", search, p.Kind, p.Action, ErrNoStructuredResult)
	}

	var args MarkTitlesArgs
	if err := p.Decode(&args); err != nil {
		return nil, fmt.Errorf("decode marked titles for %q: %w", search, err)
	}

	seen := map[string]bool{}
	res := make([]string, 0, len(args.Titles))
	for _, t := range args.Titles {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		res = append(res, t)
	}
	return res, nil
}

// Evaluate asks the judge for a strict relevance verdict on one article. Only an explicit
// boolean true counts as relevant, anything else is a rejection. An error means the
// verdict could not be obtained or parsed, callers treat it as a rejection too.
func (c *Client) Evaluate(ctx context.Context, interest, title, content string) (Verdict, error) {
	msgs := conversation(openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleAssistant,
		Content: fmt.Sprintf(verdictPrompt, title, len([]rune(content)), content, interest),
	})
	p, err := c.Chat(ctx, msgs, verdictTools, true)
	if err != nil {
		return Verdict{}, fmt.Errorf("evaluate %q: %w", title, err)
	}
	if !p.Structured() {
		return Verdict{}, fmt.Errorf("evaluate %q, got %s: %w", title, p.Kind, ErrNoStructuredResult)
	}

	relevant, _ := p.Args["relevant"].(bool)
	reason, _ := p.Args["reason"].(string)
	if !relevant {
		return Verdict{}, nil
	}
	return Verdict{Relevant: true, Reason: strings.TrimSpace(reason)}, nil
}
