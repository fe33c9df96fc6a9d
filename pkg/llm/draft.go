package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/umputun/topicwatch/pkg/report"
)

// DraftReport asks the judge for the markdown body of a report in free text mode
func (c *Client) DraftReport(ctx context.Context, req report.Request) (string, error) {
	msgs := conversation(openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleAssistant,
		Content: reportMessage(req),
	})
	p, err := c.Chat(ctx, msgs, nil, false)
	if err != nil {
		return "", fmt.Errorf("draft report: %w", err)
	}
	text := strings.TrimSpace(p.Text)
	if p.Kind != FreeText || text == "" {
		return "", fmt.Errorf("draft report, got %s without text: %w", p.Kind, ErrNoStructuredResult)
	}
	return text, nil
}

func reportMessage(req report.Request) string {
	var sb strings.Builder
	for _, it := range req.Items {
		site := it.SiteName
		if site == "" {
			site = "unknown"
		}
		sb.WriteString("=== ITEM NAME ===\n" + it.Title + "\n")
		sb.WriteString("=== ITEM LINK (to cite) ===\n" + it.Link + "\n")
		sb.WriteString("=== ITEM SITE NAME (link text) ===\n" + site + "\n")
		sb.WriteString("=== ITEM AGE ===\n" + report.Ago(it.Time, req.Now) + "\n")
		sb.WriteString("=== ITEM INFO ===\n" + it.Explanation + "\n\n")
	}

	since := "the start of monitoring"
	if !req.LastReport.IsZero() {
		since = report.Ago(req.LastReport, req.Now)
	}
	minWords := req.MinWords
	if minWords < 1 {
		minWords = 750
	}
	return fmt.Sprintf(reportPrompt, sb.String(), req.Interest, minWords, since, minWords)
}
