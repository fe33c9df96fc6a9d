// Package llm implements the judge client and the judgments built on it: search plan
// generation, coarse title marking, fine relevance verdicts and report drafting.
package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/sashabaranov/go-openai"

	"github.com/umputun/topicwatch/pkg/config"
	"github.com/umputun/topicwatch/pkg/metrics"
)

// Completer is the part of the openai client used by the judge
type Completer interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Client wraps an OpenAI-compatible chat endpoint acting as the judge
type Client struct {
	api         Completer
	model       string
	temperature float32
	maxTokens   int
	attempts    int
	timeout     time.Duration
	metrics     *metrics.Metrics
}

// NewClient makes a judge client for the configured endpoint, m may be nil
func NewClient(cfg config.LLMConfig, m *metrics.Metrics) *Client {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		clientConfig.BaseURL = cfg.Endpoint
	}
	return NewClientWithCompleter(openai.NewClientWithConfig(clientConfig), cfg, m)
}

// NewClientWithCompleter makes a judge client on top of the given completer
func NewClientWithCompleter(api Completer, cfg config.LLMConfig, m *metrics.Metrics) *Client {
	attempts := cfg.Attempts
	if attempts < 1 {
		attempts = 3
	}
	return &Client{
		api:         api,
		model:       cfg.Model,
		temperature: float32(cfg.Temperature),
		maxTokens:   cfg.MaxTokens,
		attempts:    attempts,
		timeout:     cfg.Timeout,
		metrics:     m,
	}
}

// Chat sends messages with the given actions and returns the judge payload.
// With needTool set, the request is repeated until a structured call is produced or attempts
// are exhausted; the last payload is returned in that case and callers must check its kind.
// An error is returned only if no attempt got a response at all.
func (c *Client) Chat(ctx context.Context, msgs []openai.ChatCompletionMessage, tools []openai.Tool, needTool bool) (Payload, error) {
	attempts := 1
	if needTool {
		attempts = c.attempts
	}

	var last Payload
	var lastErr error
	var answered bool
	for i := 0; i < attempts; i++ {
		p, err := c.complete(ctx, msgs, tools)
		if err != nil {
			c.metrics.JudgeCall("error")
			lastErr = err
			if ctx.Err() != nil {
				break
			}
			lgr.Printf("[WARN] judge attempt %d/%d failed: %v", i+1, attempts, err)
			continue
		}
		c.metrics.JudgeCall(p.Kind.String())
		last, answered = p, true
		if !needTool || p.Structured() {
			return p, nil
		}
		lgr.Printf("[DEBUG] judge attempt %d/%d returned %s, structured action required", i+1, attempts, p.Kind)
	}

	if answered {
		return last, nil
	}
	if lastErr == nil {
		lastErr = errors.New("no attempts made")
	}
	return Payload{}, fmt.Errorf("judge request failed: %w", lastErr)
}

// complete runs one chat completion and converts the first choice to a payload
func (c *Client) complete(ctx context.Context, msgs []openai.ChatCompletionMessage, tools []openai.Tool) (Payload, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req := openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
		Messages:    msgs,
		Tools:       tools,
	}
	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		return Payload{}, fmt.Errorf("llm request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Payload{}, errors.New("no response from llm")
	}

	msg := resp.Choices[0].Message
	if len(msg.ToolCalls) > 0 {
		call := msg.ToolCalls[0].Function
		return newCallPayload(call.Name, call.Arguments), nil
	}
	return contentPayload(msg.Content), nil
}

// conversation prepends the shared system message
func conversation(msgs ...openai.ChatCompletionMessage) []openai.ChatCompletionMessage {
	res := make([]openai.ChatCompletionMessage, 0, len(msgs)+1)
	res = append(res, openai.ChatCompletionMessage{Role: openai.ChatMessageRoleSystem, Content: systemPrompt})
	return append(res, msgs...)
}
