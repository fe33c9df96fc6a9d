package llm

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/topicwatch/pkg/config"
)

// judgeServer replays messages in order, repeating the last one when exhausted
type judgeServer struct {
	*httptest.Server
	mu       sync.Mutex
	replies  []openai.ChatCompletionMessage
	requests []openai.ChatCompletionRequest
}

func newJudgeServer(t *testing.T, replies ...openai.ChatCompletionMessage) *judgeServer {
	t.Helper()
	js := &judgeServer{replies: replies}
	js.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var req openai.ChatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		js.mu.Lock()
		js.requests = append(js.requests, req)
		idx := len(js.requests) - 1
		if idx >= len(js.replies) {
			idx = len(js.replies) - 1
		}
		msg := js.replies[idx]
		js.mu.Unlock()

		msg.Role = openai.ChatMessageRoleAssistant
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(openai.ChatCompletionResponse{
			Choices: []openai.ChatCompletionChoice{{Message: msg}},
		})
	}))
	t.Cleanup(js.Close)
	return js
}

func (js *judgeServer) calls() []openai.ChatCompletionRequest {
	js.mu.Lock()
	defer js.mu.Unlock()
	res := make([]openai.ChatCompletionRequest, len(js.requests))
	copy(res, js.requests)
	return res
}

func (js *judgeServer) client() *Client {
	return NewClient(config.LLMConfig{Endpoint: js.URL + "/v1", APIKey: "test-key", Model: "test-model",
		Temperature: 0.3, MaxTokens: 500, Attempts: 3}, nil)
}

func toolCall(name, args string) openai.ChatCompletionMessage {
	return openai.ChatCompletionMessage{ToolCalls: []openai.ToolCall{{
		ID: "call_1", Type: openai.ToolTypeFunction, Function: openai.FunctionCall{Name: name, Arguments: args},
	}}}
}

func text(content string) openai.ChatCompletionMessage {
	return openai.ChatCompletionMessage{Content: content}
}
