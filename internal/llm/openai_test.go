package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SAP-F-2025/quiz-generation-service/internal/config"
	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newChatServer answers every chat completion with the given choices and
// stores the decoded request in got.
func newChatServer(t *testing.T, got *openai.ChatCompletionRequest, choices ...string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		if got != nil {
			assert.NoError(t, json.NewDecoder(r.Body).Decode(got))
		}

		resp := openai.ChatCompletionResponse{ID: "chatcmpl-1", Object: "chat.completion", Model: "gpt-4o-mini"}
		for i, content := range choices {
			resp.Choices = append(resp.Choices, openai.ChatCompletionChoice{
				Index:        i,
				Message:      openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant, Content: content},
				FinishReason: openai.FinishReasonStop,
			})
		}
		w.Header().Set("Content-Type", "application/json")
		assert.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newTestOpenAI(url string) *OpenAICompleter {
	return NewOpenAICompleter(config.LLMConfig{
		APIKey:      "test-key",
		BaseURL:     url + "/v1",
		Model:       "gpt-4o-mini",
		Temperature: 0.5,
		MaxTokens:   512,
	})
}

func TestOpenAICompleter_Complete(t *testing.T) {
	var got openai.ChatCompletionRequest
	srv := newChatServer(t, &got, `[{"question":"Q","answer":true}]`, "ignored second choice")

	reply, err := newTestOpenAI(srv.URL).Complete(context.Background(), "write 3 questions")
	require.NoError(t, err)
	assert.Equal(t, `[{"question":"Q","answer":true}]`, reply)

	assert.Equal(t, "gpt-4o-mini", got.Model)
	assert.InDelta(t, 0.5, got.Temperature, 0.0001)
	assert.Equal(t, 512, got.MaxTokens)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, openai.ChatMessageRoleSystem, got.Messages[0].Role)
	assert.Equal(t, systemPrompt, got.Messages[0].Content)
	assert.Equal(t, openai.ChatMessageRoleUser, got.Messages[1].Role)
	assert.Equal(t, "write 3 questions", got.Messages[1].Content)
}

func TestOpenAICompleter_DefaultModel(t *testing.T) {
	c := NewOpenAICompleter(config.LLMConfig{APIKey: "k"})
	assert.Equal(t, openai.GPT4oMini, c.model)
}

func TestOpenAICompleter_EmptyReplyIsNotAnError(t *testing.T) {
	tests := []struct {
		name    string
		choices []string
	}{
		{"empty content", []string{""}},
		{"no choices", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newChatServer(t, nil, tt.choices...)

			reply, err := newTestOpenAI(srv.URL).Complete(context.Background(), "prompt")
			require.NoError(t, err)
			assert.Empty(t, reply)
		})
	}
}

func TestOpenAICompleter_ProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"error":{"message":"overloaded","type":"server_error"}}`))
	}))
	defer srv.Close()

	_, err := newTestOpenAI(srv.URL).Complete(context.Background(), "prompt")
	require.Error(t, err)

	var apiErr *openai.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.HTTPStatusCode)
}
