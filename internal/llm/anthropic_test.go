package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAnthropicProvider(t *testing.T, handler http.HandlerFunc) *AnthropicProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := NewAnthropicProvider(
		AnthropicConfig{APIKey: "test-key", Model: "claude-haiku"},
		option.WithBaseURL(server.URL),
		option.WithMaxRetries(0),
	)
	require.NoError(t, err)
	return p
}

func anthropicMessage(text, stopReason string) map[string]any {
	return map[string]any{
		"id":          "msg_test",
		"type":        "message",
		"role":        "assistant",
		"content":     []map[string]any{{"type": "text", "text": text}},
		"model":       "claude-haiku-4-5-20251001",
		"stop_reason": stopReason,
		"usage":       map[string]any{"input_tokens": 50, "output_tokens": 30},
	}
}

func anthropicError(w http.ResponseWriter, status int, typ string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"type":  "error",
		"error": map[string]any{"type": typ, "message": typ},
	})
}

func TestAnthropicProvider_StructuredReview(t *testing.T) {
	var got map[string]any
	p := newTestAnthropicProvider(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(anthropicMessage(validOpinion, "end_turn"))
	})

	resp, err := p.Generate(context.Background(), reviewRequest())
	require.NoError(t, err)
	assert.JSONEq(t, validOpinion, string(resp.Content))
	assert.Equal(t, Usage{InputTokens: 50, OutputTokens: 30, TotalTokens: 80}, resp.Usage)
	assert.Equal(t, StopEnd, resp.StopReason)
	assert.Equal(t, "claude-haiku-4-5-20251001", resp.Model)

	assert.Equal(t, "claude-haiku-4-5-20251001", got["model"])
	assert.NotNil(t, got["system"])
}

func TestAnthropicProvider_Truncated(t *testing.T) {
	p := newTestAnthropicProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(anthropicMessage(`{"verdict":"par`, "max_tokens"))
	})

	_, err := p.Generate(context.Background(), reviewRequest())
	var maxTok *ErrMaxTokensExceeded
	assert.ErrorAs(t, err, &maxTok)
}

func TestAnthropicProvider_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		typ    string
		check  func(t *testing.T, err error)
	}{
		{"rate limit", http.StatusTooManyRequests, "rate_limit_error", func(t *testing.T, err error) {
			var rl *ErrRateLimit
			assert.ErrorAs(t, err, &rl)
		}},
		{"server error", http.StatusInternalServerError, "api_error", func(t *testing.T, err error) {
			var unavail *ErrProviderUnavailable
			assert.ErrorAs(t, err, &unavail)
		}},
		{"bad key", http.StatusUnauthorized, "authentication_error", func(t *testing.T, err error) {
			var rejected *ErrRequestRejected
			require.ErrorAs(t, err, &rejected)
			assert.Equal(t, http.StatusUnauthorized, rejected.Status)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestAnthropicProvider(t, func(w http.ResponseWriter, r *http.Request) {
				anthropicError(w, tt.status, tt.typ)
			})
			_, err := p.Generate(context.Background(), reviewRequest())
			require.Error(t, err)
			tt.check(t, err)
		})
	}
}

func TestAnthropicProvider_Identity(t *testing.T) {
	p := &AnthropicProvider{model: "claude-sonnet-4-20250514"}
	assert.Equal(t, "claude-sonnet-4-20250514", p.ModelID())
	assert.Equal(t, "anthropic", p.Name())

	_, err := NewAnthropicProvider(AnthropicConfig{})
	assert.Error(t, err)
}

func TestResolveModel(t *testing.T) {
	tests := []struct {
		input  string
		models map[string]string
		want   string
	}{
		{"claude-sonnet", anthropicModels, "claude-sonnet-4-20250514"},
		{"claude-haiku", anthropicModels, "claude-haiku-4-5-20251001"},
		{"claude-sonnet-4-20250514", anthropicModels, "claude-sonnet-4-20250514"},
		{"gemini-flash", geminiModels, "gemini-2.0-flash"},
		{"gpt-4o-mini", openaiModels, "gpt-4o-mini"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, resolveModel(tt.input, tt.models), tt.input)
	}
}
