package llm

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/tracetutor/internal/store"
)

func TestLoggingProvider_RecordsEvent(t *testing.T) {
	s, err := store.Open("file:" + t.Name() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage(`{"verdict":"correct"}`),
		Usage:   Usage{InputTokens: 12, OutputTokens: 4},
	})
	p := WithLogging(mock, s.EventRepo())

	ctx := WithPurpose(context.Background(), "answer-review")
	_, err = p.Generate(ctx, Request{
		System:   "sys",
		Messages: []Message{{Role: RoleUser, Content: "hello"}},
		Schema:   &Schema{Name: "answer-review", Definition: map[string]any{"type": "object"}},
	})
	require.NoError(t, err)

	// Empty queue: a failed request is recorded too.
	_, err = p.Generate(ctx, Request{})
	require.Error(t, err)

	events, err := s.EventRepo().QueryLLMEvents(context.Background(), store.QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 2)

	var ok, failed store.LLMEvent
	for _, e := range events {
		if e.Success {
			ok = e
		} else {
			failed = e
		}
	}
	assert.Equal(t, "mock", ok.Provider)
	assert.Equal(t, "answer-review", ok.Purpose)
	assert.Equal(t, 12, ok.InputTokens)
	assert.Contains(t, ok.RequestBody, "[system]\nsys")
	assert.Contains(t, ok.RequestBody, "[schema: answer-review]")
	assert.Equal(t, `{"verdict":"correct"}`, ok.ResponseBody)
	assert.NotEmpty(t, failed.ErrorMessage)
}

func TestLoggingProvider_Delegates(t *testing.T) {
	p := WithLogging(NewMockProvider(), nil)
	assert.Equal(t, "mock", p.Name())
	assert.Equal(t, "mock", p.ModelID())
}
