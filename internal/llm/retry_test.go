package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func retryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: time.Millisecond,
		MaxWait:     10 * time.Millisecond,
		Multiplier:  2.0,
	}
}

func unavailable() MockResponse {
	return MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}}
}

func opinion() MockResponse {
	return MockResponse{Content: json.RawMessage(validOpinion)}
}

func TestRetry(t *testing.T) {
	tests := []struct {
		name      string
		responses []MockResponse
		wantErr   bool
		wantCalls int
	}{
		{"first attempt", []MockResponse{opinion()}, false, 1},
		{"transient then success", []MockResponse{unavailable(), opinion()}, false, 2},
		{"attempts used up", []MockResponse{unavailable(), unavailable(), unavailable(), opinion()}, true, 3},
		{"rate limit honours retry-after", []MockResponse{
			{Err: &ErrRateLimit{RetryAfter: time.Millisecond, Err: errors.New("429")}},
			opinion(),
		}, false, 2},
		{"max tokens not retried", []MockResponse{
			{Err: &ErrMaxTokensExceeded{Content: json.RawMessage(`{"verdict":`)}},
			opinion(),
		}, true, 1},
		{"rejected not retried", []MockResponse{
			{Err: &ErrRequestRejected{Status: 401, Err: errors.New("bad key")}},
			opinion(),
		}, true, 1},
		{"invalid response retried once", []MockResponse{
			{Err: &ErrInvalidResponse{Content: json.RawMessage(`bad`), Err: errors.New("bad")}},
			{Err: &ErrInvalidResponse{Content: json.RawMessage(`bad`), Err: errors.New("bad")}},
			opinion(),
		}, true, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockProvider(tt.responses...)
			p := WithRetry(mock, retryConfig())

			resp, err := p.Generate(context.Background(), reviewRequest())
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.JSONEq(t, validOpinion, string(resp.Content))
			}
			assert.Equal(t, tt.wantCalls, mock.CallCount())
		})
	}
}

func TestRetry_CancelledContext(t *testing.T) {
	mock := NewMockProvider(unavailable(), opinion())
	p := WithRetry(mock, retryConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Generate(ctx, reviewRequest())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, mock.CallCount())
}

func TestRetry_AtLeastOneAttempt(t *testing.T) {
	mock := NewMockProvider(opinion())
	p := WithRetry(mock, RetryConfig{})

	_, err := p.Generate(context.Background(), reviewRequest())
	require.NoError(t, err)
	assert.Equal(t, 1, mock.CallCount())
}

func TestRetry_Backoff(t *testing.T) {
	r := &RetryProvider{config: RetryConfig{InitialWait: 100 * time.Millisecond, MaxWait: time.Second, Multiplier: 2}}

	first := r.backoff(0, errors.New("x"))
	assert.InDelta(t, float64(100*time.Millisecond), float64(first), float64(20*time.Millisecond))

	capped := r.backoff(10, errors.New("x"))
	assert.LessOrEqual(t, capped, 1200*time.Millisecond)

	hinted := r.backoff(5, &ErrRateLimit{RetryAfter: 3 * time.Second})
	assert.Equal(t, 3*time.Second, hinted)
}

func TestRetry_Delegates(t *testing.T) {
	p := WithRetry(NewMockProvider(), retryConfig())
	assert.Equal(t, "mock", p.ModelID())
	assert.Equal(t, "mock", p.Name())
}
