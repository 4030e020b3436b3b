package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/abhisek/tracetutor/internal/store"
)

// LoggingProvider records every request, failed ones included, in the
// event store so "tracetutor llm list" can show what a review cost and
// what the model answered.
type LoggingProvider struct {
	inner Provider
	repo  store.EventRepo
}

// WithLogging wraps p. repo must not be nil.
func WithLogging(p Provider, repo store.EventRepo) Provider {
	return &LoggingProvider{inner: p, repo: repo}
}

func (l *LoggingProvider) Name() string { return l.inner.Name() }

func (l *LoggingProvider) ModelID() string { return l.inner.ModelID() }

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)
	ev := l.event(PurposeFrom(ctx), req, resp, err, time.Since(start))

	log := slog.With("provider", ev.Provider, "model", ev.Model, "purpose", ev.Purpose, "latency_ms", ev.LatencyMs)
	if err != nil {
		log.Warn("llm: request failed", "err", err)
	} else {
		log.Debug("llm: request", "input_tokens", ev.InputTokens, "output_tokens", ev.OutputTokens)
	}

	// A lost event must not fail the review.
	if recErr := l.repo.AppendLLMRequest(ctx, ev); recErr != nil {
		log.Warn("llm: could not record request", "err", recErr)
	}
	return resp, err
}

func (l *LoggingProvider) event(purpose string, req Request, resp *Response, err error, took time.Duration) store.LLMRequestEventData {
	ev := store.LLMRequestEventData{
		Provider:    l.inner.Name(),
		Model:       l.inner.ModelID(),
		Purpose:     purpose,
		LatencyMs:   took.Milliseconds(),
		Success:     err == nil,
		RequestBody: transcript(req),
	}
	if resp != nil {
		if resp.Model != "" {
			ev.Model = resp.Model
		}
		ev.InputTokens = resp.Usage.InputTokens
		ev.OutputTokens = resp.Usage.OutputTokens
		ev.ResponseBody = string(resp.Content)
	}
	if err != nil {
		ev.ErrorMessage = err.Error()
	}
	return ev
}

// transcript renders a request as labelled sections: [system], one
// section per message and the schema, if any.
func transcript(req Request) string {
	var sections []string
	if req.System != "" {
		sections = append(sections, "[system]\n"+req.System)
	}
	for _, m := range req.Messages {
		sections = append(sections, fmt.Sprintf("[%s]\n%s", m.Role, m.Content))
	}
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			sections = append(sections, fmt.Sprintf("[schema: %s]\n%s", req.Schema.Name, def))
		}
	}
	return strings.Join(sections, "\n\n")
}
