package review

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/tracetutor/internal/grading"
	"github.com/abhisek/tracetutor/internal/llm"
)

func sampleRequest() Request {
	return Request{
		Prompt:   "Was liegt nach Zeile 3 auf dem Stack?",
		Expected: "Die Referenz p zeigt auf ein Punkt-Objekt im Heap.",
		Answer:   "p verweist auf das Objekt im Heap",
	}
}

func TestReview_ParsesOpinion(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"verdict":"partial","confidence":0.7,"reasoning":" Der Typ fehlt. ","missing_concepts":["Punkt-Objekt"]}`),
	})
	r := New(mock, DefaultConfig())

	heuristic := grading.Evaluate(sampleRequest().Expected, sampleRequest().Answer, false)
	req := sampleRequest()
	req.Heuristic = &heuristic

	op, err := r.Review(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, grading.VerdictPartial, op.Verdict)
	assert.Equal(t, 0.7, op.Confidence)
	assert.Equal(t, "Der Typ fehlt.", op.Reasoning)
	assert.Equal(t, []string{"Punkt-Objekt"}, op.MissingConcepts)
	assert.Equal(t, "mock", op.Model)
	assert.Equal(t, heuristic.Verdict == grading.VerdictPartial, op.Agrees)

	require.Equal(t, 1, mock.CallCount())
	call := mock.Calls[0]
	assert.Equal(t, OpinionSchema, call.Schema)
	assert.Contains(t, call.Messages[0].Content, "Reference answer:\nDie Referenz p")
	assert.Contains(t, call.Messages[0].Content, "Heuristic verdict: "+string(heuristic.Verdict))
	assert.Contains(t, call.Messages[0].Content, "Answer type: explanation")
}

func TestReview_WithoutHeuristic(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"verdict":"correct","confidence":0.9,"reasoning":"Passt.","missing_concepts":[]}`),
	})
	r := New(mock, DefaultConfig())

	req := sampleRequest()
	req.Coding = true
	op, err := r.Review(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, grading.VerdictCorrect, op.Verdict)
	assert.False(t, op.Agrees)
	assert.Empty(t, op.MissingConcepts)
	assert.NotContains(t, mock.Calls[0].Messages[0].Content, "Heuristic verdict")
	assert.Contains(t, mock.Calls[0].Messages[0].Content, "Answer type: Java code")
}

func TestReview_RejectsSchemaViolation(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: json.RawMessage(`{"verdict":"maybe","confidence":0.5,"reasoning":"?","missing_concepts":[]}`),
	})
	r := New(mock, DefaultConfig())

	_, err := r.Review(context.Background(), sampleRequest())
	var invalid *llm.ErrInvalidResponse
	require.True(t, errors.As(err, &invalid), "got %v", err)
}

func TestReview_ProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrRateLimit{}})
	r := New(mock, DefaultConfig())

	_, err := r.Review(context.Background(), sampleRequest())
	var rl *llm.ErrRateLimit
	assert.True(t, errors.As(err, &rl))
}

func TestReview_EmptyAnswer(t *testing.T) {
	mock := llm.NewMockProvider()
	r := New(mock, DefaultConfig())

	req := sampleRequest()
	req.Answer = "   "
	_, err := r.Review(context.Background(), req)
	assert.Error(t, err)
	assert.Equal(t, 0, mock.CallCount())
}

func TestParseVerdict(t *testing.T) {
	v, ok := parseVerdict(" Correct ")
	assert.True(t, ok)
	assert.Equal(t, grading.VerdictCorrect, v)

	_, ok = parseVerdict("unsure")
	assert.False(t, ok)
}
