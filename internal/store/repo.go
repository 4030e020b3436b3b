package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	After   int64     // sequence > After
	Before  int64     // sequence < Before
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
	TraceID string    // evaluation events only; empty matches all
	Purpose string    // LLM events only; empty matches all
}

// EvaluationEventData captures one graded answer.
type EvaluationEventData struct {
	TraceID         string
	QuestionID      string
	Kind            string // choice, open, coding
	Verdict         string
	Score           float64
	MatchedKeywords int
	TotalKeywords   int
	Answer          string
}

// EvaluationEvent is a stored evaluation.
type EvaluationEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	AttemptID string
	EvaluationEventData
}

// VerdictCount is the number of evaluations with one verdict.
type VerdictCount struct {
	Verdict string
	Count   int
}

// TraceEvaluationStats aggregates the evaluations of one trace.
type TraceEvaluationStats struct {
	TraceID  string
	Attempts int
	Passed   int // correct or partial
	AvgScore float64
}

// EvaluationStats aggregates all evaluations.
type EvaluationStats struct {
	Total     int
	AvgScore  float64
	ByVerdict []VerdictCount
	ByTrace   []TraceEvaluationStats
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a stored LLM request.
type LLMEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendEvaluation records a graded answer and returns its attempt ID.
	AppendEvaluation(ctx context.Context, data EvaluationEventData) (string, error)

	// QueryEvaluations returns evaluations, newest first.
	QueryEvaluations(ctx context.Context, opts QueryOpts) ([]EvaluationEvent, error)

	// EvaluationStats aggregates all recorded evaluations.
	EvaluationStats(ctx context.Context) (*EvaluationStats, error)

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns LLM events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns one LLM event, or nil if it does not exist.
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)
}
