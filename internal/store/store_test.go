package store

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	s, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so journal_mode is not checked here.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	for _, table := range []string{"kv", "evaluation_events", "llm_request_events", "global_sequence"} {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s: %v", table, err)
		}
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	sc, err := newSequenceCounter(s.DB())
	if err != nil {
		t.Fatalf("new sequence counter: %v", err)
	}

	for i := 0; i < 5; i++ {
		seq, err := sc.Next(ctx)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		if want := int64(i + 1); seq != want {
			t.Errorf("seq[%d] = %d, want %d", i, seq, want)
		}
	}
}

func TestKVRepo(t *testing.T) {
	s := openTestStore(t)
	kv := s.KVRepo()
	ctx := context.Background()

	_, found, err := kv.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, kv.Put(ctx, "quiz:a:1", []byte(`{"v":1}`)))
	val, found, err := kv.Get(ctx, "quiz:a:1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `{"v":1}`, string(val))

	// Put overwrites.
	require.NoError(t, kv.Put(ctx, "quiz:a:1", []byte(`{"v":2}`)))
	val, _, err = kv.Get(ctx, "quiz:a:1")
	require.NoError(t, err)
	assert.Equal(t, `{"v":2}`, string(val))

	require.NoError(t, kv.Put(ctx, "quiz:b:1", []byte("x")))
	require.NoError(t, kv.Put(ctx, "auth:session", []byte("1")))

	keys, err := kv.Keys(ctx, "quiz:")
	require.NoError(t, err)
	assert.Equal(t, []string{"quiz:a:1", "quiz:b:1"}, keys)

	all, err := kv.Keys(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	require.NoError(t, kv.Delete(ctx, "quiz:a:1"))
	require.NoError(t, kv.Delete(ctx, "quiz:a:1"))
	_, found, err = kv.Get(ctx, "quiz:a:1")
	require.NoError(t, err)
	assert.False(t, found)

	n, err := kv.DeletePrefix(ctx, "quiz:")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	keys, err = kv.Keys(ctx, "quiz:")
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestEvaluationEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	inputs := []EvaluationEventData{
		{TraceID: "array-loop", QuestionID: "q1", Kind: "open", Verdict: "correct", Score: 1, MatchedKeywords: 3, TotalKeywords: 3, Answer: "a"},
		{TraceID: "array-loop", QuestionID: "q2", Kind: "open", Verdict: "wrong", Score: 0, TotalKeywords: 4, Answer: "b"},
		{TraceID: "method-call", QuestionID: "q3", Kind: "coding", Verdict: "partial", Score: 0.5, MatchedKeywords: 2, TotalKeywords: 4, Answer: "c"},
	}
	for _, in := range inputs {
		id, err := repo.AppendEvaluation(ctx, in)
		require.NoError(t, err)
		_, err = uuid.Parse(id)
		assert.NoError(t, err, "attempt id %q is not a uuid", id)
	}

	events, err := repo.QueryEvaluations(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "q3", events[0].QuestionID, "newest first")
	assert.Greater(t, events[0].Sequence, events[1].Sequence)
	assert.False(t, events[0].Timestamp.IsZero())

	filtered, err := repo.QueryEvaluations(ctx, QueryOpts{TraceID: "array-loop", Limit: 1})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "q2", filtered[0].QuestionID)

	after, err := repo.QueryEvaluations(ctx, QueryOpts{After: events[1].Sequence})
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.Equal(t, "q3", after[0].QuestionID)

	stats, err := repo.EvaluationStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Total)
	assert.InDelta(t, 0.5, stats.AvgScore, 1e-9)
	assert.Equal(t, []VerdictCount{{"correct", 1}, {"partial", 1}, {"wrong", 1}}, stats.ByVerdict)
	require.Len(t, stats.ByTrace, 2)
	assert.Equal(t, TraceEvaluationStats{TraceID: "array-loop", Attempts: 2, Passed: 1, AvgScore: 0.5}, stats.ByTrace[0])
	assert.Equal(t, "method-call", stats.ByTrace[1].TraceID)
}

func TestEvaluationStats_Empty(t *testing.T) {
	s := openTestStore(t)
	stats, err := s.EventRepo().EvaluationStats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.Total)
	assert.Zero(t, stats.AvgScore)
	assert.Empty(t, stats.ByTrace)
}

func TestLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "mock", Model: "mock-1", Purpose: "review",
		InputTokens: 10, OutputTokens: 5, LatencyMs: 42, Success: true,
		RequestBody: "[user]\nhi", ResponseBody: `{"verdict":"correct"}`,
	}))
	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "mock", Model: "mock-1", Purpose: "review", ErrorMessage: "boom",
	}))

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.False(t, events[0].Success)
	assert.Equal(t, "boom", events[0].ErrorMessage)

	first := events[1]
	got, err := repo.GetLLMEvent(ctx, first.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Success)
	assert.Equal(t, 10, got.InputTokens)
	assert.Equal(t, `{"verdict":"correct"}`, got.ResponseBody)

	missing, err := repo.GetLLMEvent(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestLLMEvents_PurposeFilter(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, purpose := range []string{"answer-review", "unknown", "answer-review"} {
		require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{Provider: "mock", Model: "mock", Purpose: purpose}))
	}

	reviews, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "answer-review"})
	require.NoError(t, err)
	assert.Len(t, reviews, 2)

	latest, err := repo.QueryLLMEvents(ctx, QueryOpts{Purpose: "answer-review", Limit: 1})
	require.NoError(t, err)
	require.Len(t, latest, 1)
	assert.Equal(t, reviews[0].ID, latest[0].ID)
}

func TestEventsShareSequence(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	_, err := repo.AppendEvaluation(ctx, EvaluationEventData{Verdict: "wrong"})
	require.NoError(t, err)
	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{Provider: "p", Model: "m", Purpose: "x"}))

	evals, err := repo.QueryEvaluations(ctx, QueryOpts{})
	require.NoError(t, err)
	llms, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), evals[0].Sequence)
	assert.Equal(t, int64(2), llms[0].Sequence)
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()

	t.Setenv("TRACETUTOR_DB", dir+"/custom/db.sqlite")
	p, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, dir+"/custom/db.sqlite", p)

	t.Setenv("TRACETUTOR_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)
	p, err = DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, dir+"/tracetutor/tracetutor.db", p)
}
