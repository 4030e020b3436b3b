package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

var evaluationColumns = []string{
	"id", "sequence", "timestamp", "attempt_id", "trace_id", "question_id",
	"kind", "verdict", "score", "matched_keywords", "total_keywords", "answer",
}

func (r *eventRepo) AppendEvaluation(ctx context.Context, data EvaluationEventData) (string, error) {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return "", fmt.Errorf("next sequence: %w", err)
	}

	attemptID := uuid.NewString()
	query, args := builder().Insert("evaluation_events").
		Columns(evaluationColumns[1:]...).
		Values(
			seqNum, time.Now().UnixMilli(), attemptID, data.TraceID, data.QuestionID,
			data.Kind, data.Verdict, data.Score, data.MatchedKeywords, data.TotalKeywords, data.Answer,
		).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return "", fmt.Errorf("save evaluation event: %w", err)
	}
	return attemptID, nil
}

func (r *eventRepo) QueryEvaluations(ctx context.Context, opts QueryOpts) ([]EvaluationEvent, error) {
	b := builder()
	sel := b.Select(evaluationColumns...).From(b.Table("evaluation_events"))
	if opts.TraceID != "" {
		sel = sel.Where(entsql.EQ("trace_id", opts.TraceID))
	}
	query, args := applyQueryOpts(sel, opts).Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query evaluation events: %w", err)
	}
	defer rows.Close()

	var events []EvaluationEvent
	for rows.Next() {
		var e EvaluationEvent
		var ts int64
		if err := rows.Scan(
			&e.ID, &e.Sequence, &ts, &e.AttemptID, &e.TraceID, &e.QuestionID,
			&e.Kind, &e.Verdict, &e.Score, &e.MatchedKeywords, &e.TotalKeywords, &e.Answer,
		); err != nil {
			return nil, fmt.Errorf("scan evaluation event: %w", err)
		}
		e.Timestamp = fromMillis(ts)
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepo) EvaluationStats(ctx context.Context) (*EvaluationStats, error) {
	b := builder()
	stats := &EvaluationStats{}

	query, args := b.Select(entsql.Count("*"), "COALESCE(AVG(score), 0)").
		From(b.Table("evaluation_events")).
		Query()
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&stats.Total, &stats.AvgScore); err != nil {
		return nil, fmt.Errorf("query evaluation totals: %w", err)
	}

	query, args = b.Select("verdict", entsql.Count("*")).
		From(b.Table("evaluation_events")).
		GroupBy("verdict").
		OrderBy("verdict").
		Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query verdict counts: %w", err)
	}
	for rows.Next() {
		var vc VerdictCount
		if err := rows.Scan(&vc.Verdict, &vc.Count); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan verdict count: %w", err)
		}
		stats.ByVerdict = append(stats.ByVerdict, vc)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	query, args = b.Select(
		"trace_id",
		entsql.Count("*"),
		"SUM(CASE WHEN verdict IN ('correct', 'partial') THEN 1 ELSE 0 END)",
		"AVG(score)",
	).
		From(b.Table("evaluation_events")).
		GroupBy("trace_id").
		OrderBy("trace_id").
		Query()
	rows, err = r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query trace stats: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var ts TraceEvaluationStats
		if err := rows.Scan(&ts.TraceID, &ts.Attempts, &ts.Passed, &ts.AvgScore); err != nil {
			return nil, fmt.Errorf("scan trace stats: %w", err)
		}
		stats.ByTrace = append(stats.ByTrace, ts)
	}
	return stats, rows.Err()
}
