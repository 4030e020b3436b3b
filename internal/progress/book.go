package progress

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/abhisek/tracetutor/internal/catalog"
	"github.com/abhisek/tracetutor/internal/grading"
	"github.com/abhisek/tracetutor/internal/quiz"
	"github.com/abhisek/tracetutor/internal/store"
)

// Recorder receives every checked answer. store.EventRepo satisfies it.
type Recorder interface {
	AppendEvaluation(ctx context.Context, data store.EvaluationEventData) (string, error)
}

// Book owns the learner state of one question set and persists it on
// request. Persistence is best-effort: failures are logged and the book
// continues with what it has in memory.
type Book struct {
	setID     string
	key       string
	questions map[string]catalog.Question
	kv        KV
	recorder  Recorder
	logger    *slog.Logger
	state     *State
}

// NewBook creates a book for the questions of setID. kv and recorder may
// be nil for in-memory use.
func NewBook(setID string, questions []catalog.Question, kv KV, recorder Recorder) *Book {
	byID := make(map[string]catalog.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}
	return &Book{
		setID:     setID,
		key:       CacheKey(setID, questions),
		questions: byID,
		kv:        kv,
		recorder:  recorder,
		logger:    slog.Default().With("component", "progress", "set", setID),
		state:     NewState(),
	}
}

// Key returns the storage key of this book.
func (b *Book) Key() string { return b.key }

// Open loads the stored state. Any failure leaves the book empty.
func (b *Book) Open(ctx context.Context) {
	if b.kv == nil {
		return
	}
	s, err := Load(ctx, b.kv, b.key)
	if err != nil {
		b.logger.Warn("discarding stored progress", "error", err)
		b.state = NewState()
		return
	}
	b.state = s
}

// Flush saves the state. Failures are logged, never returned.
func (b *Book) Flush(ctx context.Context) {
	if b.kv == nil {
		return
	}
	if err := Save(ctx, b.kv, b.key, b.state); err != nil {
		b.logger.Warn("saving progress failed", "error", err)
	}
}

// State returns a copy of the current state.
func (b *Book) State() *State { return b.state.Clone() }

// Answer returns the learner's current answer to a question.
func (b *Book) Answer(id string) string { return b.state.Answers[id] }

// SetAnswer replaces the answer and drops its now stale evaluation.
func (b *Book) SetAnswer(id, text string) {
	b.state.Answers[id] = text
	delete(b.state.Evaluations, id)
}

// Evaluation returns the stored evaluation of a question.
func (b *Book) Evaluation(id string) (grading.Result, bool) {
	r, ok := b.state.Evaluations[id]
	return r, ok
}

// Check grades the current answer to q, stores the result and records it.
func (b *Book) Check(ctx context.Context, q catalog.Question) grading.Result {
	answer := b.state.Answers[q.ID]

	var res grading.Result
	if q.IsFreeText() {
		res = quiz.CheckOpen(q, answer)
	} else {
		res = choiceResult(q, answer)
	}
	b.state.Evaluations[q.ID] = res

	if b.recorder != nil {
		total := len(res.MatchedKeywords) + len(res.MissingKeywords)
		_, err := b.recorder.AppendEvaluation(ctx, store.EvaluationEventData{
			TraceID:         b.setID,
			QuestionID:      q.ID,
			Kind:            string(q.Kind),
			Verdict:         string(res.Verdict),
			Score:           res.Score,
			MatchedKeywords: len(res.MatchedKeywords),
			TotalKeywords:   total,
			Answer:          answer,
		})
		if err != nil {
			b.logger.Debug("recording evaluation failed", "question", q.ID, "error", err)
		}
	}
	return res
}

// choiceResult expresses a multiple-choice check as an evaluation.
func choiceResult(q catalog.Question, answer string) grading.Result {
	res := grading.Result{
		Verdict:             grading.VerdictWrong,
		MatchedKeywords:     []string{},
		MissingKeywords:     []string{},
		RecognizedFragments: []string{},
	}
	switch {
	case strings.TrimSpace(answer) == "":
		res.Feedback = "Noch keine Antwort ausgewählt."
	case quiz.CheckChoice(q, answer):
		res.Verdict = grading.VerdictCorrect
		res.Score = 1
		res.Feedback = "Richtig!"
	default:
		res.Feedback = fmt.Sprintf("Noch nicht korrekt. Korrekte Antwort: %s", q.CorrectOption)
	}
	if q.Explanation != "" {
		res.Feedback += " " + q.Explanation
	}
	return res
}

// Reset clears answer, evaluation and visibility flags of one question.
// Its review tag is kept.
func (b *Book) Reset(id string) {
	delete(b.state.Answers, id)
	delete(b.state.Evaluations, id)
	delete(b.state.HintVisible, id)
	delete(b.state.SolutionVisible, id)
}

// ResetAll discards the whole state.
func (b *Book) ResetAll() {
	b.state = NewState()
}

// ToggleHint flips hint visibility and returns the new value.
func (b *Book) ToggleHint(id string) bool {
	v := !b.state.HintVisible[id]
	b.state.HintVisible[id] = v
	return v
}

// HintVisible reports whether the hint of a question is shown.
func (b *Book) HintVisible(id string) bool { return b.state.HintVisible[id] }

// ToggleSolution flips solution visibility and returns the new value.
func (b *Book) ToggleSolution(id string) bool {
	v := !b.state.SolutionVisible[id]
	b.state.SolutionVisible[id] = v
	return v
}

// SolutionVisible reports whether the reference solution is shown.
func (b *Book) SolutionVisible(id string) bool { return b.state.SolutionVisible[id] }

// Tag sets the review tag of a question. TagNone clears it.
func (b *Book) Tag(id string, tag ReviewTag) error {
	if !tag.Valid() {
		return fmt.Errorf("unknown review tag %q", tag)
	}
	if tag == TagNone {
		delete(b.state.ReviewTags, id)
		return nil
	}
	b.state.ReviewTags[id] = tag
	return nil
}

// ReviewTag returns the review tag of a question.
func (b *Book) ReviewTag(id string) ReviewTag { return b.state.ReviewTags[id] }

// Tally summarizes the checked questions of the set.
func (b *Book) Tally() quiz.Tally {
	t := quiz.NewTally(len(b.questions))
	for id := range b.questions {
		if res, ok := b.state.Evaluations[id]; ok {
			t.Record(res.Verdict.Passed())
		}
	}
	return t
}
