package grading

import "strings"

// Evaluator grades open answers against a reference solution by keyword
// overlap. It has no semantic understanding: synonyms are not recognized
// and keyword stuffing is not detected.
type Evaluator struct {
	thresholds Thresholds
}

// NewEvaluator creates an evaluator with the given thresholds.
func NewEvaluator(t Thresholds) *Evaluator {
	return &Evaluator{thresholds: t}
}

var defaultEvaluator = NewEvaluator(DefaultThresholds())

// Evaluate grades learnerRaw against expected using the default thresholds.
func Evaluate(expected, learnerRaw string, coding bool) Result {
	return defaultEvaluator.Evaluate(expected, learnerRaw, coding)
}

// EvaluateInput is Evaluate for an Input value.
func EvaluateInput(in Input) Result {
	return defaultEvaluator.Evaluate(in.Expected, in.Answer, in.Coding)
}

// Thresholds returns the evaluator's thresholds.
func (e *Evaluator) Thresholds() Thresholds {
	return e.thresholds
}

// EvaluateInput is Evaluate for an Input value.
func (e *Evaluator) EvaluateInput(in Input) Result {
	return e.Evaluate(in.Expected, in.Answer, in.Coding)
}

// Evaluate grades learnerRaw against expected. It is total over all
// string inputs and never panics.
func (e *Evaluator) Evaluate(expected, learnerRaw string, coding bool) Result {
	answer := Normalize(learnerRaw)
	if answer == "" {
		return Result{
			Verdict:             VerdictWrong,
			Score:               0,
			Feedback:            feedbackEmpty,
			MatchedKeywords:     []string{},
			MissingKeywords:     ExtractKeywords(expected, SummaryCap(coding)),
			RecognizedFragments: []string{},
		}
	}

	normExpected := Normalize(expected)
	if answer == normExpected {
		return Result{
			Verdict:             VerdictCorrect,
			Score:               1.0,
			Feedback:            feedbackExact,
			MatchedKeywords:     ExtractKeywords(expected, SummaryCap(coding)),
			MissingKeywords:     []string{},
			RecognizedFragments: []string{fragmentFullyReproduced},
		}
	}

	keywords := ExtractKeywords(expected, MatchCap(coding))
	matched, missing := splitMatches(keywords, answer)
	fragments := RecognizedFragments(learnerRaw, matched)

	score := 0.0
	if len(keywords) > 0 {
		score = float64(len(matched)) / float64(len(keywords))
	}

	res := Result{
		Score:               score,
		MatchedKeywords:     matched,
		MissingKeywords:     missing,
		RecognizedFragments: fragments,
	}

	if e.containsFull(answer, normExpected) || score >= e.threshold(len(keywords), coding) {
		if len(missing) > 0 {
			res.Verdict = VerdictPartial
		} else {
			res.Verdict = VerdictCorrect
		}
	} else {
		res.Verdict = VerdictWrong
	}
	res.Feedback = feedbackFor(res.Verdict, len(matched), len(keywords), missing)
	return res
}

// containsFull reports whether the answer reproduces the whole expected
// answer, or is a substring of a sufficiently long one. An empty expected
// answer never counts as contained.
func (e *Evaluator) containsFull(answer, expected string) bool {
	if expected == "" {
		return false
	}
	if strings.Contains(answer, expected) {
		return true
	}
	return len(expected) >= e.thresholds.ContainmentMinLen && strings.Contains(expected, answer)
}

// threshold returns the minimum score for an expected answer with the
// given number of keywords.
func (e *Evaluator) threshold(keywordCount int, coding bool) float64 {
	switch {
	case keywordCount <= e.thresholds.ShortAnswerKeywords:
		return e.thresholds.Short
	case coding:
		return e.thresholds.Coding
	default:
		return e.thresholds.Theory
	}
}
