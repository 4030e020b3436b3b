package grading

// Verdict is the tri-state outcome of grading one open answer.
type Verdict string

const (
	VerdictCorrect Verdict = "correct"
	VerdictPartial Verdict = "partial"
	VerdictWrong   Verdict = "wrong"
)

// Label returns the learner-facing label for a verdict.
func (v Verdict) Label() string {
	switch v {
	case VerdictCorrect:
		return "Richtig"
	case VerdictPartial:
		return "Teilweise richtig"
	case VerdictWrong:
		return "Noch nicht richtig"
	default:
		return string(v)
	}
}

// Passed reports whether the verdict counts as a passing answer.
func (v Verdict) Passed() bool {
	return v == VerdictCorrect || v == VerdictPartial
}

// Input is a single evaluation request.
type Input struct {
	// Expected is the reference solution the answer is compared against.
	Expected string

	// Answer is the raw text the learner submitted.
	Answer string

	// Coding marks prompts whose reference is a code solution. Coding
	// prompts extract more keywords and use a stricter pass threshold.
	Coding bool
}

// Result is the outcome of evaluating one answer.
type Result struct {
	Verdict Verdict `json:"verdict"`

	// Score is the fraction of expected keywords found in the answer,
	// or 1.0 on an exact match.
	Score float64 `json:"score"`

	// Feedback is the human-readable verdict message.
	Feedback string `json:"feedback"`

	// MatchedKeywords and MissingKeywords partition the keyword set of the
	// expected answer. Both keep the order of the expected answer.
	MatchedKeywords []string `json:"matchedKeywords"`
	MissingKeywords []string `json:"missingKeywords"`

	// RecognizedFragments holds up to three excerpts of the raw answer
	// that contain a matched keyword.
	RecognizedFragments []string `json:"recognizedFragments"`
}

// Thresholds holds the tunable constants of the evaluator. The default
// values were chosen empirically.
type Thresholds struct {
	// ShortAnswerKeywords is the keyword count at or below which an
	// expected answer counts as short.
	ShortAnswerKeywords int

	// Short is the minimum score for short expected answers.
	Short float64

	// Coding is the minimum score for longer coding prompts.
	Coding float64

	// Theory is the minimum score for longer theory prompts.
	Theory float64

	// ContainmentMinLen is the minimum normalized length of the expected
	// answer before an answer that is a substring of it passes outright.
	ContainmentMinLen int
}

// DefaultThresholds returns the thresholds used by Evaluate.
func DefaultThresholds() Thresholds {
	return Thresholds{
		ShortAnswerKeywords: 3,
		Short:               0.66,
		Coding:              0.50,
		Theory:              0.45,
		ContainmentMinLen:   16,
	}
}

// Keyword caps per prompt type.
const (
	summaryCapCoding = 10 // empty-answer and exact-match branches
	summaryCapTheory = 8
	matchCapCoding   = 12 // overlap scoring
	matchCapTheory   = 10
)

// SummaryCap returns the keyword cap used when the evaluator reports
// keywords without scoring (empty answer or exact match).
func SummaryCap(coding bool) int {
	if coding {
		return summaryCapCoding
	}
	return summaryCapTheory
}

// MatchCap returns the keyword cap used for overlap scoring.
func MatchCap(coding bool) int {
	if coding {
		return matchCapCoding
	}
	return matchCapTheory
}
