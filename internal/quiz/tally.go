package quiz

import "math"

// Tally summarizes a round of questions.
type Tally struct {
	Total    int
	Answered int
	Right    int
	Wrong    int
	Skipped  int
}

// NewTally starts a tally for total questions, all of them unanswered.
func NewTally(total int) Tally {
	return Tally{Total: total, Skipped: total}
}

// Record counts one answered question.
func (t *Tally) Record(correct bool) {
	if t.Answered >= t.Total {
		return
	}
	t.Answered++
	t.Skipped = t.Total - t.Answered
	if correct {
		t.Right++
	} else {
		t.Wrong++
	}
}

// Accuracy returns the share of right answers over all questions as a
// rounded percentage. Skipped questions count against it.
func (t Tally) Accuracy() int {
	if t.Total == 0 {
		return 0
	}
	return int(math.Round(float64(t.Right) / float64(t.Total) * 100))
}

// Complete reports whether every question was answered.
func (t Tally) Complete() bool {
	return t.Total > 0 && t.Answered == t.Total
}
