package quiz

import "testing"

func TestTally(t *testing.T) {
	tl := NewTally(3)
	if tl.Skipped != 3 || tl.Complete() {
		t.Fatalf("fresh tally = %+v", tl)
	}

	tl.Record(true)
	tl.Record(false)
	if tl.Answered != 2 || tl.Right != 1 || tl.Wrong != 1 || tl.Skipped != 1 {
		t.Errorf("after two answers = %+v", tl)
	}
	if got := tl.Accuracy(); got != 33 {
		t.Errorf("Accuracy() = %d, want 33", got)
	}

	tl.Record(true)
	if !tl.Complete() {
		t.Error("expected complete tally")
	}
	if got := tl.Accuracy(); got != 67 {
		t.Errorf("Accuracy() = %d, want 67", got)
	}

	// Extra answers beyond the total are ignored.
	tl.Record(true)
	if tl.Answered != 3 || tl.Right != 2 {
		t.Errorf("overflow changed tally: %+v", tl)
	}
}

func TestTally_Empty(t *testing.T) {
	tl := NewTally(0)
	if tl.Accuracy() != 0 || tl.Complete() {
		t.Errorf("empty tally = %+v", tl)
	}
}
