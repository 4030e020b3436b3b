package playback

import (
	"context"
	"time"

	"github.com/abhisek/tracetutor/internal/catalog"
)

// DefaultInterval is the delay between steps when running a trace to the end.
const DefaultInterval = 800 * time.Millisecond

// Cursor walks the steps of one trace. Index -1 means playback has not
// started and no step is shown.
type Cursor struct {
	steps []catalog.Step
	index int
}

// NewCursor creates a cursor positioned before the first step.
func NewCursor(t catalog.Trace) *Cursor {
	return &Cursor{steps: t.Steps, index: -1}
}

// Len returns the number of steps.
func (c *Cursor) Len() int { return len(c.steps) }

// Index returns the current step index, or -1 before the first step.
func (c *Cursor) Index() int { return c.index }

// Started reports whether a step is shown.
func (c *Cursor) Started() bool { return c.index >= 0 }

// Finished reports whether the cursor is on the last step.
func (c *Cursor) Finished() bool { return c.index >= len(c.steps)-1 }

// Next advances one step, stopping at the last.
func (c *Cursor) Next() {
	if c.index < len(c.steps)-1 {
		c.index++
	}
}

// Prev goes back one step, stopping at the first. It never returns to
// the not-started position.
func (c *Cursor) Prev() {
	if c.index > 0 {
		c.index--
	}
}

// Reset returns to the not-started position.
func (c *Cursor) Reset() { c.index = -1 }

// Seek jumps to step i, clamped to the valid range.
func (c *Cursor) Seek(i int) {
	switch {
	case len(c.steps) == 0:
		c.index = -1
	case i < 0:
		c.index = 0
	case i >= len(c.steps):
		c.index = len(c.steps) - 1
	default:
		c.index = i
	}
}

// Current returns the shown step. ok is false before the first step.
func (c *Cursor) Current() (catalog.Step, bool) {
	if c.index < 0 || c.index >= len(c.steps) {
		return catalog.Step{}, false
	}
	return c.steps[c.index], true
}

// CurrentLine returns the line of the shown step, or 0 before the first.
func (c *Cursor) CurrentLine() int {
	s, ok := c.Current()
	if !ok {
		return 0
	}
	return s.Line
}

// NextStep returns the step after the current one. ok is false on the
// last step.
func (c *Cursor) NextStep() (catalog.Step, bool) {
	i := c.index + 1
	if i >= len(c.steps) {
		return catalog.Step{}, false
	}
	return c.steps[i], true
}

// RunAll advances from the current step (or the first, if not started)
// to the last, calling onStep with each index shown. It blocks until the
// end is reached or ctx is cancelled. A non-positive interval uses
// DefaultInterval.
func (c *Cursor) RunAll(ctx context.Context, interval time.Duration, onStep func(int)) error {
	if len(c.steps) == 0 {
		return nil
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	if c.index < 0 {
		c.index = 0
	}
	if onStep != nil {
		onStep(c.index)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for !c.Finished() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			c.index++
			if onStep != nil {
				onStep(c.index)
			}
		}
	}
	return nil
}
