package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/tracetutor/internal/ui/theme"
)

// TallyBar renders a question set as one bar: a green segment for right
// answers, a red one for wrong answers and a grey rest for open questions.
type TallyBar struct {
	Label string
	Right int
	Wrong int
	Total int
	Width int
}

// segments splits n cells between right, wrong and open. Any answered
// question gets at least one cell so a single mistake stays visible.
func (b TallyBar) segments(n int) (right, wrong, open int) {
	if b.Total <= 0 || n <= 0 {
		return 0, 0, max(n, 0)
	}
	scale := func(count int) int {
		if count <= 0 {
			return 0
		}
		return max(count*n/b.Total, 1)
	}
	right = min(scale(b.Right), n)
	wrong = min(scale(b.Wrong), n-right)
	return right, wrong, n - right - wrong
}

// View renders the bar, label first.
func (b TallyBar) View() string {
	prefix := ""
	if b.Label != "" {
		prefix = theme.Body.Render(b.Label) + "  "
	}
	n := max(b.Width-lipgloss.Width(prefix), 4)
	right, wrong, open := b.segments(n)

	return prefix +
		theme.BarRight.Render(strings.Repeat(" ", right)) +
		theme.BarWrong.Render(strings.Repeat(" ", wrong)) +
		theme.BarOpen.Render(strings.Repeat(" ", open))
}
