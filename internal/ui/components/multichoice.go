package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/tracetutor/internal/ui/theme"
)

// MultiChoice is a single-answer selector over string options.
type MultiChoice struct {
	Options   []string
	Correct   string
	Selected  int
	Submitted bool
	Chosen    string
}

// NewMultiChoice creates a selector. A non-empty chosen value restores a
// previously submitted answer.
func NewMultiChoice(options []string, correct, chosen string) MultiChoice {
	m := MultiChoice{Options: options, Correct: correct}
	if chosen != "" {
		m.Chosen = chosen
		m.Submitted = true
		for i, o := range options {
			if o == chosen {
				m.Selected = i
			}
		}
	}
	return m
}

// Init returns nil.
func (m MultiChoice) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation and selection.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Submitted {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "enter":
		m.Submit()
	default:
		// Letter shortcuts: a selects the first option, b the second.
		if len(key) == 1 {
			i := int(key[0] - 'a')
			if i >= 0 && i < len(m.Options) {
				m.Selected = i
			}
		}
	}

	return m, nil
}

// Submit locks in the highlighted option.
func (m *MultiChoice) Submit() {
	if len(m.Options) == 0 {
		return
	}
	m.Submitted = true
	m.Chosen = m.Options[m.Selected]
}

// Reset clears the submission.
func (m *MultiChoice) Reset() {
	m.Submitted = false
	m.Chosen = ""
}

// View renders the options.
func (m MultiChoice) View() string {
	var b strings.Builder
	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected && !m.Submitted {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%c)  %s", prefix, 'A'+i, opt)

		switch {
		case m.Submitted && opt == m.Correct:
			line = theme.Correct.Render(line)
		case m.Submitted && opt == m.Chosen:
			line = theme.Incorrect.Render(line)
		case m.Submitted:
			line = theme.Subtitle.Render(line)
		case i == m.Selected:
			line = theme.Selected.Render(line)
		default:
			line = theme.Unselected.Render(line)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

// IsCorrect returns true if the submitted answer is the correct one.
func (m MultiChoice) IsCorrect() bool {
	return m.Submitted && m.Chosen == m.Correct
}
