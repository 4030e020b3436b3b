package components

import (
	"charm.land/bubbles/v2/textarea"
	tea "charm.land/bubbletea/v2"
)

// AnswerBox is a multi-line editor for open and coding answers.
type AnswerBox struct {
	Model textarea.Model
}

// NewAnswerBox creates an answer editor. Line numbers are shown for code.
func NewAnswerBox(placeholder string, code bool) AnswerBox {
	ta := textarea.New()
	ta.Placeholder = placeholder
	ta.ShowLineNumbers = code
	ta.CharLimit = 4000
	ta.SetHeight(6)
	return AnswerBox{Model: ta}
}

// Focus focuses the editor.
func (a *AnswerBox) Focus() tea.Cmd {
	return a.Model.Focus()
}

// Blur removes focus.
func (a *AnswerBox) Blur() {
	a.Model.Blur()
}

// Focused reports whether the editor takes key input.
func (a AnswerBox) Focused() bool {
	return a.Model.Focused()
}

// SetWidth sets the editor width in cells.
func (a *AnswerBox) SetWidth(w int) {
	if w < 20 {
		w = 20
	}
	a.Model.SetWidth(w)
}

// Update handles messages.
func (a AnswerBox) Update(msg tea.Msg) (AnswerBox, tea.Cmd) {
	var cmd tea.Cmd
	a.Model, cmd = a.Model.Update(msg)
	return a, cmd
}

// View renders the editor.
func (a AnswerBox) View() string {
	return a.Model.View()
}

// Value returns the current text.
func (a AnswerBox) Value() string {
	return a.Model.Value()
}

// SetValue replaces the text.
func (a *AnswerBox) SetValue(v string) {
	a.Model.SetValue(v)
}
