package components

import (
	"fmt"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
)

func key(s string) tea.KeyPressMsg {
	switch s {
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}

func TestMenu_Navigation(t *testing.T) {
	var picked string
	items := make([]MenuItem, 12)
	for i := range items {
		label := fmt.Sprintf("trace-%d", i+1)
		items[i] = MenuItem{Label: label, Action: func() tea.Cmd { picked = label; return nil }}
	}
	m := NewMenu(items)

	m, _ = m.Update(key("up"))
	assert.Equal(t, 0, m.Selected, "stops at the top")
	m, _ = m.Update(key("down"))
	m, _ = m.Update(key("3"))
	assert.Equal(t, 2, m.Selected)
	m, _ = m.Update(key("G"))
	assert.Equal(t, 11, m.Selected)
	m, _ = m.Update(key("down"))
	assert.Equal(t, 11, m.Selected, "stops at the bottom")

	m, _ = m.Update(key("enter"))
	assert.Equal(t, "trace-12", picked)
}

func TestMenu_ScrollsToSelection(t *testing.T) {
	items := make([]MenuItem, 10)
	for i := range items {
		items[i] = MenuItem{Label: fmt.Sprintf("trace-%d", i+1)}
	}
	m := NewMenu(items)

	top := m.View(4)
	assert.Contains(t, top, "trace-1")
	assert.NotContains(t, top, "trace-5")
	assert.Contains(t, top, "6 weitere")

	m, _ = m.Update(key("G"))
	bottom := m.View(4)
	assert.Contains(t, bottom, "trace-10")
	assert.NotContains(t, bottom, "trace-6")
	assert.Contains(t, bottom, "↑ 6 weitere")

	assert.Contains(t, m.View(0), "trace-1")
}

func TestMultiChoice_SelectAndSubmit(t *testing.T) {
	m := NewMultiChoice([]string{"Zeile 2", "Zeile 3", "Zeile 4"}, "Zeile 3", "")
	assert.False(t, m.Submitted)

	m, _ = m.Update(key("down"))
	m, _ = m.Update(key("enter"))
	assert.True(t, m.Submitted)
	assert.Equal(t, "Zeile 3", m.Chosen)
	assert.True(t, m.IsCorrect())

	// Locked after submit.
	m, _ = m.Update(key("down"))
	assert.Equal(t, 1, m.Selected)

	m.Reset()
	m, _ = m.Update(key("c"))
	m.Submit()
	assert.Equal(t, "Zeile 4", m.Chosen)
	assert.False(t, m.IsCorrect())
}

func TestMultiChoice_RestoresChosen(t *testing.T) {
	m := NewMultiChoice([]string{"x", "y"}, "x", "y")
	assert.True(t, m.Submitted)
	assert.Equal(t, 1, m.Selected)
	assert.Contains(t, m.View(), "B)  y")
}

func TestPanel_CutsContent(t *testing.T) {
	out := Panel("Stack", "1\n2\n3\n4\n5\n6", 30, 5, false)
	assert.Contains(t, out, "Stack")
	assert.Contains(t, out, "2")
	assert.NotContains(t, out, "6")
}

func TestTallyBar_Segments(t *testing.T) {
	tests := []struct {
		name              string
		bar               TallyBar
		right, wrong, rem int
	}{
		{"empty set", TallyBar{Total: 0}, 0, 0, 20},
		{"nothing answered", TallyBar{Total: 4}, 0, 0, 20},
		{"half right", TallyBar{Right: 2, Total: 4}, 10, 0, 10},
		{"one wrong of many", TallyBar{Wrong: 1, Total: 50}, 0, 1, 19},
		{"all answered", TallyBar{Right: 3, Wrong: 1, Total: 4}, 15, 5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, w, o := tt.bar.segments(20)
			assert.Equal(t, []int{tt.right, tt.wrong, tt.rem}, []int{r, w, o})
		})
	}
}
