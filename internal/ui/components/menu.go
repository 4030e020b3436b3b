package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/tracetutor/internal/ui/theme"
)

// MenuItem is one entry of a Menu.
type MenuItem struct {
	Label  string
	Detail string // shown dimmed after the label
	Action func() tea.Cmd
}

// Menu is a vertical list that scrolls when it has more entries than
// fit. Digits 1 to 9 jump to an entry directly.
type Menu struct {
	Items    []MenuItem
	Selected int
	offset   int
}

func NewMenu(items []MenuItem) Menu {
	return Menu{Items: items}
}

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || len(m.Items) == 0 {
		return m, nil
	}

	switch k := kmsg.String(); k {
	case "up", "k":
		m.Selected = max(m.Selected-1, 0)
	case "down", "j":
		m.Selected = min(m.Selected+1, len(m.Items)-1)
	case "home", "g":
		m.Selected = 0
	case "end", "G":
		m.Selected = len(m.Items) - 1
	case "enter":
		if act := m.Items[m.Selected].Action; act != nil {
			return m, act()
		}
	default:
		if len(k) == 1 && k[0] >= '1' && k[0] <= '9' {
			if i := int(k[0] - '1'); i < len(m.Items) {
				m.Selected = i
			}
		}
	}
	return m, nil
}

// scroll moves the window of rows just enough to keep Selected visible.
func (m *Menu) scroll(rows int) {
	if m.Selected < m.offset {
		m.offset = m.Selected
	}
	if m.Selected >= m.offset+rows {
		m.offset = m.Selected - rows + 1
	}
	m.offset = max(min(m.offset, len(m.Items)-rows), 0)
}

// View renders at most rows entries. rows <= 0 renders all of them.
func (m *Menu) View(rows int) string {
	if rows <= 0 || rows >= len(m.Items) {
		rows = len(m.Items)
	}
	m.scroll(rows)

	lines := make([]string, 0, rows+2)
	if m.offset > 0 {
		lines = append(lines, theme.Hint.Render(fmt.Sprintf("    ↑ %d weitere", m.offset)))
	}
	for i := m.offset; i < m.offset+rows; i++ {
		item := m.Items[i]
		line := theme.Unselected.Render("    " + item.Label)
		if i == m.Selected {
			line = theme.Selected.Render("  ▸ " + item.Label)
		}
		if item.Detail != "" {
			line += "  " + theme.Hint.Render(item.Detail)
		}
		lines = append(lines, line)
	}
	if rest := len(m.Items) - m.offset - rows; rest > 0 {
		lines = append(lines, theme.Hint.Render(fmt.Sprintf("    ↓ %d weitere", rest)))
	}
	return strings.Join(lines, "\n")
}
