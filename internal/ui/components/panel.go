package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/tracetutor/internal/ui/theme"
)

// Panel wraps content in a titled rounded box of the given outer size.
// Content taller than the box is cut off.
func Panel(title, content string, width, height int, active bool) string {
	style := theme.Card
	if active {
		style = theme.ActiveCard
	}
	inner := height - 2
	if inner < 1 {
		inner = 1
	}

	body := content
	if title != "" {
		body = theme.Title.Render(title) + "\n" + content
	}
	lines := strings.Split(body, "\n")
	if len(lines) > inner {
		lines = lines[:inner]
	}

	return style.
		Width(max(width-2, 4)).
		Height(inner).
		Render(strings.Join(lines, "\n"))
}

// Tabs renders a row of tab labels with one highlighted.
func Tabs(labels []string, active int) string {
	parts := make([]string, len(labels))
	for i, l := range labels {
		if i == active {
			parts[i] = theme.TabActive.Render(l)
		} else {
			parts[i] = theme.TabInactive.Render(l)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}
