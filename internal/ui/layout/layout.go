// Package layout arranges the chrome around a screen: header, footer and
// the split between source code and the side panel.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/tracetutor/internal/ui/theme"
)

const (
	MinWidth  = 72
	MinHeight = 20

	// Below this width the code listing sits above the panel instead of
	// beside it.
	StackedBelow = 110
)

// KeyHint is one key binding shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsTooSmall reports whether the terminal cannot hold a usable frame.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage asks the user to enlarge the terminal.
func RenderMinSizeMessage(width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		theme.Body.Render(fmt.Sprintf(
			"Das Terminal ist zu klein.\n\nBenötigt: %d × %d\nAktuell:  %d × %d",
			MinWidth, MinHeight, width, height,
		)))
}

var bar = lipgloss.NewStyle().
	Background(theme.BgCard).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(theme.Border).
	Padding(0, 1)

// RenderHeader shows the app name on the left, title in the middle and
// status (e.g. the step position) on the right.
func RenderHeader(title, status string, width int) string {
	inner := max(width-bar.GetHorizontalFrameSize(), 0)

	name := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render("TraceTutor")
	right := lipgloss.NewStyle().Foreground(theme.Accent).Render(status)
	side := max(lipgloss.Width(name), lipgloss.Width(right))

	middle := lipgloss.PlaceHorizontal(max(inner-2*side, 0), lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Text).Render(title))
	row := lipgloss.PlaceHorizontal(side, lipgloss.Left, name) +
		middle +
		lipgloss.PlaceHorizontal(side, lipgloss.Right, right)

	return bar.Width(width).Render(row)
}

// RenderFooter lists the key hints of the active screen.
func RenderFooter(hints []KeyHint, width int) string {
	key := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	desc := lipgloss.NewStyle().Foreground(theme.TextDim)

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = key.Render(h.Key) + " " + desc.Render(h.Description)
	}
	return bar.Width(width).Render(strings.Join(parts, "   "))
}

// RenderFrame stacks header, content and footer, padding the content to
// fill the space between them.
func RenderFrame(header, content, footer string, width, height int) string {
	h := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().Width(width).Height(h).MaxHeight(h).Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

// Split is the arrangement of the code listing and the side panel.
type Split struct {
	Stacked     bool
	CodeWidth   int
	CodeHeight  int
	PanelWidth  int
	PanelHeight int
}

// SplitCode divides the content area. Wide terminals put the code on the
// left with a little over half the width; narrow ones stack the code
// above the panel.
func SplitCode(width, height int) Split {
	if width < StackedBelow {
		code := height / 2
		return Split{
			Stacked:     true,
			CodeWidth:   width,
			CodeHeight:  code,
			PanelWidth:  width,
			PanelHeight: height - code,
		}
	}
	code := width * 11 / 20
	return Split{
		CodeWidth:   code,
		CodeHeight:  height,
		PanelWidth:  width - code,
		PanelHeight: height,
	}
}

// Join places the two rendered parts according to the split.
func (s Split) Join(code, panel string) string {
	if s.Stacked {
		return lipgloss.JoinVertical(lipgloss.Left, code, panel)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, code, panel)
}
