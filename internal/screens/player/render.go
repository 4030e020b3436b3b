package player

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/tracetutor/internal/catalog"
	"github.com/abhisek/tracetutor/internal/ui/theme"
)

// RenderCode renders the numbered listing. current is marked as the line
// just executed and next as the one that runs after it. Zero disables
// either marker.
func RenderCode(lines []string, current, next int) string {
	var b strings.Builder
	for i, line := range lines {
		n := i + 1
		marker := "  "
		style := theme.CodeLine
		switch n {
		case current:
			marker = "▶ "
			style = theme.CurrentLine
		case next:
			marker = "› "
			style = theme.NextLine
		}
		b.WriteString(theme.LineNumber.Render(fmt.Sprintf("%3d ", n)))
		b.WriteString(marker)
		b.WriteString(style.Render(strings.ReplaceAll(line, "\t", "    ")))
		if i < len(lines)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// RenderStack lists the frames with the innermost call first.
func RenderStack(frames []catalog.StackFrame, started bool) string {
	if !started {
		return theme.Hint.Render("Noch kein Schritt ausgeführt.")
	}
	if len(frames) == 0 {
		return theme.Hint.Render("Der Stack ist leer.")
	}
	var b strings.Builder
	for i := len(frames) - 1; i >= 0; i-- {
		f := frames[i]
		b.WriteString(theme.Title.Render(f.Method) + "\n")
		if len(f.Variables) == 0 {
			b.WriteString(theme.Hint.Render("  (keine Variablen)") + "\n")
		}
		for _, v := range f.Variables {
			b.WriteString("  " + renderVariable(v) + "\n")
		}
		if i > 0 {
			b.WriteByte('\n')
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderVariable(v catalog.Variable) string {
	value := v.Value
	if v.IsReference && value == "" {
		value = "null"
		if v.RefID != "" {
			value = "→ " + v.RefID
		}
	}
	text := fmt.Sprintf("%s %s = %s", v.Type, v.Name, value)
	if v.Changed {
		return theme.Changed.Render(text + "  *")
	}
	return theme.Body.Render(text)
}

// RenderHeap lists heap objects with their fields or array cells.
func RenderHeap(objects []catalog.HeapObject, started bool) string {
	if !started {
		return theme.Hint.Render("Noch kein Schritt ausgeführt.")
	}
	if len(objects) == 0 {
		return theme.Hint.Render("Keine Objekte im Heap.")
	}
	var parts []string
	for _, o := range objects {
		head := theme.Title.Render(o.ID) + " " + theme.Body.Render(o.Type)
		if o.Label != "" {
			head += " " + theme.Subtitle.Render(o.Label)
		}
		parts = append(parts, head)
		if len(o.Values) > 0 {
			parts = append(parts, "  "+renderCells(o))
		}
	}
	return strings.Join(parts, "\n")
}

func renderCells(o catalog.HeapObject) string {
	cells := make([]string, len(o.Values))
	for i, v := range o.Values {
		cell := v
		if i < len(o.Indices) {
			cell = fmt.Sprintf("[%d] %s", o.Indices[i], v)
		}
		if o.HighlightIndex != nil && *o.HighlightIndex == i {
			cell = theme.Changed.Render(cell)
		} else {
			cell = theme.Body.Render(cell)
		}
		cells[i] = cell
	}
	return strings.Join(cells, "  ")
}

// RenderConsole shows the program output so far.
func RenderConsole(lines []string, started bool) string {
	if !started || len(lines) == 0 {
		return theme.Hint.Render("(keine Ausgabe)")
	}
	return theme.Body.Render(strings.Join(lines, "\n"))
}

// RenderExplanation describes the current step, or the trace itself
// before the first step.
func RenderExplanation(t catalog.Trace, step catalog.Step, started bool, width int) string {
	wrap := lipgloss.NewStyle().Width(max(width, 20))
	if !started {
		var b strings.Builder
		b.WriteString(t.Description)
		if t.Difficulty != "" {
			b.WriteString("\n\nNiveau: " + t.Difficulty.Label())
		}
		if len(t.LearningGoals) > 0 {
			b.WriteString("\n\nLernziele:")
			for _, g := range t.LearningGoals {
				b.WriteString("\n• " + g)
			}
		}
		b.WriteString("\n\n" + theme.Hint.Render("→ oder Leertaste zum Starten"))
		return wrap.Render(b.String())
	}
	return wrap.Render(theme.Body.Render(fmt.Sprintf("Zeile %d: ", step.Line)) + step.Explanation)
}
