package quiz

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/abhisek/tracetutor/internal/catalog"
	"github.com/abhisek/tracetutor/internal/grading"
	"github.com/abhisek/tracetutor/internal/playback"
)

const (
	maxLineOptions     = 4
	maxSnippetOptions  = 4
	conceptDistractors = 3

	emptyLine = "(leer)"
)

// LineOption formats a line number as a choice option.
func LineOption(n int) string {
	return fmt.Sprintf("Zeile %d", n)
}

// ParseLineOption extracts the line number from a LineOption string.
func ParseLineOption(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "Zeile")))
	if err != nil {
		return 0, false
	}
	return n, true
}

// NextLineQuestions derives the three step questions for the step after
// the cursor's position: which line runs next, which code it holds and
// what that code mainly does. It returns nil when there is no next step.
func NextLineQuestions(t catalog.Trace, c *playback.Cursor) []catalog.Question {
	next, ok := c.NextStep()
	if !ok {
		return nil
	}

	lines := catalog.CodeLines(t)
	correctLine := next.Line
	lineOpts := lineOptions(t, correctLine, len(lines))

	correctSnippet := "(unbekannt)"
	if correctLine > 0 && correctLine <= len(lines) {
		correctSnippet = cleanLine(lines[correctLine-1])
	}
	correctConcept := ClassifyLine(correctSnippet)

	idPrefix := fmt.Sprintf("%s:step%d", t.ID, c.Index()+1)

	linePrompt := "Welche Zeile wird als erstes ausgeführt?"
	if cur := c.CurrentLine(); cur > 0 {
		linePrompt = fmt.Sprintf("Welche Zeile wird als nächstes nach Zeile %d ausgeführt?", cur)
	}

	lineChoices := make([]string, len(lineOpts))
	for i, n := range lineOpts {
		lineChoices[i] = LineOption(n)
	}

	return []catalog.Question{
		{
			ID:            idPrefix + ":line",
			Kind:          catalog.KindChoice,
			Prompt:        linePrompt,
			Options:       lineChoices,
			CorrectOption: LineOption(correctLine),
			Explanation:   next.Explanation,
		},
		{
			ID:            idPrefix + ":snippet",
			Kind:          catalog.KindChoice,
			Prompt:        "Welcher Code steht in der nächsten ausgeführten Zeile?",
			Options:       snippetOptions(lineOpts, lines, correctLine),
			CorrectOption: correctSnippet,
		},
		{
			ID:            idPrefix + ":concept",
			Kind:          catalog.KindChoice,
			Prompt:        "Was macht die nächste Zeile hauptsächlich?",
			Options:       conceptOptions(correctConcept),
			CorrectOption: string(correctConcept),
		},
	}
}

// lineOptions returns the correct line plus the executed lines closest to
// it, ascending. Code lines next to the correct one fill up traces with
// too few distinct executed lines.
func lineOptions(t catalog.Trace, correct, lineCount int) []int {
	seen := map[int]bool{correct: true}
	var candidates []int
	for _, s := range t.Steps {
		if !seen[s.Line] {
			seen[s.Line] = true
			candidates = append(candidates, s.Line)
		}
	}
	for d := 1; d < lineCount; d++ {
		for _, n := range []int{correct + d, correct - d} {
			if n >= 1 && n <= lineCount && !seen[n] {
				seen[n] = true
				candidates = append(candidates, n)
			}
		}
	}

	// Executed lines come first; stable sort keeps that preference for
	// equal distances.
	executed := make(map[int]bool, len(t.Steps))
	for _, s := range t.Steps {
		executed[s.Line] = true
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		ei, ej := executed[candidates[i]], executed[candidates[j]]
		if ei != ej {
			return ei
		}
		return abs(candidates[i]-correct) < abs(candidates[j]-correct)
	})

	opts := []int{correct}
	for _, n := range candidates {
		if len(opts) == maxLineOptions {
			break
		}
		opts = append(opts, n)
	}
	sort.Ints(opts)
	return opts
}

func snippetOptions(lineOpts []int, lines []string, correct int) []string {
	var out []string
	seen := make(map[string]bool)
	add := func(s string) {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}

	if correct > 0 && correct <= len(lines) {
		add(cleanLine(lines[correct-1]))
	}
	for _, n := range lineOpts {
		if n > 0 && n <= len(lines) {
			add(cleanLine(lines[n-1]))
		}
	}
	for i := 0; i < len(lines) && len(out) < maxSnippetOptions; i++ {
		add(cleanLine(lines[i]))
	}
	if len(out) > maxSnippetOptions {
		out = out[:maxSnippetOptions]
	}
	sort.Strings(out)
	return out
}

// conceptOptions returns the correct concept and three distractors in
// display order.
func conceptOptions(correct Concept) []string {
	picked := map[Concept]bool{correct: true}
	n := 0
	for _, c := range AllConcepts() {
		if n == conceptDistractors {
			break
		}
		if c != correct {
			picked[c] = true
			n++
		}
	}

	var out []string
	for _, c := range AllConcepts() {
		if picked[c] {
			out = append(out, string(c))
		}
	}
	return out
}

func cleanLine(line string) string {
	t := strings.TrimSpace(line)
	if t == "" {
		return emptyLine
	}
	return t
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// CheckChoice reports whether answer is the correct option of q.
func CheckChoice(q catalog.Question, answer string) bool {
	return strings.TrimSpace(answer) == q.CorrectOption
}

// CheckOpen grades a free-text answer against the question's reference
// solution. Coding questions use the stricter coding thresholds.
func CheckOpen(q catalog.Question, answer string) grading.Result {
	return grading.Evaluate(q.ReferenceSolution, answer, q.Kind == catalog.KindCoding)
}
