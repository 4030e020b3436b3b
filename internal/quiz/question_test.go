package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/tracetutor/internal/catalog"
	"github.com/abhisek/tracetutor/internal/grading"
	"github.com/abhisek/tracetutor/internal/playback"
)

func methodCall(t *testing.T) catalog.Trace {
	t.Helper()
	tr, err := catalog.New().Get("method-call")
	require.NoError(t, err)
	return tr
}

func TestNextLineQuestions_BeforeStart(t *testing.T) {
	tr := methodCall(t)
	c := playback.NewCursor(tr)

	qs := NextLineQuestions(tr, c)
	require.Len(t, qs, 3)

	line := qs[0]
	assert.Equal(t, "method-call:step0:line", line.ID)
	assert.Equal(t, "Welche Zeile wird als erstes ausgeführt?", line.Prompt)
	assert.Equal(t, "Zeile 8", line.CorrectOption)
	assert.Contains(t, line.Options, line.CorrectOption)
	assert.LessOrEqual(t, len(line.Options), 4)

	snippet := qs[1]
	assert.Equal(t, "int zahl = 5;", snippet.CorrectOption)
	assert.Contains(t, snippet.Options, snippet.CorrectOption)
	assert.LessOrEqual(t, len(snippet.Options), 4)

	concept := qs[2]
	assert.Equal(t, string(ConceptAssignment), concept.CorrectOption)
	assert.Len(t, concept.Options, 4)
	assert.Contains(t, concept.Options, concept.CorrectOption)

	for _, q := range qs {
		assert.Equal(t, catalog.KindChoice, q.Kind)
	}
}

func TestNextLineQuestions_AfterStep(t *testing.T) {
	tr := methodCall(t)
	c := playback.NewCursor(tr)
	c.Next() // line 8
	c.Next() // line 9

	qs := NextLineQuestions(tr, c)
	require.Len(t, qs, 3)
	assert.Equal(t, "Welche Zeile wird als nächstes nach Zeile 9 ausgeführt?", qs[0].Prompt)
	assert.Equal(t, "Zeile 3", qs[0].CorrectOption)
	assert.Equal(t, "int ergebnis = x * 2;", qs[1].CorrectOption)
}

func TestNextLineQuestions_LastStep(t *testing.T) {
	tr := methodCall(t)
	c := playback.NewCursor(tr)
	c.Seek(len(tr.Steps) - 1)
	assert.Nil(t, NextLineQuestions(tr, c))
}

func TestLineOptions(t *testing.T) {
	tr := methodCall(t)
	opts := lineOptions(tr, 3, len(catalog.CodeLines(tr)))
	require.Len(t, opts, 4)
	assert.Contains(t, opts, 3)
	assert.IsIncreasing(t, opts)

	// Executed lines are preferred as distractors.
	executed := map[int]bool{}
	for _, s := range tr.Steps {
		executed[s.Line] = true
	}
	for _, n := range opts {
		assert.True(t, executed[n], "line %d was never executed", n)
	}
}

func TestLineOptions_FillsFromCode(t *testing.T) {
	tr := catalog.Trace{Code: "a\nb\nc\nd\ne", Steps: []catalog.Step{{Line: 3}}}
	assert.Equal(t, []int{2, 3, 4, 5}, lineOptions(tr, 3, 5))
}

func TestSnippetOptions_BlankLines(t *testing.T) {
	lines := []string{"int a = 1;", "", "a++;"}
	opts := snippetOptions([]int{1, 2, 3}, lines, 2)
	assert.Contains(t, opts, "(leer)")
	assert.Len(t, opts, 3)
}

func TestConceptOptions(t *testing.T) {
	opts := conceptOptions(ConceptReturn)
	assert.Equal(t, []string{
		string(ConceptObjectCreation),
		string(ConceptMethodCall),
		string(ConceptAssignment),
		string(ConceptReturn),
	}, opts)
}

func TestLineOptionRoundTrip(t *testing.T) {
	n, ok := ParseLineOption(LineOption(12))
	assert.True(t, ok)
	assert.Equal(t, 12, n)

	_, ok = ParseLineOption("zwölf")
	assert.False(t, ok)
}

func TestCheckChoice(t *testing.T) {
	q := catalog.Question{Kind: catalog.KindChoice, Options: []string{"a", "b"}, CorrectOption: "b"}
	assert.True(t, CheckChoice(q, "b"))
	assert.True(t, CheckChoice(q, " b\n"))
	assert.False(t, CheckChoice(q, "a"))
	assert.False(t, CheckChoice(q, ""))
}

func TestCheckOpen(t *testing.T) {
	q := catalog.Question{
		Kind:              catalog.KindOpen,
		ReferenceSolution: "Objekte werden im Heap gespeichert, Referenzen im Stack.",
	}
	res := CheckOpen(q, "objekte heap referenzen stack")
	assert.Equal(t, grading.VerdictPartial, res.Verdict)

	coding := catalog.Question{Kind: catalog.KindCoding, ReferenceSolution: "Punkt c = new Punkt(); c.x = a.x;"}
	res = CheckOpen(coding, "")
	assert.Equal(t, grading.VerdictWrong, res.Verdict)
	assert.Equal(t, grading.Evaluate(coding.ReferenceSolution, "", true), res)
}
