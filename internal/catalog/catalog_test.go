package catalog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinTracesValidate(t *testing.T) {
	for _, tr := range Builtin() {
		res := Validate(tr)
		if !res.Valid {
			t.Errorf("builtin trace %q invalid: %v", tr.ID, res.Errors)
		}
	}
}

func TestCatalog_All(t *testing.T) {
	c := New()
	all := c.All()
	require.Len(t, all, 3)
	assert.Equal(t, "array-loop", all[0].ID)
	assert.Equal(t, "method-call", all[1].ID)
	assert.Equal(t, "object-reference", all[2].ID)

	// Mutating the returned slice must not affect the catalog.
	all[0].ID = "changed"
	assert.Equal(t, "array-loop", c.All()[0].ID)
}

func TestCatalog_Get(t *testing.T) {
	c := New()
	tr, err := c.Get("method-call")
	require.NoError(t, err)
	assert.Equal(t, "Methodenaufruf", tr.Title)

	_, err = c.Get("nope")
	assert.True(t, errors.Is(err, ErrTraceNotFound))
}

func TestCatalog_Register(t *testing.T) {
	c := New()
	tr := minimalTrace("custom")
	require.NoError(t, c.Register(tr))

	got, err := c.Get("custom")
	require.NoError(t, err)
	assert.Equal(t, tr.Title, got.Title)
	assert.Len(t, c.All(), 4)

	err = c.Register(tr)
	assert.ErrorContains(t, err, "duplicate")

	bad := minimalTrace("bad")
	bad.Steps = nil
	assert.Error(t, c.Register(bad))
}

func TestArrayLoopTrace(t *testing.T) {
	tr := arrayLoopTrace()
	require.Len(t, tr.Steps, 16)

	last := tr.Steps[len(tr.Steps)-1]
	assert.Equal(t, 11, last.Line)
	assert.Equal(t, []string{"Summe: 3", "Summe: 10", "Summe: 12", "Summe: 17", "Ergebnis: 17"}, last.Console)

	// Every read of an array element highlights it.
	highlighted := 0
	for _, s := range tr.Steps {
		if s.Line == 7 {
			require.NotNil(t, s.Heap[0].HighlightIndex)
			assert.Equal(t, highlighted, *s.Heap[0].HighlightIndex)
			highlighted++
		}
	}
	assert.Equal(t, 4, highlighted)
}

func TestCodeLinesAndLine(t *testing.T) {
	tr := methodCallTrace()
	lines := CodeLines(tr)
	assert.Len(t, lines, 12)
	assert.Equal(t, "int ergebnis = x * 2;", Line(tr, 3))
	assert.Equal(t, "", Line(tr, 0))
	assert.Equal(t, "", Line(tr, 99))
}

func TestDifficultyLabel(t *testing.T) {
	assert.Equal(t, "Grundlagen", DifficultyBasic.Label())
	assert.Equal(t, "Klausur", DifficultyExam.Label())
	assert.Equal(t, "custom", Difficulty("custom").Label())
}

func minimalTrace(id string) Trace {
	return Trace{
		ID:    id,
		Title: "Minimal",
		Code:  "int a = 1;\nint b = a;",
		Steps: []Step{
			{Line: 1, Frames: []StackFrame{{Method: "main", Variables: []Variable{{Name: "a", Type: "int", Value: "1"}}}}},
			{Line: 2},
		},
	}
}
