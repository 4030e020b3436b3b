package player

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/tracetutor/internal/catalog"
	"github.com/abhisek/tracetutor/internal/router"
	quizscreen "github.com/abhisek/tracetutor/internal/screens/quiz"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func builtin(t *testing.T, id string) catalog.Trace {
	t.Helper()
	tr, err := catalog.New().Get(id)
	require.NoError(t, err)
	return tr
}

func TestStepKeys(t *testing.T) {
	p := New(quizscreen.Deps{}, builtin(t, "method-call"))
	assert.False(t, p.Cursor().Started())
	assert.Contains(t, p.Status(), "Start")

	p.Update(specialKey(tea.KeyRight))
	p.Update(keyPress('n'))
	assert.Equal(t, 1, p.Cursor().Index())
	assert.Equal(t, "Schritt 2/5", p.Status())

	p.Update(specialKey(tea.KeyLeft))
	p.Update(keyPress('p'))
	assert.Equal(t, 0, p.Cursor().Index(), "prev stops at the first step")

	p.Update(specialKey(tea.KeyEnd))
	assert.True(t, p.Cursor().Finished())

	p.Update(keyPress('r'))
	assert.Equal(t, -1, p.Cursor().Index())
}

func TestRunAllTicksToEnd(t *testing.T) {
	p := New(quizscreen.Deps{}, builtin(t, "method-call"))

	_, cmd := p.Update(specialKey(tea.KeySpace))
	require.NotNil(t, cmd)
	assert.True(t, p.Running())
	assert.Equal(t, 0, p.Cursor().Index())

	gen := p.runGen
	for i := 0; i < 10 && p.Running(); i++ {
		p.Update(runTickMsg{gen: gen})
	}
	assert.False(t, p.Running())
	assert.True(t, p.Cursor().Finished())
}

func TestRunAllStopsOnStepKey(t *testing.T) {
	p := New(quizscreen.Deps{}, builtin(t, "array-loop"))
	p.Update(specialKey(tea.KeySpace))
	gen := p.runGen

	p.Update(specialKey(tea.KeyRight))
	assert.False(t, p.Running())
	idx := p.Cursor().Index()

	// A tick of the stopped run is ignored.
	_, cmd := p.Update(runTickMsg{gen: gen})
	assert.Nil(t, cmd)
	assert.Equal(t, idx, p.Cursor().Index())

	// Space toggles a new run off again.
	p.Update(specialKey(tea.KeySpace))
	assert.True(t, p.Running())
	p.Update(specialKey(tea.KeySpace))
	assert.False(t, p.Running())
}

func TestTabs(t *testing.T) {
	p := New(quizscreen.Deps{}, builtin(t, "array-loop"))
	assert.Equal(t, TabExplanation, p.tab)

	p.Update(specialKey(tea.KeyTab))
	assert.Equal(t, TabStack, p.tab)
	p.Update(keyPress('2'))
	assert.Equal(t, TabHeap, p.tab)

	p.Update(specialKey(tea.KeyRight))
	p.Update(specialKey(tea.KeyRight))
	view := p.View(120, 30)
	assert.Contains(t, view, "arr1")
	assert.Contains(t, view, "[1] 7")
}

func TestQuizKeysPushScreens(t *testing.T) {
	p := New(quizscreen.Deps{}, builtin(t, "object-reference"))

	_, cmd := p.Update(keyPress('q'))
	require.NotNil(t, cmd)
	push, ok := cmd().(router.PushScreenMsg)
	require.True(t, ok)
	assert.Contains(t, push.Screen.Title(), "Quiz")

	_, cmd = p.Update(keyPress('f'))
	require.NotNil(t, cmd)
	push, ok = cmd().(router.PushScreenMsg)
	require.True(t, ok)
	assert.Equal(t, "Wie geht es weiter?", push.Screen.Title())

	p.Update(specialKey(tea.KeyEnd))
	_, cmd = p.Update(keyPress('f'))
	assert.Nil(t, cmd, "no step questions on the last step")
}

func TestRenderCodeMarksLines(t *testing.T) {
	out := RenderCode([]string{"int a = 1;", "a++;", "return a;"}, 2, 3)
	assert.Contains(t, out, "▶ ")
	assert.Contains(t, out, "› ")
	assert.Contains(t, out, "  1 ")
}

func TestRenderStackInnermostFirst(t *testing.T) {
	frames := []catalog.StackFrame{
		{Method: "main", Variables: []catalog.Variable{{Name: "x", Type: "int", Value: "1"}}},
		{Method: "quadrat", Variables: []catalog.Variable{{Name: "n", Type: "int", Value: "3", Changed: true}}},
	}
	out := RenderStack(frames, true)
	assert.Less(t, strings.Index(out, "quadrat"), strings.Index(out, "main"))
	assert.Contains(t, out, "int n = 3")
	assert.Contains(t, RenderStack(nil, false), "Noch kein Schritt")
}

func TestRenderConsole(t *testing.T) {
	assert.Contains(t, RenderConsole(nil, true), "keine Ausgabe")
	assert.Contains(t, RenderConsole([]string{"Summe: 3"}, true), "Summe: 3")
}
