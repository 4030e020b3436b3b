package player

import (
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/tracetutor/internal/catalog"
	"github.com/abhisek/tracetutor/internal/playback"
	"github.com/abhisek/tracetutor/internal/quiz"
	"github.com/abhisek/tracetutor/internal/router"
	"github.com/abhisek/tracetutor/internal/screen"
	quizscreen "github.com/abhisek/tracetutor/internal/screens/quiz"
	"github.com/abhisek/tracetutor/internal/ui/components"
	"github.com/abhisek/tracetutor/internal/ui/layout"
)

// Panel tabs on the right of the code.
const (
	TabStack = iota
	TabHeap
	TabConsole
	TabExplanation
)

var tabLabels = []string{"Stack", "Heap", "Konsole", "Erklärung"}

// runTickMsg advances a running playback. gen discards ticks of a run
// that was stopped in the meantime.
type runTickMsg struct {
	gen int
}

// PlayerScreen steps through one trace.
type PlayerScreen struct {
	trace    catalog.Trace
	cursor   *playback.Cursor
	deps     quizscreen.Deps
	interval time.Duration

	tab     int
	running bool
	runGen  int
}

var _ screen.Screen = (*PlayerScreen)(nil)
var _ screen.KeyHintProvider = (*PlayerScreen)(nil)
var _ screen.StatusProvider = (*PlayerScreen)(nil)

// New creates a player positioned before the first step.
func New(deps quizscreen.Deps, t catalog.Trace) *PlayerScreen {
	return &PlayerScreen{
		trace:    t,
		cursor:   playback.NewCursor(t),
		deps:     deps,
		interval: playback.DefaultInterval,
		tab:      TabExplanation,
	}
}

// Cursor exposes the playback position.
func (p *PlayerScreen) Cursor() *playback.Cursor { return p.cursor }

// Running reports whether the trace is playing to the end.
func (p *PlayerScreen) Running() bool { return p.running }

func (p *PlayerScreen) Init() tea.Cmd {
	return nil
}

func (p *PlayerScreen) Title() string {
	return p.trace.Title
}

func (p *PlayerScreen) Status() string {
	if !p.cursor.Started() {
		return fmt.Sprintf("Start · %d Schritte", p.cursor.Len())
	}
	return fmt.Sprintf("Schritt %d/%d", p.cursor.Index()+1, p.cursor.Len())
}

func (p *PlayerScreen) KeyHints() []layout.KeyHint {
	run := "Abspielen"
	if p.running {
		run = "Anhalten"
	}
	hints := []layout.KeyHint{
		{Key: "←→", Description: "Schritt"},
		{Key: "Space", Description: run},
		{Key: "R", Description: "Neustart"},
		{Key: "Tab", Description: "Ansicht"},
	}
	if _, ok := p.cursor.NextStep(); ok {
		hints = append(hints, layout.KeyHint{Key: "F", Description: "Wie geht's weiter?"})
	}
	if len(p.trace.Questions) > 0 {
		hints = append(hints, layout.KeyHint{Key: "Q", Description: "Quiz"})
	}
	return hints
}

func (p *PlayerScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case runTickMsg:
		return p, p.handleTick(msg)
	case tea.KeyPressMsg:
		return p, p.handleKey(msg)
	}
	return p, nil
}

func (p *PlayerScreen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "right", "l", "n":
		p.stop()
		p.cursor.Next()
	case "left", "h", "p":
		p.stop()
		p.cursor.Prev()
	case "home", "g":
		p.stop()
		p.cursor.Seek(0)
	case "end", "G":
		p.stop()
		p.cursor.Seek(p.cursor.Len() - 1)
	case "r":
		p.stop()
		p.cursor.Reset()
	case "space":
		if p.running {
			p.stop()
			return nil
		}
		return p.start()
	case "tab":
		p.tab = (p.tab + 1) % len(tabLabels)
	case "shift+tab":
		p.tab = (p.tab + len(tabLabels) - 1) % len(tabLabels)
	case "1", "2", "3", "4":
		p.tab = int(msg.String()[0] - '1')
	case "q":
		return p.openQuiz()
	case "f":
		return p.openStepQuiz()
	}
	return nil
}

// start plays from the current step (or the first) to the end.
func (p *PlayerScreen) start() tea.Cmd {
	if p.cursor.Len() == 0 {
		return nil
	}
	if !p.cursor.Started() {
		p.cursor.Next()
	}
	if p.cursor.Finished() {
		return nil
	}
	p.running = true
	p.runGen++
	return p.tick()
}

func (p *PlayerScreen) stop() {
	p.running = false
}

func (p *PlayerScreen) tick() tea.Cmd {
	gen := p.runGen
	return tea.Tick(p.interval, func(time.Time) tea.Msg {
		return runTickMsg{gen: gen}
	})
}

func (p *PlayerScreen) handleTick(msg runTickMsg) tea.Cmd {
	if !p.running || msg.gen != p.runGen {
		return nil
	}
	p.cursor.Next()
	if p.cursor.Finished() {
		p.running = false
		return nil
	}
	return p.tick()
}

func (p *PlayerScreen) openQuiz() tea.Cmd {
	if len(p.trace.Questions) == 0 {
		return nil
	}
	p.stop()
	s := quizscreen.New(p.deps, p.trace.ID, "Quiz: "+p.trace.Title, p.trace.Questions)
	return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
}

func (p *PlayerScreen) openStepQuiz() tea.Cmd {
	questions := quiz.NextLineQuestions(p.trace, p.cursor)
	if len(questions) == 0 {
		return nil
	}
	p.stop()
	setID := fmt.Sprintf("%s:step%d", p.trace.ID, p.cursor.Index()+1)
	s := quizscreen.New(p.deps, setID, "Wie geht es weiter?", questions)
	return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
}

func (p *PlayerScreen) View(width, height int) string {
	split := layout.SplitCode(width, height)

	step, started := p.cursor.Current()
	next, hasNext := p.cursor.NextStep()
	nextLine := 0
	if hasNext && started {
		nextLine = next.Line
	}

	code := components.Panel("Code",
		RenderCode(catalog.CodeLines(p.trace), p.cursor.CurrentLine(), nextLine),
		split.CodeWidth, split.CodeHeight, false)

	var body string
	switch p.tab {
	case TabStack:
		body = RenderStack(step.Frames, started)
	case TabHeap:
		body = RenderHeap(step.Heap, started)
	case TabConsole:
		body = RenderConsole(step.Console, started)
	default:
		body = RenderExplanation(p.trace, step, started, split.PanelWidth-4)
	}
	panel := components.Panel("",
		components.Tabs(tabLabels, p.tab)+"\n\n"+body,
		split.PanelWidth, split.PanelHeight, true)

	return split.Join(code, panel)
}
