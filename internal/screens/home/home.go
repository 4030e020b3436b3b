package home

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/tracetutor/internal/catalog"
	"github.com/abhisek/tracetutor/internal/router"
	"github.com/abhisek/tracetutor/internal/screen"
	"github.com/abhisek/tracetutor/internal/screens/player"
	quizscreen "github.com/abhisek/tracetutor/internal/screens/quiz"
	"github.com/abhisek/tracetutor/internal/store"
	"github.com/abhisek/tracetutor/internal/ui/components"
	"github.com/abhisek/tracetutor/internal/ui/layout"
	"github.com/abhisek/tracetutor/internal/ui/theme"
)

// StatsSource provides the evaluation summary shown on the home screen.
// store.EventRepo satisfies it.
type StatsSource interface {
	EvaluationStats(ctx context.Context) (*store.EvaluationStats, error)
}

// Deps are the collaborators of the home screen.
type Deps struct {
	Catalog *catalog.Catalog
	Stats   StatsSource // nil hides the summary
	Quiz    quizscreen.Deps
}

// traceStats sums the attempts of a trace and its step quizzes.
type traceStats struct {
	attempts int
	passed   int
}

// HomeScreen lists the traces.
type HomeScreen struct {
	deps   Deps
	traces []catalog.Trace
	menu   components.Menu

	stats   *store.EvaluationStats
	byTrace map[string]traceStats
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps Deps) *HomeScreen {
	h := &HomeScreen{deps: deps}
	if deps.Catalog != nil {
		h.traces = deps.Catalog.All()
	}
	h.refreshStats()
	h.buildMenu()
	return h
}

func (h *HomeScreen) buildMenu() {
	selected := h.menu.Selected
	items := make([]components.MenuItem, 0, len(h.traces)+1)
	for _, t := range h.traces {
		tr := t
		items = append(items, components.MenuItem{
			Label:  tr.Title,
			Detail: h.detail(tr),
			Action: func() tea.Cmd {
				s := player.New(h.deps.Quiz, tr)
				return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
			},
		})
	}
	items = append(items, components.MenuItem{
		Label:  "Beenden",
		Action: func() tea.Cmd { return tea.Quit },
	})
	h.menu = components.NewMenu(items)
	if selected > 0 && selected < len(items) {
		h.menu.Selected = selected
	}
}

func (h *HomeScreen) detail(t catalog.Trace) string {
	parts := []string{}
	if t.Difficulty != "" {
		parts = append(parts, t.Difficulty.Label())
	}
	parts = append(parts, fmt.Sprintf("%d Schritte", len(t.Steps)))
	if n := len(t.Questions); n > 0 {
		parts = append(parts, fmt.Sprintf("%d Fragen", n))
	}
	if st, ok := h.byTrace[t.ID]; ok && st.attempts > 0 {
		parts = append(parts, fmt.Sprintf("%d/%d bestanden", st.passed, st.attempts))
	}
	return strings.Join(parts, " · ")
}

func (h *HomeScreen) refreshStats() {
	h.byTrace = make(map[string]traceStats)
	if h.deps.Stats == nil {
		return
	}
	stats, err := h.deps.Stats.EvaluationStats(context.Background())
	if err != nil {
		slog.Warn("home: loading stats failed", "err", err)
		return
	}
	h.stats = stats
	for _, ts := range stats.ByTrace {
		id, _, _ := strings.Cut(ts.TraceID, ":")
		agg := h.byTrace[id]
		agg.attempts += ts.Attempts
		agg.passed += ts.Passed
		h.byTrace[id] = agg
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Title() string {
	return "Traces"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Auswahl"},
		{Key: "1-9", Description: "Direktwahl"},
		{Key: "Enter", Description: "Öffnen"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if _, ok := msg.(router.ResumedMsg); ok {
		h.refreshStats()
		h.buildMenu()
		return h, nil
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var sections []string
	sections = append(sections,
		theme.Title.Render("TraceTutor"),
		theme.Subtitle.Render("Java-Programme Schritt für Schritt verstehen"),
	)
	if h.stats != nil && h.stats.Total > 0 {
		sections = append(sections, theme.Body.Render(fmt.Sprintf(
			"Bisher %d Antworten geprüft · Ø %.0f %% Übereinstimmung",
			h.stats.Total, h.stats.AvgScore*100)))
	}
	if len(h.traces) == 0 {
		sections = append(sections, theme.Hint.Render("Keine Traces gefunden."))
	}
	// Title, subtitle, stats line, blank line and the card's padding.
	sections = append(sections, "", h.menu.View(height-10))

	content := strings.Join(sections, "\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		theme.Card.Padding(1, 3).Render(content))
}
