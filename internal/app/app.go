package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/tracetutor/internal/auth"
	"github.com/abhisek/tracetutor/internal/catalog"
	"github.com/abhisek/tracetutor/internal/review"
	"github.com/abhisek/tracetutor/internal/router"
	"github.com/abhisek/tracetutor/internal/screen"
	"github.com/abhisek/tracetutor/internal/screens/home"
	"github.com/abhisek/tracetutor/internal/screens/login"
	quizscreen "github.com/abhisek/tracetutor/internal/screens/quiz"
	"github.com/abhisek/tracetutor/internal/store"
	"github.com/abhisek/tracetutor/internal/ui/layout"
)

// Options holds the dependencies of the interactive app.
type Options struct {
	Catalog  *catalog.Catalog
	Store    *store.Store       // nil keeps progress in memory only
	Auth     auth.Authenticator // nil skips the login screen
	Reviewer *review.Reviewer   // nil disables second opinions
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

// newAppModel creates the root model. The login screen is shown first
// when the gate is closed.
func newAppModel(opts Options) AppModel {
	deps := home.Deps{
		Catalog: opts.Catalog,
		Quiz:    quizscreen.Deps{Reviewer: opts.Reviewer},
	}
	if opts.Store != nil {
		events := opts.Store.EventRepo()
		deps.Stats = events
		deps.Quiz.KV = opts.Store.KVRepo()
		deps.Quiz.Recorder = events
	}
	homeFactory := func() screen.Screen { return home.New(deps) }

	var initial screen.Screen
	if opts.Auth != nil && !opts.Auth.IsAuthenticated(context.Background()) {
		initial = login.New(opts.Auth, homeFactory)
	} else {
		initial = homeFactory()
	}
	return AppModel{
		router: router.New(initial),
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			m.router.LeaveAll()
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		case "ctrl+g":
			return m, m.router.PopToRoot()
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := active.Title()
	if trail := m.router.Trail(); len(trail) > 1 {
		title = strings.Join(trail, " › ")
	}
	status := ""
	if sp, ok := active.(screen.StatusProvider); ok {
		status = sp.Status()
	}

	header := layout.RenderHeader(title, status, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)

	content := m.router.View(m.width, contentHeight)
	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	var hints []layout.KeyHint
	if kp, ok := active.(screen.KeyHintProvider); ok {
		hints = append(hints, kp.KeyHints()...)
	}
	if m.router.Depth() > 1 {
		hints = append(hints, layout.KeyHint{Key: "Esc", Description: "Zurück"})
	}
	if m.router.Depth() > 2 {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+G", Description: "Übersicht"})
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Beenden"})
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	if _, err := p.Run(); err != nil {
		slog.Error("tui exited with error", "err", err)
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
