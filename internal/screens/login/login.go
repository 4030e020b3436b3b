package login

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/tracetutor/internal/auth"
	"github.com/abhisek/tracetutor/internal/router"
	"github.com/abhisek/tracetutor/internal/screen"
	"github.com/abhisek/tracetutor/internal/ui/components"
	"github.com/abhisek/tracetutor/internal/ui/layout"
	"github.com/abhisek/tracetutor/internal/ui/theme"
)

type loginResultMsg struct {
	OK  bool
	Err error
}

// LoginScreen asks for user name and password before the home screen.
type LoginScreen struct {
	auth        auth.Authenticator
	homeFactory func() screen.Screen

	user     components.TextInput
	password components.TextInput
	focus    int // 0 user, 1 password
	pending  bool
	errMsg   string
}

var _ screen.Screen = (*LoginScreen)(nil)
var _ screen.KeyHintProvider = (*LoginScreen)(nil)

// New creates a LoginScreen that replaces itself with homeFactory() on success.
func New(a auth.Authenticator, homeFactory func() screen.Screen) *LoginScreen {
	return &LoginScreen{
		auth:        a,
		homeFactory: homeFactory,
		user:        components.NewTextInput("Benutzername", 64, false),
		password:    components.NewTextInput("Passwort", 128, true),
	}
}

func (l *LoginScreen) Init() tea.Cmd {
	return l.user.Focus()
}

func (l *LoginScreen) Title() string {
	return "Anmelden"
}

func (l *LoginScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Feld wechseln"},
		{Key: "Enter", Description: "Anmelden"},
	}
}

func (l *LoginScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loginResultMsg:
		l.pending = false
		switch {
		case msg.Err != nil:
			l.errMsg = "Anmeldung nicht möglich: " + msg.Err.Error()
		case !msg.OK:
			l.errMsg = "Benutzername oder Passwort ist falsch."
			l.password.SetValue("")
		default:
			home := l.homeFactory()
			return l, func() tea.Msg { return router.ReplaceScreenMsg{Screen: home} }
		}
		return l, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "tab", "shift+tab", "up", "down":
			return l, l.switchFocus()
		case "enter":
			if l.focus == 0 {
				return l, l.switchFocus()
			}
			return l, l.submit()
		}
	}

	var cmd tea.Cmd
	if l.focus == 0 {
		l.user, cmd = l.user.Update(msg)
	} else {
		l.password, cmd = l.password.Update(msg)
	}
	return l, cmd
}

func (l *LoginScreen) switchFocus() tea.Cmd {
	if l.focus == 0 {
		l.focus = 1
		l.user.Blur()
		return l.password.Focus()
	}
	l.focus = 0
	l.password.Blur()
	return l.user.Focus()
}

func (l *LoginScreen) submit() tea.Cmd {
	if l.pending {
		return nil
	}
	user := strings.TrimSpace(l.user.Value())
	pass := l.password.Value()
	if user == "" || pass == "" {
		l.errMsg = "Bitte Benutzername und Passwort eingeben."
		return nil
	}
	l.pending = true
	l.errMsg = ""
	a := l.auth
	return func() tea.Msg {
		ok, err := a.Login(context.Background(), user, pass)
		return loginResultMsg{OK: ok, Err: err}
	}
}

func (l *LoginScreen) View(width, height int) string {
	var sections []string
	sections = append(sections,
		theme.Title.Render("Willkommen bei TraceTutor"),
		theme.Subtitle.Render("Bitte melde dich an."),
		"",
		l.user.View(),
		l.password.View(),
	)
	if l.pending {
		sections = append(sections, "", theme.Hint.Render("Prüfe Anmeldedaten…"))
	}
	if l.errMsg != "" {
		sections = append(sections, "", theme.ErrorText.Render(l.errMsg))
	}
	card := theme.Card.Padding(1, 3).Render(strings.Join(sections, "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}
