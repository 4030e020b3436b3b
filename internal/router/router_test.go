package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/tracetutor/internal/screen"
)

type stubScreen struct {
	title   string
	inits   int
	left    int
	updates int
}

func (s *stubScreen) Init() tea.Cmd                            { s.inits++; return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { s.updates++; return s, nil }
func (s *stubScreen) View(int, int) string                    { return s.title }
func (s *stubScreen) Title() string                           { return s.title }
func (s *stubScreen) Leave()                                  { s.left++ }

func stack() (*Router, *stubScreen, *stubScreen, *stubScreen) {
	home := &stubScreen{title: "Start"}
	player := &stubScreen{title: "Rekursion"}
	quiz := &stubScreen{title: "Quiz"}
	r := New(home)
	r.Push(player)
	r.Push(quiz)
	return r, home, player, quiz
}

func isResumed(t *testing.T, cmd tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	assert.IsType(t, ResumedMsg{}, cmd())
}

func TestPush(t *testing.T) {
	r, _, player, quiz := stack()
	assert.Equal(t, 3, r.Depth())
	assert.Same(t, quiz, r.Active())
	assert.Equal(t, 1, player.inits)
	assert.Equal(t, []string{"Rekursion", "Quiz"}, r.Trail())
}

func TestPop(t *testing.T) {
	r, home, player, quiz := stack()

	isResumed(t, r.Update(PopScreenMsg{}))
	assert.Same(t, player, r.Active())
	assert.Equal(t, 1, quiz.left)
	assert.Zero(t, player.left)

	r.Pop()
	assert.Nil(t, r.Pop(), "root stays open")
	assert.Same(t, home, r.Active())
	assert.Zero(t, home.left)
	assert.Empty(t, r.Trail())
}

func TestPopToRoot(t *testing.T) {
	r, home, player, quiz := stack()

	isResumed(t, r.Update(PopToRootMsg{}))
	assert.Equal(t, 1, r.Depth())
	assert.Same(t, home, r.Active())
	assert.Equal(t, 1, player.left)
	assert.Equal(t, 1, quiz.left)

	assert.Nil(t, r.PopToRoot())
}

func TestReplace(t *testing.T) {
	login := &stubScreen{title: "Anmelden"}
	r := New(login)
	home := &stubScreen{title: "Start"}

	r.Update(ReplaceScreenMsg{Screen: home})
	assert.Equal(t, 1, r.Depth())
	assert.Same(t, home, r.Active())
	assert.Equal(t, 1, home.inits)
	assert.Equal(t, 1, login.left)
}

func TestReplaceKeepsDepth(t *testing.T) {
	r, _, _, _ := stack()
	r.Replace(&stubScreen{title: "Wie geht es weiter?"})
	assert.Equal(t, 3, r.Depth())
	assert.Equal(t, []string{"Rekursion", "Wie geht es weiter?"}, r.Trail())
}

func TestLeaveAll(t *testing.T) {
	r, home, player, quiz := stack()
	r.LeaveAll()
	for _, s := range []*stubScreen{home, player, quiz} {
		assert.Equal(t, 1, s.left, s.title)
	}
}

func TestUpdateForwardsToActive(t *testing.T) {
	r, home, _, quiz := stack()
	r.Update(tea.KeyPressMsg{Code: 'a', Text: "a"})
	assert.Equal(t, 1, quiz.updates)
	assert.Zero(t, home.updates)
	assert.Equal(t, "Quiz", r.View(80, 24))
}
