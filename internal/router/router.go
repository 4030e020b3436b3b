// Package router keeps the stack of open screens: home, then a trace
// player, then the quiz opened from it.
package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/tracetutor/internal/screen"
)

// PushScreenMsg opens a screen on top of the current one.
type PushScreenMsg struct {
	Screen screen.Screen
}

// PopScreenMsg closes the current screen.
type PopScreenMsg struct{}

// PopToRootMsg closes every screen above the first.
type PopToRootMsg struct{}

// ReplaceScreenMsg swaps the current screen, e.g. login for home.
type ReplaceScreenMsg struct {
	Screen screen.Screen
}

// ResumedMsg is sent to the screen that becomes active again after the
// screens above it were closed, so it can reload state they changed.
type ResumedMsg struct{}

// Router manages a stack of screens. The stack is never empty.
type Router struct {
	stack []screen.Screen
}

// New creates a router showing initial.
func New(initial screen.Screen) *Router {
	return &Router{stack: []screen.Screen{initial}}
}

func resumed() tea.Msg { return ResumedMsg{} }

func leave(s screen.Screen) {
	if l, ok := s.(screen.Leaver); ok {
		l.Leave()
	}
}

// Push opens s and returns its Init command.
func (r *Router) Push(s screen.Screen) tea.Cmd {
	r.stack = append(r.stack, s)
	return s.Init()
}

// Pop closes the top screen. The last screen is never closed.
func (r *Router) Pop() tea.Cmd {
	if len(r.stack) <= 1 {
		return nil
	}
	top := len(r.stack) - 1
	leave(r.stack[top])
	r.stack = r.stack[:top]
	return resumed
}

// PopToRoot closes all screens above the first.
func (r *Router) PopToRoot() tea.Cmd {
	if len(r.stack) <= 1 {
		return nil
	}
	for i := len(r.stack) - 1; i > 0; i-- {
		leave(r.stack[i])
	}
	r.stack = r.stack[:1]
	return resumed
}

// Replace swaps the top screen for s.
func (r *Router) Replace(s screen.Screen) tea.Cmd {
	top := len(r.stack) - 1
	leave(r.stack[top])
	r.stack[top] = s
	return s.Init()
}

// LeaveAll notifies every open screen, top first. Called on quit.
func (r *Router) LeaveAll() {
	for i := len(r.stack) - 1; i >= 0; i-- {
		leave(r.stack[i])
	}
}

// Active returns the top screen.
func (r *Router) Active() screen.Screen {
	return r.stack[len(r.stack)-1]
}

// Depth returns the number of open screens.
func (r *Router) Depth() int {
	return len(r.stack)
}

// Trail returns the titles of the open screens above the first, bottom
// up. It is empty on the root screen.
func (r *Router) Trail() []string {
	titles := make([]string, 0, len(r.stack)-1)
	for _, s := range r.stack[1:] {
		titles = append(titles, s.Title())
	}
	return titles
}

// Update handles navigation messages and forwards everything else to the
// active screen.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case PushScreenMsg:
		return r.Push(msg.Screen)
	case PopScreenMsg:
		return r.Pop()
	case PopToRootMsg:
		return r.PopToRoot()
	case ReplaceScreenMsg:
		return r.Replace(msg.Screen)
	}

	updated, cmd := r.Active().Update(msg)
	r.stack[len(r.stack)-1] = updated
	return cmd
}

// View renders the active screen.
func (r *Router) View(width, height int) string {
	return r.Active().View(width, height)
}
