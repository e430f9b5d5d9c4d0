package router

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/eduvantage/internal/dashboard"
	"github.com/abhisek/eduvantage/internal/screen"
)

// SelectViewMsg requests the router to switch to a view.
type SelectViewMsg struct {
	View dashboard.View
}

// NextViewMsg cycles to the next view.
type NextViewMsg struct{}

// PrevViewMsg cycles to the previous view.
type PrevViewMsg struct{}

// Router switches between the task views. Every view stays alive while
// another is shown, so in-flight results and typed input survive a switch.
type Router struct {
	state   *dashboard.State
	screens map[dashboard.View]screen.Screen
}

// New creates a Router over state. screens must hold one screen per view.
func New(state *dashboard.State, screens map[dashboard.View]screen.Screen) *Router {
	return &Router{state: state, screens: screens}
}

// Init runs every screen's Init.
func (r *Router) Init() tea.Cmd {
	var cmds []tea.Cmd
	for _, v := range dashboard.Views() {
		if s := r.screens[v]; s != nil {
			cmds = append(cmds, s.Init())
		}
	}
	return tea.Batch(cmds...)
}

// Active returns the screen for the active view.
func (r *Router) Active() screen.Screen {
	return r.screens[r.state.Active()]
}

// Update handles navigation messages, delivers addressed messages to their
// view, sends input to the active view and broadcasts everything else.
func (r *Router) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case SelectViewMsg:
		r.state.Select(msg.View)
		return nil
	case NextViewMsg:
		r.state.Next()
		return nil
	case PrevViewMsg:
		r.state.Prev()
		return nil
	case screen.Addressed:
		return r.forward(msg.Target(), msg)
	case tea.KeyMsg, tea.PasteMsg:
		return r.forward(r.state.Active(), msg)
	}

	var cmds []tea.Cmd
	for _, v := range dashboard.Views() {
		cmds = append(cmds, r.forward(v, msg))
	}
	return tea.Batch(cmds...)
}

func (r *Router) forward(v dashboard.View, msg tea.Msg) tea.Cmd {
	s := r.screens[v]
	if s == nil {
		return nil
	}
	updated, cmd := s.Update(msg)
	r.screens[v] = updated
	return cmd
}

// View renders the active screen.
func (r *Router) View(width, height int) string {
	active := r.Active()
	if active == nil {
		return ""
	}
	return active.View(width, height)
}
