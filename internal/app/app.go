package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/eduvantage/internal/dashboard"
	"github.com/abhisek/eduvantage/internal/prompt"
	"github.com/abhisek/eduvantage/internal/router"
	"github.com/abhisek/eduvantage/internal/screen"
	"github.com/abhisek/eduvantage/internal/screens/doubts"
	"github.com/abhisek/eduvantage/internal/screens/planner"
	"github.com/abhisek/eduvantage/internal/screens/resources"
	"github.com/abhisek/eduvantage/internal/ui/layout"
)

// StudyService is everything the dashboard asks of the study layer.
type StudyService interface {
	planner.Generator
	doubts.Solver
	resources.Finder
}

// Options holds dependencies injected into the app.
type Options struct {
	// Study runs the three actions. Nil leaves the dashboard read-only.
	Study   StudyService
	Persona prompt.Persona
	Log     *zap.Logger
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	state  *dashboard.State
	router *router.Router
	online bool
	width  int
	height int
}

// newAppModel builds the dashboard with one screen per view.
func newAppModel(ctx context.Context, opts Options) AppModel {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	state := dashboard.NewState(opts.Persona)

	var (
		gen    planner.Generator
		solver doubts.Solver
		finder resources.Finder
	)
	if opts.Study != nil {
		gen, solver, finder = opts.Study, opts.Study, opts.Study
	}

	screens := map[dashboard.View]screen.Screen{
		dashboard.Planner:   planner.New(ctx, state, gen, log),
		dashboard.Doubts:    doubts.New(ctx, state, solver, log),
		dashboard.Resources: resources.New(ctx, state, finder, log),
	}
	return AppModel{
		state:  state,
		router: router.New(state, screens),
		online: opts.Study != nil,
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Init()
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
			return m, tea.Quit
		case "tab":
			return m, m.router.Update(router.NextViewMsg{})
		case "shift+tab":
			return m, m.router.Update(router.PrevViewMsg{})
		case "f1":
			return m, m.router.Update(router.SelectViewMsg{View: dashboard.Planner})
		case "f2":
			return m, m.router.Update(router.SelectViewMsg{View: dashboard.Doubts})
		case "f3":
			return m, m.router.Update(router.SelectViewMsg{View: dashboard.Resources})
		case "ctrl+p":
			m.state.TogglePersona()
			return m, nil
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

	v.SetContent(m.render())
	return v
}

func (m AppModel) render() string {
	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}
	if !m.online {
		title += " (offline)"
	}

	header := layout.RenderHeader(title, m.state.Persona.Label(), m.width)

	tabs := make([]layout.Tab, 0, 3)
	for _, view := range dashboard.Views() {
		tabs = append(tabs, layout.Tab{
			Title:  view.Title(),
			Active: view == m.state.Active(),
			Busy:   m.state.Loading(view),
		})
	}
	tabBar := layout.RenderTabs(tabs, m.width)

	var footerHints []layout.KeyHint
	if p, ok := active.(screen.KeyHintProvider); ok {
		footerHints = append(footerHints, p.KeyHints()...)
	}
	footerHints = append(footerHints,
		layout.KeyHint{Key: "Tab", Description: "View"},
		layout.KeyHint{Key: "Ctrl+P", Description: "Track"},
		layout.KeyHint{Key: "Ctrl+C", Description: "Quit"},
	)
	if layout.IsCompactWidth(m.width) {
		footerHints = footerHints[len(footerHints)-3:]
	}
	footer := layout.RenderFooter(footerHints, m.width)

	used := lipgloss.Height(header) + lipgloss.Height(tabBar) + lipgloss.Height(footer)
	contentHeight := max(m.height-used, 0)
	content := m.router.View(m.width, contentHeight)

	return layout.RenderFrame(header, tabBar, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(newAppModel(ctx, opts), tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
