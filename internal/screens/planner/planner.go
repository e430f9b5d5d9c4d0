// Package planner is the study planner view: subject and weekly hours in,
// a prioritised topic table out.
package planner

import (
	"context"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/eduvantage/internal/dashboard"
	"github.com/abhisek/eduvantage/internal/prompt"
	"github.com/abhisek/eduvantage/internal/screen"
	"github.com/abhisek/eduvantage/internal/study"
	"github.com/abhisek/eduvantage/internal/ui/components"
	"github.com/abhisek/eduvantage/internal/ui/layout"
	"github.com/abhisek/eduvantage/internal/ui/theme"
)

// Generator produces study plans.
type Generator interface {
	GeneratePlan(ctx context.Context, persona prompt.Persona, subject string, weeklyHours float64) (study.Plan, error)
}

// planDoneMsg carries a finished plan request back to the planner.
type planDoneMsg struct {
	ticket study.Ticket
	plan   study.Plan
	err    error
}

func (planDoneMsg) Target() dashboard.View { return dashboard.Planner }

const (
	focusSubject = iota
	focusHours
)

// PlannerScreen implements screen.Screen for the study planner.
type PlannerScreen struct {
	ctx     context.Context
	state   *dashboard.State
	gen     Generator
	log     *zap.Logger
	slot    study.Slot
	subject components.TextInput
	hours   components.TextInput
	focus   int
	offset  int
}

var _ screen.Screen = (*PlannerScreen)(nil)
var _ screen.KeyHintProvider = (*PlannerScreen)(nil)

// New creates the planner. A nil gen leaves the view usable but unable to
// submit.
func New(ctx context.Context, state *dashboard.State, gen Generator, log *zap.Logger) *PlannerScreen {
	if log == nil {
		log = zap.NewNop()
	}
	s := &PlannerScreen{
		ctx:     ctx,
		state:   state,
		gen:     gen,
		log:     log.Named("planner"),
		subject: components.NewTextInput("Subject", "e.g. Organic Chemistry", false, 120),
		hours:   components.NewTextInput("Weekly hours", strconv.Itoa(dashboard.DefaultWeeklyHours), true, 6),
	}
	s.subject.SetValue(state.Planner.Subject)
	s.hours.SetValue(strconv.FormatFloat(state.Planner.Hours, 'f', -1, 64))
	return s
}

func (s *PlannerScreen) Init() tea.Cmd {
	return s.subject.Focus()
}

func (s *PlannerScreen) Title() string {
	return dashboard.Planner.Title()
}

func (s *PlannerScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Generate"},
		{Key: "↑↓", Description: "Field"},
		{Key: "PgUp/PgDn", Description: "Scroll"},
	}
}

func (s *PlannerScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case planDoneMsg:
		s.handleDone(msg)
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "enter":
			return s, s.submit()
		case "up", "down":
			return s, s.toggleFocus()
		case "pgup":
			s.offset -= 5
			return s, nil
		case "pgdown":
			s.offset += 5
			return s, nil
		}
	}

	var cmd tea.Cmd
	if s.focus == focusSubject {
		s.subject, cmd = s.subject.Update(msg)
	} else {
		s.hours, cmd = s.hours.Update(msg)
	}
	s.syncState()
	return s, cmd
}

func (s *PlannerScreen) toggleFocus() tea.Cmd {
	if s.focus == focusSubject {
		s.focus = focusHours
		s.subject.Blur()
		return s.hours.Focus()
	}
	s.focus = focusSubject
	s.hours.Blur()
	return s.subject.Focus()
}

func (s *PlannerScreen) syncState() {
	s.state.Planner.Subject = s.subject.Value()
	// An empty or partial number counts as zero hours.
	hours, err := s.hours.FloatValue()
	if err != nil {
		hours = 0
	}
	s.state.Planner.Hours = hours
}

// submit issues a plan request when the input allows it. Presses while a
// request is outstanding are ignored.
func (s *PlannerScreen) submit() tea.Cmd {
	if s.gen == nil || !s.state.CanSubmit(dashboard.Planner) {
		return nil
	}
	ticket, err := s.slot.Begin()
	if err != nil {
		return nil
	}
	s.state.Start(dashboard.Planner)

	ctx, gen := s.ctx, s.gen
	persona := s.state.Persona
	subject := s.state.Planner.Subject
	hours := s.state.Planner.Hours
	return func() tea.Msg {
		plan, err := gen.GeneratePlan(ctx, persona, subject, hours)
		return planDoneMsg{ticket: ticket, plan: plan, err: err}
	}
}

func (s *PlannerScreen) handleDone(msg planDoneMsg) {
	if !s.slot.Finish(msg.ticket) {
		return
	}
	if msg.err != nil {
		s.log.Warn("study plan request failed", zap.Error(msg.err))
		s.state.Fail(dashboard.Planner)
		return
	}
	s.offset = 0
	s.state.SetPlan(msg.plan)
}

func (s *PlannerScreen) View(width, height int) string {
	inner := max(width-4, 20)

	button := components.NewButton("Generate Plan", s.state.CanSubmit(dashboard.Planner), nil)
	form := lipgloss.JoinVertical(lipgloss.Left,
		s.subject.View(),
		"",
		s.hours.View(),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center, button.View(), "  ", s.status()),
	)

	resultHeight := max(height-lipgloss.Height(form)-2, 0)
	results, offset := layout.Window(renderPlan(dashboard.ComposePlanner(s.state.Planner.Plan), inner), s.offset, resultHeight)
	s.offset = offset

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(form + "\n\n" + results)
}

func (s *PlannerScreen) status() string {
	switch {
	case s.state.Planner.Loading:
		return theme.Hint.Render("Building your plan...")
	case s.state.Planner.Failed:
		return theme.Failure.Render("Request failed. Try again.")
	}
	return ""
}

// renderPlan draws the topic table. An empty plan renders a hint instead.
func renderPlan(v dashboard.PlannerView, width int) string {
	if len(v.Rows) == 0 {
		return theme.Hint.Render("No plan yet. Enter a subject and press Enter.")
	}

	const prioWidth, hoursWidth = 10, 8
	nameWidth := max(width-prioWidth-hoursWidth, 10)
	nameCol := lipgloss.NewStyle().Width(nameWidth)
	prioCol := lipgloss.NewStyle().Width(prioWidth)
	hoursCol := lipgloss.NewStyle().Width(hoursWidth).Align(lipgloss.Right)

	var b strings.Builder
	if v.Subject != "" {
		b.WriteString(theme.SectionHeading.Render(v.Subject))
		b.WriteString("\n\n")
	}

	header := lipgloss.NewStyle().Foreground(theme.TextDim).Bold(true)
	b.WriteString(nameCol.Inherit(header).Render("TOPIC") +
		prioCol.Inherit(header).Render("PRIORITY") +
		hoursCol.Inherit(header).Render("HOURS"))

	for _, row := range v.Rows {
		name := theme.Body
		if row.Highlight {
			name = theme.Highlight
		}
		b.WriteString("\n")
		b.WriteString(nameCol.Inherit(name).Render(row.Name) +
			prioCol.Inherit(priorityStyle(row.Priority)).Render(string(row.Priority)) +
			hoursCol.Inherit(theme.Body).Render(row.Hours))
	}

	b.WriteString("\n")
	b.WriteString(nameCol.Inherit(theme.Selected).Render("Total") +
		prioCol.Render("") +
		hoursCol.Inherit(theme.Selected).Render(v.TotalHours))
	return b.String()
}

func priorityStyle(p study.Priority) lipgloss.Style {
	switch p {
	case study.PriorityHigh:
		return theme.Failure.Bold(true)
	case study.PriorityLow:
		return lipgloss.NewStyle().Foreground(theme.Success)
	default:
		return lipgloss.NewStyle().Foreground(theme.Accent)
	}
}
