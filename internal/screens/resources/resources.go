// Package resources is the resource finder view: a topic in, web-grounded
// recommendations and their source links out.
package resources

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/eduvantage/internal/dashboard"
	"github.com/abhisek/eduvantage/internal/format"
	"github.com/abhisek/eduvantage/internal/screen"
	"github.com/abhisek/eduvantage/internal/study"
	"github.com/abhisek/eduvantage/internal/ui/components"
	"github.com/abhisek/eduvantage/internal/ui/layout"
	"github.com/abhisek/eduvantage/internal/ui/theme"
)

// Finder searches for learning resources.
type Finder interface {
	FindResources(ctx context.Context, topic string) (study.ResourceResult, error)
}

type searchDoneMsg struct {
	ticket study.Ticket
	result study.ResourceResult
	err    error
}

func (searchDoneMsg) Target() dashboard.View { return dashboard.Resources }

// ResourcesScreen implements screen.Screen for the resource finder.
type ResourcesScreen struct {
	ctx    context.Context
	state  *dashboard.State
	finder Finder
	log    *zap.Logger
	slot   study.Slot
	topic  components.TextInput
	offset int
}

var _ screen.Screen = (*ResourcesScreen)(nil)
var _ screen.KeyHintProvider = (*ResourcesScreen)(nil)

// New creates the resource finder.
func New(ctx context.Context, state *dashboard.State, finder Finder, log *zap.Logger) *ResourcesScreen {
	if log == nil {
		log = zap.NewNop()
	}
	s := &ResourcesScreen{
		ctx:    ctx,
		state:  state,
		finder: finder,
		log:    log.Named("resources"),
		topic:  components.NewTextInput("Topic", "e.g. Atomic Physics", false, 120),
	}
	s.topic.SetValue(state.Resources.Topic)
	return s
}

func (s *ResourcesScreen) Init() tea.Cmd {
	return s.topic.Focus()
}

func (s *ResourcesScreen) Title() string {
	return dashboard.Resources.Title()
}

func (s *ResourcesScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Search"},
		{Key: "PgUp/PgDn", Description: "Scroll"},
	}
}

func (s *ResourcesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case searchDoneMsg:
		s.handleDone(msg)
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "enter":
			return s, s.submit()
		case "pgup":
			s.offset -= 5
			return s, nil
		case "pgdown":
			s.offset += 5
			return s, nil
		}
	}

	var cmd tea.Cmd
	s.topic, cmd = s.topic.Update(msg)
	s.state.Resources.Topic = s.topic.Value()
	return s, cmd
}

func (s *ResourcesScreen) submit() tea.Cmd {
	if s.finder == nil || !s.state.CanSubmit(dashboard.Resources) {
		return nil
	}
	ticket, err := s.slot.Begin()
	if err != nil {
		return nil
	}
	s.state.Start(dashboard.Resources)

	ctx, finder, topic := s.ctx, s.finder, s.state.Resources.Topic
	return func() tea.Msg {
		result, err := finder.FindResources(ctx, topic)
		return searchDoneMsg{ticket: ticket, result: result, err: err}
	}
}

func (s *ResourcesScreen) handleDone(msg searchDoneMsg) {
	if !s.slot.Finish(msg.ticket) {
		return
	}
	if msg.err != nil {
		s.log.Warn("resource search failed", zap.Error(msg.err))
		s.state.Fail(dashboard.Resources)
		return
	}
	s.offset = 0
	s.state.SetResources(msg.result)
}

func (s *ResourcesScreen) View(width, height int) string {
	inner := max(width-4, 20)

	button := components.NewButton("Find Resources", s.state.CanSubmit(dashboard.Resources), nil)
	form := lipgloss.JoinVertical(lipgloss.Left,
		s.topic.View(),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center, button.View(), "  ", s.status()),
	)

	body := theme.Hint.Render("Enter a topic to find free courses, videos and notes.")
	if r := s.state.Resources.Result; r != nil {
		body = renderResult(dashboard.ComposeResources(*r), inner)
	}

	resultHeight := max(height-lipgloss.Height(form)-2, 0)
	results, offset := layout.Window(body, s.offset, resultHeight)
	s.offset = offset

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(form + "\n\n" + results)
}

func (s *ResourcesScreen) status() string {
	switch {
	case s.state.Resources.Loading:
		return theme.Hint.Render("Searching the web...")
	case s.state.Resources.Failed:
		return theme.Failure.Render("Request failed. Try again.")
	}
	return ""
}

// renderResult draws the recommendations followed by one line per source.
func renderResult(v dashboard.ResourceView, width int) string {
	var b strings.Builder
	b.WriteString(format.Render(v.Blocks, width))
	if len(v.Sources) == 0 {
		return b.String()
	}

	b.WriteString("\n\n")
	b.WriteString(theme.SectionHeading.Render("Sources"))
	for _, src := range v.Sources {
		b.WriteString("\n")
		b.WriteString(theme.BulletMarker.Render("• "))
		b.WriteString(theme.Body.Render(src.Title))
		b.WriteString("  ")
		b.WriteString(theme.Hint.Render(strings.ToUpper(src.Host)))
	}
	return b.String()
}
