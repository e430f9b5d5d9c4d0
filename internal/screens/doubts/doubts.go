// Package doubts is the doubt solver view: a question and an optional
// photo of the problem in, a structured worked solution out.
package doubts

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/abhisek/eduvantage/internal/dashboard"
	"github.com/abhisek/eduvantage/internal/format"
	"github.com/abhisek/eduvantage/internal/prompt"
	"github.com/abhisek/eduvantage/internal/screen"
	"github.com/abhisek/eduvantage/internal/study"
	"github.com/abhisek/eduvantage/internal/ui/components"
	"github.com/abhisek/eduvantage/internal/ui/layout"
	"github.com/abhisek/eduvantage/internal/ui/theme"
)

// Solver answers doubts.
type Solver interface {
	SolveDoubt(ctx context.Context, query string, img *prompt.Image) (string, error)
}

// ImageLoader reads an image from disk.
type ImageLoader func(path string) (*prompt.Image, error)

type solveDoneMsg struct {
	ticket study.Ticket
	text   string
	err    error
}

func (solveDoneMsg) Target() dashboard.View { return dashboard.Doubts }

type imageLoadedMsg struct {
	ticket study.Ticket
	img    *prompt.Image
	name   string
	err    error
}

func (imageLoadedMsg) Target() dashboard.View { return dashboard.Doubts }

const (
	focusQuery = iota
	focusImage
)

// DoubtsScreen implements screen.Screen for the doubt solver.
type DoubtsScreen struct {
	ctx       context.Context
	state     *dashboard.State
	solver    Solver
	loadImage ImageLoader
	log       *zap.Logger

	slot      study.Slot
	imageSlot study.Slot
	imageErr  string

	query  components.TextInput
	path   components.TextInput
	focus  int
	offset int
}

var _ screen.Screen = (*DoubtsScreen)(nil)
var _ screen.KeyHintProvider = (*DoubtsScreen)(nil)

// New creates the doubt solver. Images are read with prompt.LoadImage.
func New(ctx context.Context, state *dashboard.State, solver Solver, log *zap.Logger) *DoubtsScreen {
	if log == nil {
		log = zap.NewNop()
	}
	s := &DoubtsScreen{
		ctx:       ctx,
		state:     state,
		solver:    solver,
		loadImage: prompt.LoadImage,
		log:       log.Named("doubts"),
		query:     components.NewTextInput("Question", "Type your doubt, or attach a photo below", false, 0),
		path:      components.NewTextInput("Attach image (path)", "~/Pictures/problem.png", false, 0),
	}
	s.query.SetValue(state.Doubts.Query)
	return s
}

// WithImageLoader replaces the image loader.
func (s *DoubtsScreen) WithImageLoader(l ImageLoader) *DoubtsScreen {
	s.loadImage = l
	return s
}

func (s *DoubtsScreen) Init() tea.Cmd {
	return s.query.Focus()
}

func (s *DoubtsScreen) Title() string {
	return dashboard.Doubts.Title()
}

func (s *DoubtsScreen) KeyHints() []layout.KeyHint {
	enter := "Solve"
	if s.focus == focusImage {
		enter = "Attach"
	}
	hints := []layout.KeyHint{
		{Key: "Enter", Description: enter},
		{Key: "↑↓", Description: "Field"},
	}
	if s.state.Doubts.Image != nil {
		hints = append(hints, layout.KeyHint{Key: "Ctrl+X", Description: "Remove image"})
	}
	return append(hints, layout.KeyHint{Key: "PgUp/PgDn", Description: "Scroll"})
}

func (s *DoubtsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case solveDoneMsg:
		s.handleSolved(msg)
		return s, nil

	case imageLoadedMsg:
		s.handleImage(msg)
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "enter":
			if s.focus == focusImage {
				return s, s.attach()
			}
			return s, s.submit()
		case "up", "down":
			return s, s.toggleFocus()
		case "ctrl+x":
			s.imageSlot.Cancel()
			s.state.ClearImage()
			s.imageErr = ""
			return s, nil
		case "pgup":
			s.offset -= 5
			return s, nil
		case "pgdown":
			s.offset += 5
			return s, nil
		}
	}

	var cmd tea.Cmd
	if s.focus == focusQuery {
		s.query, cmd = s.query.Update(msg)
		s.state.Doubts.Query = s.query.Value()
	} else {
		s.path, cmd = s.path.Update(msg)
	}
	return s, cmd
}

func (s *DoubtsScreen) toggleFocus() tea.Cmd {
	if s.focus == focusQuery {
		s.focus = focusImage
		s.query.Blur()
		return s.path.Focus()
	}
	s.focus = focusQuery
	s.path.Blur()
	return s.query.Focus()
}

// attach starts reading the image at the path field. A newer attach
// replaces one still loading.
func (s *DoubtsScreen) attach() tea.Cmd {
	path := strings.TrimSpace(s.path.Value())
	if path == "" || s.loadImage == nil {
		return nil
	}
	ticket := s.imageSlot.Supersede()
	s.state.Doubts.ImageLoading = true
	s.imageErr = ""

	load := s.loadImage
	return func() tea.Msg {
		img, err := load(expandHome(path))
		return imageLoadedMsg{ticket: ticket, img: img, name: filepath.Base(path), err: err}
	}
}

func (s *DoubtsScreen) handleImage(msg imageLoadedMsg) {
	if !s.imageSlot.Finish(msg.ticket) {
		return
	}
	if msg.err != nil {
		s.log.Warn("image attach failed", zap.Error(msg.err))
		s.state.Doubts.ImageLoading = false
		s.imageErr = msg.err.Error()
		return
	}
	s.state.AttachImage(msg.img, msg.name)
	s.path.SetValue("")
}

func (s *DoubtsScreen) submit() tea.Cmd {
	if s.solver == nil || !s.state.CanSubmit(dashboard.Doubts) {
		return nil
	}
	ticket, err := s.slot.Begin()
	if err != nil {
		return nil
	}
	s.state.Start(dashboard.Doubts)

	ctx, solver := s.ctx, s.solver
	query, img := s.state.Doubts.Query, s.state.Doubts.Image
	return func() tea.Msg {
		text, err := solver.SolveDoubt(ctx, query, img)
		return solveDoneMsg{ticket: ticket, text: text, err: err}
	}
}

func (s *DoubtsScreen) handleSolved(msg solveDoneMsg) {
	if !s.slot.Finish(msg.ticket) {
		return
	}
	if msg.err != nil {
		s.log.Warn("doubt request failed", zap.Error(msg.err))
		s.state.Fail(dashboard.Doubts)
		return
	}
	s.offset = 0
	s.state.SetDoubtResponse(msg.text)
}

func (s *DoubtsScreen) View(width, height int) string {
	inner := max(width-4, 20)

	button := components.NewButton("Solve Doubt", s.state.CanSubmit(dashboard.Doubts), nil)
	form := lipgloss.JoinVertical(lipgloss.Left,
		s.query.View(),
		"",
		s.path.View(),
		s.attachment(),
		"",
		lipgloss.JoinHorizontal(lipgloss.Center, button.View(), "  ", s.status()),
	)

	body := theme.Hint.Render("Ask a question or attach a photo of the problem.")
	if blocks := s.state.Doubts.Blocks; len(blocks) > 0 {
		body = format.Render(blocks, inner)
	}

	resultHeight := max(height-lipgloss.Height(form)-2, 0)
	results, offset := layout.Window(body, s.offset, resultHeight)
	s.offset = offset

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(form + "\n\n" + results)
}

func (s *DoubtsScreen) attachment() string {
	d := s.state.Doubts
	switch {
	case d.ImageLoading:
		return theme.Hint.Render("Loading image...")
	case s.imageErr != "":
		return theme.Failure.Render(s.imageErr)
	case d.Image != nil:
		return theme.Selected.Render("Attached: ") +
			theme.Body.Render(fmt.Sprintf("%s (%s, %s)", d.ImageName, d.Image.MIMEType, humanSize(len(d.Image.Data))))
	}
	return theme.Hint.Render("No image attached")
}

func (s *DoubtsScreen) status() string {
	switch {
	case s.state.Doubts.Loading:
		return theme.Hint.Render("Solving...")
	case s.state.Doubts.Failed:
		return theme.Failure.Render("Request failed. Try again.")
	}
	return ""
}

func humanSize(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%d KB", n>>10)
	}
	return fmt.Sprintf("%d B", n)
}
