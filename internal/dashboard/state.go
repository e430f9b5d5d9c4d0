// Package dashboard holds the application state behind the three study
// views and composes domain results into view models.
package dashboard

import (
	"strings"

	"github.com/abhisek/eduvantage/internal/format"
	"github.com/abhisek/eduvantage/internal/prompt"
	"github.com/abhisek/eduvantage/internal/study"
)

// View identifies one of the three task views.
type View int

const (
	Planner View = iota
	Doubts
	Resources
)

// Views lists all views in tab order.
func Views() []View {
	return []View{Planner, Doubts, Resources}
}

func (v View) String() string {
	switch v {
	case Planner:
		return "planner"
	case Doubts:
		return "doubts"
	case Resources:
		return "resources"
	default:
		return "unknown"
	}
}

// Title is the human-readable tab title.
func (v View) Title() string {
	switch v {
	case Planner:
		return "Study Planner"
	case Doubts:
		return "Doubt Solver"
	case Resources:
		return "Resource Finder"
	default:
		return ""
	}
}

// DefaultWeeklyHours pre-fills the planner.
const DefaultWeeklyHours = 10

// PlannerState is the planner view's input and last plan.
type PlannerState struct {
	Subject string
	Hours   float64
	Loading bool
	Failed  bool
	Plan    study.Plan
}

// DoubtState is the doubt solver's input and last answer.
type DoubtState struct {
	Query        string
	Image        *prompt.Image
	ImageName    string
	ImageLoading bool
	Loading      bool
	Failed       bool
	Response     string
	Blocks       []format.Block
}

// ResourceState is the resource finder's input and last result.
type ResourceState struct {
	Topic   string
	Loading bool
	Failed  bool
	Result  *study.ResourceResult
	Blocks  []format.Block
}

// State is the whole dashboard. Each view keeps its state while another
// view is active.
type State struct {
	active  View
	Persona prompt.Persona

	Planner   PlannerState
	Doubts    DoubtState
	Resources ResourceState
}

// NewState returns a dashboard on the planner view.
func NewState(persona prompt.Persona) *State {
	if persona == "" {
		persona = prompt.PersonaExam
	}
	return &State{
		active:  Planner,
		Persona: persona,
		Planner: PlannerState{Hours: DefaultWeeklyHours},
	}
}

// Active returns the current view.
func (s *State) Active() View {
	return s.active
}

// Select switches to v. Unknown views are ignored. Reports whether the
// active view changed.
func (s *State) Select(v View) bool {
	if v < Planner || v > Resources || v == s.active {
		return false
	}
	s.active = v
	return true
}

// Next cycles forward through the views.
func (s *State) Next() {
	s.active = (s.active + 1) % 3
}

// Prev cycles backward through the views.
func (s *State) Prev() {
	s.active = (s.active + 2) % 3
}

// TogglePersona flips the academic track.
func (s *State) TogglePersona() {
	s.Persona = s.Persona.Toggle()
}

// CanSubmit reports whether the view's action may fire: nothing is in
// flight and the required input is present.
func (s *State) CanSubmit(v View) bool {
	switch v {
	case Planner:
		return !s.Planner.Loading && strings.TrimSpace(s.Planner.Subject) != ""
	case Doubts:
		d := s.Doubts
		if d.Loading || d.ImageLoading {
			return false
		}
		return strings.TrimSpace(d.Query) != "" || (d.Image != nil && len(d.Image.Data) > 0)
	case Resources:
		return !s.Resources.Loading && strings.TrimSpace(s.Resources.Topic) != ""
	default:
		return false
	}
}

// Loading reports whether v has a request in flight.
func (s *State) Loading(v View) bool {
	switch v {
	case Planner:
		return s.Planner.Loading
	case Doubts:
		return s.Doubts.Loading
	case Resources:
		return s.Resources.Loading
	}
	return false
}

// Start marks v as loading and clears its failure note.
func (s *State) Start(v View) {
	switch v {
	case Planner:
		s.Planner.Loading, s.Planner.Failed = true, false
	case Doubts:
		s.Doubts.Loading, s.Doubts.Failed = true, false
	case Resources:
		s.Resources.Loading, s.Resources.Failed = true, false
	}
}

// Fail clears loading on v and leaves any previous result in place.
func (s *State) Fail(v View) {
	switch v {
	case Planner:
		s.Planner.Loading, s.Planner.Failed = false, true
	case Doubts:
		s.Doubts.Loading, s.Doubts.Failed = false, true
	case Resources:
		s.Resources.Loading, s.Resources.Failed = false, true
	}
}

// SetPlan replaces the current plan wholesale.
func (s *State) SetPlan(p study.Plan) {
	s.Planner.Loading = false
	s.Planner.Plan = p
}

// SetDoubtResponse stores and classifies a doubt answer.
func (s *State) SetDoubtResponse(text string) {
	s.Doubts.Loading = false
	s.Doubts.Response = text
	s.Doubts.Blocks = format.Classify(text)
}

// SetResources stores and classifies a resource result.
func (s *State) SetResources(r study.ResourceResult) {
	s.Resources.Loading = false
	s.Resources.Result = &r
	s.Resources.Blocks = format.Classify(r.Text)
}

// AttachImage sets the doubt image once it has loaded.
func (s *State) AttachImage(img *prompt.Image, name string) {
	s.Doubts.ImageLoading = false
	s.Doubts.Image = img
	s.Doubts.ImageName = name
}

// ClearImage removes the doubt image.
func (s *State) ClearImage() {
	s.Doubts.Image = nil
	s.Doubts.ImageName = ""
	s.Doubts.ImageLoading = false
}
