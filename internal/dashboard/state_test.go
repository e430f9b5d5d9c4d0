package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/eduvantage/internal/format"
	"github.com/abhisek/eduvantage/internal/prompt"
	"github.com/abhisek/eduvantage/internal/study"
)

func TestNewState(t *testing.T) {
	s := NewState("")
	assert.Equal(t, Planner, s.Active())
	assert.Equal(t, prompt.PersonaExam, s.Persona)
	assert.Equal(t, float64(DefaultWeeklyHours), s.Planner.Hours)
}

func TestSelectKeepsOtherViews(t *testing.T) {
	s := NewState(prompt.PersonaCollege)
	s.Planner.Subject = "Thermodynamics"
	s.SetPlan(study.Plan{Subject: "Thermodynamics", Topics: []study.Topic{{Name: "Entropy"}}})
	s.Doubts.Query = "What is enthalpy?"

	assert.True(t, s.Select(Resources))
	s.Resources.Topic = "Atomic Physics"
	assert.True(t, s.Select(Doubts))
	assert.True(t, s.Select(Planner))

	assert.Equal(t, "Thermodynamics", s.Planner.Subject)
	assert.Len(t, s.Planner.Plan.Topics, 1)
	assert.Equal(t, "What is enthalpy?", s.Doubts.Query)
	assert.Equal(t, "Atomic Physics", s.Resources.Topic)
}

func TestSelectIgnoresUnknownAndSame(t *testing.T) {
	s := NewState(prompt.PersonaExam)
	assert.False(t, s.Select(Planner))
	assert.False(t, s.Select(View(7)))
	assert.False(t, s.Select(View(-1)))
	assert.Equal(t, Planner, s.Active())
}

func TestNextPrev(t *testing.T) {
	s := NewState(prompt.PersonaExam)
	s.Next()
	assert.Equal(t, Doubts, s.Active())
	s.Next()
	s.Next()
	assert.Equal(t, Planner, s.Active())
	s.Prev()
	assert.Equal(t, Resources, s.Active())
}

func TestCanSubmit(t *testing.T) {
	img := &prompt.Image{MIMEType: "image/png", Data: []byte{1}}

	tests := []struct {
		name  string
		setup func(*State)
		view  View
		want  bool
	}{
		{"planner empty subject", func(s *State) {}, Planner, false},
		{"planner ready", func(s *State) { s.Planner.Subject = "Physics" }, Planner, true},
		{"planner loading", func(s *State) { s.Planner.Subject = "Physics"; s.Start(Planner) }, Planner, false},
		{"doubt nothing", func(s *State) {}, Doubts, false},
		{"doubt query", func(s *State) { s.Doubts.Query = "why?" }, Doubts, true},
		{"doubt image only", func(s *State) { s.AttachImage(img, "a.png") }, Doubts, true},
		{"doubt image loading", func(s *State) { s.Doubts.Query = "q"; s.Doubts.ImageLoading = true }, Doubts, false},
		{"doubt loading", func(s *State) { s.Doubts.Query = "q"; s.Start(Doubts) }, Doubts, false},
		{"resources blank topic", func(s *State) { s.Resources.Topic = "  " }, Resources, false},
		{"resources ready", func(s *State) { s.Resources.Topic = "OS" }, Resources, true},
		{"unknown view", func(s *State) {}, View(9), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewState(prompt.PersonaExam)
			tt.setup(s)
			assert.Equal(t, tt.want, s.CanSubmit(tt.view))
		})
	}
}

func TestFailKeepsPreviousResult(t *testing.T) {
	s := NewState(prompt.PersonaExam)
	s.SetDoubtResponse("### Step 1: A\nx = 1")
	s.Start(Doubts)
	assert.True(t, s.Loading(Doubts))

	s.Fail(Doubts)
	assert.False(t, s.Loading(Doubts))
	assert.True(t, s.Doubts.Failed)
	assert.Len(t, s.Doubts.Blocks, 2)

	s.Start(Doubts)
	assert.False(t, s.Doubts.Failed)
}

func TestSetPlanReplaces(t *testing.T) {
	s := NewState(prompt.PersonaExam)
	first := study.Plan{Subject: "A", Topics: []study.Topic{{Name: "a1"}, {Name: "a2"}}}
	s.SetPlan(first)
	s.SetPlan(study.Plan{Subject: "B", Topics: []study.Topic{{Name: "b1"}}})

	assert.Equal(t, "B", s.Planner.Plan.Subject)
	assert.Len(t, s.Planner.Plan.Topics, 1)
	assert.Len(t, first.Topics, 2, "previous plan must not be mutated")
}

func TestSetResourcesClassifies(t *testing.T) {
	s := NewState(prompt.PersonaExam)
	s.Start(Resources)
	s.SetResources(study.ResourceResult{Text: "### Videos\n- MIT OCW"})

	assert.False(t, s.Resources.Loading)
	assert.Equal(t, []format.Block{
		{Kind: format.Heading, Text: "Videos"},
		{Kind: format.Bullet, Text: "MIT OCW"},
	}, s.Resources.Blocks)
}

func TestTogglePersona(t *testing.T) {
	s := NewState(prompt.PersonaExam)
	s.TogglePersona()
	assert.Equal(t, prompt.PersonaCollege, s.Persona)
}

func TestViewNames(t *testing.T) {
	assert.Equal(t, []View{Planner, Doubts, Resources}, Views())
	assert.Equal(t, "Doubt Solver", Doubts.Title())
	assert.Equal(t, "resources", Resources.String())
	assert.Equal(t, "unknown", View(5).String())
}
