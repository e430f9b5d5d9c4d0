package resources

import (
	"context"
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/eduvantage/internal/dashboard"
	"github.com/abhisek/eduvantage/internal/prompt"
	"github.com/abhisek/eduvantage/internal/study"
)

type fakeFinder struct {
	result study.ResourceResult
	err    error
	topic  string
}

func (f *fakeFinder) FindResources(_ context.Context, topic string) (study.ResourceResult, error) {
	f.topic = topic
	return f.result, f.err
}

func typeText(s *ResourcesScreen, text string) {
	for _, r := range text {
		s.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func newTestScreen(f *fakeFinder) (*ResourcesScreen, *dashboard.State) {
	state := dashboard.NewState(prompt.PersonaExam)
	state.Select(dashboard.Resources)
	s := New(context.Background(), state, f, nil)
	s.Init()
	return s, state
}

func TestSearchRendersSources(t *testing.T) {
	f := &fakeFinder{result: study.ResourceResult{
		Text: "### Video Lectures\n- Physics Wallah",
		Sources: []study.SourceLink{
			{URI: "https://www.youtube.com/watch?v=1", Title: "Atomic Physics One Shot"},
			{URI: "::bad"},
		},
	}}
	s, state := newTestScreen(f)

	typeText(s, "Atomic Physics")
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, state.Resources.Loading)

	s.Update(cmd())
	assert.Equal(t, "Atomic Physics", f.topic)
	require.NotNil(t, state.Resources.Result)

	out := ansi.Strip(s.View(100, 40))
	assert.Contains(t, out, "Video Lectures")
	assert.Contains(t, out, "Atomic Physics One Shot  WWW.YOUTUBE.COM")
	assert.Contains(t, out, "External Link  WEBSITE")
}

func TestSearchWithoutTopicIsIgnored(t *testing.T) {
	s, state := newTestScreen(&fakeFinder{})
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.False(t, state.Resources.Loading)
}

func TestSearchFailure(t *testing.T) {
	s, state := newTestScreen(&fakeFinder{err: errors.New("quota")})
	typeText(s, "Optics")

	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	s.Update(cmd())

	assert.True(t, state.Resources.Failed)
	assert.Nil(t, state.Resources.Result)
	assert.Contains(t, ansi.Strip(s.View(100, 40)), "Request failed")
}
