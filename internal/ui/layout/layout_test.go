package layout

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestIsTooSmall(t *testing.T) {
	assert.True(t, IsTooSmall(79, 30))
	assert.True(t, IsTooSmall(120, 23))
	assert.False(t, IsTooSmall(80, 24))
}

func TestRenderHeader(t *testing.T) {
	out := ansi.Strip(RenderHeader("Doubt Solver", "COLLEGE", 100))
	assert.Contains(t, out, "EduVantage")
	assert.Contains(t, out, "Doubt Solver")
	assert.Contains(t, out, "Track COLLEGE")
}

func TestRenderTabs(t *testing.T) {
	out := ansi.Strip(RenderTabs([]Tab{
		{Title: "Study Planner", Active: true},
		{Title: "Doubt Solver", Busy: true},
		{Title: "Resource Finder"},
	}, 100))

	assert.Contains(t, out, "1 Study Planner")
	assert.Contains(t, out, "2 Doubt Solver •")
	assert.Contains(t, out, "3 Resource Finder")
	assert.NotContains(t, out, "Resource Finder •")
}

func TestRenderFrameHeight(t *testing.T) {
	header := RenderHeader("x", "JEE/NEET", 80)
	tabs := RenderTabs([]Tab{{Title: "x", Active: true}}, 80)
	footer := RenderFooter([]KeyHint{{Key: "Ctrl+C", Description: "Quit"}}, 80)

	frame := RenderFrame(header, tabs, strings.Repeat("line\n", 100), footer, 80, 30)
	assert.Equal(t, 30, strings.Count(frame, "\n")+1)
}

func TestWindow(t *testing.T) {
	content := "a\nb\nc\nd\ne"

	out, off := Window(content, 1, 2)
	assert.Equal(t, "b\nc", out)
	assert.Equal(t, 1, off)

	out, off = Window(content, 10, 2)
	assert.Equal(t, "d\ne", out)
	assert.Equal(t, 3, off)

	out, off = Window(content, -4, 10)
	assert.Equal(t, content, out)
	assert.Equal(t, 0, off)

	out, _ = Window(content, 0, 0)
	assert.Empty(t, out)
}
