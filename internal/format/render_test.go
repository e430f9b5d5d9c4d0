package format

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	blocks := Classify("### Step 1: Setup\n- read the graph\nx = 5\n\nDone.\n#### Final Result: x = 5")

	out := ansi.Strip(Render(blocks, 60))

	assert.Contains(t, out, "» Step 1: Setup")
	assert.Contains(t, out, "• read the graph")
	assert.Contains(t, out, "x = 5")
	assert.Contains(t, out, "Done.")
	assert.Contains(t, out, "FINAL CONCLUSION")
	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, ansi.StringWidth(line), 60, "line %q exceeds width", line)
	}
}

func TestRender_Empty(t *testing.T) {
	assert.Equal(t, "", Render(nil, 80))
}

func TestPlain(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	got := Plain(Classify("### Courses\n- NPTEL\n\n#### Final Result: done\nE = mc^2\nbye"))

	want := strings.Join([]string{
		"» Courses",
		"  • NPTEL",
		"",
		"FINAL CONCLUSION: done",
		"    E = mc^2",
		"bye",
	}, "\n")
	assert.Equal(t, want, got)
}
