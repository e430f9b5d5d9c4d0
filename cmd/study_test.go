package cmd

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"

	"github.com/abhisek/eduvantage/internal/dashboard"
	"github.com/abhisek/eduvantage/internal/prompt"
	"github.com/abhisek/eduvantage/internal/study"
)

func init() {
	color.NoColor = true
}

func TestPrintPlan(t *testing.T) {
	view := dashboard.ComposePlanner(study.Plan{
		Subject: "Thermodynamics",
		Topics: []study.Topic{
			{Name: "Carnot Cycle", Priority: study.PriorityHigh, EstimatedHours: 3},
			{Name: "Entropy", Priority: study.PriorityLow, EstimatedHours: 1.5},
		},
	})

	var buf bytes.Buffer
	printPlan(&buf, view, prompt.PersonaExam, 10)
	out := buf.String()

	assert.Contains(t, out, "Thermodynamics  (JEE/NEET, 10h/week)")
	assert.Contains(t, out, "Carnot Cycle")
	assert.Contains(t, out, "High")
	assert.Contains(t, out, "1.5h")
	assert.Contains(t, out, "4.5h")
}

func TestPrintPlanEmpty(t *testing.T) {
	var buf bytes.Buffer
	printPlan(&buf, dashboard.ComposePlanner(study.Plan{}), prompt.PersonaCollege, 10)
	assert.Contains(t, buf.String(), "No plan returned")
}

func TestPrintResources(t *testing.T) {
	view := dashboard.ComposeResources(study.ResourceResult{
		Text:    "### Courses\n- NPTEL Physics",
		Sources: []study.SourceLink{{URI: "https://nptel.ac.in/courses/1"}},
	})

	var buf bytes.Buffer
	printResources(&buf, view)
	out := buf.String()

	assert.Contains(t, out, "Courses")
	assert.Contains(t, out, "NPTEL Physics")
	assert.Contains(t, out, "External Link  NPTEL.AC.IN")
	assert.Contains(t, out, "https://nptel.ac.in/courses/1")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "θπ", truncate("θπΣ", 2))
}
