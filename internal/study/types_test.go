package study

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePriority(t *testing.T) {
	tests := map[string]Priority{
		"High":   PriorityHigh,
		" high ": PriorityHigh,
		"LOW":    PriorityLow,
		"Medium": PriorityMedium,
		"urgent": PriorityMedium,
		"":       PriorityMedium,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParsePriority(in), in)
	}
}

func TestSourceLinkHost(t *testing.T) {
	assert.Equal(t, "nptel.ac.in", SourceLink{URI: "https://nptel.ac.in/courses"}.Host())
	assert.Equal(t, "", SourceLink{URI: "::not a url"}.Host())
	assert.Equal(t, "", SourceLink{}.Host())
}

func TestPlanIsEmpty(t *testing.T) {
	assert.True(t, Plan{}.IsEmpty())
	assert.False(t, Plan{Subject: "x"}.IsEmpty())
	assert.Zero(t, Plan{}.TotalHours())
}
