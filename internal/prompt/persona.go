package prompt

import (
	"fmt"
	"strings"
)

// Persona is the academic track the learner studies for. It only changes
// prompt phrasing.
type Persona string

const (
	PersonaExam    Persona = "JEE_NEET"
	PersonaCollege Persona = "COLLEGE"
)

// Label is the short toggle label.
func (p Persona) Label() string {
	if p == PersonaCollege {
		return "COLLEGE"
	}
	return "JEE/NEET"
}

// Audience is the phrase used inside prompts.
func (p Persona) Audience() string {
	if p == PersonaCollege {
		return "College Engineering/Science"
	}
	return "JEE/NEET"
}

// Toggle returns the other persona.
func (p Persona) Toggle() Persona {
	if p == PersonaCollege {
		return PersonaExam
	}
	return PersonaCollege
}

// ParsePersona accepts the canonical values and a few loose spellings
// ("jee", "neet", "exam", "college").
func ParsePersona(s string) (Persona, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "jee_neet", "jee/neet", "jee", "neet", "exam":
		return PersonaExam, nil
	case "college":
		return PersonaCollege, nil
	default:
		return "", fmt.Errorf("unknown persona %q (want jee_neet or college)", s)
	}
}
