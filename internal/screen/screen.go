package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/eduvantage/internal/dashboard"
	"github.com/abhisek/eduvantage/internal/ui/layout"
)

// Screen defines the interface for the dashboard's task views.
type Screen interface {
	// Init returns an initial command when the screen is first created.
	Init() tea.Cmd

	// Update handles messages and returns updated screen + command.
	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header, tabs and footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface that screens can implement
// to provide custom footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// Addressed is implemented by messages that belong to one view, such as
// the result of a request that view issued. They are delivered to that
// view whether or not it is active.
type Addressed interface {
	Target() dashboard.View
}
