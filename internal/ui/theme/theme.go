package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette: indigo on slate
var (
	Primary   = lipgloss.Color("#6366F1") // Indigo
	Secondary = lipgloss.Color("#818CF8") // Light Indigo
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0F172A") // Deep Navy
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Layout
var (
	Header = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Footer = lipgloss.NewStyle().
		Background(BgCard).
		Padding(0, 2)

	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Highlight = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)

	Failure = lipgloss.NewStyle().
		Foreground(Error)
)

// Study blocks
var (
	SectionHeading = lipgloss.NewStyle().
			Foreground(Text).
			Bold(true)

	SectionMarker = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	BulletMarker = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Equation = lipgloss.NewStyle().
			Foreground(Text).
			Bold(true).
			Border(lipgloss.NormalBorder()).
			BorderForeground(Border).
			Padding(0, 3).
			Align(lipgloss.Center)

	FinalCard = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true).
			Border(lipgloss.DoubleBorder()).
			BorderForeground(Primary).
			Padding(1, 4).
			Align(lipgloss.Center)

	FinalLabel = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Prose = lipgloss.NewStyle().
		Foreground(TextDim)
)

// Components
var (
	ButtonActive = lipgloss.NewStyle().
			Background(Primary).
			Foreground(Text).
			Bold(true).
			Padding(0, 2)

	ButtonInactive = lipgloss.NewStyle().
			Background(BgCard).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Border).
			Padding(0, 2)

	TabActive = lipgloss.NewStyle().
			Foreground(Text).
			Background(Primary).
			Bold(true).
			Padding(0, 2)

	TabInactive = lipgloss.NewStyle().
			Foreground(TextDim).
			Padding(0, 2)
)
