package format

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/fatih/color"

	"github.com/abhisek/eduvantage/internal/ui/theme"
)

const (
	headingGlyph = "»"
	bulletGlyph  = "•"
	finalLabel   = "FINAL CONCLUSION"
)

// Render lays blocks out as styled terminal text, width columns wide.
// Equations and the final result are centred; prose wraps.
func Render(blocks []Block, width int) string {
	if width < 20 {
		width = 20
	}

	lines := make([]string, 0, len(blocks))
	for _, b := range blocks {
		lines = append(lines, renderBlock(b, width))
	}
	return strings.Join(lines, "\n")
}

func renderBlock(b Block, width int) string {
	switch b.Kind {
	case Heading:
		rule := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", width))
		title := theme.SectionMarker.Render(headingGlyph) + " " + theme.SectionHeading.Render(b.Text)
		return "\n" + title + "\n" + rule

	case FinalResult:
		label := theme.FinalLabel.Render(finalLabel)
		card := theme.FinalCard.Render(label + "\n\n" + b.Text)
		return "\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, card) + "\n"

	case Bullet:
		marker := theme.BulletMarker.Render("  " + bulletGlyph + " ")
		body := theme.Body.Width(max(width-4, 1)).Render(b.Text)
		return lipgloss.JoinHorizontal(lipgloss.Top, marker, body)

	case Equation:
		box := theme.Equation.Render(b.Text)
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, box)

	case Blank:
		return ""

	default:
		return theme.Prose.Width(width).Render(b.Text)
	}
}

// Plain writes blocks as lightly coloured text for pipes and one-shot CLI
// output. Colour is dropped automatically when stdout is not a terminal.
func Plain(blocks []Block) string {
	heading := color.New(color.FgHiBlue, color.Bold)
	final := color.New(color.FgHiMagenta, color.Bold)
	bullet := color.New(color.FgBlue)
	equation := color.New(color.Bold)

	var b strings.Builder
	for i, blk := range blocks {
		if i > 0 {
			b.WriteByte('\n')
		}
		switch blk.Kind {
		case Heading:
			b.WriteString(heading.Sprint(headingGlyph + " " + blk.Text))
		case FinalResult:
			b.WriteString(final.Sprint(finalLabel + ": " + blk.Text))
		case Bullet:
			b.WriteString("  " + bullet.Sprint(bulletGlyph) + " " + blk.Text)
		case Equation:
			b.WriteString("    " + equation.Sprint(blk.Text))
		case Blank:
		default:
			b.WriteString(blk.Text)
		}
	}
	return b.String()
}
