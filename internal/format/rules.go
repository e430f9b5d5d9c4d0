package format

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	headingMarker     = "###"
	finalResultMarker = "#### Final Result"

	// MaxEquationLen is the display-width ceiling for centred equation
	// blocks, in runes. Longer lines fall through to prose.
	MaxEquationLen = 300
)

var (
	mathSymbols   = regexp.MustCompile(`[=+\-*/^θπΣ∫√∞|λΔ]`)
	variableShape = regexp.MustCompile(`^[A-Z] =`)
)

// rule is one step of the classification cascade. match sees the trimmed
// line; build receives both the trimmed and the raw line.
type rule struct {
	kind  Kind
	match func(trimmed string) bool
	build func(trimmed, line string) Block
}

// rules is evaluated top to bottom, first match wins. Final result must
// precede heading since its marker starts with the heading marker. Bullet
// must precede equation so "- x = 5" stays a list item.
var rules = []rule{
	{FinalResult, IsFinalResult, func(t, _ string) Block {
		return Block{Kind: FinalResult, Text: FinalResultText(t)}
	}},
	{Heading, IsHeading, func(t, _ string) Block {
		return Block{Kind: Heading, Text: HeadingText(t)}
	}},
	{Bullet, IsBullet, func(t, _ string) Block {
		return Block{Kind: Bullet, Text: BulletText(t)}
	}},
	{Equation, IsEquation, func(t, _ string) Block {
		return Block{Kind: Equation, Text: t}
	}},
	{Blank, IsBlank, func(_, _ string) Block {
		return Block{Kind: Blank}
	}},
}

// IsFinalResult reports whether a trimmed line carries the definitive answer.
func IsFinalResult(trimmed string) bool {
	return strings.HasPrefix(trimmed, finalResultMarker)
}

// FinalResultText strips the final-result marker and the colons and
// whitespace around the answer.
func FinalResultText(trimmed string) string {
	rest := strings.TrimPrefix(trimmed, finalResultMarker)
	return strings.Trim(rest, " \t:")
}

// IsHeading reports whether a trimmed line opens a section.
func IsHeading(trimmed string) bool {
	return strings.HasPrefix(trimmed, headingMarker)
}

// HeadingText strips the first section marker and surrounding whitespace.
// Deeper markers ("####") keep their extra hash.
func HeadingText(trimmed string) string {
	return strings.TrimSpace(strings.Replace(trimmed, headingMarker, "", 1))
}

// IsBullet reports whether a trimmed line is a list item.
func IsBullet(trimmed string) bool {
	return strings.HasPrefix(trimmed, "-") || strings.HasPrefix(trimmed, "*")
}

// BulletText strips exactly one leading list marker and whitespace.
func BulletText(trimmed string) string {
	return strings.TrimSpace(trimmed[1:])
}

// IsEquation reports whether a trimmed line looks like a standalone
// formula: it carries a math symbol or starts like "F = ...", holds no
// link, and fits the display ceiling.
func IsEquation(trimmed string) bool {
	if !mathSymbols.MatchString(trimmed) && !variableShape.MatchString(trimmed) {
		return false
	}
	if strings.Contains(trimmed, "http") {
		return false
	}
	n := utf8.RuneCountInString(trimmed)
	return n > 1 && n < MaxEquationLen
}

// IsBlank reports whether a trimmed line is empty.
func IsBlank(trimmed string) bool {
	return trimmed == ""
}
