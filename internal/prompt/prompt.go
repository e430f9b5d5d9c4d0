// Package prompt builds the text sent to the generative service for each
// dashboard action. Every builder is pure and accepts any input, empty
// strings included; callers decide whether a request is worth sending.
package prompt

import (
	"fmt"
	"strconv"
)

// Payload is a multi-part doubt request: the text part is always present,
// the image part only when one was supplied.
type Payload struct {
	Text  string
	Image *Image
}

// HasImage reports whether the payload carries an image part.
func (p Payload) HasImage() bool {
	return p.Image != nil && len(p.Image.Data) > 0
}

const planTemplate = `Act as an expert academic counselor for %s students.
Create a detailed study plan for %s assuming the student has %s hours per week.
Focus on high-yield topics first.`

// BuildPlanPrompt embeds subject and weekly hours verbatim. Hours are not
// range checked.
func BuildPlanPrompt(persona Persona, subject string, weeklyHours float64) string {
	hours := strconv.FormatFloat(weeklyHours, 'f', -1, 64)
	return fmt.Sprintf(planTemplate, persona.Audience(), subject, hours)
}

const doubtTemplate = `Solve this academic doubt with the clarity of a high-end handwritten textbook.

Format Rules:
1. For equations, use readable symbols: lambda for λ, delta for Δ, sqrt() for square root.
2. Put every significant algebraic step on a NEW LINE.
3. Format matrices or determinants clearly using spacing, e.g.:
   | 1  5 -1 |
   | 4  3 -3 |
4. Use "### Step X: [Description]" for sections.
5. Put the definitive final answer in "#### Final Result: [Answer]".
6. Avoid complex LaTeX code like \begin{pmatrix}; use clean text-based math instead.

Question: %s`

// BuildDoubtPrompt wraps the question in the formatting rules the response
// classifier relies on. img may be nil.
func BuildDoubtPrompt(query string, img *Image) Payload {
	p := Payload{Text: fmt.Sprintf(doubtTemplate, query)}
	if img != nil && len(img.Data) > 0 {
		p.Image = img
	}
	return p
}

const resourceTemplate = `Find the best free online resources for learning "%s".
Format your response strictly using Markdown:
- Use ### for Section Headings
- Use bullet points for specific resources
- Use clear text-based mathematical notation.`

// BuildResourcePrompt asks for headed, bulleted resource lists. Resource
// requests are sent with web search enabled.
func BuildResourcePrompt(topic string) string {
	return fmt.Sprintf(resourceTemplate, topic)
}
