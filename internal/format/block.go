// Package format turns a plain-text model response into an ordered
// sequence of typed display blocks, one per input line.
package format

// Kind is the semantic category of a display block.
type Kind int

const (
	Prose Kind = iota
	Heading
	FinalResult
	Bullet
	Equation
	Blank
)

var kindNames = [...]string{
	Prose:       "prose",
	Heading:     "heading",
	FinalResult: "final-result",
	Bullet:      "bullet",
	Equation:    "equation",
	Blank:       "blank",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// MarshalText encodes the kind by name so JSON output stays readable.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Block is one classified line. Text is empty for Blank blocks.
type Block struct {
	Kind Kind   `json:"kind"`
	Text string `json:"text,omitempty"`
}
