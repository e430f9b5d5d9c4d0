package format

import "strings"

// Classify splits text on newlines and classifies every line. The result
// always has exactly one block per line, in input order. It never fails;
// unrecognised content degrades to Prose.
func Classify(text string) []Block {
	lines := strings.Split(text, "\n")
	blocks := make([]Block, len(lines))
	for i, line := range lines {
		blocks[i] = ClassifyLine(line)
	}
	return blocks
}

// ClassifyLine classifies a single line. A trailing carriage return is
// dropped so CRLF text classifies the same as LF text.
func ClassifyLine(line string) Block {
	line = strings.TrimSuffix(line, "\r")
	trimmed := strings.TrimSpace(line)
	for _, r := range rules {
		if r.match(trimmed) {
			return r.build(trimmed, line)
		}
	}
	return Block{Kind: Prose, Text: line}
}

// Count tallies blocks per kind.
func Count(blocks []Block) map[Kind]int {
	counts := make(map[Kind]int)
	for _, b := range blocks {
		counts[b.Kind]++
	}
	return counts
}
