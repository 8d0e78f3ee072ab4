package devices

import "strings"

type metaphor struct {
	literal    string
	figurative string
}

// Replacement is plain substring replacement, so "tree" inside "street"
// is rewritten too. No phrase contains any literal.
var metaphors = []metaphor{
	{"moon", "a silver lantern"},
	{"sun", "a golden eye"},
	{"river", "a silver serpent"},
	{"tree", "a green sentinel"},
	{"sky", "a boundless canvas"},
	{"wind", "a restless whisper"},
	{"stars", "scattered diamonds"},
	{"clouds", "drifting pillows"},
	{"night", "a velvet cloak"},
}

func applyMetaphor(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		for _, m := range metaphors {
			line = strings.ReplaceAll(line, m.literal, m.figurative)
		}
		out[i] = line
	}
	return out
}
