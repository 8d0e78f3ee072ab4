package devices

import "strings"

const refrainWords = 3

// applyRepetition appends the opening words of the first line to every
// odd-indexed line. Poems of two lines or fewer are left alone.
func applyRepetition(lines []string) []string {
	out := append([]string(nil), lines...)
	if len(out) <= 2 {
		return out
	}
	words := strings.Fields(out[0])
	if len(words) > refrainWords {
		words = words[:refrainWords]
	}
	if len(words) == 0 {
		return out
	}
	refrain := strings.Join(words, " ")
	for i := 1; i < len(out); i += 2 {
		out[i] = out[i] + " " + refrain
	}
	return out
}
