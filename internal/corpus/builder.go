package corpus

import (
	"regexp"
	"strings"
	"unicode"
)

// DefaultDepth is the context key length used when none is configured.
const DefaultDepth = 2

// Section numbers in classical sources ("XII", "IV") are not content.
var romanNumeral = regexp.MustCompile(`\b[IVXLCDM]+\b`)

var stopWords = map[string]struct{}{
	"a": {}, "an": {}, "the": {},
	"and": {}, "or": {}, "but": {}, "nor": {}, "so": {}, "yet": {},
	"is": {}, "am": {}, "are": {}, "was": {}, "were": {}, "be": {}, "been": {},
	"in": {}, "on": {}, "at": {}, "by": {}, "with": {}, "to": {}, "of": {}, "for": {},
}

// IsStopWord reports whether token is dropped during tokenization.
func IsStopWord(token string) bool {
	_, ok := stopWords[token]
	return ok
}

// Build constructs a transition table from raw text. Depth below 1 is
// treated as 1. Build never fails: text too short to fill one window
// yields an empty table.
func Build(text string, depth int) *Table {
	if depth < 1 {
		depth = 1
	}
	return BuildTokens(Tokenize(text), depth)
}

// BuildTokens constructs a transition table from an already filtered token
// stream.
func BuildTokens(tokens []string, depth int) *Table {
	if depth < 1 {
		depth = 1
	}
	table := newTable(depth)
	for i := 0; i+depth < len(tokens); i++ {
		table.add(NewKey(tokens[i:i+depth]...), tokens[i+depth])
	}
	return table
}

// Tokenize strips roman numerals, lower-cases the text, extracts letter
// runs and drops stop words.
func Tokenize(text string) []string {
	text = romanNumeral.ReplaceAllString(text, " ")
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	tokens := words[:0]
	for _, w := range words {
		if !keepToken(w) {
			continue
		}
		tokens = append(tokens, w)
	}
	return tokens
}

func keepToken(word string) bool {
	if word == "" {
		return false
	}
	return !IsStopWord(word)
}
