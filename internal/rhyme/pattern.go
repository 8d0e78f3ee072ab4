package rhyme

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const endingLen = 4

// Pattern is the vowel and consonant skeleton of a word's ending.
type Pattern struct {
	Vowels     string
	Consonants string
}

// Empty reports whether the pattern carries no letters.
func (p Pattern) Empty() bool {
	return p.Vowels == "" && p.Consonants == ""
}

// closedClass holds function words that never count as rhyme anchors.
var closedClass = map[string]struct{}{
	"the": {}, "and": {}, "but": {}, "for": {}, "nor": {}, "with": {}, "into": {}, "from": {},
	"i": {}, "me": {}, "my": {}, "we": {}, "us": {}, "our": {},
	"you": {}, "your": {}, "he": {}, "him": {}, "his": {}, "she": {}, "her": {},
	"it": {}, "its": {}, "they": {}, "them": {}, "their": {},
	"this": {}, "that": {}, "these": {}, "those": {},
	"what": {}, "which": {}, "who": {}, "when": {}, "where": {}, "why": {}, "how": {},
	"there": {}, "here": {}, "then": {}, "than": {},
	"not": {}, "all": {}, "any": {}, "some": {},
}

// Rhymable reports whether word may anchor a rhyme: it must have at least
// three letters and not be a function word.
func Rhymable(word string) bool {
	word = Normalize(word)
	if utf8.RuneCountInString(word) < 3 {
		return false
	}
	_, closed := closedClass[word]
	return !closed
}

// Normalize lower-cases word and drops every non-letter.
func Normalize(word string) string {
	return strings.Map(func(r rune) rune {
		if !unicode.IsLetter(r) {
			return -1
		}
		return unicode.ToLower(r)
	}, word)
}

// PatternOf computes the skeleton of the last four letters of word. A "y"
// is a vowel unless it opens the ending.
func PatternOf(word string) Pattern {
	letters := []rune(Normalize(word))
	if len(letters) > endingLen {
		letters = letters[len(letters)-endingLen:]
	}
	var vowels, consonants strings.Builder
	for i, r := range letters {
		if isVowel(r) || (r == 'y' && i > 0) {
			vowels.WriteRune(r)
			continue
		}
		consonants.WriteRune(r)
	}
	return Pattern{Vowels: vowels.String(), Consonants: consonants.String()}
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}

// Score grades how well two words rhyme on spelling alone:
//
//	4  identical vowel and consonant skeletons
//	3  identical vowel skeleton, consonants overlap by at least half
//	2  identical vowel skeleton of two or more letters
//	1  last vowel and last consonant letters match
//	0  no rhyme
//
// Score(a, b) == Score(b, a) for all inputs.
func Score(a, b string) int {
	pa, pb := PatternOf(a), PatternOf(b)
	if pa.Empty() || pb.Empty() {
		return 0
	}
	if pa == pb {
		return 4
	}
	if pa.Vowels != "" && pa.Vowels == pb.Vowels {
		longest := max(utf8.RuneCountInString(pa.Consonants), utf8.RuneCountInString(pb.Consonants))
		if longest > 0 && 2*overlap(pa.Consonants, pb.Consonants) >= longest {
			return 3
		}
		if utf8.RuneCountInString(pa.Vowels) >= 2 {
			return 2
		}
	}
	if lastEqual(pa.Vowels, pb.Vowels) && lastEqual(pa.Consonants, pb.Consonants) && pa.Vowels != "" {
		return 1
	}
	return 0
}

// overlap counts letters shared by both skeletons, respecting multiplicity.
func overlap(a, b string) int {
	counts := map[rune]int{}
	for _, r := range a {
		counts[r]++
	}
	shared := 0
	for _, r := range b {
		if counts[r] > 0 {
			counts[r]--
			shared++
		}
	}
	return shared
}

func lastEqual(a, b string) bool {
	if a == "" || b == "" {
		return a == b
	}
	ra, rb := []rune(a), []rune(b)
	return ra[len(ra)-1] == rb[len(rb)-1]
}
