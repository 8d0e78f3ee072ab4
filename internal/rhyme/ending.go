// Package rhyme provides spelling-based rhyme heuristics.
//
// Two strategies live here and are deliberately kept apart: Ending buckets
// words by normalized suffix and drives the generator's forward rhyme
// search, while Pattern/Score compare vowel and consonant skeletons and
// drive the Rhyme device.
package rhyme

import (
	"sort"
	"strings"
)

type suffixBucket struct {
	suffix string
	bucket string
}

var endingTable = []suffixBucket{
	{"ight", "ite"}, {"ite", "ite"}, {"yte", "ite"},
	{"tion", "shun"}, {"sion", "shun"}, {"cian", "shun"},
	{"eign", "ane"}, {"ain", "ane"}, {"ane", "ane"},
	{"eam", "eem"}, {"eem", "eem"}, {"eme", "eem"},
	{"ore", "or"}, {"oor", "or"}, {"oar", "or"}, {"our", "or"},
	{"awl", "all"}, {"all", "all"},
	{"ound", "ound"}, {"owned", "ound"},
	{"eep", "eep"}, {"eap", "eep"},
	{"ire", "ire"}, {"yre", "ire"},
	{"eigh", "ay"}, {"ay", "ay"},
	{"ee", "ee"}, {"ea", "ee"},
	{"eart", "art"}, {"art", "art"},
	{"one", "one"}, {"own", "one"}, {"oan", "one"},
	{"ined", "ind"}, {"ind", "ind"},
	{"air", "air"}, {"are", "air"}, {"ere", "air"},
	{"ence", "ence"}, {"ense", "ence"},
	{"ing", "ing"},
	{"ess", "ess"},
	{"ark", "ark"},
	{"ove", "ove"},
	{"ust", "ust"},
	{"oon", "oon"}, {"une", "oon"},
	{"ow", "ow"}, {"ough", "ow"},
}

func init() {
	sort.SliceStable(endingTable, func(i, j int) bool {
		return len(endingTable[i].suffix) > len(endingTable[j].suffix)
	})
}

// Ending returns the ending class of word. The longest matching suffix in
// the table wins; other words fall back to their last three letters.
// Words shorter than three letters have no class.
func Ending(word string) string {
	word = Normalize(word)
	letters := []rune(word)
	if len(letters) < 3 {
		return ""
	}
	for _, entry := range endingTable {
		if strings.HasSuffix(word, entry.suffix) {
			return entry.bucket
		}
	}
	return string(letters[len(letters)-3:])
}

// SameEnding reports whether two words fall in the same ending class.
func SameEnding(a, b string) bool {
	ea := Ending(a)
	return ea != "" && ea == Ending(b)
}
