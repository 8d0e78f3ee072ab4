package devices

import (
	"strings"
	"unicode/utf8"
)

const (
	maxAlliterative = 3
	maxOthers       = 2
	minBucketed     = 2
	minKept         = 3
)

var clusters = []string{"ch", "sh", "th", "wh", "ph"}

type bucket struct {
	sound string
	words []int
}

func applyAlliteration(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = alliterate(line)
	}
	return out
}

// alliterate rebuilds a line around its largest starting-sound bucket.
// Words shorter than three letters outside the chosen bucket are lost.
func alliterate(line string) string {
	words := strings.Fields(line)
	best := bestBucket(words)
	if best == nil || len(best.words) < minBucketed {
		return line
	}
	picked := best.words
	if len(picked) > maxAlliterative {
		picked = picked[:maxAlliterative]
	}
	inBucket := map[int]struct{}{}
	for _, idx := range best.words {
		inBucket[idx] = struct{}{}
	}
	rebuilt := make([]string, 0, len(picked)+maxOthers)
	for _, idx := range picked {
		rebuilt = append(rebuilt, words[idx])
	}
	others := 0
	for idx, word := range words {
		if others == maxOthers {
			break
		}
		if _, ok := inBucket[idx]; ok {
			continue
		}
		if utf8.RuneCountInString(word) < minKept {
			continue
		}
		rebuilt = append(rebuilt, word)
		others++
	}
	return capitalize(strings.Join(rebuilt, " "))
}

// bestBucket groups words of two or more letters by starting sound and
// returns the bucket with the most words of three or more letters. The
// earliest bucket wins ties. Bucket word lists hold only those qualifying
// words, by index into words.
func bestBucket(words []string) *bucket {
	var buckets []*bucket
	bySound := map[string]*bucket{}
	for idx, word := range words {
		if utf8.RuneCountInString(word) < 2 {
			continue
		}
		sound := startingSound(word)
		if sound == "" {
			continue
		}
		b, ok := bySound[sound]
		if !ok {
			b = &bucket{sound: sound}
			bySound[sound] = b
			buckets = append(buckets, b)
		}
		if utf8.RuneCountInString(word) >= minKept {
			b.words = append(b.words, idx)
		}
	}
	var best *bucket
	for _, b := range buckets {
		if best == nil || len(b.words) > len(best.words) {
			best = b
		}
	}
	return best
}

// startingSound returns a consonant cluster, a single consonant, or "" for
// words opening with a vowel or a non-letter.
func startingSound(word string) string {
	lower := strings.ToLower(word)
	for _, c := range clusters {
		if strings.HasPrefix(lower, c) {
			return c
		}
	}
	r, _ := utf8.DecodeRuneInString(lower)
	if r < 'a' || r > 'z' {
		return ""
	}
	switch r {
	case 'a', 'e', 'i', 'o', 'u':
		return ""
	}
	return string(r)
}
