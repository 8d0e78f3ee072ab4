package devices

import (
	"sort"
	"strings"

	"github.com/verte-zerg/muse/internal/rhyme"
)

type linePair struct {
	first  int
	second int
	score  int
}

// applyRhyme scores adjacent line pairs on their last words and moves the
// best-rhyming pairs to the front. Unpaired lines follow in their original
// order.
func applyRhyme(lines []string) []string {
	var pairs []linePair
	for i := 0; i+1 < len(lines); i += 2 {
		if score := pairScore(lines[i], lines[i+1]); score > 0 {
			pairs = append(pairs, linePair{first: i, second: i + 1, score: score})
		}
	}
	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].score > pairs[j].score
	})

	used := make([]bool, len(lines))
	out := make([]string, 0, len(lines))
	for _, p := range pairs {
		if used[p.first] || used[p.second] {
			continue
		}
		used[p.first] = true
		used[p.second] = true
		out = append(out, lines[p.first], lines[p.second])
	}
	for i, line := range lines {
		if !used[i] {
			out = append(out, line)
		}
	}
	return out
}

func pairScore(a, b string) int {
	wa, wb := lastWord(a), lastWord(b)
	if wa == wb || !rhyme.Rhymable(wa) || !rhyme.Rhymable(wb) {
		return 0
	}
	return rhyme.Score(wa, wb)
}

func lastWord(line string) string {
	words := strings.Fields(line)
	if len(words) == 0 {
		return ""
	}
	return rhyme.Normalize(words[len(words)-1])
}
