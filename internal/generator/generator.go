// Package generator walks transition tables to produce lines of verse.
package generator

import (
	"math/rand"
	"unicode/utf8"

	"github.com/verte-zerg/muse/internal/corpus"
	"github.com/verte-zerg/muse/internal/rhyme"
)

const (
	minExtensions   = 4
	maxExtensions   = 10
	extensionCap    = 12
	minLineTokens   = 4
	coupletLeadIn   = 3
	minRhymeLen     = 4
	attemptsPerLine = 4
)

// MaxLines bounds a single Generate call regardless of the requested count.
const MaxLines = 1000

// Generator produces lines from a transition table. It owns the random
// source, so one Generator should be shared for a whole run.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator drawing from rnd.
func New(rnd *rand.Rand) *Generator {
	return &Generator{rnd: rnd}
}

// NewSeeded returns a Generator with a deterministic source.
func NewSeeded(seed int64) *Generator {
	return New(rand.New(rand.NewSource(seed)))
}

// RandomKey draws a context key uniformly from the table.
func (g *Generator) RandomKey(table *corpus.Table) (corpus.Key, bool) {
	if table.Empty() {
		return "", false
	}
	return table.KeyAt(g.rnd.Intn(table.Len()))
}

// Generate produces up to lineCount lines starting from start, never more
// than MaxLines. Lines come in rhyming couplets when the vocabulary allows
// it; otherwise single lines are emitted. It returns nil when start is not
// in the table.
func (g *Generator) Generate(table *corpus.Table, start corpus.Key, lineCount int) [][]string {
	if lineCount <= 0 || !table.Has(start) {
		return nil
	}
	if lineCount > MaxLines {
		lineCount = MaxLines
	}
	vocab := table.Vocabulary()
	lines := make([][]string, 0, lineCount)
	key := start
	for attempt := 0; attempt < lineCount*attemptsPerLine && len(lines) < lineCount; attempt++ {
		first := g.Line(table, key)
		key, _ = g.RandomKey(table)
		if len(first) < minLineTokens {
			continue
		}
		lines = append(lines, first)
		if len(lines) == lineCount {
			break
		}
		word, ok := g.rhymeFor(vocab, first[len(first)-1])
		if !ok {
			continue
		}
		second := g.lineEndingWith(table, key, word)
		key, _ = g.RandomKey(table)
		lines = append(lines, second)
	}
	return lines
}

// Line walks the table from key with a random number of extensions. Lines
// that walk off the model before reaching four tokens are discarded (nil).
func (g *Generator) Line(table *corpus.Table, key corpus.Key) []string {
	extensions := minExtensions + g.rnd.Intn(maxExtensions-minExtensions+1)
	line := g.walk(table, key, extensions)
	if len(line) < minLineTokens {
		return nil
	}
	return line
}

func (g *Generator) walk(table *corpus.Table, key corpus.Key, extensions int) []string {
	window := key.Tokens()
	depth := len(window)
	line := append([]string(nil), window...)
	for i := 0; i < extensions && i < extensionCap; i++ {
		next, ok := g.Next(table, corpus.NewKey(line[len(line)-depth:]...))
		if !ok {
			break
		}
		line = append(line, next)
	}
	return line
}

func (g *Generator) lineEndingWith(table *corpus.Table, key corpus.Key, word string) []string {
	line := g.walk(table, key, coupletLeadIn)
	if len(line) > coupletLeadIn {
		line = line[:coupletLeadIn]
	}
	return append(line, word)
}

// Next samples a successor of key with probability proportional to its
// count.
func (g *Generator) Next(table *corpus.Table, key corpus.Key) (string, bool) {
	row := table.Successors(key)
	total := row.Total()
	if total == 0 {
		return "", false
	}
	r := g.rnd.Intn(total)
	acc := 0
	for _, s := range row {
		acc += s.Count
		if r < acc {
			return s.Token, true
		}
	}
	return row[len(row)-1].Token, true
}

func (g *Generator) rhymeFor(vocab []string, word string) (string, bool) {
	class := rhyme.Ending(word)
	if class == "" {
		return "", false
	}
	var candidates []string
	for _, v := range vocab {
		if v == word || utf8.RuneCountInString(v) < minRhymeLen {
			continue
		}
		if rhyme.Ending(v) == class {
			candidates = append(candidates, v)
		}
	}
	if len(candidates) == 0 {
		return "", false
	}
	return candidates[g.rnd.Intn(len(candidates))], true
}
