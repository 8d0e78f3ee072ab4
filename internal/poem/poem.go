// Package poem composes generated lines and devices into finished verse.
package poem

import (
	"errors"
	"strings"
	"unicode"

	"github.com/verte-zerg/muse/internal/corpus"
	"github.com/verte-zerg/muse/internal/devices"
	"github.com/verte-zerg/muse/internal/generator"
)

var (
	// ErrEmptyModel is returned when the corpus produced no transitions.
	ErrEmptyModel = errors.New("corpus model is empty")
	// ErrNoLines is returned when every generated line was discarded.
	ErrNoLines = errors.New("no usable lines generated")
)

// Composer runs generation and devices against a shared generator.
type Composer struct {
	gen *generator.Generator
}

// NewComposer returns a Composer using gen for every random draw.
func NewComposer(gen *generator.Generator) *Composer {
	return &Composer{gen: gen}
}

// Lines generates lineCount lines from a random start key, formatted for
// display.
func (c *Composer) Lines(table *corpus.Table, lineCount int) ([]string, error) {
	start, ok := c.gen.RandomKey(table)
	if !ok {
		return nil, ErrEmptyModel
	}
	raw := c.gen.Generate(table, start, lineCount)
	if len(raw) == 0 {
		return nil, ErrNoLines
	}
	return FormatLines(raw), nil
}

// Compose generates a poem and applies the selected devices.
func (c *Composer) Compose(table *corpus.Table, lineCount int, set devices.Set) (string, error) {
	lines, err := c.Lines(table, lineCount)
	if err != nil {
		return "", err
	}
	return devices.Apply(lines, set), nil
}

// FormatLines joins each token line and upper-cases its first letter.
func FormatLines(raw [][]string) []string {
	out := make([]string, 0, len(raw))
	for _, tokens := range raw {
		out = append(out, capitalize(strings.Join(tokens, " ")))
	}
	return out
}

func capitalize(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
