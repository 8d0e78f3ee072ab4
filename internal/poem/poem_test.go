package poem

import (
	"errors"
	"strings"
	"testing"

	"github.com/verte-zerg/muse/internal/corpus"
	"github.com/verte-zerg/muse/internal/devices"
	"github.com/verte-zerg/muse/internal/generator"
)

const verse = `Because I could not stop for Death
He kindly stopped for me
The Carriage held but just Ourselves
And Immortality
We slowly drove he knew no haste
And I had put away
My labor and my leisure too
For His Civility`

func TestComposeEmptyModel(t *testing.T) {
	c := NewComposer(generator.NewSeeded(1))
	if _, err := c.Compose(corpus.Build("", 2), 4, nil); !errors.Is(err, ErrEmptyModel) {
		t.Fatalf("expected ErrEmptyModel, got %v", err)
	}
}

func TestComposeNoUsableLines(t *testing.T) {
	c := NewComposer(generator.NewSeeded(1))
	if _, err := c.Compose(corpus.Build("lonely stone waits", 1), 4, nil); !errors.Is(err, ErrNoLines) {
		t.Fatalf("expected ErrNoLines, got %v", err)
	}
}

func TestComposeIsReproducibleWithSeed(t *testing.T) {
	table := corpus.Build(strings.Repeat(verse+"\n", 3), 2)
	set := devices.Parse([]string{"Rhyme", "Metaphor"})
	a, err := NewComposer(generator.NewSeeded(42)).Compose(table, 6, set)
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	b, err := NewComposer(generator.NewSeeded(42)).Compose(table, 6, set)
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if a != b {
		t.Fatalf("expected identical poems for the same seed:\n%s\n---\n%s", a, b)
	}
}

func TestComposeLinesAreCapitalizedAndBounded(t *testing.T) {
	table := corpus.Build(strings.Repeat(verse+"\n", 3), 1)
	lines, err := NewComposer(generator.NewSeeded(9)).Lines(table, 5)
	if err != nil {
		t.Fatalf("lines: %v", err)
	}
	if len(lines) == 0 || len(lines) > 5 {
		t.Fatalf("unexpected line count %d", len(lines))
	}
	for _, line := range lines {
		first := []rune(line)[0]
		if first < 'A' || first > 'Z' {
			t.Fatalf("expected capitalized line, got %q", line)
		}
	}
}

func TestFormatLines(t *testing.T) {
	got := FormatLines([][]string{{"silent", "night"}, {}})
	if len(got) != 2 || got[0] != "Silent night" || got[1] != "" {
		t.Fatalf("unexpected formatting: %q", got)
	}
}
