package devices

import (
	"strings"
	"testing"
)

func TestApplyWithoutDevicesJoinsLines(t *testing.T) {
	lines := []string{"The moon rises slow", "Over silver hills", "Night comes"}
	if got := Apply(lines, Set{}); got != strings.Join(lines, "\n") {
		t.Fatalf("unexpected output: %q", got)
	}
	if got := Apply(lines, nil); got != strings.Join(lines, "\n") {
		t.Fatalf("unexpected output for nil set: %q", got)
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	lines := []string{"big bold brave tiger runs", "quiet moon", "soft rain falls", "river sings"}
	orig := append([]string(nil), lines...)
	Apply(lines, Parse([]string{"Alliteration", "Repetition", "Rhyme", "Metaphor"}))
	for i := range lines {
		if lines[i] != orig[i] {
			t.Fatalf("input line %d mutated: %q", i, lines[i])
		}
	}
}

func TestParseIgnoresUnknownAndCase(t *testing.T) {
	set := Parse([]string{"metaphor", " RHYME ", "Sonnet", ""})
	if len(set) != 2 || !set.Has(Metaphor) || !set.Has(Rhyme) {
		t.Fatalf("unexpected set: %v", set)
	}
	names := set.Names()
	if len(names) != 2 || names[0] != "Rhyme" || names[1] != "Metaphor" {
		t.Fatalf("expected names in application order, got %v", names)
	}
}

func TestSetToggle(t *testing.T) {
	set := Set{}
	set.Toggle(Repetition)
	if !set.Has(Repetition) {
		t.Fatalf("expected repetition after toggle")
	}
	set.Toggle(Repetition)
	if set.Has(Repetition) {
		t.Fatalf("expected repetition removed after second toggle")
	}
}

func TestMetaphorScenario(t *testing.T) {
	got := Apply([]string{"the moon rises slow"}, Parse([]string{"Metaphor"}))
	if got != "the a silver lantern rises slow" {
		t.Fatalf("unexpected metaphor output: %q", got)
	}
}

func TestMetaphorReplacesInsideWords(t *testing.T) {
	got := applyMetaphor([]string{"down the street"})
	if got[0] != "down the sa green sentinelt" {
		t.Fatalf("expected substring replacement, got %q", got[0])
	}
}

func TestMetaphorPhrasesContainNoLiterals(t *testing.T) {
	for _, m := range metaphors {
		for _, other := range metaphors {
			if strings.Contains(m.figurative, other.literal) {
				t.Fatalf("phrase %q contains literal %q", m.figurative, other.literal)
			}
		}
	}
	line := []string{"moon sun river tree sky wind stars clouds night"}
	once := applyMetaphor(line)
	twice := applyMetaphor(once)
	if once[0] != twice[0] {
		t.Fatalf("metaphor not idempotent: %q vs %q", once[0], twice[0])
	}
}

func TestAlliterationScenario(t *testing.T) {
	got := alliterate("big bold brave tiger runs")
	if got != "Big bold brave tiger runs" {
		t.Fatalf("unexpected alliteration: %q", got)
	}
}

func TestAlliterationCapsBucketAndOthers(t *testing.T) {
	got := alliterate("soft silver shadows sing slowly over tall green hills")
	// s bucket: soft silver sing slowly (shadows is "sh"); keep three plus two others.
	if got != "Soft silver sing shadows over" {
		t.Fatalf("unexpected alliteration: %q", got)
	}
}

func TestAlliterationPrefersClusters(t *testing.T) {
	got := alliterate("the thin thorn sat")
	if got != "The thin thorn sat" {
		t.Fatalf("unexpected alliteration: %q", got)
	}
}

func TestAlliterationDropsShortWords(t *testing.T) {
	got := alliterate("a big red ball by the bay")
	if got != "Big ball bay red the" {
		t.Fatalf("unexpected alliteration: %q", got)
	}
}

func TestAlliterationLeavesLinesWithoutBucket(t *testing.T) {
	for _, line := range []string{"quiet moon", "an old owl", "sky"} {
		if got := alliterate(line); got != line {
			t.Fatalf("expected %q unchanged, got %q", line, got)
		}
	}
}

func TestAlliterationTiesKeepFirstBucket(t *testing.T) {
	got := alliterate("moon mist dark dawn hills")
	if got != "Moon mist dark dawn" {
		t.Fatalf("unexpected alliteration: %q", got)
	}
}

func TestRepetitionAppendsRefrainToOddLines(t *testing.T) {
	lines := []string{"Soft rain falls tonight", "Over the hills", "Winds are calling", "Stars wake"}
	got := applyRepetition(lines)
	want := []string{
		"Soft rain falls tonight",
		"Over the hills Soft rain falls",
		"Winds are calling",
		"Stars wake Soft rain falls",
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("line %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRepetitionSkipsShortPoems(t *testing.T) {
	lines := []string{"Soft rain falls tonight", "Over the hills"}
	got := applyRepetition(lines)
	if got[0] != lines[0] || got[1] != lines[1] {
		t.Fatalf("expected two-line poem unchanged, got %v", got)
	}
}

func TestRhymeMovesBestPairsFirst(t *testing.T) {
	lines := []string{
		"Waiting for a heart", // heart/start score 1
		"Racing from the start",
		"Candle in the night",
		"Lantern of the light", // night/light score 4
		"Alone",
	}
	got := applyRhyme([]string{lines[0], lines[1], lines[2], lines[3], lines[4]})
	want := []string{lines[2], lines[3], lines[0], lines[1], lines[4]}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("line %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRhymeDropsUnscoredPairsToTheEnd(t *testing.T) {
	lines := []string{
		"Beneath the river",
		"A stone",
		"Softly the moon",
		"Comes very soon",
		"Where is it",
		"Over there",
	}
	got := applyRhyme(lines)
	want := []string{lines[2], lines[3], lines[0], lines[1], lines[4], lines[5]}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("line %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRhymePairScoreIsSymmetric(t *testing.T) {
	lines := []string{"In the night", "Bright light", "the moon", "Soon.", "river", "sky", "heart", "start"}
	for _, a := range lines {
		for _, b := range lines {
			if pairScore(a, b) != pairScore(b, a) {
				t.Fatalf("pairScore(%q, %q) asymmetric", a, b)
			}
		}
	}
	if pairScore("at night", "all night") != 0 {
		t.Fatalf("identical last words must not score")
	}
	if pairScore("look at them", "look at him") != 0 {
		t.Fatalf("function words must not score")
	}
}

func TestApplyFixedOrder(t *testing.T) {
	lines := []string{"big bold brave moon", "soft night", "dark deep dream", "pale light"}
	got := Apply(lines, Parse([]string{"Metaphor", "Alliteration"}))
	want := "Big bold brave a silver lantern\nsoft a velvet cloak\nDark deep dream\npale light"
	if got != want {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", got, want)
	}
}
