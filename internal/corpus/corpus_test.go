package corpus

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTokenizeDropsNumeralsStopWordsAndPunctuation(t *testing.T) {
	tokens := Tokenize("XII. The Moon, and 42 stars-bright; I saw IV")
	expected := []string{"moon", "stars", "bright", "saw"}
	if len(tokens) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, tokens)
	}
	for i, tok := range expected {
		if tokens[i] != tok {
			t.Fatalf("expected %q at %d, got %q", tok, i, tokens[i])
		}
	}
}

func TestBuildKeysHaveDepthAndPositiveCounts(t *testing.T) {
	text := "Hope is the thing with feathers that perches in the soul and sings the tune without the words and never stops at all"
	for depth := 1; depth <= 3; depth++ {
		table := Build(text, depth)
		if table.Empty() {
			t.Fatalf("depth %d: expected non-empty table", depth)
		}
		if table.Depth() != depth {
			t.Fatalf("expected depth %d, got %d", depth, table.Depth())
		}
		for _, key := range table.Keys() {
			if key.Len() != depth {
				t.Fatalf("key %q has %d tokens, want %d", key, key.Len(), depth)
			}
			row := table.Successors(key)
			if len(row) == 0 {
				t.Fatalf("key %q has no successors", key)
			}
			for _, s := range row {
				if s.Count < 1 {
					t.Fatalf("key %q successor %q has count %d", key, s.Token, s.Count)
				}
			}
		}
	}
}

func TestBuildWindowsOverFilteredTokens(t *testing.T) {
	table := Build("sky is blue blue sky is clear", 1)
	row := table.Successors(NewKey("sky"))
	if len(row) != 2 || row.Count("blue") != 1 || row.Count("clear") != 1 {
		t.Fatalf("unexpected successors for sky: %+v", row)
	}
	if got := table.Successors(NewKey("blue")); got.Count("blue") != 1 || got.Count("sky") != 1 {
		t.Fatalf("unexpected successors for blue: %+v", got)
	}
	if table.Has(NewKey("is")) {
		t.Fatalf("stop word should not appear as a key")
	}
}

func TestBuildCountsRepeatedTransitions(t *testing.T) {
	table := Build("rose red rose red rose white", 1)
	row := table.Successors(NewKey("rose"))
	if row.Count("red") != 2 || row.Count("white") != 1 {
		t.Fatalf("unexpected counts: %+v", row)
	}
	if row.Total() != 3 {
		t.Fatalf("expected total 3, got %d", row.Total())
	}
	vocab := table.Vocabulary()
	if len(vocab) != 3 || vocab[0] != "red" || vocab[1] != "rose" || vocab[2] != "white" {
		t.Fatalf("unexpected vocabulary: %v", vocab)
	}
}

func TestBuildShortInputYieldsEmptyTable(t *testing.T) {
	if !Build("", 2).Empty() {
		t.Fatalf("expected empty table for empty text")
	}
	if !Build("lonely heart", 2).Empty() {
		t.Fatalf("expected empty table when tokens < depth+1")
	}
	if Build("lonely heart sings", 2).Len() != 1 {
		t.Fatalf("expected exactly one key for depth+1 tokens")
	}
}

func TestZeroValueTableIsEmpty(t *testing.T) {
	var table Table
	if !table.Empty() || table.Has(NewKey("any")) || len(table.Successors(NewKey("any"))) != 0 {
		t.Fatalf("zero table should behave as empty")
	}
	var nilTable *Table
	if !nilTable.Empty() || len(nilTable.Keys()) != 0 || len(nilTable.Vocabulary()) != 0 {
		t.Fatalf("nil table should behave as empty")
	}
	if _, ok := table.KeyAt(0); ok {
		t.Fatalf("zero table should have no key at 0")
	}
	if _, ok := nilTable.KeyAt(0); ok {
		t.Fatalf("nil table should have no key at 0")
	}
}

func TestKeyAtBounds(t *testing.T) {
	table := Build("sky blue clear", 1)
	if key, ok := table.KeyAt(1); !ok || key != NewKey("blue") {
		t.Fatalf("expected blue at 1, got %q (%v)", key, ok)
	}
	for _, i := range []int{-1, table.Len()} {
		if _, ok := table.KeyAt(i); ok {
			t.Fatalf("expected no key at %d", i)
		}
	}
}

func TestLoadMissingFileYieldsEmptyTable(t *testing.T) {
	table := Load(filepath.Join(t.TempDir(), "missing.txt"), 2)
	if !table.Empty() {
		t.Fatalf("expected empty table for missing file")
	}
	if Load(t.TempDir(), 2).Len() != 0 {
		t.Fatalf("expected empty table for a directory path")
	}
}

func TestLoadReadsCorpusFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frost.txt")
	text := "Whose woods these are I think I know\nHis house is in the village though\n"
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatalf("write corpus: %v", err)
	}
	table := Load(path, 1)
	if !table.Has(NewKey("woods")) {
		t.Fatalf("expected key woods, got %v", table.Keys())
	}
	// Line breaks do not reset the window.
	if table.Successors(NewKey("know")).Count("his") != 1 {
		t.Fatalf("expected know -> his across lines")
	}
}

func TestKeyTokens(t *testing.T) {
	key := NewKey("silent", "night")
	tokens := key.Tokens()
	if len(tokens) != 2 || tokens[0] != "silent" || tokens[1] != "night" {
		t.Fatalf("unexpected tokens: %v", tokens)
	}
	if Key("").Len() != 0 || Key("").Tokens() != nil {
		t.Fatalf("empty key should have no tokens")
	}
}
