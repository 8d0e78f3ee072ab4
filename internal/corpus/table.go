// Package corpus builds n-gram transition tables from source text.
package corpus

import "strings"

const keySep = " "

// Key is an ordered tuple of consecutive tokens used to look up successors.
// Tokens never contain spaces, so the joined form is unambiguous.
type Key string

// NewKey builds a key from the given tokens.
func NewKey(tokens ...string) Key {
	return Key(strings.Join(tokens, keySep))
}

// Tokens returns the key's tokens in order.
func (k Key) Tokens() []string {
	if k == "" {
		return nil
	}
	return strings.Split(string(k), keySep)
}

// Len returns the number of tokens in the key.
func (k Key) Len() int {
	if k == "" {
		return 0
	}
	return strings.Count(string(k), keySep) + 1
}

// Successor is a candidate next token with its occurrence count.
type Successor struct {
	Token string
	Count int
}

// Row lists the successors of a key in first-seen order.
type Row []Successor

// Total returns the sum of all successor counts.
func (r Row) Total() int {
	total := 0
	for _, s := range r {
		total += s.Count
	}
	return total
}

// Count returns the count recorded for token, or 0.
func (r Row) Count(token string) int {
	for _, s := range r {
		if s.Token == token {
			return s.Count
		}
	}
	return 0
}

// Table maps context keys to successor rows. The zero value is an empty
// table, and a nil *Table behaves the same way.
type Table struct {
	depth int
	keys  []Key
	rows  map[Key]Row
	vocab []string
	known map[string]struct{}
}

func newTable(depth int) *Table {
	return &Table{depth: depth, rows: map[Key]Row{}, known: map[string]struct{}{}}
}

func (t *Table) add(key Key, token string) {
	row, ok := t.rows[key]
	if !ok {
		t.keys = append(t.keys, key)
	}
	for i := range row {
		if row[i].Token == token {
			row[i].Count++
			return
		}
	}
	if _, ok := t.known[token]; !ok {
		t.known[token] = struct{}{}
		t.vocab = append(t.vocab, token)
	}
	t.rows[key] = append(row, Successor{Token: token, Count: 1})
}

// Depth returns the key length the table was built with.
func (t *Table) Depth() int {
	if t == nil {
		return 0
	}
	return t.depth
}

// Len returns the number of context keys.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.keys)
}

// Empty reports whether the table holds no keys.
func (t *Table) Empty() bool {
	return t.Len() == 0
}

// Has reports whether key was observed with a successor.
func (t *Table) Has(key Key) bool {
	if t == nil {
		return false
	}
	_, ok := t.rows[key]
	return ok
}

// Successors returns the row for key. Missing keys yield an empty row.
func (t *Table) Successors(key Key) Row {
	if t == nil {
		return nil
	}
	return t.rows[key]
}

// Keys returns the context keys in first-seen order.
func (t *Table) Keys() []Key {
	if t == nil {
		return nil
	}
	out := make([]Key, len(t.keys))
	copy(out, t.keys)
	return out
}

// KeyAt returns the i-th key in first-seen order. It reports false when i
// is out of range.
func (t *Table) KeyAt(i int) (Key, bool) {
	if i < 0 || i >= t.Len() {
		return "", false
	}
	return t.keys[i], true
}

// Vocabulary returns every token seen as a successor, in first-seen order.
func (t *Table) Vocabulary() []string {
	if t == nil {
		return nil
	}
	out := make([]string, len(t.vocab))
	copy(out, t.vocab)
	return out
}
