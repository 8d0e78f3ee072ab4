package historyui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/muse/internal/model"
	"github.com/verte-zerg/muse/internal/store"
)

type fakeStore struct {
	poems []model.PoemRecord
}

func (f *fakeStore) ListPoems(_ context.Context, cfg model.HistoryConfig) ([]model.PoemRecord, error) {
	var out []model.PoemRecord
	for _, p := range f.poems {
		if cfg.Poet == "" || p.Poet == cfg.Poet {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeStore) DeletePoem(_ context.Context, id string) error {
	for i, p := range f.poems {
		if p.ID == id {
			f.poems = append(f.poems[:i], f.poems[i+1:]...)
			return nil
		}
	}
	return store.ErrNotFound
}

func newFakeStore() *fakeStore {
	at := time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC)
	return &fakeStore{poems: []model.PoemRecord{
		{ID: "a", Poet: "Robert Frost", Text: "Woods lovely dark deep\nMiles go", CreatedAt: at},
		{ID: "b", Poet: "Emily Dickinson", Text: "Hope thing feathers", Devices: []string{"Rhyme"}, CreatedAt: at.Add(time.Hour)},
		{ID: "c", Poet: "Robert Frost", Text: "Road diverged yellow wood", CreatedAt: at.Add(2 * time.Hour)},
	}}
}

func send(m *Model, msg tea.Msg) {
	m.Update(msg)
}

func typeText(m *Model, s string) {
	for _, r := range s {
		send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestNewModelListsNewestFirst(t *testing.T) {
	m := NewModel(newFakeStore(), model.HistoryConfig{})
	if len(m.poems) != 3 || m.poems[0].ID != "c" || m.poems[2].ID != "a" {
		t.Fatalf("unexpected order: %+v", m.poems)
	}
	rows := m.table.Rows()
	if len(rows) != 3 || rows[0][3] != "Road diverged yellow wood" || rows[2][3] != "Woods lovely dark deep" {
		t.Fatalf("unexpected rows: %v", rows)
	}
	if rows[0][2] != "-" || rows[1][2] != "Rhyme" {
		t.Fatalf("unexpected device cells: %v", rows)
	}
}

func TestSelectionShowsPoem(t *testing.T) {
	m := NewModel(newFakeStore(), model.HistoryConfig{})
	send(m, tea.WindowSizeMsg{Width: 100, Height: 30})
	if !strings.Contains(m.poem.View(), "Road diverged") {
		t.Fatalf("expected newest poem shown, got %q", m.poem.View())
	}
	send(m, tea.KeyMsg{Type: tea.KeyDown})
	if !strings.Contains(m.poem.View(), "Hope thing feathers") || !strings.Contains(m.poem.View(), "Rhyme") {
		t.Fatalf("expected second poem shown, got %q", m.poem.View())
	}
	view := m.View()
	if !strings.Contains(view, "History: poet=any") || !strings.Contains(view, "Quit: q") {
		t.Fatalf("unexpected view:\n%s", view)
	}
}

func TestPoetFilter(t *testing.T) {
	m := NewModel(newFakeStore(), model.HistoryConfig{})
	send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	if !m.filterMode {
		t.Fatalf("expected filter mode")
	}
	typeText(m, "Robert Frost")
	send(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.filterMode || m.cfg.Poet != "Robert Frost" {
		t.Fatalf("expected poet filter applied, got %q", m.cfg.Poet)
	}
	if len(m.poems) != 2 {
		t.Fatalf("expected 2 Frost poems, got %d", len(m.poems))
	}

	send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	typeText(m, "x")
	send(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.cfg.Poet != "Robert Frost" || len(m.poems) != 2 {
		t.Fatalf("expected esc to keep filter, got %q", m.cfg.Poet)
	}
}

func TestDeleteSelected(t *testing.T) {
	st := newFakeStore()
	m := NewModel(st, model.HistoryConfig{})
	send(m, tea.KeyMsg{Type: tea.KeyDown})
	send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	if len(st.poems) != 2 || len(m.poems) != 2 {
		t.Fatalf("expected one poem deleted, got %d", len(st.poems))
	}
	for _, p := range st.poems {
		if p.ID == "b" {
			t.Fatalf("expected poem b deleted")
		}
	}
	if m.table.Cursor() != 1 {
		t.Fatalf("expected cursor to stay in place, got %d", m.table.Cursor())
	}
}

func TestEmptyHistory(t *testing.T) {
	m := NewModel(&fakeStore{}, model.HistoryConfig{Poet: "Edgar Allan Poe", Last: 5})
	send(m, tea.WindowSizeMsg{Width: 80, Height: 10})
	send(m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	view := m.View()
	if !strings.Contains(view, "No poems found.") || !strings.Contains(view, "poet=Edgar Allan Poe  last=5") {
		t.Fatalf("unexpected view:\n%s", view)
	}
}

func TestFitLinesPadsAndTrims(t *testing.T) {
	out := fitLines("ab\ncd\nef", 4, 2)
	if out != "ab  \ncd  " {
		t.Fatalf("unexpected fit %q", out)
	}
	out = fitLines("ab", 3, 2)
	if out != "ab \n   " {
		t.Fatalf("unexpected padded fit %q", out)
	}
}

func TestTruncateLine(t *testing.T) {
	if got := truncateLine("Once upon a midnight", 10); got != "Once up..." {
		t.Fatalf("unexpected truncation %q", got)
	}
	if got := truncateLine("Once", 10); got != "Once" {
		t.Fatalf("unexpected short line %q", got)
	}
	if got := truncateLine("Once", 2); got != "On" {
		t.Fatalf("unexpected narrow truncation %q", got)
	}
}
