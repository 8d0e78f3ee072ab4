package stats

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/verte-zerg/muse/internal/devices"
	"github.com/verte-zerg/muse/internal/model"
)

// PoemLister loads saved poems.
type PoemLister interface {
	ListPoems(ctx context.Context, cfg model.HistoryConfig) ([]model.PoemRecord, error)
}

// Tally is a labelled count.
type Tally struct {
	Name  string
	Count int
}

// Report contains precomputed data for history rendering.
type Report struct {
	Poems   []model.PoemRecord
	Poets   []Tally
	Devices []Tally
}

// BuildReport loads poems matching cfg and tallies poets and devices.
func BuildReport(ctx context.Context, st PoemLister, cfg model.HistoryConfig) (Report, error) {
	poems, err := st.ListPoems(ctx, cfg)
	if err != nil {
		return Report{}, err
	}
	poets := map[string]int{}
	used := map[string]int{}
	for _, p := range poems {
		poets[p.Poet]++
		for _, name := range devices.Parse(p.Devices).Names() {
			used[name]++
		}
	}
	report := Report{Poems: poems}
	for name, count := range poets {
		report.Poets = append(report.Poets, Tally{Name: name, Count: count})
	}
	sort.Slice(report.Poets, func(i, j int) bool {
		if report.Poets[i].Count == report.Poets[j].Count {
			return report.Poets[i].Name < report.Poets[j].Name
		}
		return report.Poets[i].Count > report.Poets[j].Count
	})
	for _, name := range devices.Order {
		if n := used[string(name)]; n > 0 {
			report.Devices = append(report.Devices, Tally{Name: string(name), Count: n})
		}
	}
	return report, nil
}

// RenderHistory prints the saved poems and their tallies.
func RenderHistory(w io.Writer, report Report) error {
	if len(report.Poems) == 0 {
		_, err := fmt.Fprintln(w, "No poems found.")
		return err
	}
	cols := []column{
		{title: "Date"},
		{title: "Poet", max: maxPoetWidth},
		{title: "Devices"},
		{title: "Lines", right: true},
		{title: "First Line", max: maxFirstLineWidth},
	}
	rows := make([][]string, 0, len(report.Poems))
	for _, p := range report.Poems {
		rows = append(rows, []string{
			p.CreatedAt.Local().Format("2006-01-02 15:04"),
			p.Poet,
			strings.Join(p.Devices, ","),
			fmt.Sprintf("%d", p.Lines),
			FirstLine(p.Text),
		})
	}
	lines := formatTable(cols, rows)
	lines = append(lines, "", fmt.Sprintf("Poems: %d", len(report.Poems)))
	for _, t := range report.Poets {
		lines = append(lines, fmt.Sprintf("  %s: %d", t.Name, t.Count))
	}
	if len(report.Devices) > 0 {
		parts := make([]string, 0, len(report.Devices))
		for _, t := range report.Devices {
			parts = append(parts, fmt.Sprintf("%s %d", t.Name, t.Count))
		}
		lines = append(lines, "Devices: "+strings.Join(parts, ", "))
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// FirstLine returns the first line of text.
func FirstLine(text string) string {
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		return text[:i]
	}
	return text
}
