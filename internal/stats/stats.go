// Package stats contains transition-table statistics and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/verte-zerg/muse/internal/corpus"
	"github.com/verte-zerg/muse/internal/model"
)

const sparkChars = " .:-=+*#%@"

// Summary describes the shape of a transition table.
type Summary struct {
	Depth         int
	Keys          int
	Vocabulary    int
	Transitions   int
	Deterministic int
	MaxBranching  int
	MeanBranching float64
	// Branching[i] is the number of keys with i+1 distinct successors.
	Branching []int
}

// Summarize computes a Summary for table. A nil or empty table yields a
// zero Summary apart from its depth.
func Summarize(table *corpus.Table) Summary {
	s := Summary{Depth: table.Depth(), Keys: table.Len(), Vocabulary: len(table.Vocabulary())}
	if s.Keys == 0 {
		return s
	}
	distinct := 0
	for _, key := range table.Keys() {
		row := table.Successors(key)
		n := len(row)
		distinct += n
		s.Transitions += row.Total()
		if n == 1 {
			s.Deterministic++
		}
		if n > s.MaxBranching {
			s.MaxBranching = n
		}
	}
	s.MeanBranching = float64(distinct) / float64(s.Keys)
	s.Branching = make([]int, s.MaxBranching)
	for _, key := range table.Keys() {
		if n := len(table.Successors(key)); n > 0 {
			s.Branching[n-1]++
		}
	}
	return s
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// RenderSummary prints a summary of the table's shape.
func RenderSummary(w io.Writer, s Summary) error {
	if s.Keys == 0 {
		_, err := fmt.Fprintln(w, "Model is empty.")
		return err
	}
	lines := []string{
		"Summary",
		fmt.Sprintf("Depth: %d", s.Depth),
		fmt.Sprintf("Contexts: %d", s.Keys),
		fmt.Sprintf("Vocabulary: %d", s.Vocabulary),
		fmt.Sprintf("Transitions: %d", s.Transitions),
		fmt.Sprintf("Deterministic contexts: %d (%.1f%%)", s.Deterministic, 100*float64(s.Deterministic)/float64(s.Keys)),
		fmt.Sprintf("Branching: mean %.2f, max %d", s.MeanBranching, s.MaxBranching),
	}
	if len(s.Branching) > 1 {
		values := make([]float64, len(s.Branching))
		for i, n := range s.Branching {
			values[i] = float64(n)
		}
		lines = append(lines, fmt.Sprintf("Distribution: [%s]", Sparkline(values)))
	}
	lines = append(lines, "")
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// RenderContextTable prints the given context statistics as a table.
func RenderContextTable(w io.Writer, contexts []model.ContextStat) error {
	if len(contexts) == 0 {
		_, err := fmt.Fprintln(w, "No contexts found.")
		return err
	}
	if _, err := fmt.Fprintln(w, "Top Contexts"); err != nil {
		return err
	}
	cols := []column{
		{title: "Context", max: maxContextWidth},
		{title: "Successors", right: true},
		{title: "Total", right: true},
		{title: "Likeliest"},
		{title: "Share", right: true},
	}
	rows := make([][]string, 0, len(contexts))
	for _, c := range contexts {
		share := 0.0
		if c.Total > 0 {
			share = float64(c.TopCount) / float64(c.Total)
		}
		rows = append(rows, []string{
			c.Key,
			fmt.Sprintf("%d", c.Successors),
			fmt.Sprintf("%d", c.Total),
			c.Top,
			fmt.Sprintf("%.1f%%", share*100),
		})
	}
	for _, line := range formatTable(cols, rows) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, "")
	return err
}
