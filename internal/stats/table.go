package stats

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const (
	ellipsis          = "..."
	maxContextWidth   = 32
	maxPoetWidth      = 24
	maxFirstLineWidth = 48
)

// column describes one table column. Cells wider than max (when max > 0)
// are cut to max display cells, ellipsis included.
type column struct {
	title string
	right bool
	max   int
}

// formatTable lays out rows under cols, each column padded to the widest
// cell it holds after truncation.
func formatTable(cols []column, rows [][]string) []string {
	if len(cols) == 0 {
		return nil
	}
	cells := make([][]string, 0, len(rows)+1)
	header := make([]string, len(cols))
	for i, col := range cols {
		header[i] = col.title
	}
	cells = append(cells, header)
	for _, row := range rows {
		fitted := make([]string, len(cols))
		for i, col := range cols {
			if i < len(row) {
				fitted[i] = fitCell(row[i], col.max)
			}
		}
		cells = append(cells, fitted)
	}

	widths := make([]int, len(cols))
	for _, row := range cells {
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	lines := make([]string, 0, len(cells))
	for _, row := range cells {
		var b strings.Builder
		for i, cell := range row {
			if i > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(padCell(cell, widths[i], cols[i].right))
		}
		lines = append(lines, b.String())
	}
	return lines
}

func fitCell(value string, limit int) string {
	if limit <= 0 {
		return value
	}
	return runewidth.Truncate(value, limit, ellipsis)
}

func padCell(value string, width int, right bool) string {
	if right {
		return runewidth.FillLeft(value, width)
	}
	return runewidth.FillRight(value, width)
}
