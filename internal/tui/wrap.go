package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/muse/internal/rhyme"
)

type styledRune struct {
	s       string
	width   int
	isSpace bool
}

// renderPoem styles each line, accents line-final words that rhyme with
// another line's final word and wraps every line to width.
func renderPoem(lines []string, width int) string {
	ends := rhymingEnds(lines)
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = wrapStyledRunes(styleLine(line, ends[i]), width)
	}
	return strings.Join(out, "\n")
}

func rhymingEnds(lines []string) map[int]bool {
	lasts := make([]string, len(lines))
	for i, line := range lines {
		if fields := strings.Fields(line); len(fields) > 0 {
			lasts[i] = fields[len(fields)-1]
		}
	}
	out := map[int]bool{}
	for i := range lasts {
		for j := i + 1; j < len(lasts); j++ {
			if rhyme.SameEnding(lasts[i], lasts[j]) {
				out[i] = true
				out[j] = true
			}
		}
	}
	return out
}

func styleLine(line string, accentLast bool) []styledRune {
	runes := []rune(strings.TrimRight(line, " "))
	lastStart := len(runes)
	if accentLast {
		lastStart = lastWordStart(runes)
	}
	out := make([]styledRune, 0, len(runes))
	for i, r := range runes {
		style := verseStyle
		if i >= lastStart {
			style = rhymeStyle
		}
		out = append(out, styledRune{
			s:       style.Render(string(r)),
			width:   runewidth.RuneWidth(r),
			isSpace: r == ' ',
		})
	}
	return out
}

func lastWordStart(runes []rune) int {
	for i := len(runes) - 1; i >= 0; i-- {
		if runes[i] == ' ' {
			return i + 1
		}
	}
	return 0
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}

func wrapStyledRunes(runes []styledRune, width int) string {
	if width <= 0 {
		return renderStyledRunes(runes)
	}
	var out strings.Builder
	line := make([]styledRune, 0, len(runes))
	lineWidth := 0
	lastSpaceIdx := -1

	for i := 0; i < len(runes); {
		item := runes[i]
		if lineWidth+item.width > width && len(line) > 0 {
			if lastSpaceIdx >= 0 {
				out.WriteString(renderStyledRunes(line[:lastSpaceIdx]))
				out.WriteRune('\n')
				line = append([]styledRune{}, line[lastSpaceIdx+1:]...)
				lineWidth = lineWidthOf(line)
				lastSpaceIdx = lastSpaceIndex(line)
			} else {
				out.WriteString(renderStyledRunes(line))
				out.WriteRune('\n')
				line = line[:0]
				lineWidth = 0
				lastSpaceIdx = -1
			}
			continue
		}
		line = append(line, item)
		lineWidth += item.width
		if item.isSpace {
			lastSpaceIdx = len(line) - 1
		}
		i++
	}
	out.WriteString(renderStyledRunes(line))
	return out.String()
}

func lineWidthOf(line []styledRune) int {
	total := 0
	for _, item := range line {
		total += item.width
	}
	return total
}

func lastSpaceIndex(line []styledRune) int {
	for i := len(line) - 1; i >= 0; i-- {
		if line[i].isSpace {
			return i
		}
	}
	return -1
}
