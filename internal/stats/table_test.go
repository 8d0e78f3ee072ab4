package stats

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	cols := []column{{title: "Context"}, {title: "Total", right: true}, {title: "Likeliest"}}
	rows := [][]string{
		{"red rose", "12", "white"},
		{"sky", "3", "blue"},
	}

	lines := formatTable(cols, rows)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Context  Total Likeliest" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "red rose    12 white    " {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "sky          3 blue     " {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatTableUsesDisplayWidth(t *testing.T) {
	lines := formatTable([]column{{title: "Word"}, {title: "N"}}, [][]string{{"月光", "1"}, {"ab", "2"}})
	if lines[1] != "月光 1" {
		t.Fatalf("unexpected wide row: %q", lines[1])
	}
	if lines[2] != "ab   2" {
		t.Fatalf("unexpected narrow row: %q", lines[2])
	}
}

func TestFormatTableTruncatesLongCells(t *testing.T) {
	cols := []column{{title: "Context", max: 10}, {title: "N", right: true}}
	rows := [][]string{
		{"midnight dreary weak weary", "2"},
		{"raven", "1"},
	}
	lines := formatTable(cols, rows)
	if lines[1] != "midnigh... 2" {
		t.Fatalf("unexpected truncated row: %q", lines[1])
	}
	if lines[2] != "raven      1" {
		t.Fatalf("unexpected short row: %q", lines[2])
	}
}

func TestFormatTableMissingCells(t *testing.T) {
	lines := formatTable([]column{{title: "A"}, {title: "B"}}, [][]string{{"x"}})
	if lines[1] != "x  " {
		t.Fatalf("unexpected padded row: %q", lines[1])
	}
}
