package corpus

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

const maxLineSize = 1024 * 1024

// ReadText reads a UTF-8 corpus file line by line.
func ReadText(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only corpus.
			_ = cerr
		}
	}()

	var b strings.Builder
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		b.WriteString(scanner.Text())
		b.WriteByte('\n')
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("failed to read corpus: %w", err)
	}
	return b.String(), nil
}

// Load reads the corpus at path and builds its transition table. Missing,
// unreadable or malformed files yield an empty table.
func Load(path string, depth int) *Table {
	text, err := ReadText(path)
	if err != nil {
		return newTable(max(depth, 1))
	}
	return Build(text, depth)
}
