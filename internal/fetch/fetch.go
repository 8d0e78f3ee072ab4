// Package fetch downloads poet corpora into the corpus directory.
package fetch

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/muse/internal/corpus"
)

// ErrExists is returned when the destination exists and force is not set.
var ErrExists = errors.New("corpus file already exists")

// maxBody caps a single download.
const maxBody = 64 << 20

const (
	gutenbergStart = "*** START OF"
	gutenbergEnd   = "*** END OF"
)

// Result describes a completed download.
type Result struct {
	Path   string
	Bytes  int64
	Tokens int
}

// Download fetches url into destPath. The body is written to a temp file
// next to destPath and renamed into place, so a failed download never
// leaves a partial corpus behind. Gzip bodies are decompressed and
// Project Gutenberg boilerplate is stripped.
func Download(ctx context.Context, url, destPath string, force bool) (Result, error) {
	if url == "" {
		return Result{}, fmt.Errorf("url is required")
	}
	if destPath == "" {
		return Result{}, fmt.Errorf("destination path is required")
	}
	if _, err := os.Stat(destPath); err == nil {
		if !force {
			return Result{}, fmt.Errorf("%w: %s", ErrExists, destPath)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return Result{}, fmt.Errorf("failed to stat corpus: %w", err)
	}
	dir := filepath.Dir(destPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Result{}, fmt.Errorf("failed to create corpus dir: %w", err)
	}

	resp, err := httpRequest(ctx, url)
	if err != nil {
		return Result{}, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return Result{}, fmt.Errorf("unexpected status: %s", resp.Status)
	}

	body, err := readBody(resp.Body, isGzip(url, resp.Header))
	if err != nil {
		return Result{}, err
	}
	text := StripGutenberg(string(body))
	tokens := len(corpus.Tokenize(text))
	if tokens == 0 {
		return Result{}, fmt.Errorf("download contains no usable words")
	}

	tmpFile, err := os.CreateTemp(dir, "corpus-*.txt")
	if err != nil {
		return Result{}, fmt.Errorf("failed to create temp corpus: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()
	n, err := io.Copy(tmpFile, strings.NewReader(text))
	if err != nil {
		return Result{}, fmt.Errorf("failed to write corpus: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return Result{}, fmt.Errorf("failed to close temp corpus: %w", err)
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		return Result{}, fmt.Errorf("failed to move corpus into place: %w", err)
	}
	return Result{Path: destPath, Bytes: n, Tokens: tokens}, nil
}

// StripGutenberg returns the text between the Project Gutenberg start and
// end markers. Text without markers is only trimmed.
func StripGutenberg(text string) string {
	if i := strings.Index(text, gutenbergStart); i >= 0 {
		rest := text[i:]
		if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
			text = rest[nl+1:]
		} else {
			text = ""
		}
	}
	if i := strings.Index(text, gutenbergEnd); i >= 0 {
		text = text[:i]
	}
	return strings.TrimSpace(text) + "\n"
}

func httpRequest(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	return resp, nil
}

func isGzip(url string, header http.Header) bool {
	if strings.HasSuffix(strings.ToLower(url), ".gz") {
		return true
	}
	return strings.Contains(header.Get("Content-Type"), "gzip")
}

func readBody(r io.Reader, gz bool) ([]byte, error) {
	if gz {
		gr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer func() {
			_ = gr.Close()
		}()
		r = gr
	}
	body, err := io.ReadAll(io.LimitReader(r, maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("failed to download corpus: %w", err)
	}
	if len(body) > maxBody {
		return nil, fmt.Errorf("corpus exceeds %d bytes", maxBody)
	}
	return bytes.ToValidUTF8(body, []byte(" ")), nil
}
