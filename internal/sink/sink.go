// Package sink persists pipeline output into the output directory.
package sink

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/scbtools/tablepull/internal/normalize"
)

// Writer writes output artifacts under a single root directory. Writes
// unconditionally overwrite: re-running a pipeline replaces its previous
// output.
type Writer struct {
	root string
}

// New returns a Writer rooted at dir, creating it if absent.
func New(dir string) (*Writer, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("output directory is required")
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create output dir %s: %w", dir, err)
	}
	return &Writer{root: dir}, nil
}

// WriteCSV writes the table as header plus rows, no row-index column, and
// returns the absolute path of the written file.
func (w *Writer) WriteCSV(name string, table normalize.Table) (string, error) {
	target := filepath.Join(w.root, name)

	f, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", target, err)
	}

	cw := csv.NewWriter(f)
	if err := cw.Write(table.Header); err != nil {
		f.Close() //nolint:errcheck
		return "", fmt.Errorf("write header to %s: %w", target, err)
	}
	if err := cw.WriteAll(table.Rows); err != nil {
		f.Close() //nolint:errcheck
		return "", fmt.Errorf("write rows to %s: %w", target, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close %s: %w", target, err)
	}

	return absPath(target)
}

// WriteRaw writes body verbatim and returns the absolute path of the written
// file.
func (w *Writer) WriteRaw(name string, body []byte) (string, error) {
	target := filepath.Join(w.root, name)
	if err := os.WriteFile(target, body, 0o600); err != nil {
		return "", fmt.Errorf("write %s: %w", target, err)
	}
	return absPath(target)
}

func absPath(target string) (string, error) {
	abs, err := filepath.Abs(target)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", target, err)
	}
	return abs, nil
}
