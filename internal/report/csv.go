// Package report renders run results: the CSV verdict report, the run
// summary JSON, and unified diffs for dry runs. The CSV sink is a
// single-writer sequential appender.
package report

import (
	"encoding/csv"
	"os"
	"path/filepath"
)

// Row is one verdict/migration record. Optional columns stay empty
// depending on run mode; verdict columns are always populated when a
// file classified as found.
type Row struct {
	Repo       string
	Branch     string
	BuildType  string
	File       string
	Dialect    string
	FoundType  string
	Confidence string
	Approach   string
	Evidence   string
}

var header = []string{
	"repository", "branch", "build_type", "file", "ci_dialect",
	"found_type", "confidence", "approach_or_style", "evidence",
}

// CSVWriter appends rows to one report file.
type CSVWriter struct {
	f *os.File
	w *csv.Writer
}

// NewCSVWriter creates the report file and writes the header row.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		_ = f.Close()
		return nil, err
	}
	return &CSVWriter{f: f, w: w}, nil
}

// Write appends one record.
func (c *CSVWriter) Write(row Row) error {
	return c.w.Write([]string{
		row.Repo, row.Branch, row.BuildType, row.File, row.Dialect,
		row.FoundType, row.Confidence, row.Approach, row.Evidence,
	})
}

// Close flushes and closes the report file.
func (c *CSVWriter) Close() error {
	c.w.Flush()
	if err := c.w.Error(); err != nil {
		_ = c.f.Close()
		return err
	}
	return c.f.Close()
}
