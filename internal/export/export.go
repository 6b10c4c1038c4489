// Package export writes tagged object data to CSV and JSON files. Rows are
// flat string records; headers are the sorted union of all keys so sparse
// tagging still lines up in spreadsheets.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/rhyton-cad/rhyton/internal/format"
)

// Summary describes a finished export.
type Summary struct {
	Path string
	Rows int
	Size int64
}

// String returns a human-readable one-liner for CLI output.
func (s Summary) String() string {
	return fmt.Sprintf("%s rows (%s) written to %s",
		humanize.Comma(int64(s.Rows)), humanize.Bytes(uint64(s.Size)), s.Path)
}

// DefaultPath returns a timestamped file name in dir for the given
// extension.
func DefaultPath(dir, ext string) string {
	stamp := time.Now().Format("2006-01-02_15-04-05")
	return filepath.Join(dir, fmt.Sprintf("rhyton_%s.%s", stamp, ext))
}

// CSV writes the rows to path in Excel-friendly CSV. An empty path writes a
// timestamped file in the working directory. Parent directories are created
// as needed.
func CSV(rows []map[string]string, path string) (Summary, error) {
	path, err := prepPath(path, "csv")
	if err != nil {
		return Summary{}, err
	}

	headers := format.UnionKeys(rows)

	f, err := os.Create(path)
	if err != nil {
		return Summary{}, fmt.Errorf("creating %q: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.UseCRLF = true
	if err := w.Write(headers); err != nil {
		return Summary{}, err
	}
	if err := writeRows(w, rows, headers); err != nil {
		return Summary{}, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return Summary{}, err
	}

	return summarize(path, len(rows))
}

// AppendCSV appends rows to an existing CSV file, reusing its header order.
// Keys not present in the existing header are dropped.
func AppendCSV(rows []map[string]string, path string) (Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return Summary{}, fmt.Errorf("opening %q: %w", path, err)
	}
	headers, err := csv.NewReader(f).Read()
	f.Close()
	if err != nil {
		return Summary{}, fmt.Errorf("reading header of %q: %w", path, err)
	}

	out, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return Summary{}, err
	}
	defer out.Close()

	w := csv.NewWriter(out)
	w.UseCRLF = true
	if err := writeRows(w, rows, headers); err != nil {
		return Summary{}, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return Summary{}, err
	}

	return summarize(path, len(rows))
}

// JSON writes the rows to path as a JSON array.
func JSON(rows []map[string]string, path string) (Summary, error) {
	path, err := prepPath(path, "json")
	if err != nil {
		return Summary{}, err
	}

	raw, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return Summary{}, err
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return Summary{}, fmt.Errorf("writing %q: %w", path, err)
	}
	return summarize(path, len(rows))
}

// AppendJSON appends rows to the JSON array stored at path.
func AppendJSON(rows []map[string]string, path string) (Summary, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Summary{}, fmt.Errorf("reading %q: %w", path, err)
	}

	var existing []map[string]string
	if err := json.Unmarshal(raw, &existing); err != nil {
		return Summary{}, fmt.Errorf("parsing %q: %w", path, err)
	}

	existing = append(existing, rows...)
	out, err := json.MarshalIndent(existing, "", "  ")
	if err != nil {
		return Summary{}, err
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return Summary{}, err
	}
	return summarize(path, len(existing))
}

func writeRows(w *csv.Writer, rows []map[string]string, headers []string) error {
	record := make([]string, len(headers))
	for _, row := range rows {
		for i, header := range headers {
			record[i] = row[header]
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	return nil
}

func prepPath(path, ext string) (string, error) {
	if path == "" {
		path = DefaultPath(".", ext)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("creating export directory: %w", err)
		}
	}
	return path, nil
}

func summarize(path string, rows int) (Summary, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Summary{}, err
	}
	return Summary{Path: path, Rows: rows, Size: info.Size()}, nil
}
