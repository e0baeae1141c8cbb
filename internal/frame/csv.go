// Package frame holds the tabular preprocessing for transaction CSVs:
// reading, one-hot encoding and numeric coercion.
package frame

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/samber/lo"
)

// ErrNoHeader is returned when a CSV contains no rows at all.
var ErrNoHeader = errors.New("missing header row")

// Table is a string-valued table with a header row.
type Table struct {
	Header []string
	Rows   [][]string
}

// ReadCSV reads a table from r. The first record is the header; every
// following record must have the same number of fields.
func ReadCSV(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 0

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrNoHeader
	}
	return &Table{Header: records[0], Rows: records[1:]}, nil
}

// ReadFile opens path and reads it with ReadCSV.
func ReadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	t, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return t, nil
}

// WriteCSV writes the header and all rows.
func WriteCSV(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(t.Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, row := range t.Rows {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// Index returns the position of the named column, or -1.
func (t *Table) Index(name string) int {
	return lo.IndexOf(t.Header, name)
}

// Column returns a copy of the named column's cells.
func (t *Table) Column(name string) ([]string, error) {
	idx := t.Index(name)
	if idx < 0 {
		return nil, fmt.Errorf("unknown column %q", name)
	}
	return lo.Map(t.Rows, func(row []string, _ int) string {
		return row[idx]
	}), nil
}

// Drop returns a new table without the named columns. Names that are not
// present are ignored.
func (t *Table) Drop(names ...string) *Table {
	keep := make([]int, 0, len(t.Header))
	for i, h := range t.Header {
		if !lo.Contains(names, h) {
			keep = append(keep, i)
		}
	}

	out := &Table{
		Header: lo.Map(keep, func(i, _ int) string { return t.Header[i] }),
		Rows:   make([][]string, len(t.Rows)),
	}
	for r, row := range t.Rows {
		out.Rows[r] = lo.Map(keep, func(i, _ int) string { return row[i] })
	}
	return out
}
