package pitch

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
)

// ReadCSV loads a headed CSV file into a table of string columns.
// Coercion to floats is a separate, explicit step (CoerceNumeric) so
// the original text survives for pass-through output.
func ReadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.ReuseRecord = false
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read header of %s: %w", path, err)
	}

	cols := make([][]string, len(header))
	rows := 0
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read %s row %d: %w", path, rows+2, err)
		}
		if len(rec) != len(header) {
			return nil, fmt.Errorf("%s row %d: %d fields, header has %d", path, rows+2, len(rec), len(header))
		}
		for i, v := range rec {
			cols[i] = append(cols[i], v)
		}
		rows++
	}

	t := NewTable()
	for i, name := range header {
		if cols[i] == nil {
			cols[i] = []string{}
		}
		if err := t.AddStringColumn(name, cols[i]); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	return t, nil
}

// WriteCSV writes the table to path with a header row. Missing float
// values are written as empty fields.
func WriteCSV(t *Table, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(t.Names()); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	rec := make([]string, t.NumCols())
	for i := 0; i < t.NumRows(); i++ {
		for j, name := range t.Names() {
			c, _ := t.Column(name)
			if c.Kind == KindFloat {
				v := c.Floats[i]
				if math.IsNaN(v) {
					rec[j] = ""
				} else {
					rec[j] = strconv.FormatFloat(v, 'g', -1, 64)
				}
			} else {
				rec[j] = c.Strings[i]
			}
		}
		if err := w.Write(rec); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush %s: %w", path, err)
	}
	return nil
}
