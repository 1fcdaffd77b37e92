package pitch

import (
	"fmt"
	"math"
)

// Kind identifies the storage type of a Column.
type Kind int

const (
	KindString Kind = iota
	KindFloat
)

// Column is a single named column. Exactly one of Floats or Strings is
// populated, according to Kind. NaN marks a missing float value; the
// empty string marks a missing string value.
type Column struct {
	Name    string
	Kind    Kind
	Floats  []float64
	Strings []string
}

// Len returns the number of values in the column.
func (c *Column) Len() int {
	if c.Kind == KindFloat {
		return len(c.Floats)
	}
	return len(c.Strings)
}

// Missing reports whether the value at row i is missing.
func (c *Column) Missing(i int) bool {
	if c.Kind == KindFloat {
		return math.IsNaN(c.Floats[i])
	}
	return c.Strings[i] == ""
}

// Table is an ordered collection of equal-length columns. Tables are
// built once and transformed into new tables; stages never mutate a
// table they did not create.
type Table struct {
	cols  []*Column
	index map[string]int
	rows  int
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{index: make(map[string]int)}
}

// NumRows returns the number of rows in the table.
func (t *Table) NumRows() int { return t.rows }

// NumCols returns the number of columns in the table.
func (t *Table) NumCols() int { return len(t.cols) }

// Names returns the column names in order.
func (t *Table) Names() []string {
	names := make([]string, len(t.cols))
	for i, c := range t.cols {
		names[i] = c.Name
	}
	return names
}

// Column returns the named column, or false if it does not exist.
func (t *Table) Column(name string) (*Column, bool) {
	i, ok := t.index[name]
	if !ok {
		return nil, false
	}
	return t.cols[i], true
}

// HasColumn reports whether the named column exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

func (t *Table) addColumn(c *Column) error {
	if _, exists := t.index[c.Name]; exists {
		return fmt.Errorf("duplicate column %q", c.Name)
	}
	if len(t.cols) > 0 && c.Len() != t.rows {
		return fmt.Errorf("column %q has %d rows, table has %d", c.Name, c.Len(), t.rows)
	}
	if len(t.cols) == 0 {
		t.rows = c.Len()
	}
	t.index[c.Name] = len(t.cols)
	t.cols = append(t.cols, c)
	return nil
}

// AddStringColumn appends a string column. The table takes ownership of
// the slice.
func (t *Table) AddStringColumn(name string, values []string) error {
	return t.addColumn(&Column{Name: name, Kind: KindString, Strings: values})
}

// AddFloatColumn appends a float column. The table takes ownership of
// the slice.
func (t *Table) AddFloatColumn(name string, values []float64) error {
	return t.addColumn(&Column{Name: name, Kind: KindFloat, Floats: values})
}

// ReplaceColumn swaps the named column for a new one of the same
// length, preserving its position.
func (t *Table) ReplaceColumn(name string, c *Column) error {
	i, ok := t.index[name]
	if !ok {
		return fmt.Errorf("no column %q", name)
	}
	if c.Len() != t.rows {
		return fmt.Errorf("replacement for %q has %d rows, table has %d", name, c.Len(), t.rows)
	}
	delete(t.index, name)
	t.index[c.Name] = i
	t.cols[i] = c
	return nil
}

// Select returns a new table containing the named columns in the given
// order. Column data is shared, not copied.
func (t *Table) Select(names ...string) (*Table, error) {
	out := NewTable()
	for _, name := range names {
		c, ok := t.Column(name)
		if !ok {
			return nil, fmt.Errorf("no column %q", name)
		}
		if err := out.addColumn(c); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Require returns an error naming the first missing column, if any.
func (t *Table) Require(names ...string) error {
	for _, name := range names {
		if !t.HasColumn(name) {
			return fmt.Errorf("missing required column %q", name)
		}
	}
	return nil
}

// Filter returns a new table holding only the rows where keep is true.
func (t *Table) Filter(keep []bool) (*Table, error) {
	if len(keep) != t.rows {
		return nil, fmt.Errorf("mask has %d entries, table has %d rows", len(keep), t.rows)
	}
	n := 0
	for _, k := range keep {
		if k {
			n++
		}
	}
	out := NewTable()
	for _, c := range t.cols {
		nc := &Column{Name: c.Name, Kind: c.Kind}
		if c.Kind == KindFloat {
			nc.Floats = make([]float64, 0, n)
			for i, k := range keep {
				if k {
					nc.Floats = append(nc.Floats, c.Floats[i])
				}
			}
		} else {
			nc.Strings = make([]string, 0, n)
			for i, k := range keep {
				if k {
					nc.Strings = append(nc.Strings, c.Strings[i])
				}
			}
		}
		if err := out.addColumn(nc); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	out := NewTable()
	for _, c := range t.cols {
		nc := &Column{Name: c.Name, Kind: c.Kind}
		if c.Kind == KindFloat {
			nc.Floats = append([]float64(nil), c.Floats...)
		} else {
			nc.Strings = append([]string(nil), c.Strings...)
		}
		// addColumn cannot fail on a copy of a valid table
		_ = out.addColumn(nc)
	}
	return out
}

// Concat stacks tables with identical column names, kinds, and order
// into one table.
func Concat(tables ...*Table) (*Table, error) {
	if len(tables) == 0 {
		return NewTable(), nil
	}
	first := tables[0]
	for _, t := range tables[1:] {
		if t.NumCols() != first.NumCols() {
			return nil, fmt.Errorf("cannot concat: %d columns vs %d", t.NumCols(), first.NumCols())
		}
		for i, c := range t.cols {
			if c.Name != first.cols[i].Name || c.Kind != first.cols[i].Kind {
				return nil, fmt.Errorf("cannot concat: column %d is %q, want %q", i, c.Name, first.cols[i].Name)
			}
		}
	}
	out := NewTable()
	for i, fc := range first.cols {
		nc := &Column{Name: fc.Name, Kind: fc.Kind}
		for _, t := range tables {
			if fc.Kind == KindFloat {
				nc.Floats = append(nc.Floats, t.cols[i].Floats...)
			} else {
				nc.Strings = append(nc.Strings, t.cols[i].Strings...)
			}
		}
		if err := out.addColumn(nc); err != nil {
			return nil, err
		}
	}
	return out, nil
}
