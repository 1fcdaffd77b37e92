package pitch

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// ErrAllMissing is returned when mean imputation is asked to fill a
// column that has no observed values at all. An undefined mean is a
// configuration error, never a silent NaN.
var ErrAllMissing = errors.New("column is entirely missing")

// nonNumeric matches every character that cannot appear in a float
// literal. Coercion strips these before parsing, so values like
// " 92.4 mph" survive as 92.4.
var nonNumeric = regexp.MustCompile(`[^0-9eE+\-.]`)

// CoerceNumeric converts the named string columns to float columns.
// Non-numeric characters are stripped before parsing; values that
// still fail to parse (or are empty) become NaN, to be handled by
// DropMissing or ImputeMean downstream.
func CoerceNumeric(t *Table, names ...string) error {
	for _, name := range names {
		c, ok := t.Column(name)
		if !ok {
			return fmt.Errorf("coerce: no column %q", name)
		}
		if c.Kind == KindFloat {
			continue
		}
		floats := make([]float64, len(c.Strings))
		for i, s := range c.Strings {
			stripped := nonNumeric.ReplaceAllString(s, "")
			v, err := strconv.ParseFloat(stripped, 64)
			if err != nil {
				v = math.NaN()
			}
			floats[i] = v
		}
		if err := t.ReplaceColumn(name, &Column{Name: name, Kind: KindFloat, Floats: floats}); err != nil {
			return err
		}
	}
	return nil
}

// DropMissing returns a new table without any row that has a missing
// value in one of the named columns, plus the number of rows dropped.
// This is the labeled-season policy.
func DropMissing(t *Table, names ...string) (*Table, int, error) {
	if err := t.Require(names...); err != nil {
		return nil, 0, err
	}
	keep := make([]bool, t.NumRows())
	for i := range keep {
		keep[i] = true
	}
	for _, name := range names {
		c, _ := t.Column(name)
		for i := range keep {
			if keep[i] && c.Missing(i) {
				keep[i] = false
			}
		}
	}
	out, err := t.Filter(keep)
	if err != nil {
		return nil, 0, err
	}
	return out, t.NumRows() - out.NumRows(), nil
}

// ImputeMean replaces missing values in the named float columns with
// the column mean computed over the table itself, returning the number
// of values filled. This is the scoring-season policy: rows cannot be
// dropped there because every input row must receive a prediction.
func ImputeMean(t *Table, names ...string) (int, error) {
	filled := 0
	for _, name := range names {
		c, ok := t.Column(name)
		if !ok {
			return filled, fmt.Errorf("impute: no column %q", name)
		}
		if c.Kind != KindFloat {
			return filled, fmt.Errorf("impute: column %q is not numeric", name)
		}
		sum, n := 0.0, 0
		for _, v := range c.Floats {
			if !math.IsNaN(v) {
				sum += v
				n++
			}
		}
		if n == 0 {
			return filled, fmt.Errorf("impute %q: %w", name, ErrAllMissing)
		}
		mean := sum / float64(n)
		for i, v := range c.Floats {
			if math.IsNaN(v) {
				c.Floats[i] = mean
				filled++
			}
		}
	}
	return filled, nil
}
