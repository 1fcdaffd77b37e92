package features

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/banshee-data/swing.report/internal/pitch"
)

// ErrColumnMismatch reports a table whose columns cannot satisfy the
// scheme. It is fatal: scoring must never proceed on a misaligned
// matrix.
var ErrColumnMismatch = errors.New("feature columns do not match encoding scheme")

// ErrUnknownLevel reports a categorical value absent from the scheme.
var ErrUnknownLevel = errors.New("categorical level not in encoding scheme")

// EncodingScheme is the versioned encoding artifact shared between the
// training and scoring phases. It fixes the ordered level list of each
// categorical column and the final feature column order, so a level
// absent from one dataset can never silently shift column positions.
type EncodingScheme struct {
	Numeric     []string
	Categorical []string
	Levels      map[string][]string
	// Columns is the full encoded column order: numeric features
	// followed by one indicator column per categorical level.
	Columns []string
}

// FitEncoding builds a scheme from one or more engineered tables.
// Levels are collected over the union of all tables and sorted, so the
// scheme is deterministic for a fixed set of inputs.
func FitEncoding(tables ...*pitch.Table) (*EncodingScheme, error) {
	if len(tables) == 0 {
		return nil, fmt.Errorf("fit encoding: no tables")
	}
	s := &EncodingScheme{
		Numeric:     append([]string(nil), NumericFeatureColumns...),
		Categorical: append([]string(nil), CategoricalFeatureColumns...),
		Levels:      make(map[string][]string),
	}
	for _, name := range s.Categorical {
		seen := make(map[string]bool)
		for _, t := range tables {
			c, ok := t.Column(name)
			if !ok {
				return nil, fmt.Errorf("fit encoding: %w: missing %q", ErrColumnMismatch, name)
			}
			if c.Kind != pitch.KindString {
				return nil, fmt.Errorf("fit encoding: column %q is not categorical", name)
			}
			for _, v := range c.Strings {
				seen[v] = true
			}
		}
		levels := make([]string, 0, len(seen))
		for v := range seen {
			levels = append(levels, v)
		}
		sort.Strings(levels)
		s.Levels[name] = levels
	}

	s.Columns = append([]string(nil), s.Numeric...)
	for _, name := range s.Categorical {
		for _, level := range s.Levels[name] {
			s.Columns = append(s.Columns, name+"_"+level)
		}
	}
	return s, nil
}

// NumFeatures returns the encoded matrix width.
func (s *EncodingScheme) NumFeatures() int { return len(s.Columns) }

// Encode builds the design matrix for a table under this scheme, in
// input row order. Every numeric and categorical column the scheme
// names must be present; a categorical value outside the scheme's
// level list is a fatal ErrUnknownLevel.
func (s *EncodingScheme) Encode(t *pitch.Table) (*mat.Dense, error) {
	n := t.NumRows()
	x := mat.NewDense(n, len(s.Columns), nil)

	col := 0
	for _, name := range s.Numeric {
		c, ok := t.Column(name)
		if !ok {
			return nil, fmt.Errorf("encode: %w: missing %q", ErrColumnMismatch, name)
		}
		if c.Kind != pitch.KindFloat {
			return nil, fmt.Errorf("encode: column %q is not numeric", name)
		}
		for i, v := range c.Floats {
			if math.IsNaN(v) {
				return nil, fmt.Errorf("encode: %q row %d is missing after cleaning", name, i)
			}
			x.Set(i, col, v)
		}
		col++
	}

	for _, name := range s.Categorical {
		c, ok := t.Column(name)
		if !ok {
			return nil, fmt.Errorf("encode: %w: missing %q", ErrColumnMismatch, name)
		}
		if c.Kind != pitch.KindString {
			return nil, fmt.Errorf("encode: column %q is not categorical", name)
		}
		levels := s.Levels[name]
		offset := make(map[string]int, len(levels))
		for j, level := range levels {
			offset[level] = col + j
		}
		for i, v := range c.Strings {
			j, ok := offset[v]
			if !ok {
				return nil, fmt.Errorf("encode: %w: %q=%q", ErrUnknownLevel, name, v)
			}
			x.Set(i, j, 1)
		}
		col += len(levels)
	}

	return x, nil
}
