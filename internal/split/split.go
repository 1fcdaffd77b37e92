// Package split partitions engineered records for training. All
// randomness is driven by an explicit seed so splits are reproducible
// across runs and in test fixtures.
package split

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// Stratified partitions row indices into train and validation sets,
// preserving the label proportion in each. valFraction is the share
// assigned to validation (e.g. 0.2). No index appears in both sets and
// the two sets cover every row.
func Stratified(labels []float64, valFraction float64, seed int64) (train, val []int, err error) {
	if valFraction <= 0 || valFraction >= 1 {
		return nil, nil, fmt.Errorf("validation fraction %v outside (0,1)", valFraction)
	}
	byLabel := make(map[float64][]int)
	for i, y := range labels {
		byLabel[y] = append(byLabel[y], i)
	}

	// Deterministic stratum order: labels are 0/1 so iterate directly.
	strata := make([][]int, 0, len(byLabel))
	for _, y := range []float64{0, 1} {
		if idx, ok := byLabel[y]; ok {
			strata = append(strata, idx)
			delete(byLabel, y)
		}
	}
	if len(byLabel) != 0 {
		return nil, nil, fmt.Errorf("labels outside {0,1}")
	}

	rng := rand.New(rand.NewSource(seed))
	for _, idx := range strata {
		rng.Shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })
		k := int(float64(len(idx))*valFraction + 0.5)
		val = append(val, idx[:k]...)
		train = append(train, idx[k:]...)
	}
	return train, val, nil
}

// Subsample returns size uniformly drawn row indices out of n without
// replacement, for the fast-iteration path. If size >= n or size <= 0
// every index is returned.
func Subsample(n, size int, seed int64) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	if size <= 0 || size >= n {
		return idx
	}
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(n, func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })
	return idx[:size]
}

// Rows gathers the given rows of x into a new matrix.
func Rows(x *mat.Dense, idx []int) *mat.Dense {
	_, cols := x.Dims()
	out := mat.NewDense(len(idx), cols, nil)
	for i, r := range idx {
		out.SetRow(i, x.RawRowView(r))
	}
	return out
}

// Take gathers the given positions of y into a new slice.
func Take(y []float64, idx []int) []float64 {
	out := make([]float64, len(idx))
	for i, r := range idx {
		out[i] = y[r]
	}
	return out
}
