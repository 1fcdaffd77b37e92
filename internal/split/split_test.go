package split

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestStratified(t *testing.T) {
	t.Parallel()

	labels := make([]float64, 1000)
	for i := 300; i < 1000; i++ {
		labels[i] = 1 // 30% negative, 70% positive
	}

	t.Run("sets are disjoint and cover all rows", func(t *testing.T) {
		t.Parallel()
		train, val, err := Stratified(labels, 0.2, 7)
		require.NoError(t, err)

		seen := make(map[int]int)
		for _, i := range train {
			seen[i]++
		}
		for _, i := range val {
			seen[i]++
		}
		require.Len(t, seen, len(labels))
		for i, count := range seen {
			assert.Equal(t, 1, count, "row %d appears %d times", i, count)
		}
		assert.Equal(t, len(labels), len(train)+len(val))
	})

	t.Run("label proportion is preserved", func(t *testing.T) {
		t.Parallel()
		_, val, err := Stratified(labels, 0.2, 7)
		require.NoError(t, err)

		pos := 0
		for _, i := range val {
			if labels[i] == 1 {
				pos++
			}
		}
		// 70% of 200, exact up to stratification rounding.
		assert.InDelta(t, 140, pos, 1)
	})

	t.Run("fixed seed reproduces the split", func(t *testing.T) {
		t.Parallel()
		train1, val1, err := Stratified(labels, 0.2, 11)
		require.NoError(t, err)
		train2, val2, err := Stratified(labels, 0.2, 11)
		require.NoError(t, err)
		assert.Equal(t, train1, train2)
		assert.Equal(t, val1, val2)
	})

	t.Run("rejects bad fraction", func(t *testing.T) {
		t.Parallel()
		_, _, err := Stratified(labels, 0, 1)
		assert.Error(t, err)
		_, _, err = Stratified(labels, 1, 1)
		assert.Error(t, err)
	})

	t.Run("rejects labels outside {0,1}", func(t *testing.T) {
		t.Parallel()
		_, _, err := Stratified([]float64{0, 1, 2}, 0.2, 1)
		assert.Error(t, err)
	})
}

func TestSubsample(t *testing.T) {
	t.Parallel()

	t.Run("draws without replacement", func(t *testing.T) {
		t.Parallel()
		idx := Subsample(100, 40, 3)
		require.Len(t, idx, 40)
		seen := make(map[int]bool)
		for _, i := range idx {
			assert.False(t, seen[i])
			seen[i] = true
			assert.GreaterOrEqual(t, i, 0)
			assert.Less(t, i, 100)
		}
	})

	t.Run("size zero or oversized returns everything", func(t *testing.T) {
		t.Parallel()
		assert.Len(t, Subsample(10, 0, 3), 10)
		assert.Len(t, Subsample(10, 50, 3), 10)
	})

	t.Run("fixed seed reproduces the sample", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, Subsample(100, 10, 5), Subsample(100, 10, 5))
	})
}

func TestRowsAndTake(t *testing.T) {
	t.Parallel()

	x := mat.NewDense(3, 2, []float64{1, 2, 3, 4, 5, 6})
	sub := Rows(x, []int{2, 0})
	assert.Equal(t, []float64{5, 6}, sub.RawRowView(0))
	assert.Equal(t, []float64{1, 2}, sub.RawRowView(1))

	assert.Equal(t, []float64{30, 10}, Take([]float64{10, 20, 30}, []int{2, 0}))
}
