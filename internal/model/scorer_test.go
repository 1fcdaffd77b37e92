package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/swing.report/internal/features"
	"github.com/banshee-data/swing.report/internal/pitch"
)

func scorerScheme() *features.EncodingScheme {
	return &features.EncodingScheme{
		Numeric:     []string{pitch.ColReleaseSpeed},
		Categorical: []string{pitch.ColStand},
		Levels:      map[string][]string{pitch.ColStand: {"L", "R"}},
		Columns:     []string{pitch.ColReleaseSpeed, pitch.ColStand + "_L", pitch.ColStand + "_R"},
	}
}

func scorerTable(t *testing.T, speeds []float64, stands []string) *pitch.Table {
	t.Helper()
	tbl := pitch.NewTable()
	require.NoError(t, tbl.AddFloatColumn(pitch.ColReleaseSpeed, speeds))
	require.NoError(t, tbl.AddStringColumn(pitch.ColStand, stands))
	return tbl
}

func TestScorerScore(t *testing.T) {
	t.Parallel()

	t.Run("one probability per row, deterministic", func(t *testing.T) {
		t.Parallel()
		tbl := scorerTable(t, []float64{95, 85, 90}, []string{"L", "R", "L"})
		s := &Scorer{
			Model:  &stubClassifier{fitted: true, probs: []float64{0.9, 0.1, 0.5}},
			Scheme: scorerScheme(),
		}

		first, err := s.Score(tbl)
		require.NoError(t, err)
		require.Len(t, first, tbl.NumRows())

		second, err := s.Score(tbl)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("unknown level fails before prediction", func(t *testing.T) {
		t.Parallel()
		tbl := scorerTable(t, []float64{95}, []string{"S"})
		s := &Scorer{
			Model:  &stubClassifier{fitted: true, probs: []float64{0.5}},
			Scheme: scorerScheme(),
		}
		_, err := s.Score(tbl)
		require.Error(t, err)
		assert.ErrorIs(t, err, features.ErrUnknownLevel)
	})

	t.Run("missing column fails", func(t *testing.T) {
		t.Parallel()
		tbl := pitch.NewTable()
		require.NoError(t, tbl.AddFloatColumn(pitch.ColReleaseSpeed, []float64{95}))
		s := &Scorer{
			Model:  &stubClassifier{fitted: true, probs: []float64{0.5}},
			Scheme: scorerScheme(),
		}
		_, err := s.Score(tbl)
		require.Error(t, err)
		assert.ErrorIs(t, err, features.ErrColumnMismatch)
	})

	t.Run("probability outside unit interval is fatal", func(t *testing.T) {
		t.Parallel()
		tbl := scorerTable(t, []float64{95}, []string{"L"})
		s := &Scorer{
			Model:  &stubClassifier{fitted: true, probs: []float64{1.5}},
			Scheme: scorerScheme(),
		}
		_, err := s.Score(tbl)
		assert.Error(t, err)
	})
}
