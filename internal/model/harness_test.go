package model

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/banshee-data/swing.report/internal/metrics"
)

// stubClassifier returns canned probabilities, optionally failing at
// fit time, so harness behavior can be tested without real training.
type stubClassifier struct {
	name        string
	probs       []float64
	fitErr      error
	importances []float64
	fitted      bool
}

func (s *stubClassifier) Name() string { return s.name }

func (s *stubClassifier) Fit(x *mat.Dense, y []float64) error {
	if s.fitErr != nil {
		return s.fitErr
	}
	s.fitted = true
	return nil
}

func (s *stubClassifier) PredictProba(x *mat.Dense) ([]float64, error) {
	if !s.fitted {
		return nil, fmt.Errorf("%s: not fitted", s.name)
	}
	n, _ := x.Dims()
	return s.probs[:n], nil
}

func (s *stubClassifier) Clone() Classifier {
	return &stubClassifier{name: s.name, probs: s.probs, fitErr: s.fitErr, importances: s.importances}
}

func (s *stubClassifier) Params() map[string]interface{} {
	return map[string]interface{}{"stub": true}
}

func (s *stubClassifier) FeatureImportances() []float64 { return s.importances }

func TestHarnessCompare(t *testing.T) {
	t.Parallel()

	xTrain := mat.NewDense(4, 2, nil)
	yTrain := []float64{0, 0, 1, 1}
	xVal := mat.NewDense(4, 2, nil)
	yVal := []float64{0, 0, 1, 1}

	t.Run("one result per candidate, input order", func(t *testing.T) {
		t.Parallel()
		h := &TrainingHarness{Threshold: 0.5}
		results, err := h.Compare([]Classifier{
			&stubClassifier{name: "good", probs: []float64{0.1, 0.2, 0.8, 0.9}, importances: []float64{0.7, 0.3}},
			&stubClassifier{name: "bad", probs: []float64{0.9, 0.8, 0.2, 0.1}},
		}, xTrain, yTrain, xVal, yVal)
		require.NoError(t, err)
		require.Len(t, results, 2)

		assert.Equal(t, "good", results[0].Result.Model)
		assert.Equal(t, 1.0, results[0].Result.Accuracy)
		assert.Equal(t, []float64{0.7, 0.3}, results[0].Importances)
		assert.Equal(t, 4, results[0].Result.TrainRows)

		assert.Equal(t, "bad", results[1].Result.Model)
		assert.Equal(t, 0.0, results[1].Result.Accuracy)
		assert.Nil(t, results[1].Importances)
	})

	t.Run("fit failure aborts the whole comparison", func(t *testing.T) {
		t.Parallel()
		h := &TrainingHarness{Threshold: 0.5}
		_, err := h.Compare([]Classifier{
			&stubClassifier{name: "ok", probs: []float64{0.1, 0.2, 0.8, 0.9}},
			&stubClassifier{name: "broken", fitErr: fmt.Errorf("boom")},
		}, xTrain, yTrain, xVal, yVal)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "broken")
	})
}

func TestSelectBest(t *testing.T) {
	t.Parallel()

	result := func(auc metrics.Metric, acc float64) CandidateResult {
		return CandidateResult{Result: &metrics.EvaluationResult{AUC: auc, Accuracy: acc}}
	}

	t.Run("highest defined AUC wins", func(t *testing.T) {
		t.Parallel()
		best, err := SelectBest([]CandidateResult{
			result(metrics.Defined(0.80), 0.99),
			result(metrics.Defined(0.91), 0.70),
			result(metrics.Defined(0.85), 0.90),
		})
		require.NoError(t, err)
		assert.Equal(t, 1, best)
	})

	t.Run("defined AUC beats undefined", func(t *testing.T) {
		t.Parallel()
		best, err := SelectBest([]CandidateResult{
			result(metrics.Undefined, 0.99),
			result(metrics.Defined(0.55), 0.60),
		})
		require.NoError(t, err)
		assert.Equal(t, 1, best)
	})

	t.Run("accuracy breaks AUC ties", func(t *testing.T) {
		t.Parallel()
		best, err := SelectBest([]CandidateResult{
			result(metrics.Defined(0.9), 0.80),
			result(metrics.Defined(0.9), 0.85),
		})
		require.NoError(t, err)
		assert.Equal(t, 1, best)
	})

	t.Run("all undefined falls back to accuracy", func(t *testing.T) {
		t.Parallel()
		best, err := SelectBest([]CandidateResult{
			result(metrics.Undefined, 0.90),
			result(metrics.Undefined, 0.95),
			result(metrics.Undefined, 0.85),
		})
		require.NoError(t, err)
		assert.Equal(t, 1, best)
	})

	t.Run("empty results error", func(t *testing.T) {
		t.Parallel()
		_, err := SelectBest(nil)
		assert.Error(t, err)
	})
}
