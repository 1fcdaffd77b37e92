package model

import (
	"fmt"
	"log"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/banshee-data/swing.report/internal/metrics"
)

// TrainingHarness fits every candidate classifier on one shared
// train/validation split and collects comparable evaluation results.
type TrainingHarness struct {
	// Threshold is the probability cut used for the thresholded
	// metrics (accuracy, precision, recall, F1, confusion).
	Threshold float64
	// Verbose logs per-candidate progress.
	Verbose bool
}

// CandidateResult pairs a candidate's evaluation with its optional
// feature ranking.
type CandidateResult struct {
	Result *metrics.EvaluationResult
	// Importances is non-nil only for candidates implementing
	// FeatureRanker, in design-matrix column order.
	Importances []float64
}

// Compare fits each candidate on (xTrain, yTrain), scores it on
// (xVal, yVal), and returns one result per candidate in input order.
// Any fit or predict failure aborts the comparison: a partially
// comparable run is worse than no run.
func (h *TrainingHarness) Compare(candidates []Classifier, xTrain *mat.Dense, yTrain []float64, xVal *mat.Dense, yVal []float64) ([]CandidateResult, error) {
	trainRows, _ := xTrain.Dims()
	results := make([]CandidateResult, 0, len(candidates))
	for _, cand := range candidates {
		if h.Verbose {
			log.Printf("fitting %s on %d rows", cand.Name(), trainRows)
		}
		start := time.Now()
		if err := cand.Fit(xTrain, yTrain); err != nil {
			return nil, fmt.Errorf("fit %s: %w", cand.Name(), err)
		}
		dur := time.Since(start)

		probs, err := cand.PredictProba(xVal)
		if err != nil {
			return nil, fmt.Errorf("validate %s: %w", cand.Name(), err)
		}
		res, err := metrics.Evaluate(cand.Name(), yVal, probs, h.Threshold, dur)
		if err != nil {
			return nil, fmt.Errorf("evaluate %s: %w", cand.Name(), err)
		}
		res.TrainRows = trainRows

		cr := CandidateResult{Result: res}
		if ranker, ok := cand.(FeatureRanker); ok {
			cr.Importances = ranker.FeatureImportances()
		}
		if h.Verbose {
			log.Printf("%s: acc=%.4f auc=%s in %s", cand.Name(), res.Accuracy, res.AUC, dur.Round(time.Millisecond))
		}
		results = append(results, cr)
	}
	return results, nil
}

// SelectBest returns the index of the winning candidate: highest
// defined ROC-AUC, falling back to accuracy when AUC is undefined for
// every candidate or tied.
func SelectBest(results []CandidateResult) (int, error) {
	if len(results) == 0 {
		return 0, fmt.Errorf("select best: no results")
	}
	best := 0
	for i := 1; i < len(results); i++ {
		if better(results[i].Result, results[best].Result) {
			best = i
		}
	}
	return best, nil
}

func better(a, b *metrics.EvaluationResult) bool {
	switch {
	case a.AUC.Defined && !b.AUC.Defined:
		return true
	case !a.AUC.Defined && b.AUC.Defined:
		return false
	case a.AUC.Defined && b.AUC.Defined && a.AUC.Value != b.AUC.Value:
		return a.AUC.Value > b.AUC.Value
	}
	return a.Accuracy > b.Accuracy
}
