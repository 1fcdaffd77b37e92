package model

import (
	"fmt"

	"github.com/YuminosukeSato/scigo/sklearn/lightgbm"
	"gonum.org/v1/gonum/mat"
)

// GradientBoost is a LightGBM-style gradient-boosted tree classifier
// with a log-loss objective. It requires the fully numeric design
// matrix the shared EncodingScheme produces; categorical columns must
// already be dummy-encoded.
type GradientBoost struct {
	Rounds       int
	LearningRate float64
	MaxDepth     int

	clf *lightgbm.LGBMClassifier
}

// NewGradientBoost returns an unfitted gradient-boosted tree
// classifier with fixed hyperparameters.
func NewGradientBoost(rounds int, learningRate float64, maxDepth int) *GradientBoost {
	return &GradientBoost{Rounds: rounds, LearningRate: learningRate, MaxDepth: maxDepth}
}

func (g *GradientBoost) Name() string { return "gradient_boosting" }

func (g *GradientBoost) Clone() Classifier {
	return NewGradientBoost(g.Rounds, g.LearningRate, g.MaxDepth)
}

func (g *GradientBoost) Params() map[string]interface{} {
	return map[string]interface{}{
		"rounds":        g.Rounds,
		"learning_rate": g.LearningRate,
		"max_depth":     g.MaxDepth,
	}
}

func (g *GradientBoost) Fit(x *mat.Dense, y []float64) error {
	n, _ := x.Dims()
	if n != len(y) {
		return fmt.Errorf("boost fit: %d rows vs %d labels", n, len(y))
	}
	if n == 0 {
		return fmt.Errorf("boost fit: empty training set")
	}

	clf := lightgbm.NewLGBMClassifier().
		WithNumIterations(g.Rounds).
		WithLearningRate(g.LearningRate).
		WithMaxDepth(g.MaxDepth)

	yMat := mat.NewDense(n, 1, append([]float64(nil), y...))
	if err := clf.Fit(x, yMat); err != nil {
		return fmt.Errorf("boost fit: %w", err)
	}
	g.clf = clf
	return nil
}

func (g *GradientBoost) PredictProba(x *mat.Dense) ([]float64, error) {
	if g.clf == nil {
		return nil, fmt.Errorf("boost predict: model not fitted")
	}
	proba, err := g.clf.PredictProba(x)
	if err != nil {
		return nil, fmt.Errorf("boost predict: %w", err)
	}
	n, _ := x.Dims()
	pn, pc := proba.Dims()
	if pn != n || pc < 2 {
		return nil, fmt.Errorf("boost predict: probability matrix is %dx%d for %d rows", pn, pc, n)
	}
	probs := make([]float64, n)
	for i := 0; i < n; i++ {
		probs[i] = proba.At(i, 1)
	}
	return probs, nil
}
