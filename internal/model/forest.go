package model

import (
	"fmt"

	randomforest "github.com/malaschitz/randomForest"
	"gonum.org/v1/gonum/mat"
)

// Forest is a bagged random-forest classifier. It is the only
// candidate exposing a per-feature importance ranking.
type Forest struct {
	Trees int

	forest  *randomforest.Forest
	classes int
}

// NewForest returns an unfitted random forest with the given tree
// count.
func NewForest(trees int) *Forest {
	return &Forest{Trees: trees}
}

func (f *Forest) Name() string { return "random_forest" }

func (f *Forest) Clone() Classifier {
	return NewForest(f.Trees)
}

func (f *Forest) Params() map[string]interface{} {
	return map[string]interface{}{"trees": f.Trees}
}

func (f *Forest) Fit(x *mat.Dense, y []float64) error {
	n, _ := x.Dims()
	if n != len(y) {
		return fmt.Errorf("forest fit: %d rows vs %d labels", n, len(y))
	}
	if n == 0 {
		return fmt.Errorf("forest fit: empty training set")
	}

	xs := make([][]float64, n)
	ys := make([]int, n)
	classes := 1
	for i := 0; i < n; i++ {
		xs[i] = append([]float64(nil), x.RawRowView(i)...)
		ys[i] = int(y[i])
		if ys[i] == 1 {
			classes = 2
		}
	}

	forest := &randomforest.Forest{}
	forest.Data = randomforest.ForestData{X: xs, Class: ys}
	forest.Train(f.Trees)

	f.forest = forest
	f.classes = classes
	return nil
}

func (f *Forest) PredictProba(x *mat.Dense) ([]float64, error) {
	if f.forest == nil {
		return nil, fmt.Errorf("forest predict: model not fitted")
	}
	n, _ := x.Dims()
	probs := make([]float64, n)
	for i := 0; i < n; i++ {
		votes := f.forest.Vote(x.RawRowView(i))
		// A single-class training set yields a single vote bucket; the
		// probability of the positive class is then that class itself.
		if len(votes) < 2 {
			if f.classes == 2 {
				return nil, fmt.Errorf("forest predict: vote over %d classes", len(votes))
			}
			probs[i] = 0
			continue
		}
		probs[i] = votes[1]
	}
	return probs, nil
}

// FeatureImportances returns the forest's per-feature importance, in
// design-matrix column order.
func (f *Forest) FeatureImportances() []float64 {
	if f.forest == nil {
		return nil
	}
	return f.forest.FeatureImportance
}
