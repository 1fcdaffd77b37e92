package model

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"
)

// Logistic is an L2-regularized logistic regression fit with L-BFGS.
// The intercept occupies weight position 0 and is not regularized.
type Logistic struct {
	L2      float64
	MaxIter int

	weights []float64 // [intercept, w1..wd], set by Fit
}

// NewLogistic returns an unfitted logistic regression.
func NewLogistic(l2 float64, maxIter int) *Logistic {
	return &Logistic{L2: l2, MaxIter: maxIter}
}

func (l *Logistic) Name() string { return "logistic_regression" }

func (l *Logistic) Clone() Classifier {
	return NewLogistic(l.L2, l.MaxIter)
}

func (l *Logistic) Params() map[string]interface{} {
	return map[string]interface{}{"l2": l.L2, "max_iter": l.MaxIter}
}

// Fit minimizes the regularized negative log-likelihood.
func (l *Logistic) Fit(x *mat.Dense, y []float64) error {
	n, d := x.Dims()
	if n != len(y) {
		return fmt.Errorf("logistic fit: %d rows vs %d labels", n, len(y))
	}
	if n == 0 {
		return fmt.Errorf("logistic fit: empty training set")
	}

	margin := func(w []float64, i int) float64 {
		z := w[0]
		row := x.RawRowView(i)
		for j, v := range row {
			z += w[j+1] * v
		}
		return z
	}

	problem := optimize.Problem{
		Func: func(w []float64) float64 {
			loss := 0.0
			for i := range y {
				z := margin(w, i)
				// log(1+exp(-yz)) with the sign folded in, kept stable
				// for large |z|.
				if y[i] == 1 {
					loss += logistic1p(-z)
				} else {
					loss += logistic1p(z)
				}
			}
			for _, wj := range w[1:] {
				loss += 0.5 * l.L2 * wj * wj
			}
			return loss
		},
		Grad: func(grad, w []float64) {
			for j := range grad {
				grad[j] = 0
			}
			for i := range y {
				p := sigmoid(margin(w, i))
				diff := p - y[i]
				grad[0] += diff
				row := x.RawRowView(i)
				for j, v := range row {
					grad[j+1] += diff * v
				}
			}
			for j := 1; j < len(w); j++ {
				grad[j] += l.L2 * w[j]
			}
		},
	}

	settings := &optimize.Settings{
		MajorIterations:   l.MaxIter,
		GradientThreshold: 1e-6,
	}
	result, err := optimize.Minimize(problem, make([]float64, d+1), settings, &optimize.LBFGS{})
	if err != nil {
		return fmt.Errorf("logistic fit: %w", err)
	}
	l.weights = result.X
	return nil
}

func (l *Logistic) PredictProba(x *mat.Dense) ([]float64, error) {
	if l.weights == nil {
		return nil, fmt.Errorf("logistic predict: model not fitted")
	}
	n, d := x.Dims()
	if d != len(l.weights)-1 {
		return nil, fmt.Errorf("logistic predict: %d features, model has %d", d, len(l.weights)-1)
	}
	probs := make([]float64, n)
	for i := 0; i < n; i++ {
		z := l.weights[0]
		row := x.RawRowView(i)
		for j, v := range row {
			z += l.weights[j+1] * v
		}
		probs[i] = sigmoid(z)
	}
	return probs, nil
}

func sigmoid(z float64) float64 {
	if z >= 0 {
		return 1 / (1 + math.Exp(-z))
	}
	e := math.Exp(z)
	return e / (1 + e)
}

// logistic1p computes log(1+exp(z)) without overflow.
func logistic1p(z float64) float64 {
	if z > 0 {
		return z + math.Log1p(math.Exp(-z))
	}
	return math.Log1p(math.Exp(z))
}
