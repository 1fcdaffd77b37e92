package model

import (
	"gonum.org/v1/gonum/mat"
)

// Classifier is a binary probability classifier over an encoded design
// matrix.
type Classifier interface {
	// Name returns the model family name for logging and persistence.
	Name() string

	// Fit trains on the design matrix x and labels y (0/1).
	Fit(x *mat.Dense, y []float64) error

	// PredictProba returns one probability in [0,1] per row of x, in
	// row order.
	PredictProba(x *mat.Dense) ([]float64, error)

	// Clone returns an unfitted copy with identical hyperparameters,
	// used to refit the winning family on the full dataset.
	Clone() Classifier

	// Params returns the hyperparameters for serialization.
	Params() map[string]interface{}
}

// FeatureRanker is implemented by classifiers that expose a
// per-feature importance ranking.
type FeatureRanker interface {
	// FeatureImportances returns one importance per design-matrix
	// column, valid after Fit.
	FeatureImportances() []float64
}
