package model

import (
	"fmt"

	"github.com/banshee-data/swing.report/internal/features"
	"github.com/banshee-data/swing.report/internal/pitch"
)

// Scorer applies a fitted classifier to an engineered, unlabeled
// table. The scheme must be the exact artifact the model was trained
// under; Encode rejects any column or level drift before a single
// prediction is made.
type Scorer struct {
	Model  Classifier
	Scheme *features.EncodingScheme
}

// Score returns one swing probability per input row, in input row
// order. Scoring is deterministic: repeated calls on the same model
// and table yield identical output.
func (s *Scorer) Score(t *pitch.Table) ([]float64, error) {
	x, err := s.Scheme.Encode(t)
	if err != nil {
		return nil, fmt.Errorf("score: %w", err)
	}
	probs, err := s.Model.PredictProba(x)
	if err != nil {
		return nil, fmt.Errorf("score: %w", err)
	}
	if len(probs) != t.NumRows() {
		return nil, fmt.Errorf("score: %d probabilities for %d rows", len(probs), t.NumRows())
	}
	for i, p := range probs {
		if p < 0 || p > 1 {
			return nil, fmt.Errorf("score: row %d probability %v outside [0,1]", i, p)
		}
	}
	return probs, nil
}
