// Package metrics computes binary-classification quality measures for
// the model comparison harness. Degenerate measures (zero predicted
// positives, single-class truth) are reported as undefined rather than
// coerced to a numeric placeholder.
package metrics

import (
	"encoding/json"
	"fmt"
	"time"

	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/stat"
)

// Metric is a measure that may be undefined for degenerate inputs.
type Metric struct {
	Value   float64
	Defined bool
}

// Defined wraps a value in a defined Metric.
func Defined(v float64) Metric { return Metric{Value: v, Defined: true} }

// Undefined is the undefined Metric.
var Undefined = Metric{}

func (m Metric) String() string {
	if !m.Defined {
		return "undefined"
	}
	return fmt.Sprintf("%.4f", m.Value)
}

// MarshalJSON renders an undefined metric as null.
func (m Metric) MarshalJSON() ([]byte, error) {
	if !m.Defined {
		return []byte("null"), nil
	}
	return json.Marshal(m.Value)
}

// UnmarshalJSON accepts null as undefined.
func (m *Metric) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*m = Undefined
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*m = Defined(v)
	return nil
}

// Confusion is the 2x2 confusion matrix at the evaluation threshold.
type Confusion struct {
	TN int `json:"tn"`
	FP int `json:"fp"`
	FN int `json:"fn"`
	TP int `json:"tp"`
}

// EvaluationResult holds every measure the harness reports for one
// candidate model.
type EvaluationResult struct {
	Model         string        `json:"model"`
	Accuracy      float64       `json:"accuracy"`
	AUC           Metric        `json:"roc_auc"`
	Precision     Metric        `json:"precision"`
	Recall        Metric        `json:"recall"`
	F1            Metric        `json:"f1"`
	Confusion     Confusion     `json:"confusion"`
	TrainDuration time.Duration `json:"train_duration_ns"`
	TrainRows     int           `json:"train_rows"`
	ValRows       int           `json:"val_rows"`
}

// Evaluate scores predicted probabilities against true labels at the
// given probability threshold.
func Evaluate(model string, yTrue, probs []float64, threshold float64, trainDur time.Duration) (*EvaluationResult, error) {
	if len(yTrue) != len(probs) {
		return nil, fmt.Errorf("evaluate: %d labels vs %d probabilities", len(yTrue), len(probs))
	}
	if len(yTrue) == 0 {
		return nil, fmt.Errorf("evaluate: empty validation set")
	}

	var cm Confusion
	for i, y := range yTrue {
		pred := probs[i] >= threshold
		pos := y == 1
		switch {
		case pos && pred:
			cm.TP++
		case pos && !pred:
			cm.FN++
		case !pos && pred:
			cm.FP++
		default:
			cm.TN++
		}
	}

	res := &EvaluationResult{
		Model:         model,
		Accuracy:      float64(cm.TP+cm.TN) / float64(len(yTrue)),
		AUC:           rocAUC(yTrue, probs),
		Confusion:     cm,
		TrainDuration: trainDur,
		ValRows:       len(yTrue),
	}

	// Precision is undefined with zero predicted positives; recall with
	// zero actual positives; F1 whenever either side is undefined.
	if cm.TP+cm.FP > 0 {
		res.Precision = Defined(float64(cm.TP) / float64(cm.TP+cm.FP))
	}
	if cm.TP+cm.FN > 0 {
		res.Recall = Defined(float64(cm.TP) / float64(cm.TP+cm.FN))
	}
	if res.Precision.Defined && res.Recall.Defined {
		if s := res.Precision.Value + res.Recall.Value; s > 0 {
			res.F1 = Defined(2 * res.Precision.Value * res.Recall.Value / s)
		}
	}
	return res, nil
}

// rocAUC ranks probabilities against labels via gonum's ROC curve and
// trapezoidal integration. A single-class truth vector has no ranking
// to measure, so the result is undefined.
func rocAUC(yTrue, probs []float64) Metric {
	var pos int
	for _, y := range yTrue {
		if y == 1 {
			pos++
		}
	}
	if pos == 0 || pos == len(yTrue) {
		return Undefined
	}

	scores := append([]float64(nil), probs...)
	classes := make([]bool, len(yTrue))
	for i, y := range yTrue {
		classes[i] = y == 1
	}
	stat.SortWeightedLabeled(scores, classes, nil)
	tpr, fpr, _ := stat.ROC(nil, scores, classes, nil)
	return Defined(integrate.Trapezoidal(fpr, tpr))
}
