package rundb

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/banshee-data/swing.report/internal/metrics"
)

// ModelRun is one persisted candidate evaluation. Undefined metrics
// are stored as NULL, never as a numeric placeholder.
type ModelRun struct {
	RunID      string          `json:"run_id"`
	ModelName  string          `json:"model_name"`
	ParamsJSON json.RawMessage `json:"params_json,omitempty"`
	Accuracy   float64         `json:"accuracy"`
	AUC        metrics.Metric  `json:"roc_auc"`
	Precision  metrics.Metric  `json:"precision"`
	Recall     metrics.Metric  `json:"recall"`
	F1         metrics.Metric  `json:"f1"`
	Confusion  metrics.Confusion
	TrainMs    int64 `json:"train_ms"`
	TrainRows  int   `json:"train_rows"`
	ValRows    int   `json:"val_rows"`
	CreatedAt  int64 `json:"created_at"`
}

// FromEvaluation builds a ModelRun from an evaluation result and the
// model's hyperparameters.
func FromEvaluation(res *metrics.EvaluationResult, params map[string]interface{}) (*ModelRun, error) {
	paramsJSON, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("marshal params: %w", err)
	}
	return &ModelRun{
		ModelName:  res.Model,
		ParamsJSON: paramsJSON,
		Accuracy:   res.Accuracy,
		AUC:        res.AUC,
		Precision:  res.Precision,
		Recall:     res.Recall,
		F1:         res.F1,
		Confusion:  res.Confusion,
		TrainMs:    res.TrainDuration.Milliseconds(),
		TrainRows:  res.TrainRows,
		ValRows:    res.ValRows,
	}, nil
}

// RunStore provides persistence for model comparison runs.
type RunStore struct {
	db *DB
}

// NewRunStore creates a RunStore over an open run database.
func NewRunStore(db *DB) *RunStore {
	return &RunStore{db: db}
}

func nullable(m metrics.Metric) interface{} {
	if !m.Defined {
		return nil
	}
	return m.Value
}

// Insert persists a run. If RunID is empty a UUID is generated; if
// CreatedAt is zero the current time is used.
func (s *RunStore) Insert(run *ModelRun) error {
	if run.RunID == "" {
		run.RunID = uuid.New().String()
	}
	if run.CreatedAt == 0 {
		run.CreatedAt = time.Now().UnixNano()
	}

	var paramsStr interface{}
	if len(run.ParamsJSON) > 0 {
		paramsStr = string(run.ParamsJSON)
	}

	_, err := s.db.Exec(`
		INSERT INTO model_runs (
			run_id, model_name, params_json,
			accuracy, roc_auc, precision_score, recall_score, f1_score,
			true_negative, false_positive, false_negative, true_positive,
			train_ms, train_rows, val_rows, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.RunID, run.ModelName, paramsStr,
		run.Accuracy, nullable(run.AUC), nullable(run.Precision), nullable(run.Recall), nullable(run.F1),
		run.Confusion.TN, run.Confusion.FP, run.Confusion.FN, run.Confusion.TP,
		run.TrainMs, run.TrainRows, run.ValRows, run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert model run: %w", err)
	}
	return nil
}

// ListRecent returns the most recent runs, newest first.
func (s *RunStore) ListRecent(limit int) ([]*ModelRun, error) {
	rows, err := s.db.Query(`
		SELECT run_id, model_name, params_json,
		       accuracy, roc_auc, precision_score, recall_score, f1_score,
		       true_negative, false_positive, false_negative, true_positive,
		       train_ms, train_rows, val_rows, created_at
		FROM model_runs
		ORDER BY created_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query model runs: %w", err)
	}
	defer rows.Close()

	var runs []*ModelRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate model runs: %w", err)
	}
	return runs, nil
}

func scanRun(rows *sql.Rows) (*ModelRun, error) {
	var run ModelRun
	var params sql.NullString
	var auc, precision, recall, f1 sql.NullFloat64
	err := rows.Scan(
		&run.RunID, &run.ModelName, &params,
		&run.Accuracy, &auc, &precision, &recall, &f1,
		&run.Confusion.TN, &run.Confusion.FP, &run.Confusion.FN, &run.Confusion.TP,
		&run.TrainMs, &run.TrainRows, &run.ValRows, &run.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scan model run: %w", err)
	}
	if params.Valid {
		run.ParamsJSON = json.RawMessage(params.String)
	}
	run.AUC = fromNullable(auc)
	run.Precision = fromNullable(precision)
	run.Recall = fromNullable(recall)
	run.F1 = fromNullable(f1)
	return &run, nil
}

func fromNullable(v sql.NullFloat64) metrics.Metric {
	if !v.Valid {
		return metrics.Undefined
	}
	return metrics.Defined(v.Float64)
}
