package rundb

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/swing.report/internal/metrics"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRunStoreInsertAndList(t *testing.T) {
	store := NewRunStore(openTestDB(t))

	run := &ModelRun{
		ModelName:  "logistic_regression",
		ParamsJSON: json.RawMessage(`{"l2":1,"max_iter":200}`),
		Accuracy:   0.91,
		AUC:        metrics.Defined(0.95),
		Precision:  metrics.Defined(0.9),
		Recall:     metrics.Defined(0.88),
		F1:         metrics.Defined(0.89),
		Confusion:  metrics.Confusion{TN: 40, FP: 5, FN: 4, TP: 51},
		TrainMs:    123,
		TrainRows:  400,
		ValRows:    100,
	}
	require.NoError(t, store.Insert(run))
	assert.NotEmpty(t, run.RunID, "Insert assigns a run id")
	assert.NotZero(t, run.CreatedAt)

	runs, err := store.ListRecent(10)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	got := runs[0]
	assert.Equal(t, run.RunID, got.RunID)
	assert.Equal(t, "logistic_regression", got.ModelName)
	assert.JSONEq(t, `{"l2":1,"max_iter":200}`, string(got.ParamsJSON))
	assert.Equal(t, 0.91, got.Accuracy)
	assert.Equal(t, metrics.Defined(0.95), got.AUC)
	assert.Equal(t, metrics.Confusion{TN: 40, FP: 5, FN: 4, TP: 51}, got.Confusion)
	assert.Equal(t, int64(123), got.TrainMs)
	assert.Equal(t, 400, got.TrainRows)
	assert.Equal(t, 100, got.ValRows)
}

func TestRunStoreUndefinedMetricsSurviveRoundTrip(t *testing.T) {
	store := NewRunStore(openTestDB(t))

	// Degenerate validation set: accuracy defined, everything else not.
	run := &ModelRun{
		ModelName: "random_forest",
		Accuracy:  1.0,
		AUC:       metrics.Undefined,
		Precision: metrics.Undefined,
		Recall:    metrics.Undefined,
		F1:        metrics.Undefined,
		ValRows:   50,
	}
	require.NoError(t, store.Insert(run))

	runs, err := store.ListRecent(1)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	got := runs[0]
	assert.Equal(t, 1.0, got.Accuracy)
	assert.False(t, got.AUC.Defined)
	assert.False(t, got.Precision.Defined)
	assert.False(t, got.Recall.Defined)
	assert.False(t, got.F1.Defined)
}

func TestRunStoreListOrder(t *testing.T) {
	store := NewRunStore(openTestDB(t))

	base := time.Now().UnixNano()
	for i, name := range []string{"oldest", "middle", "newest"} {
		require.NoError(t, store.Insert(&ModelRun{
			ModelName: name,
			Accuracy:  0.5,
			CreatedAt: base + int64(i),
		}))
	}

	runs, err := store.ListRecent(2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "newest", runs[0].ModelName)
	assert.Equal(t, "middle", runs[1].ModelName)
}

func TestFromEvaluation(t *testing.T) {
	res := &metrics.EvaluationResult{
		Model:         "gradient_boosting",
		Accuracy:      0.8,
		AUC:           metrics.Defined(0.85),
		Precision:     metrics.Undefined,
		Confusion:     metrics.Confusion{TN: 3, TP: 5},
		TrainDuration: 1500 * time.Millisecond,
		TrainRows:     80,
		ValRows:       20,
	}
	run, err := FromEvaluation(res, map[string]interface{}{"rounds": 100})
	require.NoError(t, err)

	assert.Equal(t, "gradient_boosting", run.ModelName)
	assert.JSONEq(t, `{"rounds":100}`, string(run.ParamsJSON))
	assert.Equal(t, int64(1500), run.TrainMs)
	assert.False(t, run.Precision.Defined)
	assert.Equal(t, 80, run.TrainRows)
}
