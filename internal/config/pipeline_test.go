package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadPipelineConfig(t *testing.T) {
	t.Parallel()

	t.Run("full config", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, "pipeline.json", `{
			"seed": 7,
			"validation_fraction": 0.25,
			"sample_size": 5000,
			"threshold": 0.4,
			"logistic_l2": 0.5,
			"logistic_max_iter": 300,
			"forest_trees": 50,
			"boost_rounds": 80,
			"boost_learning_rate": 0.05,
			"boost_max_depth": 4
		}`)

		cfg, err := LoadPipelineConfig(path)
		require.NoError(t, err)
		assert.Equal(t, int64(7), cfg.GetSeed())
		assert.Equal(t, 0.25, cfg.GetValidationFraction())
		assert.Equal(t, 5000, cfg.GetSampleSize())
		assert.Equal(t, 0.4, cfg.GetThreshold())
		assert.Equal(t, 0.5, cfg.GetLogisticL2())
		assert.Equal(t, 300, cfg.GetLogisticMaxIter())
		assert.Equal(t, 50, cfg.GetForestTrees())
		assert.Equal(t, 80, cfg.GetBoostRounds())
		assert.Equal(t, 0.05, cfg.GetBoostLearningRate())
		assert.Equal(t, 4, cfg.GetBoostMaxDepth())
	})

	t.Run("partial config keeps defaults for omitted fields", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, "partial.json", `{"seed": 99}`)

		cfg, err := LoadPipelineConfig(path)
		require.NoError(t, err)
		assert.Equal(t, int64(99), cfg.GetSeed())
		assert.Equal(t, 0.2, cfg.GetValidationFraction())
		assert.Equal(t, 0.5, cfg.GetThreshold())
		assert.Equal(t, 100, cfg.GetForestTrees())
	})

	t.Run("rejects non-json extension", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, "pipeline.yaml", `{}`)
		_, err := LoadPipelineConfig(path)
		assert.Error(t, err)
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		t.Parallel()
		path := writeConfig(t, "broken.json", `{"seed": `)
		_, err := LoadPipelineConfig(path)
		assert.Error(t, err)
	})

	t.Run("missing file errors", func(t *testing.T) {
		t.Parallel()
		_, err := LoadPipelineConfig(filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})
}

func TestPipelineConfigValidate(t *testing.T) {
	t.Parallel()

	ptr := func(f float64) *float64 { return &f }
	iptr := func(i int) *int { return &i }

	t.Run("empty config is valid", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, EmptyPipelineConfig().Validate())
	})

	cases := []struct {
		name string
		cfg  PipelineConfig
	}{
		{"validation fraction zero", PipelineConfig{ValidationFraction: ptr(0)}},
		{"validation fraction one", PipelineConfig{ValidationFraction: ptr(1)}},
		{"threshold out of range", PipelineConfig{Threshold: ptr(1.5)}},
		{"negative sample size", PipelineConfig{SampleSize: iptr(-1)}},
		{"zero forest trees", PipelineConfig{ForestTrees: iptr(0)}},
		{"zero boost rounds", PipelineConfig{BoostRounds: iptr(0)}},
		{"learning rate above one", PipelineConfig{BoostLearningRate: ptr(1.5)}},
		{"zero boost depth", PipelineConfig{BoostMaxDepth: iptr(0)}},
		{"negative logistic l2", PipelineConfig{LogisticL2: ptr(-1)}},
		{"zero logistic iterations", PipelineConfig{LogisticMaxIter: iptr(0)}},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Error(t, tc.cfg.Validate())
		})
	}
}

func TestDefaultConfigFileMatchesAccessors(t *testing.T) {
	t.Parallel()

	cfg, err := LoadPipelineConfig(filepath.Join("..", "..", DefaultConfigPath))
	require.NoError(t, err)

	assert.Equal(t, int64(42), cfg.GetSeed())
	assert.Equal(t, 0.2, cfg.GetValidationFraction())
	assert.Equal(t, 0.5, cfg.GetThreshold())
	assert.Equal(t, 1.0, cfg.GetLogisticL2())
	assert.Equal(t, 200, cfg.GetLogisticMaxIter())
	assert.Equal(t, 100, cfg.GetForestTrees())
	assert.Equal(t, 100, cfg.GetBoostRounds())
	assert.Equal(t, 0.1, cfg.GetBoostLearningRate())
	assert.Equal(t, 6, cfg.GetBoostMaxDepth())
}
