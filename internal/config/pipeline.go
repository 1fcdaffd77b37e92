// Package config holds the pipeline configuration. Every tunable
// (seeds, split ratio, hyperparameters, threshold) lives here so runs
// and test fixtures are reproducible from one artifact.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultConfigPath is the path to the canonical pipeline defaults
// file, the single source of truth for default tuning values.
const DefaultConfigPath = "config/pipeline.defaults.json"

// PipelineConfig represents the root pipeline configuration. Fields
// omitted from the JSON file retain their defaults via the Get*
// accessors, so partial configs are safe.
type PipelineConfig struct {
	// Sampling and splitting
	Seed               *int64   `json:"seed,omitempty"`
	ValidationFraction *float64 `json:"validation_fraction,omitempty"`
	SampleSize         *int     `json:"sample_size,omitempty"` // 0 disables subsampling

	// Evaluation
	Threshold *float64 `json:"threshold,omitempty"`

	// Logistic regression
	LogisticL2      *float64 `json:"logistic_l2,omitempty"`
	LogisticMaxIter *int     `json:"logistic_max_iter,omitempty"`

	// Random forest
	ForestTrees *int `json:"forest_trees,omitempty"`

	// Gradient boosting
	BoostRounds       *int     `json:"boost_rounds,omitempty"`
	BoostLearningRate *float64 `json:"boost_learning_rate,omitempty"`
	BoostMaxDepth     *int     `json:"boost_max_depth,omitempty"`
}

// EmptyPipelineConfig returns a PipelineConfig with all fields unset.
func EmptyPipelineConfig() *PipelineConfig {
	return &PipelineConfig{}
}

// LoadPipelineConfig loads a PipelineConfig from a JSON file. The file
// must have a .json extension and stay under the max file size.
func LoadPipelineConfig(path string) (*PipelineConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyPipelineConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration values are usable.
func (c *PipelineConfig) Validate() error {
	if c.ValidationFraction != nil {
		if *c.ValidationFraction <= 0 || *c.ValidationFraction >= 1 {
			return fmt.Errorf("validation_fraction must be inside (0,1), got %f", *c.ValidationFraction)
		}
	}
	if c.Threshold != nil {
		if *c.Threshold <= 0 || *c.Threshold >= 1 {
			return fmt.Errorf("threshold must be inside (0,1), got %f", *c.Threshold)
		}
	}
	if c.SampleSize != nil && *c.SampleSize < 0 {
		return fmt.Errorf("sample_size must be non-negative, got %d", *c.SampleSize)
	}
	if c.ForestTrees != nil && *c.ForestTrees < 1 {
		return fmt.Errorf("forest_trees must be positive, got %d", *c.ForestTrees)
	}
	if c.BoostRounds != nil && *c.BoostRounds < 1 {
		return fmt.Errorf("boost_rounds must be positive, got %d", *c.BoostRounds)
	}
	if c.BoostLearningRate != nil && (*c.BoostLearningRate <= 0 || *c.BoostLearningRate > 1) {
		return fmt.Errorf("boost_learning_rate must be inside (0,1], got %f", *c.BoostLearningRate)
	}
	if c.BoostMaxDepth != nil && *c.BoostMaxDepth < 1 {
		return fmt.Errorf("boost_max_depth must be positive, got %d", *c.BoostMaxDepth)
	}
	if c.LogisticL2 != nil && *c.LogisticL2 < 0 {
		return fmt.Errorf("logistic_l2 must be non-negative, got %f", *c.LogisticL2)
	}
	if c.LogisticMaxIter != nil && *c.LogisticMaxIter < 1 {
		return fmt.Errorf("logistic_max_iter must be positive, got %d", *c.LogisticMaxIter)
	}
	return nil
}

// GetSeed returns the random seed or the default.
func (c *PipelineConfig) GetSeed() int64 {
	if c.Seed == nil {
		return 42
	}
	return *c.Seed
}

// GetValidationFraction returns the validation share or the default.
func (c *PipelineConfig) GetValidationFraction() float64 {
	if c.ValidationFraction == nil {
		return 0.2
	}
	return *c.ValidationFraction
}

// GetSampleSize returns the fast-iteration subsample size, 0 meaning
// no subsampling.
func (c *PipelineConfig) GetSampleSize() int {
	if c.SampleSize == nil {
		return 0
	}
	return *c.SampleSize
}

// GetThreshold returns the probability threshold or the default.
func (c *PipelineConfig) GetThreshold() float64 {
	if c.Threshold == nil {
		return 0.5
	}
	return *c.Threshold
}

// GetLogisticL2 returns the logistic L2 strength or the default.
func (c *PipelineConfig) GetLogisticL2() float64 {
	if c.LogisticL2 == nil {
		return 1.0
	}
	return *c.LogisticL2
}

// GetLogisticMaxIter returns the logistic iteration cap or the default.
func (c *PipelineConfig) GetLogisticMaxIter() int {
	if c.LogisticMaxIter == nil {
		return 200
	}
	return *c.LogisticMaxIter
}

// GetForestTrees returns the forest tree count or the default.
func (c *PipelineConfig) GetForestTrees() int {
	if c.ForestTrees == nil {
		return 100
	}
	return *c.ForestTrees
}

// GetBoostRounds returns the boosting round count or the default.
func (c *PipelineConfig) GetBoostRounds() int {
	if c.BoostRounds == nil {
		return 100
	}
	return *c.BoostRounds
}

// GetBoostLearningRate returns the boosting learning rate or the
// default.
func (c *PipelineConfig) GetBoostLearningRate() float64 {
	if c.BoostLearningRate == nil {
		return 0.1
	}
	return *c.BoostLearningRate
}

// GetBoostMaxDepth returns the boosting tree depth cap or the default.
func (c *PipelineConfig) GetBoostMaxDepth() int {
	if c.BoostMaxDepth == nil {
		return 6
	}
	return *c.BoostMaxDepth
}
