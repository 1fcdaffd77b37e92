// Command swingreport trains swing/no-swing classifiers from labeled
// pitch-tracking seasons, compares them on a stratified hold-out,
// retrains the winner on the full labeled data, and scores the
// unlabeled season into a CSV of swing probabilities.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/banshee-data/swing.report/internal/config"
	"github.com/banshee-data/swing.report/internal/features"
	"github.com/banshee-data/swing.report/internal/metrics"
	"github.com/banshee-data/swing.report/internal/model"
	"github.com/banshee-data/swing.report/internal/pitch"
	"github.com/banshee-data/swing.report/internal/rundb"
	"github.com/banshee-data/swing.report/internal/split"
	"github.com/banshee-data/swing.report/internal/version"
)

// ColSwingProbability is the single column the pipeline appends to the
// scoring CSV.
const ColSwingProbability = "swing_probability"

// Config holds the CLI configuration for one pipeline run.
type Config struct {
	Train2023  string
	Train2024  string
	Score2025  string
	OutputFile string
	ConfigPath string
	DBPath     string
	OutputJSON string
	Sample     int
	Verbose    bool
	Version    bool
}

// CandidateSummary is one candidate's evaluation plus its optional
// feature ranking, keyed by encoded feature column name.
type CandidateSummary struct {
	*metrics.EvaluationResult
	Importances map[string]float64 `json:"feature_importances,omitempty"`
}

// PipelineResult holds everything one run produced, for printing and
// JSON export.
type PipelineResult struct {
	Candidates         []CandidateSummary `json:"candidates"`
	BestModel          string             `json:"best_model"`
	FinalTrainSecs     float64            `json:"final_train_secs"`
	LabeledRows        int                `json:"labeled_rows"`
	DroppedRows        int                `json:"dropped_rows"`
	SampledRows        int                `json:"sampled_rows"`
	TrainRows          int                `json:"train_rows"`
	ValRows            int                `json:"val_rows"`
	ImputedValues      int                `json:"imputed_values"`
	ScoredRows         int                `json:"scored_rows"`
	FeatureColumns     []string           `json:"feature_columns"`
	OutputFile         string             `json:"output_file"`
	ProcessingTimeSecs float64            `json:"processing_time_secs"`
}

func main() {
	cfg := parseFlags()

	if cfg.Version {
		fmt.Printf("swingreport %s (%s, built %s)\n", version.Version, version.GitSHA, version.BuildTime)
		return
	}

	for _, required := range []struct{ name, value string }{
		{"train2023", cfg.Train2023},
		{"train2024", cfg.Train2024},
		{"score2025", cfg.Score2025},
		{"out", cfg.OutputFile},
	} {
		if required.value == "" {
			log.Fatalf("-%s is required", required.name)
		}
	}

	pcfg := config.EmptyPipelineConfig()
	if cfg.ConfigPath != "" {
		var err error
		pcfg, err = config.LoadPipelineConfig(cfg.ConfigPath)
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}
	}

	result, err := runPipeline(cfg, pcfg)
	if err != nil {
		log.Fatalf("pipeline failed: %v", err)
	}

	printResults(result)

	if cfg.OutputJSON != "" {
		if err := exportJSON(result, cfg.OutputJSON); err != nil {
			log.Printf("Warning: failed to export JSON: %v", err)
		} else {
			log.Printf("Results exported to: %s", cfg.OutputJSON)
		}
	}
}

func parseFlags() Config {
	cfg := Config{}

	flag.StringVar(&cfg.Train2023, "train2023", "", "Path to the 2023 labeled pitch CSV")
	flag.StringVar(&cfg.Train2024, "train2024", "", "Path to the 2024 labeled pitch CSV")
	flag.StringVar(&cfg.Score2025, "score2025", "", "Path to the 2025 unlabeled pitch CSV")
	flag.StringVar(&cfg.OutputFile, "out", "", "Output CSV path for scored predictions")
	flag.StringVar(&cfg.ConfigPath, "config", "", "Pipeline config JSON (defaults used when omitted)")
	flag.StringVar(&cfg.DBPath, "db", "swing_runs.db", "Run-history SQLite database (empty disables persistence)")
	flag.StringVar(&cfg.OutputJSON, "json", "", "Output JSON filename for comparison results")
	flag.IntVar(&cfg.Sample, "sample", -1, "Subsample size for fast iteration (-1 uses config, 0 disables)")
	flag.BoolVar(&cfg.Verbose, "verbose", false, "Enable verbose logging")
	flag.BoolVar(&cfg.Version, "version", false, "Print version information and exit")

	flag.Parse()

	return cfg
}

func runPipeline(cfg Config, pcfg *config.PipelineConfig) (*PipelineResult, error) {
	startTime := time.Now()
	result := &PipelineResult{OutputFile: cfg.OutputFile}

	// Labeled seasons: coerce, drop incomplete rows, engineer features.
	builder := &features.Builder{Policy: features.BucketTraining}
	var engineered []*pitch.Table
	for _, path := range []string{cfg.Train2023, cfg.Train2024} {
		feat, dropped, err := loadLabeledSeason(path, builder)
		if err != nil {
			return nil, err
		}
		log.Printf("loaded %s: %d rows (%d dropped)", path, feat.NumRows(), dropped)
		result.DroppedRows += dropped
		engineered = append(engineered, feat)
	}
	trainFeat, err := pitch.Concat(engineered...)
	if err != nil {
		return nil, fmt.Errorf("concat labeled seasons: %w", err)
	}
	result.LabeledRows = trainFeat.NumRows()

	// Scoring season: coerce, mean-impute, engineer with the scoring
	// bucket policy. The raw table survives untouched for pass-through
	// output.
	rawScore, scoreFeat, imputed, err := loadScoringSeason(cfg.Score2025)
	if err != nil {
		return nil, err
	}
	log.Printf("loaded %s: %d rows (%d values imputed)", cfg.Score2025, rawScore.NumRows(), imputed)
	result.ImputedValues = imputed

	// One encoding scheme, fit on the labeled data, shared by every
	// candidate and by scoring, so dummy columns cannot drift.
	scheme, err := features.FitEncoding(trainFeat)
	if err != nil {
		return nil, err
	}
	result.FeatureColumns = scheme.Columns

	y, err := features.Labels(trainFeat)
	if err != nil {
		return nil, err
	}
	x, err := scheme.Encode(trainFeat)
	if err != nil {
		return nil, err
	}

	// Fast-iteration subsample, then the stratified 80/20 split.
	seed := pcfg.GetSeed()
	sampleSize := pcfg.GetSampleSize()
	if cfg.Sample >= 0 {
		sampleSize = cfg.Sample
	}
	idx := split.Subsample(len(y), sampleSize, seed)
	xs, ys := split.Rows(x, idx), split.Take(y, idx)
	result.SampledRows = len(ys)

	trainIdx, valIdx, err := split.Stratified(ys, pcfg.GetValidationFraction(), seed)
	if err != nil {
		return nil, err
	}
	xTrain, yTrain := split.Rows(xs, trainIdx), split.Take(ys, trainIdx)
	xVal, yVal := split.Rows(xs, valIdx), split.Take(ys, valIdx)
	result.TrainRows, result.ValRows = len(yTrain), len(yVal)

	candidates := []model.Classifier{
		model.NewLogistic(pcfg.GetLogisticL2(), pcfg.GetLogisticMaxIter()),
		model.NewForest(pcfg.GetForestTrees()),
		model.NewGradientBoost(pcfg.GetBoostRounds(), pcfg.GetBoostLearningRate(), pcfg.GetBoostMaxDepth()),
	}

	harness := &model.TrainingHarness{Threshold: pcfg.GetThreshold(), Verbose: cfg.Verbose}
	compared, err := harness.Compare(candidates, xTrain, yTrain, xVal, yVal)
	if err != nil {
		return nil, err
	}

	for _, cr := range compared {
		summary := CandidateSummary{EvaluationResult: cr.Result}
		if cr.Importances != nil {
			summary.Importances = make(map[string]float64, len(cr.Importances))
			for i, imp := range cr.Importances {
				if i < len(scheme.Columns) {
					summary.Importances[scheme.Columns[i]] = imp
				}
			}
		}
		result.Candidates = append(result.Candidates, summary)
	}

	if cfg.DBPath != "" {
		if err := persistRuns(cfg.DBPath, candidates, compared); err != nil {
			return nil, err
		}
	}

	best, err := model.SelectBest(compared)
	if err != nil {
		return nil, err
	}
	result.BestModel = candidates[best].Name()
	log.Printf("best model: %s (auc=%s)", result.BestModel, compared[best].Result.AUC)

	// Refit the winning family from scratch on the full labeled data.
	final := candidates[best].Clone()
	finalStart := time.Now()
	if err := final.Fit(x, y); err != nil {
		return nil, fmt.Errorf("final fit %s: %w", final.Name(), err)
	}
	result.FinalTrainSecs = time.Since(finalStart).Seconds()

	scorer := &model.Scorer{Model: final, Scheme: scheme}
	probs, err := scorer.Score(scoreFeat)
	if err != nil {
		return nil, err
	}
	result.ScoredRows = len(probs)

	// Output: every original scoring column unmodified, plus the
	// probability column, row-aligned with the input.
	out := rawScore.Clone()
	if err := out.AddFloatColumn(ColSwingProbability, probs); err != nil {
		return nil, err
	}
	if err := pitch.WriteCSV(out, cfg.OutputFile); err != nil {
		return nil, err
	}

	result.ProcessingTimeSecs = time.Since(startTime).Seconds()
	return result, nil
}

// loadLabeledSeason reads one labeled season and returns its
// engineered feature table plus the number of incomplete rows dropped.
func loadLabeledSeason(path string, builder *features.Builder) (*pitch.Table, int, error) {
	t, err := pitch.ReadCSV(path)
	if err != nil {
		return nil, 0, err
	}
	if err := t.Require(pitch.LabeledSchema...); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", path, err)
	}
	if err := pitch.CoerceNumeric(t, pitch.NumericColumns...); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", path, err)
	}
	complete := append(pitch.ModelingColumns(), pitch.ColDescription)
	cleaned, dropped, err := pitch.DropMissing(t, complete...)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", path, err)
	}
	feat, err := builder.Build(cleaned)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", path, err)
	}
	return feat, dropped, nil
}

// loadScoringSeason reads the unlabeled season, returning the raw
// table exactly as read (for pass-through output), the engineered
// feature table, and the number of imputed values.
func loadScoringSeason(path string) (raw, feat *pitch.Table, imputed int, err error) {
	raw, err = pitch.ReadCSV(path)
	if err != nil {
		return nil, nil, 0, err
	}
	if err := raw.Require(pitch.ScoringSchema...); err != nil {
		return nil, nil, 0, fmt.Errorf("%s: %w", path, err)
	}

	cleaned := raw.Clone()
	if err := pitch.CoerceNumeric(cleaned, pitch.NumericColumns...); err != nil {
		return nil, nil, 0, fmt.Errorf("%s: %w", path, err)
	}
	imputed, err = pitch.ImputeMean(cleaned, pitch.NumericColumns...)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("%s: %w", path, err)
	}

	builder := &features.Builder{Policy: features.BucketScoring}
	feat, err = builder.Build(cleaned)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("%s: %w", path, err)
	}
	return raw, feat, imputed, nil
}

// persistRuns records one row per candidate in the run-history
// database.
func persistRuns(path string, candidates []model.Classifier, compared []model.CandidateResult) error {
	db, err := rundb.Open(path)
	if err != nil {
		return err
	}
	defer db.Close()

	store := rundb.NewRunStore(db)
	for i, cr := range compared {
		run, err := rundb.FromEvaluation(cr.Result, candidates[i].Params())
		if err != nil {
			return err
		}
		if err := store.Insert(run); err != nil {
			return err
		}
	}
	return nil
}

func printResults(result *PipelineResult) {
	fmt.Println("\n=== Model Comparison Results ===")
	fmt.Printf("Labeled rows: %d (%d dropped)\n", result.LabeledRows, result.DroppedRows)
	fmt.Printf("Sampled rows: %d (train %d / validation %d)\n", result.SampledRows, result.TrainRows, result.ValRows)

	fmt.Println("\n--- Per-Model Statistics ---")
	for _, c := range result.Candidates {
		fmt.Printf("\n%s:\n", c.Model)
		fmt.Printf("  Accuracy:  %.4f\n", c.Accuracy)
		fmt.Printf("  ROC-AUC:   %s\n", c.AUC)
		fmt.Printf("  Precision: %s\n", c.Precision)
		fmt.Printf("  Recall:    %s\n", c.Recall)
		fmt.Printf("  F1:        %s\n", c.F1)
		fmt.Printf("  Confusion: tn=%d fp=%d fn=%d tp=%d\n",
			c.Confusion.TN, c.Confusion.FP, c.Confusion.FN, c.Confusion.TP)
		fmt.Printf("  Fit time:  %.2fs\n", c.TrainDuration.Seconds())
	}

	fmt.Println("\n--- Final Model ---")
	fmt.Printf("Best model: %s\n", result.BestModel)
	fmt.Printf("Full refit: %.2fs\n", result.FinalTrainSecs)
	fmt.Printf("Scored rows: %d -> %s\n", result.ScoredRows, result.OutputFile)
	fmt.Printf("Total time: %.2fs\n", result.ProcessingTimeSecs)
}

func exportJSON(result *PipelineResult, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}
