package features

import (
	"fmt"
	"math"

	"github.com/banshee-data/swing.report/internal/pitch"
)

// Engineered column names.
const (
	ColSwing           = "swing"
	ColBallStrikeRatio = "ball_strike_ratio"
	ColInteraction     = "interaction_pitch_release"
)

// Coarse pitch-type categories.
const (
	CategoryFastball = "fastball"
	CategoryBreaking = "breaking"
	CategoryOffspeed = "offspeed"
	CategoryOther    = "Other"
)

// BucketPolicy selects how unknown raw pitch-type codes are folded.
// The mapping is deliberately asymmetric: training keeps an explicit
// Other category while scoring folds unknowns (and FO) into fastball,
// so scoring can never produce a category the model was not trained
// on.
type BucketPolicy int

const (
	// BucketTraining maps unrecognized codes to CategoryOther.
	BucketTraining BucketPolicy = iota
	// BucketScoring maps unrecognized codes (and FO) to CategoryFastball.
	BucketScoring
)

// NonSwingDescriptions is the exact outcome set that derives swing=0.
// Any description outside this set, including unknown codes, derives
// swing=1.
var NonSwingDescriptions = map[string]bool{
	"ball":          true,
	"called_strike": true,
	"blocked_ball":  true,
	"hit_by_pitch":  true,
	"pitchout":      true,
}

var fastballCodes = map[string]bool{"FF": true, "SI": true, "FC": true, "FA": true}
var breakingCodes = map[string]bool{"SL": true, "CU": true, "KC": true, "SC": true, "SV": true, "ST": true}
var offspeedCodes = map[string]bool{"CH": true, "FS": true, "CS": true, "EP": true, "KN": true, "PO": true}

// categoryOrdinal fixes the numeric encoding of each category for the
// interaction term. The ordering is arbitrary but must be identical at
// training and scoring time.
var categoryOrdinal = map[string]float64{
	CategoryOther:    0,
	CategoryFastball: 1,
	CategoryBreaking: 2,
	CategoryOffspeed: 3,
}

// Bucket maps a raw pitch-type code to its coarse category under the
// given policy.
func Bucket(code string, policy BucketPolicy) string {
	switch {
	case fastballCodes[code]:
		return CategoryFastball
	case code == "FO" && policy == BucketScoring:
		return CategoryFastball
	case breakingCodes[code]:
		return CategoryBreaking
	case offspeedCodes[code]:
		return CategoryOffspeed
	}
	if policy == BucketScoring {
		return CategoryFastball
	}
	return CategoryOther
}

// DeriveSwing maps an outcome description to the binary swing label.
func DeriveSwing(description string) float64 {
	if NonSwingDescriptions[description] {
		return 0
	}
	return 1
}

// NumericFeatureColumns is the fixed, ordered numeric feature set.
var NumericFeatureColumns = []string{
	pitch.ColReleaseSpeed, pitch.ColBalls, pitch.ColStrikes,
	pitch.ColPfxX, pitch.ColPfxZ, pitch.ColPlateX, pitch.ColPlateZ,
	pitch.ColSzTop, pitch.ColSzBot,
	ColBallStrikeRatio, ColInteraction,
}

// CategoricalFeatureColumns is the fixed, ordered categorical feature
// set. pitch_type holds the coarse category after Build.
var CategoricalFeatureColumns = []string{
	pitch.ColStand, pitch.ColPThrows, pitch.ColPitchType,
}

// Builder derives the engineered feature table from a cleaned pitch
// table. The same builder configuration must be used for every table
// that shares an EncodingScheme.
type Builder struct {
	Policy BucketPolicy
}

// Build returns the engineered table: coarse pitch category, ratio and
// interaction terms, the swing label when a description column is
// present, and only the fixed feature columns (identifiers dropped).
// Output column order is fixed and identical across calls; the label
// column, when present, comes last.
func (b *Builder) Build(t *pitch.Table) (*pitch.Table, error) {
	required := append(append([]string(nil), pitch.NumericColumns...), pitch.CategoricalColumns...)
	if err := t.Require(required...); err != nil {
		return nil, fmt.Errorf("feature build: %w", err)
	}

	n := t.NumRows()
	out := t.Clone()

	// Coarse pitch-type category replaces the raw code.
	rawType, _ := out.Column(pitch.ColPitchType)
	if rawType.Kind != pitch.KindString {
		return nil, fmt.Errorf("feature build: %s must be a string column", pitch.ColPitchType)
	}
	categories := make([]string, n)
	for i, code := range rawType.Strings {
		categories[i] = Bucket(code, b.Policy)
	}
	if err := out.ReplaceColumn(pitch.ColPitchType, &pitch.Column{
		Name: pitch.ColPitchType, Kind: pitch.KindString, Strings: categories,
	}); err != nil {
		return nil, err
	}

	balls, _ := out.Column(pitch.ColBalls)
	strikes, _ := out.Column(pitch.ColStrikes)
	speed, _ := out.Column(pitch.ColReleaseSpeed)
	if balls.Kind != pitch.KindFloat || strikes.Kind != pitch.KindFloat || speed.Kind != pitch.KindFloat {
		return nil, fmt.Errorf("feature build: numeric columns not coerced")
	}

	// balls/(strikes+1): the +1 keeps the ratio finite since strikes>=0.
	ratio := make([]float64, n)
	for i := range ratio {
		ratio[i] = balls.Floats[i] / (strikes.Floats[i] + 1)
	}
	if err := out.AddFloatColumn(ColBallStrikeRatio, ratio); err != nil {
		return nil, err
	}

	interaction := make([]float64, n)
	for i := range interaction {
		interaction[i] = categoryOrdinal[categories[i]] * speed.Floats[i]
	}
	if err := out.AddFloatColumn(ColInteraction, interaction); err != nil {
		return nil, err
	}

	selected := append([]string(nil), NumericFeatureColumns...)
	selected = append(selected, CategoricalFeatureColumns...)

	if out.HasColumn(pitch.ColDescription) {
		desc, _ := out.Column(pitch.ColDescription)
		if desc.Kind != pitch.KindString {
			return nil, fmt.Errorf("feature build: %s must be a string column", pitch.ColDescription)
		}
		labels := make([]float64, n)
		for i, d := range desc.Strings {
			labels[i] = DeriveSwing(d)
		}
		if err := out.AddFloatColumn(ColSwing, labels); err != nil {
			return nil, err
		}
		selected = append(selected, ColSwing)
	}

	return out.Select(selected...)
}

// Labels extracts the swing label column as a float slice.
func Labels(t *pitch.Table) ([]float64, error) {
	c, ok := t.Column(ColSwing)
	if !ok {
		return nil, fmt.Errorf("no %s column", ColSwing)
	}
	if c.Kind != pitch.KindFloat {
		return nil, fmt.Errorf("%s column is not numeric", ColSwing)
	}
	for i, v := range c.Floats {
		if v != 0 && v != 1 || math.IsNaN(v) {
			return nil, fmt.Errorf("row %d: label %v outside {0,1}", i, v)
		}
	}
	return c.Floats, nil
}
