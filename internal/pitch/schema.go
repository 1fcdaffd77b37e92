package pitch

// Column names of the yearly pitch-record CSVs. The labeled seasons
// carry all 17 columns; the scoring season omits ColDescription.
const (
	ColSeason       = "season"
	ColPitchID      = "pitch_id"
	ColReleaseSpeed = "release_speed"
	ColBatter       = "batter"
	ColPitcher      = "pitcher"
	ColDescription  = "description"
	ColStand        = "stand"
	ColPThrows      = "p_throws"
	ColPitchType    = "pitch_type"
	ColBalls        = "balls"
	ColStrikes      = "strikes"
	ColPfxX         = "pfx_x"
	ColPfxZ         = "pfx_z"
	ColPlateX       = "plate_x"
	ColPlateZ       = "plate_z"
	ColSzTop        = "sz_top"
	ColSzBot        = "sz_bot"
)

// NumericColumns are the measurement and count columns that arrive as
// text and must be coerced to floats before modeling.
var NumericColumns = []string{
	ColReleaseSpeed, ColBalls, ColStrikes,
	ColPfxX, ColPfxZ, ColPlateX, ColPlateZ,
	ColSzTop, ColSzBot,
}

// CategoricalColumns are the discrete game-state columns carried into
// the feature set.
var CategoricalColumns = []string{ColStand, ColPThrows, ColPitchType}

// IdentifierColumns are dropped before modeling.
var IdentifierColumns = []string{ColSeason, ColPitchID, ColBatter, ColPitcher}

// LabeledSchema lists every column a labeled-season CSV must carry.
var LabeledSchema = []string{
	ColSeason, ColPitchID, ColReleaseSpeed, ColBatter, ColPitcher,
	ColDescription, ColStand, ColPThrows, ColPitchType,
	ColBalls, ColStrikes, ColPfxX, ColPfxZ, ColPlateX, ColPlateZ,
	ColSzTop, ColSzBot,
}

// ScoringSchema is LabeledSchema without the outcome description; the
// scoring season never carries the label's source of truth.
var ScoringSchema = []string{
	ColSeason, ColPitchID, ColReleaseSpeed, ColBatter, ColPitcher,
	ColStand, ColPThrows, ColPitchType,
	ColBalls, ColStrikes, ColPfxX, ColPfxZ, ColPlateX, ColPlateZ,
	ColSzTop, ColSzBot,
}

// ModelingColumns is the set a record must have fully populated after
// cleaning: the numeric measurements plus the categorical state.
func ModelingColumns() []string {
	out := append([]string(nil), NumericColumns...)
	return append(out, CategoricalColumns...)
}
