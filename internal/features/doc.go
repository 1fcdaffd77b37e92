// Package features turns cleaned pitch tables into model-ready
// feature tables and design matrices.
//
// Responsibilities: swing label derivation, coarse pitch-type
// bucketing, the ball/strike ratio and pitch-type interaction terms,
// and the EncodingScheme, the single versioned encoding artifact
// shared by training and scoring so dummy columns can never drift
// between the two phases.
package features
