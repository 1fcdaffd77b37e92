// Package model owns the classifier candidates and the machinery that
// compares them.
//
// Responsibilities: the Classifier interface, the logistic-regression,
// random-forest, and gradient-boosting implementations, the
// TrainingHarness that fits every candidate on one shared split, and
// the Scorer that applies the winning model to unlabeled data.
//
// Every candidate consumes the same design matrix produced by one
// features.EncodingScheme; no model re-encodes data on its own.
package model
