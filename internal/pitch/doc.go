// Package pitch owns the raw data layer of the swing pipeline.
//
// Responsibilities: the column-oriented Table, CSV load/save, numeric
// coercion of text columns, and missing-value handling (row drop for
// labeled seasons, mean imputation for the scoring season).
// Key types: Table, Column.
//
// Dependency rule: pitch knows nothing about features, models, or
// storage. Missing values are NaN in float columns and the empty
// string in string columns.
package pitch
