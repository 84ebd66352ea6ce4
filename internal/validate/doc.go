// Package validate checks a dataset file against the contract declared in a
// specification.
//
// The contract for an output is its column list (names, order and count
// must match the file header exactly) plus the quality rules of the
// specification. Every rule is evaluated even after an earlier one fails,
// and each violation is reported separately in the Report.
//
// # Unknown rules
//
// Rule kinds the validator does not understand are handled according to
// Policy: ignored, logged as a warning (the default), or reported as a
// violation.
package validate
