// Package harness runs conformance scenarios against the generator and the
// contract validator.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: row_count_below_min
//	description: "A short dataset fails row_count_min"
//	spec: specs/demo.yaml
//	dataset:
//	  rows: 10
//	options:
//	  unknown_rules: warn
//	expect:
//	  pass: false
//	  violations: [E304]
//
// The spec path is resolved relative to the scenario file. The dataset is
// either generated (rows) or written verbatim (csv); omit it to leave the
// declared output missing. Relative output paths in the spec resolve inside
// a fresh working directory per run, so scenarios never touch the caller's
// tree.
//
// # Deterministic Testing
//
// Generation uses a fixed clock, so generated datasets and report snapshots
// are identical across runs and can be compared with golden files.
package harness
