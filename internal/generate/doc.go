// Package generate builds the synthetic commodity dataset a specification
// describes and writes it to disk.
//
// Row i of a run cycles the declared commodities and metrics independently:
//
//	date         = run date - (i mod 30) days
//	commodity    = commodities[i mod len(commodities)]
//	metric       = metrics[i mod len(metrics)]
//	value        = 10000 + (i mod 200) * 10
//	unit, source = "USD/t", "demo"
//	retrieved_at = run timestamp (same for every row)
//
// The values are placeholders; they depend only on the row index. Column
// order follows the output schema declared in the specification, so the
// generator and the validator read a single source of truth.
package generate
