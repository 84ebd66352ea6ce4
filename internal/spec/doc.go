// Package spec loads the commodex specification document.
//
// A specification declares the dimensions a synthetic dataset is generated
// for and the contract the resulting file must satisfy:
//
//	commodities: [Lithium, Cobalt]
//	metrics: [price_usd_t]
//	outputs:
//	  - path: data/demo.csv
//	    schema:
//	      columns:
//	        - name: date
//	        - name: commodity
//	quality_rules:
//	  - rule: no_nulls
//	    columns: [date, value]
//	  - rule: row_count_min
//	    min_rows: 50
//
// Documents may be written in YAML, JSON or CUE. Load performs no semantic
// checks; Lint reports contract problems separately. The generator and
// validator accept any document Load returns.
package spec
