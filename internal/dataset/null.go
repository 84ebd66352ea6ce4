package dataset

// naTokens are the cell values treated as missing when a CSV file is read.
// The set matches the default NA markers of common dataframe readers, so a
// file judged clean here is judged clean by downstream analysis tooling.
var naTokens = map[string]struct{}{
	"":         {},
	"#N/A":     {},
	"#N/A N/A": {},
	"#NA":      {},
	"-1.#IND":  {},
	"-1.#QNAN": {},
	"-NaN":     {},
	"-nan":     {},
	"1.#IND":   {},
	"1.#QNAN":  {},
	"<NA>":     {},
	"N/A":      {},
	"NA":       {},
	"NULL":     {},
	"NaN":      {},
	"None":     {},
	"n/a":      {},
	"nan":      {},
	"null":     {},
}

// IsNull reports whether a cell holds a missing value.
func IsNull(cell string) bool {
	_, ok := naTokens[cell]
	return ok
}
