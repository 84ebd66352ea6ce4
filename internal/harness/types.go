package harness

import "github.com/roach88/commodex/internal/validate"

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall scenario success: the validator reported what
	// the scenario expects.
	Pass bool `json:"pass"`

	// Report is the validator report with output paths relative to the
	// scenario working directory.
	Report *validate.Report `json:"report,omitempty"`

	// Errors contains expectation mismatches. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Errors: []string{},
	}
}

// AddError adds a mismatch and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
