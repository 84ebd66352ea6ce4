package validate

import (
	"errors"
	"fmt"
)

// Violation is one failed contract clause.
type Violation struct {
	Code    string `json:"code"`
	Rule    string `json:"rule,omitempty"` // empty for the column contract
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// OutputReport holds the outcome for one declared output.
type OutputReport struct {
	Path       string      `json:"path"`
	Rows       int         `json:"rows"`
	Columns    []string    `json:"columns,omitempty"`
	Violations []Violation `json:"violations,omitempty"`
	Warnings   []string    `json:"warnings,omitempty"`
}

// Pass reports whether the output met its contract.
func (r *OutputReport) Pass() bool {
	return len(r.Violations) == 0
}

func (r *OutputReport) fail(code, rule string, err error) {
	r.Violations = append(r.Violations, Violation{
		Code:    code,
		Rule:    rule,
		Message: err.Error(),
		Err:     err,
	})
}

func (r *OutputReport) warn(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Report is the outcome of validating a specification.
type Report struct {
	ContractHash string          `json:"contract_hash,omitempty"`
	Outputs      []*OutputReport `json:"outputs"`
	Violations   []Violation     `json:"violations,omitempty"` // not tied to an output
}

// Pass reports whether every checked output met its contract.
func (r *Report) Pass() bool {
	if len(r.Violations) > 0 {
		return false
	}
	for _, out := range r.Outputs {
		if !out.Pass() {
			return false
		}
	}
	return true
}

// AllViolations returns every violation in report order.
func (r *Report) AllViolations() []Violation {
	all := append([]Violation(nil), r.Violations...)
	for _, out := range r.Outputs {
		all = append(all, out.Violations...)
	}
	return all
}

// Warnings returns every warning in report order.
func (r *Report) Warnings() []string {
	var all []string
	for _, out := range r.Outputs {
		all = append(all, out.Warnings...)
	}
	return all
}

// Err joins every violation into one error, or returns nil when the report
// passes. Individual kinds can be recovered with errors.As.
func (r *Report) Err() error {
	var errs []error
	for _, v := range r.AllViolations() {
		errs = append(errs, v.Err)
	}
	return errors.Join(errs...)
}
