package validate

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"slices"

	"github.com/roach88/commodex/internal/dataset"
	"github.com/roach88/commodex/internal/spec"
)

// Validator checks datasets against specifications.
type Validator struct {
	// UnknownRules selects the handling of unrecognised rule kinds. The zero
	// value behaves as PolicyWarn.
	UnknownRules Policy

	// AllOutputs validates every declared output instead of only the first.
	AllOutputs bool

	// Logger receives warnings; nil means slog.Default().
	Logger *slog.Logger
}

func (v *Validator) logger() *slog.Logger {
	if v.Logger == nil {
		return slog.Default()
	}
	return v.Logger
}

func (v *Validator) policy() Policy {
	if v.UnknownRules == "" {
		return PolicyWarn
	}
	return v.UnknownRules
}

// Validate checks the outputs declared by s. Only the first output is
// checked unless AllOutputs is set.
func (v *Validator) Validate(s *spec.Spec) *Report {
	report := &Report{}
	if hash, err := spec.ContractHash(s); err != nil {
		v.logger().Warn("contract hash unavailable", "error", err)
	} else {
		report.ContractHash = hash
	}

	if len(s.Outputs) == 0 {
		err := &MissingOutputError{}
		report.Violations = append(report.Violations, Violation{
			Code:    CodeMissingOutput,
			Message: err.Error(),
			Err:     err,
		})
		return report
	}

	outputs := s.Outputs[:1]
	if v.AllOutputs {
		outputs = s.Outputs
	}
	for _, out := range outputs {
		report.Outputs = append(report.Outputs, v.ValidateOutput(s, out))
	}
	return report
}

// ValidateOutput checks the file declared by out against its column list and
// the quality rules of s.
func (v *Validator) ValidateOutput(s *spec.Spec, out spec.Output) *OutputReport {
	r := &OutputReport{Path: out.Path}
	log := v.logger().With("output", out.Path)

	if _, err := os.Stat(out.Path); err != nil {
		if errors.Is(err, fs.ErrNotExist) || out.Path == "" {
			r.fail(CodeMissingOutput, "", &MissingOutputError{Path: out.Path})
		} else {
			r.fail(CodeUnreadable, "", &dataset.IOError{Op: "stat", Path: out.Path, Err: err})
		}
		return r
	}

	d, err := dataset.ReadFile(out.Path)
	if err != nil {
		r.fail(CodeUnreadable, "", err)
		return r
	}
	r.Rows = d.Len()
	r.Columns = d.Columns
	log.Debug("dataset loaded", "rows", d.Len(), "columns", len(d.Columns))

	expected := out.ColumnNames()
	if !slices.Equal(d.Columns, expected) {
		r.fail(CodeSchemaMismatch, "", &SchemaMismatchError{Expected: expected, Actual: d.Columns})
	}

	for i, rule := range s.QualityRules {
		switch rule.Rule {
		case spec.RuleNoNulls:
			checkNoNulls(r, d, i, rule)
		case spec.RuleRowCountMin:
			checkRowCountMin(r, d, i, rule)
		default:
			switch v.policy() {
			case PolicyFail:
				r.fail(CodeUnknownRule, rule.Rule, &UnknownRuleError{Index: i, Rule: rule.Rule})
			case PolicyWarn:
				r.warn("quality_rules[%d]: unknown rule kind %q ignored", i, rule.Rule)
				log.Warn("unknown quality rule ignored", "index", i, "rule", rule.Rule)
			}
		}
	}

	return r
}

func checkNoNulls(r *OutputReport, d *dataset.Dataset, index int, rule spec.QualityRule) {
	cols, ok, err := rule.ColumnList()
	if err != nil {
		r.fail(CodeRuleConfig, rule.Rule, &RuleConfigError{Index: index, Rule: rule.Rule, Message: err.Error()})
		return
	}
	if !ok {
		r.fail(CodeRuleConfig, rule.Rule, &RuleConfigError{Index: index, Rule: rule.Rule, Message: "columns is required"})
		return
	}

	counts := make(map[string]int, len(cols))
	var missing []string
	total := 0
	for _, col := range cols {
		n, ok := d.NullCount(col)
		if !ok {
			missing = append(missing, col)
			continue
		}
		counts[col] += n
		total += n
	}

	if len(missing) > 0 {
		r.fail(CodeSchemaMismatch, rule.Rule, &SchemaMismatchError{Actual: d.Columns, Missing: missing})
	}
	if total > 0 {
		r.fail(CodeNullValue, rule.Rule, &NullValueError{Columns: cols, Counts: counts})
	}
}

func checkRowCountMin(r *OutputReport, d *dataset.Dataset, index int, rule spec.QualityRule) {
	minRows, ok, err := rule.MinRows()
	if err != nil {
		r.fail(CodeRuleConfig, rule.Rule, &RuleConfigError{Index: index, Rule: rule.Rule, Message: err.Error()})
		return
	}
	if !ok {
		r.fail(CodeRuleConfig, rule.Rule, &RuleConfigError{Index: index, Rule: rule.Rule, Message: "min_rows is required"})
		return
	}
	if d.Len() < minRows {
		r.fail(CodeRowCount, rule.Rule, &RowCountError{Got: d.Len(), Min: minRows})
	}
}

// ValidateFile loads the specification at path and validates it.
func (v *Validator) ValidateFile(path string) (*Report, error) {
	s, err := spec.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load spec: %w", err)
	}
	return v.Validate(s), nil
}
