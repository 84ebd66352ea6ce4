package validate

import (
	"fmt"
	"sort"
	"strings"
)

// Violation codes (E300-E399).
const (
	CodeMissingOutput  = "E301"
	CodeSchemaMismatch = "E302"
	CodeNullValue      = "E303"
	CodeRowCount       = "E304"
	CodeRuleConfig     = "E305"
	CodeUnknownRule    = "E306"
	CodeUnreadable     = "E307"
)

// MissingOutputError reports a declared output that does not exist on disk,
// or a specification that declares no outputs at all.
type MissingOutputError struct {
	Path string
}

func (e *MissingOutputError) Error() string {
	if e.Path == "" {
		return "specification declares no outputs"
	}
	return fmt.Sprintf("expected output CSV at %s, but not found", e.Path)
}

// SchemaMismatchError reports a header that differs from the declared
// columns, or a rule that references a column the dataset lacks.
type SchemaMismatchError struct {
	Expected []string
	Actual   []string
	Missing  []string // set when a rule references absent columns
}

func (e *SchemaMismatchError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("columns not found in dataset: %v (have %v)", e.Missing, e.Actual)
	}
	return fmt.Sprintf("columns mismatch: expected %v, got %v", e.Expected, e.Actual)
}

// NullValueError reports missing values in columns a no_nulls rule covers.
type NullValueError struct {
	Columns []string
	Counts  map[string]int
}

// Total is the number of null cells across all covered columns.
func (e *NullValueError) Total() int {
	n := 0
	for _, c := range e.Counts {
		n += c
	}
	return n
}

func (e *NullValueError) Error() string {
	names := make([]string, 0, len(e.Counts))
	for name, n := range e.Counts {
		if n > 0 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s=%d", name, e.Counts[name])
	}
	return fmt.Sprintf("nulls found in columns %v: %d total (%s)", e.Columns, e.Total(), strings.Join(parts, ", "))
}

// RowCountError reports a dataset with fewer rows than a row_count_min rule
// requires.
type RowCountError struct {
	Got int
	Min int
}

func (e *RowCountError) Error() string {
	return fmt.Sprintf("row count %d < min_rows %d", e.Got, e.Min)
}

// RuleConfigError reports a quality rule whose parameters are unusable.
type RuleConfigError struct {
	Index   int
	Rule    string
	Message string
}

func (e *RuleConfigError) Error() string {
	return fmt.Sprintf("quality_rules[%d] (%s): %s", e.Index, e.Rule, e.Message)
}

// UnknownRuleError reports a rule kind the validator does not understand.
// It is only produced under PolicyFail.
type UnknownRuleError struct {
	Index int
	Rule  string
}

func (e *UnknownRuleError) Error() string {
	return fmt.Sprintf("quality_rules[%d]: unknown rule kind %q", e.Index, e.Rule)
}
