package spec

import (
	"fmt"
	"strings"
)

// Lint codes (E200-E299).
const (
	LintNoOutputs        = "E201" // no outputs declared
	LintEmptyPath        = "E202" // output path is empty
	LintNoColumns        = "E203" // output schema declares no columns
	LintEmptyColumn      = "E204" // column name is empty
	LintDuplicateColumn  = "E205" // column declared twice
	LintMissingRuleKind  = "E210" // rule without a kind
	LintRuleNoColumns    = "E211" // no_nulls without columns
	LintRuleNoMinRows    = "E212" // row_count_min without min_rows
	LintRuleNegativeMin  = "E213" // row_count_min below zero
	LintUnknownRule      = "E214" // rule kind not understood
	LintRuleUnknownField = "E215" // no_nulls references an undeclared column
	LintRuleBadParam     = "E216" // known rule kind with an unusable parameter
)

// Severity of a lint finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// LintError is a single finding from Lint.
type LintError struct {
	Field    string   `json:"field"`
	Message  string   `json:"message"`
	Code     string   `json:"code"`
	Severity Severity `json:"severity"`
}

func (e LintError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// Lint checks the specification for contract problems. All findings are
// returned; none of them prevent generation or validation from running.
func Lint(s *Spec) []LintError {
	var errs []LintError
	add := func(sev Severity, code, field, format string, args ...any) {
		errs = append(errs, LintError{
			Field:    field,
			Message:  fmt.Sprintf(format, args...),
			Code:     code,
			Severity: sev,
		})
	}

	if len(s.Outputs) == 0 {
		add(SeverityError, LintNoOutputs, "outputs", "at least one output is required")
	}

	for i, out := range s.Outputs {
		field := fmt.Sprintf("outputs[%d]", i)
		if strings.TrimSpace(out.Path) == "" {
			add(SeverityError, LintEmptyPath, field+".path", "path is required")
		}
		if len(out.Schema.Columns) == 0 {
			add(SeverityError, LintNoColumns, field+".schema.columns", "at least one column is required")
		}
		seen := make(map[string]bool)
		for j, col := range out.Schema.Columns {
			colField := fmt.Sprintf("%s.schema.columns[%d].name", field, j)
			if strings.TrimSpace(col.Name) == "" {
				add(SeverityError, LintEmptyColumn, colField, "column name is required")
				continue
			}
			if seen[col.Name] {
				add(SeverityError, LintDuplicateColumn, colField, "duplicate column %q", col.Name)
			}
			seen[col.Name] = true
		}
	}

	var declared map[string]bool
	if first, ok := s.Output(0); ok {
		declared = make(map[string]bool)
		for _, name := range first.ColumnNames() {
			declared[name] = true
		}
	}

	for i, rule := range s.QualityRules {
		field := fmt.Sprintf("quality_rules[%d]", i)
		switch rule.Rule {
		case "":
			add(SeverityError, LintMissingRuleKind, field+".rule", "rule kind is required")
		case RuleNoNulls:
			cols, ok, err := rule.ColumnList()
			switch {
			case err != nil:
				add(SeverityError, LintRuleBadParam, field+".columns", "%v", err)
			case !ok:
				add(SeverityError, LintRuleNoColumns, field+".columns", "no_nulls requires columns")
			case len(cols) == 0:
				add(SeverityWarning, LintRuleNoColumns, field+".columns", "empty column list always passes")
			}
			for _, col := range cols {
				if declared != nil && !declared[col] {
					add(SeverityWarning, LintRuleUnknownField, field+".columns",
						"column %q is not declared in outputs[0].schema", col)
				}
			}
		case RuleRowCountMin:
			n, ok, err := rule.MinRows()
			switch {
			case err != nil:
				add(SeverityError, LintRuleBadParam, field+".min_rows", "%v", err)
			case !ok:
				add(SeverityError, LintRuleNoMinRows, field+".min_rows", "row_count_min requires min_rows")
			case n < 0:
				add(SeverityError, LintRuleNegativeMin, field+".min_rows", "min_rows must not be negative, got %d", n)
			}
		default:
			add(SeverityWarning, LintUnknownRule, field+".rule", "unknown rule kind %q", rule.Rule)
		}
	}

	return errs
}

// HasErrors reports whether any finding has error severity.
func HasErrors(errs []LintError) bool {
	for _, e := range errs {
		if e.Severity == SeverityError {
			return true
		}
	}
	return false
}
