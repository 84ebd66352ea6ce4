package spec

import (
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"
)

// Fallback dimensions used when a document omits or empties the field.
var (
	DefaultCommodities = []string{"Lithium", "Cobalt"}
	DefaultMetrics     = []string{"price_usd_t", "production_t"}
)

// Quality rule kinds understood by the validator.
const (
	RuleNoNulls     = "no_nulls"
	RuleRowCountMin = "row_count_min"
)

// Spec is the in-memory form of a specification document.
type Spec struct {
	Commodities  []string      `yaml:"commodities,omitempty" json:"commodities,omitempty"`
	Metrics      []string      `yaml:"metrics,omitempty" json:"metrics,omitempty"`
	Outputs      []Output      `yaml:"outputs,omitempty" json:"outputs,omitempty"`
	QualityRules []QualityRule `yaml:"quality_rules,omitempty" json:"quality_rules,omitempty"`
}

// Output describes one dataset the specification declares.
type Output struct {
	Path   string `yaml:"path" json:"path"`
	Schema Schema `yaml:"schema" json:"schema"`
}

// Schema lists the expected columns of an output, in order.
type Schema struct {
	Columns []Column `yaml:"columns" json:"columns"`
}

// Column is a single declared column.
type Column struct {
	Name string `yaml:"name" json:"name"`
}

// QualityRule is a tagged rule descriptor. Parameters are kept as decoded
// so that a rule kind the validator does not know never stops a document
// from loading; ColumnList and MinRows interpret them for the known kinds.
type QualityRule struct {
	Rule   string         `yaml:"rule" json:"rule"`
	Params map[string]any `yaml:",inline" json:"-"`
}

// Rule parameter keys.
const (
	ParamColumns = "columns"
	ParamMinRows = "min_rows"
)

// NoNulls builds a no_nulls rule over columns. An empty call yields an
// explicit empty column list.
func NoNulls(columns ...string) QualityRule {
	list := make([]any, len(columns))
	for i, c := range columns {
		list[i] = c
	}
	return QualityRule{Rule: RuleNoNulls, Params: map[string]any{ParamColumns: list}}
}

// RowCountMin builds a row_count_min rule.
func RowCountMin(n int) QualityRule {
	return QualityRule{Rule: RuleRowCountMin, Params: map[string]any{ParamMinRows: n}}
}

// param returns a parameter value. A key set to null counts as absent.
func (r QualityRule) param(key string) (any, bool) {
	v, ok := r.Params[key]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

// ColumnList interprets the columns parameter. A single name is accepted as
// a one-element list. The boolean is false when the parameter is absent; an
// explicit empty list is present and empty.
func (r QualityRule) ColumnList() ([]string, bool, error) {
	v, ok := r.param(ParamColumns)
	if !ok {
		return nil, false, nil
	}
	switch v := v.(type) {
	case []any:
		cols := make([]string, 0, len(v))
		for i, item := range v {
			name, err := columnName(item)
			if err != nil {
				return nil, true, fmt.Errorf("columns[%d]: %w", i, err)
			}
			cols = append(cols, name)
		}
		return cols, true, nil
	case []string:
		return v, true, nil
	default:
		name, err := columnName(v)
		if err != nil {
			return nil, true, fmt.Errorf("columns: %w", err)
		}
		return []string{name}, true, nil
	}
}

func columnName(v any) (string, error) {
	switch v := v.(type) {
	case string:
		return v, nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	default:
		return "", fmt.Errorf("expected a column name, got %s", typeName(v))
	}
}

// MinRows interprets the min_rows parameter. Integers, integral floats and
// numeric strings ("200") are accepted.
func (r QualityRule) MinRows() (int, bool, error) {
	v, ok := r.param(ParamMinRows)
	if !ok {
		return 0, false, nil
	}
	switch v := v.(type) {
	case int:
		return v, true, nil
	case int64:
		return int(v), true, nil
	case uint64:
		return 0, true, fmt.Errorf("min_rows %d out of range", v)
	case float64:
		n, err := parseCount(strconv.FormatFloat(v, 'f', -1, 64))
		return n, true, err
	case string:
		n, err := parseCount(v)
		return n, true, err
	default:
		return 0, true, fmt.Errorf("min_rows: expected a number, got %s", typeName(v))
	}
}

func parseCount(raw string) (int, error) {
	s := strings.TrimSpace(raw)
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, fmt.Errorf("invalid count %q", raw)
	}
	return int(f), nil
}

func typeName(v any) string {
	switch v.(type) {
	case map[string]any, map[any]any:
		return "mapping"
	case []any:
		return "sequence"
	case bool:
		return "boolean"
	case float64:
		return "number"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// CommodityList returns the declared commodities or DefaultCommodities.
func (s *Spec) CommodityList() []string {
	if len(s.Commodities) == 0 {
		return DefaultCommodities
	}
	return s.Commodities
}

// MetricList returns the declared metrics or DefaultMetrics.
func (s *Spec) MetricList() []string {
	if len(s.Metrics) == 0 {
		return DefaultMetrics
	}
	return s.Metrics
}

// Output returns the i-th declared output.
func (s *Spec) Output(i int) (Output, bool) {
	if i < 0 || i >= len(s.Outputs) {
		return Output{}, false
	}
	return s.Outputs[i], true
}

// OutputFor returns the declared output whose path refers to the same file
// as path, falling back to the first output. The boolean is false only when
// no outputs are declared.
func (s *Spec) OutputFor(path string) (Output, bool) {
	want := filepath.Clean(path)
	for _, out := range s.Outputs {
		if out.Path != "" && filepath.Clean(out.Path) == want {
			return out, true
		}
	}
	return s.Output(0)
}

// ColumnNames returns the declared column names in order.
func (o Output) ColumnNames() []string {
	names := make([]string, len(o.Schema.Columns))
	for i, c := range o.Schema.Columns {
		names[i] = c.Name
	}
	return names
}
