package spec

import (
	"fmt"
	"strconv"

	"github.com/roach88/commodex/internal/canonical"
)

// ContractHash fingerprints the contract part of the specification: the
// declared outputs and the quality rules. Dimensions are excluded because
// they shape the generated data, not the contract it must meet.
func ContractHash(s *Spec) (string, error) {
	outputs := make([]any, len(s.Outputs))
	for i, out := range s.Outputs {
		outputs[i] = map[string]any{
			"path":    out.Path,
			"columns": out.ColumnNames(),
		}
	}

	rules := make([]any, len(s.QualityRules))
	for i, rule := range s.QualityRules {
		entry := map[string]any{"rule": rule.Rule}
		for key, v := range rule.Params {
			if v != nil {
				entry[key] = canonicalParam(v)
			}
		}
		// Equivalent spellings of known parameters hash alike.
		if cols, ok, err := rule.ColumnList(); ok && err == nil {
			entry[ParamColumns] = cols
		}
		if n, ok, err := rule.MinRows(); ok && err == nil {
			entry[ParamMinRows] = n
		}
		rules[i] = entry
	}

	return canonical.Hash(canonical.DomainContract, map[string]any{
		"outputs":       outputs,
		"quality_rules": rules,
	})
}

// canonicalParam converts a decoded parameter into values canonical JSON
// accepts. Floats become their shortest decimal string; null becomes "null".
// Types a decoder never produces are passed through and fail to marshal.
func canonicalParam(v any) any {
	switch v := v.(type) {
	case nil:
		return "null"
	case string, bool, int, int64:
		return v
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = canonicalParam(item)
		}
		return out
	case []string:
		return v
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[k] = canonicalParam(item)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(v))
		for k, item := range v {
			out[fmt.Sprint(k)] = canonicalParam(item)
		}
		return out
	default:
		return v
	}
}
