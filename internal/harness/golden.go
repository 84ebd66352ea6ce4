package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/commodex/internal/canonical"
	"github.com/roach88/commodex/internal/validate"
)

// ReportSnapshot captures a validator report for golden comparison.
// It serializes through canonical JSON so key order and escaping never
// drift.
type ReportSnapshot struct {
	ScenarioName string
	Report       *validate.Report
}

// toCanonicalMap converts a ReportSnapshot to a map[string]any for
// canonical JSON serialization.
func (s *ReportSnapshot) toCanonicalMap() map[string]any {
	violations := func(vs []validate.Violation) []any {
		list := make([]any, len(vs))
		for i, v := range vs {
			m := map[string]any{
				"code":    v.Code,
				"message": v.Message,
			}
			if v.Rule != "" {
				m["rule"] = v.Rule
			}
			list[i] = m
		}
		return list
	}

	outputs := make([]any, len(s.Report.Outputs))
	for i, out := range s.Report.Outputs {
		m := map[string]any{
			"path":       out.Path,
			"rows":       out.Rows,
			"pass":       out.Pass(),
			"violations": violations(out.Violations),
		}
		if len(out.Columns) > 0 {
			m["columns"] = out.Columns
		}
		if len(out.Warnings) > 0 {
			m["warnings"] = out.Warnings
		}
		outputs[i] = m
	}

	return map[string]any{
		"scenario_name": s.ScenarioName,
		"pass":          s.Report.Pass(),
		"outputs":       outputs,
		"violations":    violations(s.Report.Violations),
	}
}

// MarshalSnapshot returns the canonical JSON snapshot of a scenario result.
func MarshalSnapshot(name string, result *Result) ([]byte, error) {
	snapshot := ReportSnapshot{ScenarioName: name, Report: result.Report}
	return canonical.Marshal(snapshot.toCanonicalMap())
}

// RunWithGolden executes a scenario and compares the report against a
// golden file stored in testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns an error if scenario execution fails. Test failure (via goldie)
// occurs if the report doesn't match the golden file.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := RunIn(scenario, t.TempDir())
	if err != nil {
		return nil, err
	}

	data, err := MarshalSnapshot(scenario.Name, result)
	if err != nil {
		return nil, err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, data)

	return result, nil
}
