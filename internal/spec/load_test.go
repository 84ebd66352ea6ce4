package spec

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exampleYAML = `
commodities: [Lithium, Cobalt]
metrics: [price_usd_t]
outputs:
  - path: data/demo.csv
    schema:
      columns:
        - name: date
        - name: value
quality_rules:
  - rule: no_nulls
    columns: [date, value]
  - rule: row_count_min
    min_rows: 50
`

const exampleJSON = `{
  "commodities": ["Lithium", "Cobalt"],
  "metrics": ["price_usd_t"],
  "outputs": [
    {"path": "data/demo.csv", "schema": {"columns": [{"name": "date"}, {"name": "value"}]}}
  ],
  "quality_rules": [
    {"rule": "no_nulls", "columns": ["date", "value"]},
    {"rule": "row_count_min", "min_rows": 50}
  ]
}`

const exampleCUE = `
commodities: ["Lithium", "Cobalt"]
metrics: ["price_usd_t"]
outputs: [{
	path: "data/demo.csv"
	schema: columns: [{name: "date"}, {name: "value"}]
}]
quality_rules: [
	{rule: "no_nulls", columns: ["date", "value"]},
	{rule: "row_count_min", min_rows: 50},
]
`

func writeSpec(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadYAML(t *testing.T) {
	s, err := Load(writeSpec(t, "spec.yaml", exampleYAML))
	require.NoError(t, err)

	assert.Equal(t, []string{"Lithium", "Cobalt"}, s.Commodities)
	assert.Equal(t, []string{"price_usd_t"}, s.Metrics)
	require.Len(t, s.Outputs, 1)
	assert.Equal(t, "data/demo.csv", s.Outputs[0].Path)
	assert.Equal(t, []string{"date", "value"}, s.Outputs[0].ColumnNames())
	require.Len(t, s.QualityRules, 2)
	assert.Equal(t, RuleNoNulls, s.QualityRules[0].Rule)
	cols, ok, err := s.QualityRules[0].ColumnList()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"date", "value"}, cols)
	n, ok, err := s.QualityRules[1].MinRows()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 50, n)
}

func TestLoadFormatsAgree(t *testing.T) {
	fromYAML, err := Load(writeSpec(t, "spec.yaml", exampleYAML))
	require.NoError(t, err)
	fromJSON, err := Load(writeSpec(t, "spec.json", exampleJSON))
	require.NoError(t, err)
	fromCUE, err := Load(writeSpec(t, "spec.cue", exampleCUE))
	require.NoError(t, err)

	assert.Equal(t, fromYAML, fromJSON)
	assert.Equal(t, fromYAML, fromCUE)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)

	var malformed *MalformedSpecError
	assert.False(t, errorsAs(err, &malformed), "missing file is an I/O failure, not a malformed spec")
}

func TestLoadMalformed(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"bad yaml", "spec.yaml", "outputs: [unclosed\n"},
		{"bad json", "spec.json", `{"outputs": [}`},
		{"sequence root", "spec.yaml", "- a\n- b\n"},
		{"bad cue", "spec.cue", "outputs: [\n"},
		{"non-concrete cue", "spec.cue", "commodities: [...string]\nmetrics: string\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeSpec(t, tt.file, tt.content))
			require.Error(t, err)
			var malformed *MalformedSpecError
			require.True(t, errorsAs(err, &malformed), "got %T: %v", err, err)
			assert.Contains(t, malformed.Path, tt.file)
		})
	}
}

func TestLoadEmptyDocument(t *testing.T) {
	s, err := Load(writeSpec(t, "spec.yaml", ""))
	require.NoError(t, err)
	assert.Empty(t, s.Outputs)
	assert.Equal(t, DefaultCommodities, s.CommodityList())
}

func TestLoadToleratesUnknownKeys(t *testing.T) {
	s, err := Load(writeSpec(t, "spec.yaml", "owner: data-team\noutputs:\n  - path: x.csv\n    format: csv\n"))
	require.NoError(t, err)
	require.Len(t, s.Outputs, 1)
	assert.Equal(t, "x.csv", s.Outputs[0].Path)
}

func TestMinRowsAcceptsNumericStrings(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"200", 200},
		{`"200"`, 200},
		{"200.0", 200},
		{`" 7 "`, 7},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			s, err := Parse("spec.yaml", []byte("quality_rules:\n  - rule: row_count_min\n    min_rows: "+tt.raw+"\n"))
			require.NoError(t, err)
			n, ok, err := s.QualityRules[0].MinRows()
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, tt.want, n)
		})
	}
}

func TestMinRowsRejectsFractions(t *testing.T) {
	s, err := Parse("spec.yaml", []byte("quality_rules:\n  - rule: row_count_min\n    min_rows: 2.5\n"))
	require.NoError(t, err, "parameters are interpreted after loading")
	_, ok, err := s.QualityRules[0].MinRows()
	assert.True(t, ok)
	assert.ErrorContains(t, err, "invalid count")
}

func TestLoadKeepsRuleParametersRaw(t *testing.T) {
	doc := `quality_rules:
  - rule: allowed_values
    columns:
      unit: [USD/t]
  - rule: freshness
    min_rows: recent
  - rule: no_nulls
    columns: value
  - rule: no_nulls
    columns: []
  - rule: no_nulls
`
	s, err := Parse("spec.yaml", []byte(doc))
	require.NoError(t, err)
	require.Len(t, s.QualityRules, 5)

	assert.Equal(t, map[string]any{"unit": []any{"USD/t"}}, s.QualityRules[0].Params[ParamColumns])
	_, _, err = s.QualityRules[0].ColumnList()
	assert.ErrorContains(t, err, "got mapping")
	assert.Equal(t, "recent", s.QualityRules[1].Params[ParamMinRows])

	cols, ok, err := s.QualityRules[2].ColumnList()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"value"}, cols)

	cols, ok, err = s.QualityRules[3].ColumnList()
	require.NoError(t, err)
	assert.True(t, ok, "explicit empty list is present")
	assert.Empty(t, cols)

	_, ok, err = s.QualityRules[4].ColumnList()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRuleConstructors(t *testing.T) {
	cols, ok, err := NoNulls("date", "value").ColumnList()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []string{"date", "value"}, cols)

	n, ok, err := RowCountMin(50).MinRows()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 50, n)
}
