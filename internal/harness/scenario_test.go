package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeScenario writes content to a scenario file next to a minimal spec.
func writeScenario(t *testing.T, content string) string {
	t.Helper()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "spec.yaml"), []byte("outputs: []\n"), 0o644))
	path := filepath.Join(dir, "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadScenario_Valid(t *testing.T) {
	path := writeScenario(t, `
name: basic
description: "Basic scenario"
spec: spec.yaml
dataset:
  rows: 12
options:
  unknown_rules: fail
  all_outputs: true
expect:
  pass: false
  violations: [E301, E304]
`)

	scenario, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, "basic", scenario.Name)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "spec.yaml"), scenario.Spec)
	require.NotNil(t, scenario.Dataset)
	assert.Equal(t, 12, scenario.Dataset.Rows)
	assert.Equal(t, "fail", scenario.Options.UnknownRules)
	assert.True(t, scenario.Options.AllOutputs)
	assert.Equal(t, []string{"E301", "E304"}, scenario.Expect.Violations)
}

func TestLoadScenario_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "missing name",
			content: "description: d\nspec: spec.yaml\nexpect: {pass: true}\n",
			wantErr: "name is required",
		},
		{
			name:    "missing description",
			content: "name: n\nspec: spec.yaml\nexpect: {pass: true}\n",
			wantErr: "description is required",
		},
		{
			name:    "missing spec",
			content: "name: n\ndescription: d\nexpect: {pass: true}\n",
			wantErr: "spec is required",
		},
		{
			name:    "spec not found",
			content: "name: n\ndescription: d\nspec: other.yaml\nexpect: {pass: true}\n",
			wantErr: "spec file not found",
		},
		{
			name:    "unknown field",
			content: "name: n\ndescription: d\nspec: spec.yaml\nexpects: {pass: true}\n",
			wantErr: "failed to parse YAML",
		},
		{
			name:    "rows and csv",
			content: "name: n\ndescription: d\nspec: spec.yaml\ndataset: {rows: 3, csv: \"a\\n\"}\nexpect: {pass: true}\n",
			wantErr: "mutually exclusive",
		},
		{
			name:    "empty dataset",
			content: "name: n\ndescription: d\nspec: spec.yaml\ndataset: {}\nexpect: {pass: true}\n",
			wantErr: "one of rows or csv is required",
		},
		{
			name:    "bad policy",
			content: "name: n\ndescription: d\nspec: spec.yaml\noptions: {unknown_rules: loud}\nexpect: {pass: true}\n",
			wantErr: "invalid unknown-rule policy",
		},
		{
			name:    "passing with violations",
			content: "name: n\ndescription: d\nspec: spec.yaml\nexpect: {pass: true, violations: [E304]}\n",
			wantErr: "cannot list violations",
		},
		{
			name:    "failing without violations",
			content: "name: n\ndescription: d\nspec: spec.yaml\nexpect: {pass: false}\n",
			wantErr: "must list its violations",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScenario(writeScenario(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadScenario_NotFound(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}
