package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/commodex/internal/spec"
)

func TestLintValidSpec(t *testing.T) {
	dir := t.TempDir()
	specPath := writeSpec(t, dir, filepath.Join(dir, "demo.csv"), minRows50)

	output, err := execute(t, NewLintCommand(newRootOpts("text")), "--spec", specPath)
	require.NoError(t, err)
	assert.Equal(t, "✓ Spec valid\n", output)
}

func TestLintWarningsOnly(t *testing.T) {
	dir := t.TempDir()
	specPath := writeSpec(t, dir, filepath.Join(dir, "demo.csv"), "  - rule: monotonic_dates\n")

	output, err := execute(t, NewLintCommand(newRootOpts("text")), "--spec", specPath)
	require.NoError(t, err)
	assert.Contains(t, output, "✓ Spec valid")
	assert.Contains(t, output, "! "+spec.LintUnknownRule)
}

func TestLintErrors(t *testing.T) {
	dir := t.TempDir()
	specPath := filepath.Join(dir, "spec.yaml")
	content := `outputs:
  - path: data/demo.csv
    schema:
      columns:
        - name: date
        - name: date
quality_rules:
  - rule: row_count_min
`
	require.NoError(t, os.WriteFile(specPath, []byte(content), 0o644))

	output, err := execute(t, NewLintCommand(newRootOpts("text")), "--spec", specPath)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "2 error(s)")
	assert.Contains(t, output, "✗ Lint failed")
	assert.Contains(t, output, spec.LintDuplicateColumn)
	assert.Contains(t, output, spec.LintRuleNoMinRows)
}

func TestLintErrorsJSON(t *testing.T) {
	dir := t.TempDir()
	specPath := filepath.Join(dir, "spec.yaml")
	require.NoError(t, os.WriteFile(specPath, []byte("commodities: [Lithium]\n"), 0o644))

	output, err := execute(t, NewLintCommand(newRootOpts("json")), "--spec", specPath)
	require.Error(t, err)

	var resp struct {
		Status string     `json:"status"`
		Data   LintResult `json:"data"`
		Error  *CLIError  `json:"error"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.Equal(t, "error", resp.Status)
	assert.False(t, resp.Data.Valid)
	require.NotNil(t, resp.Error)
	assert.Equal(t, spec.LintNoOutputs, resp.Error.Code)
}

func TestLintContractHashJSON(t *testing.T) {
	dir := t.TempDir()
	specPath := writeSpec(t, dir, "data/demo.csv", minRows50)

	output, err := execute(t, NewLintCommand(newRootOpts("json")), "--spec", specPath)
	require.NoError(t, err)

	var resp struct {
		Data LintResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &resp))
	assert.True(t, resp.Data.Valid)
	assert.Len(t, resp.Data.ContractHash, 64)
}
