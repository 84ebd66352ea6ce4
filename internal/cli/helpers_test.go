package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

const canonicalColumnsYAML = `        - name: date
        - name: commodity
        - name: metric
        - name: value
        - name: unit
        - name: source
        - name: retrieved_at
`

// writeSpec writes a spec declaring one output at outPath with the
// canonical columns plus rulesYAML under quality_rules.
func writeSpec(t *testing.T, dir, outPath, rulesYAML string) string {
	t.Helper()

	var b strings.Builder
	b.WriteString("commodities: [Lithium, Cobalt]\n")
	b.WriteString("metrics: [price_usd_t]\n")
	b.WriteString("outputs:\n")
	fmt.Fprintf(&b, "  - path: %q\n", outPath)
	b.WriteString("    schema:\n      columns:\n")
	b.WriteString(canonicalColumnsYAML)
	if rulesYAML != "" {
		b.WriteString("quality_rules:\n")
		b.WriteString(rulesYAML)
	}

	path := filepath.Join(dir, "spec.yaml")
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))
	return path
}

// execute runs cmd with args and returns stdout.
func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()

	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// newRootOpts returns options that ignore any commodex.toml in the working
// directory.
func newRootOpts(format string) *RootOptions {
	return &RootOptions{Format: format, ConfigPath: "testdata/none.toml"}
}
