package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/commodex/internal/spec"
)

// LintResult holds lint findings.
type LintResult struct {
	Valid        bool             `json:"valid"`
	ContractHash string           `json:"contract_hash,omitempty"`
	Findings     []spec.LintError `json:"findings,omitempty"`
}

// NewLintCommand creates the lint command.
func NewLintCommand(rootOpts *RootOptions) *cobra.Command {
	var specPath string

	cmd := &cobra.Command{
		Use:   "lint",
		Short: "Check a spec for contract problems",
		Long: `Check a spec document for problems that would make its contract
unusable: missing outputs or columns, duplicate columns, rules without
their parameters. Unknown rule kinds are reported as warnings.

Exit codes:
  0 - No errors (warnings may be printed)
  1 - One or more errors
  2 - Command error (spec missing or malformed)`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, rootOpts, specPath)
		},
	}

	cmd.Flags().StringVar(&specPath, "spec", "", "path to the spec document (required)")
	_ = cmd.MarkFlagRequired("spec")

	return cmd
}

func runLint(cmd *cobra.Command, opts *RootOptions, specPath string) error {
	if err := opts.setup(cmd); err != nil {
		return err
	}
	formatter := opts.formatter(cmd)

	s, err := loadSpec(formatter, specPath)
	if err != nil {
		return err
	}

	findings := spec.Lint(s)
	result := LintResult{Valid: !spec.HasErrors(findings), Findings: findings}
	if hash, err := spec.ContractHash(s); err == nil {
		result.ContractHash = hash
	}
	formatter.VerboseLog("Contract hash: %s", result.ContractHash)

	if !result.Valid {
		return outputLintErrors(formatter, result)
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}
	fmt.Fprintln(formatter.Writer, "✓ Spec valid")
	printFindings(formatter, findings)
	return nil
}

// outputLintErrors outputs lint findings that include errors.
func outputLintErrors(formatter *OutputFormatter, result LintResult) error {
	var errorCount int
	var first spec.LintError
	for _, f := range result.Findings {
		if f.Severity != spec.SeverityError {
			continue
		}
		if errorCount == 0 {
			first = f
		}
		errorCount++
	}
	exitErr := NewExitError(ExitFailure, fmt.Sprintf("lint failed with %d error(s)", errorCount))

	if formatter.Format == "json" {
		if err := formatter.Failure(result, first.Code, first.Message); err != nil {
			return err
		}
		return exitErr
	}

	fmt.Fprintln(formatter.Writer, "✗ Lint failed")
	fmt.Fprintln(formatter.Writer)
	printFindings(formatter, result.Findings)
	return exitErr
}

func printFindings(formatter *OutputFormatter, findings []spec.LintError) {
	for _, f := range findings {
		marker := " "
		if f.Severity == spec.SeverityWarning {
			marker = "!"
		}
		fmt.Fprintf(formatter.Writer, "%s %s %s: %s\n", marker, f.Code, f.Field, f.Message)
	}
}
