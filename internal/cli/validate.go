package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/commodex/internal/config"
	"github.com/roach88/commodex/internal/ledger"
	"github.com/roach88/commodex/internal/validate"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
	SpecPath     string
	AllOutputs   bool
	UnknownRules string
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a dataset against its spec contract",
		Long: `Check the CSV declared by the spec's first output against the
declared column list and every quality rule. All violations are reported.

The spec is taken from --spec, else $SPEC_PATH, else spec_path in the
config file, else specs/example.yaml.

Exit codes:
  0 - Contract satisfied
  1 - Contract violated
  2 - Command error (spec missing or malformed, bad flags)

Examples:
  commodex validate
  commodex validate --spec specs/example.yaml --all-outputs
  SPEC_PATH=specs/strict.yaml commodex validate --unknown-rules fail`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.SpecPath, "spec", "", "path to the spec document")
	cmd.Flags().BoolVar(&opts.AllOutputs, "all-outputs", false, "validate every declared output, not only the first")
	cmd.Flags().StringVar(&opts.UnknownRules, "unknown-rules", "", "handling of unknown rule kinds (ignore|warn|fail)")

	return cmd
}

// resolveSpecPath picks the spec path: flag, then SPEC_PATH, then config,
// then the default.
func (o *ValidateOptions) resolveSpecPath() string {
	if o.SpecPath != "" {
		return o.SpecPath
	}
	if v := os.Getenv("SPEC_PATH"); v != "" {
		return v
	}
	if o.Config != nil && o.Config.SpecPath != "" {
		return o.Config.SpecPath
	}
	return config.DefaultSpecPath
}

func runValidate(cmd *cobra.Command, opts *ValidateOptions) error {
	if err := opts.setup(cmd); err != nil {
		return err
	}
	formatter := opts.formatter(cmd)

	policyName := opts.UnknownRules
	if policyName == "" {
		policyName = opts.Config.UnknownRules
	}
	policy, err := validate.ParsePolicy(policyName)
	if err != nil {
		return commandError(formatter, ErrCodeInvalidFlag, err.Error())
	}

	specPath := opts.resolveSpecPath()
	s, err := loadSpec(formatter, specPath)
	if err != nil {
		return err
	}
	formatter.VerboseLog("Validating %s against %s", specPath, describeOutputs(len(s.Outputs)))

	v := &validate.Validator{
		UnknownRules: policy,
		AllOutputs:   opts.AllOutputs || opts.Config.AllOutputs,
		Logger:       opts.Logger,
	}
	report := v.Validate(s)

	if err := opts.recordRun(cmd.Context(), formatter, validationRun(specPath, report)); err != nil {
		return err
	}

	violations := report.AllViolations()
	if len(violations) > 0 {
		opts.Logger.Debug("contract violated", "spec", specPath, "violations", len(violations))
		return outputValidateFailure(formatter, report)
	}
	return outputValidateSuccess(formatter, report)
}

func describeOutputs(n int) string {
	if n == 1 {
		return "1 declared output"
	}
	return fmt.Sprintf("%d declared outputs", n)
}

func validationRun(specPath string, report *validate.Report) ledger.Run {
	run := ledger.Run{
		Kind:         ledger.KindValidate,
		SpecPath:     specPath,
		ContractHash: report.ContractHash,
		Passed:       report.Pass(),
	}
	if len(report.Outputs) > 0 {
		run.DatasetPath = report.Outputs[0].Path
		run.Rows = report.Outputs[0].Rows
	}
	for _, v := range report.AllViolations() {
		run.Violations = append(run.Violations, fmt.Sprintf("%s: %s", v.Code, v.Message))
	}
	return run
}

// outputValidateSuccess outputs a satisfied contract.
func outputValidateSuccess(formatter *OutputFormatter, report *validate.Report) error {
	if formatter.Format == "json" {
		return formatter.Success(report)
	}

	for _, out := range report.Outputs {
		fmt.Fprintf(formatter.Writer, "✓ Contract satisfied: %s (%d rows)\n", out.Path, out.Rows)
	}
	printWarnings(formatter, report)
	return nil
}

// outputValidateFailure outputs every violation in the report.
func outputValidateFailure(formatter *OutputFormatter, report *validate.Report) error {
	violations := report.AllViolations()
	exitErr := NewExitError(ExitFailure, fmt.Sprintf("contract violated with %d violation(s)", len(violations)))

	if formatter.Format == "json" {
		if err := formatter.Failure(report, violations[0].Code, violations[0].Message); err != nil {
			return err
		}
		return exitErr
	}

	for _, v := range report.Violations {
		fmt.Fprintf(formatter.Writer, "✗ Contract violated\n  %s: %s\n", v.Code, v.Message)
	}
	for _, out := range report.Outputs {
		if out.Pass() {
			fmt.Fprintf(formatter.Writer, "✓ Contract satisfied: %s (%d rows)\n", out.Path, out.Rows)
			continue
		}
		fmt.Fprintf(formatter.Writer, "✗ Contract violated: %s\n", out.Path)
		for _, v := range out.Violations {
			fmt.Fprintf(formatter.Writer, "  %s: %s\n", v.Code, v.Message)
		}
	}
	printWarnings(formatter, report)
	return exitErr
}

func printWarnings(formatter *OutputFormatter, report *validate.Report) {
	for _, w := range report.Warnings() {
		fmt.Fprintf(formatter.Writer, "! %s\n", w)
	}
}
