package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/commodex/internal/dataset"
	"github.com/roach88/commodex/internal/generate"
	"github.com/roach88/commodex/internal/ledger"
	"github.com/roach88/commodex/internal/spec"
)

// GenerateOptions holds flags for the generate command.
type GenerateOptions struct {
	*RootOptions
	SpecPath string
	OutPath  string
	Rows     int // zero means the configured row count
}

// NewGenerateCommand creates the generate command.
func NewGenerateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &GenerateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a synthetic dataset from a spec",
		Long: `Generate a synthetic commodity dataset and write it as CSV.

Commodities and metrics come from the spec (defaults apply when they are
absent). Columns follow the schema of the output declared for --out, or
the first output, or the canonical order when no schema is declared.

Exit codes:
  0 - Dataset written
  2 - Command error (unreadable spec, unknown column, write failure)

Examples:
  commodex generate --spec specs/example.yaml --out data/demo.csv
  commodex generate --spec specs/example.yaml --out data/demo.csv --rows 500`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.SpecPath, "spec", "", "path to the spec document (required)")
	cmd.Flags().StringVar(&opts.OutPath, "out", "", "path of the CSV to write (required)")
	cmd.Flags().IntVar(&opts.Rows, "rows", 0, "number of data rows (default from config)")
	_ = cmd.MarkFlagRequired("spec")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func runGenerate(cmd *cobra.Command, opts *GenerateOptions) error {
	if err := opts.setup(cmd); err != nil {
		return err
	}
	formatter := opts.formatter(cmd)

	rows := opts.Rows
	if !cmd.Flags().Changed("rows") {
		rows = opts.Config.Rows
	}
	if rows < 1 {
		return commandError(formatter, ErrCodeInvalidFlag, fmt.Sprintf("rows must be at least 1, got %d", rows))
	}

	s, err := loadSpec(formatter, opts.SpecPath)
	if err != nil {
		return err
	}
	formatter.VerboseLog("Loaded spec %s: %d commodities, %d metrics", opts.SpecPath, len(s.CommodityList()), len(s.MetricList()))

	gen := &generate.Generator{Rows: rows, Logger: opts.Logger}
	summary, err := gen.Generate(s, opts.OutPath)
	if err != nil {
		return generateError(formatter, err)
	}
	opts.Logger.Info("dataset generated", "path", summary.Path, "rows", summary.Rows)

	hash, err := spec.ContractHash(s)
	if err != nil {
		opts.Logger.Warn("contract hash unavailable", "spec", opts.SpecPath, "error", err)
	}
	if err := opts.recordRun(cmd.Context(), formatter, ledger.Run{
		Kind:         ledger.KindGenerate,
		SpecPath:     opts.SpecPath,
		ContractHash: hash,
		DatasetPath:  summary.Path,
		Rows:         summary.Rows,
		Passed:       true,
	}); err != nil {
		return err
	}

	if formatter.Format == "json" {
		return formatter.Success(summary)
	}
	fmt.Fprintf(formatter.Writer, "Wrote CSV: %s (%d rows)\n", summary.Path, summary.Rows)
	return nil
}

func generateError(f *OutputFormatter, err error) error {
	var unknown *generate.UnknownColumnError
	if errors.As(err, &unknown) {
		return commandError(f, ErrCodeUnknownColumn, err.Error())
	}
	var ioErr *dataset.IOError
	if errors.As(err, &ioErr) {
		return commandError(f, ErrCodeWriteFailed, err.Error())
	}
	return commandError(f, ErrCodeGeneric, err.Error())
}
