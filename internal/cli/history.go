package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/commodex/internal/ledger"
)

// HistoryOptions holds flags for the history command.
type HistoryOptions struct {
	*RootOptions
	Limit int
	Kind  string
}

// HistoryResult holds the listed runs.
type HistoryResult struct {
	Runs []ledger.Run `json:"runs"`
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded generate and validate runs",
		Long: `List runs recorded in the ledger, oldest first.

A ledger must be configured with --ledger, $COMMODEX_LEDGER or [ledger]
path in the config file.

Examples:
  commodex history --ledger runs.db
  commodex history --ledger runs.db --kind validate --limit 10`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.Limit, "limit", 20, "show the most recent N runs (0 for all)")
	cmd.Flags().StringVar(&opts.Kind, "kind", "", "only runs of this kind (generate|validate)")

	return cmd
}

func runHistory(cmd *cobra.Command, opts *HistoryOptions) error {
	if err := opts.setup(cmd); err != nil {
		return err
	}
	formatter := opts.formatter(cmd)

	kind := ledger.Kind(opts.Kind)
	if kind != "" && kind != ledger.KindGenerate && kind != ledger.KindValidate {
		return commandError(formatter, ErrCodeInvalidFlag, fmt.Sprintf("invalid kind %q: must be generate or validate", opts.Kind))
	}

	l, err := opts.openLedger()
	if err != nil {
		return commandError(formatter, ErrCodeLedger, err.Error())
	}
	if l == nil {
		return commandError(formatter, ErrCodeLedger, "no ledger configured")
	}
	defer func() {
		if closeErr := l.Close(); closeErr != nil {
			opts.Logger.Error("error closing ledger", "error", closeErr)
		}
	}()

	runs, err := l.List(cmd.Context(), ledger.ListOptions{Kind: kind, Limit: opts.Limit})
	if err != nil {
		return commandError(formatter, ErrCodeLedger, err.Error())
	}

	if formatter.Format == "json" {
		return formatter.Success(HistoryResult{Runs: runs})
	}

	if len(runs) == 0 {
		fmt.Fprintln(formatter.Writer, "No runs recorded")
		return nil
	}

	tw := tabwriter.NewWriter(formatter.Writer, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SEQ\tKIND\tRECORDED\tRESULT\tROWS\tDATASET")
	for _, run := range runs {
		result := "pass"
		if !run.Passed {
			result = fmt.Sprintf("fail (%d)", len(run.Violations))
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%s\n",
			run.Seq, run.Kind, run.RecordedAt.Format(time.RFC3339), result, run.Rows, run.DatasetPath)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if opts.Verbose {
		for _, run := range runs {
			if len(run.Violations) == 0 {
				continue
			}
			fmt.Fprintf(formatter.Writer, "\n#%d %s\n  %s\n", run.Seq, run.ID, strings.Join(run.Violations, "\n  "))
		}
	}
	return nil
}
