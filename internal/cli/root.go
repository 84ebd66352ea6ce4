package cli

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/commodex/internal/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string
	LedgerPath string // overrides [ledger] path when set

	// Populated by setup.
	Config *config.Config
	Logger *slog.Logger
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for the commodex CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "commodex",
		Short: "commodex - commodity dataset contracts",
		Long: `Generate synthetic commodity datasets from a specification and
validate produced CSV files against the contract it declares.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.setup(cmd)
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", config.DefaultPath, "config file (missing file is ignored)")
	cmd.PersistentFlags().StringVar(&opts.LedgerPath, "ledger", "", "SQLite run ledger (overrides config)")

	cmd.AddCommand(NewGenerateCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewLintCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))
	cmd.AddCommand(NewTestCommand(opts))

	return cmd
}

// setup validates global flags, loads configuration and installs the
// logger. Subcommands call it too so they can run without the root.
func (o *RootOptions) setup(cmd *cobra.Command) error {
	if o.Format == "" {
		o.Format = "text"
	}
	if !isValidFormat(o.Format) {
		return commandError(o.formatter(cmd), ErrCodeInvalidFlag, fmt.Sprintf("invalid format %q: must be one of %v", o.Format, ValidFormats))
	}
	if o.Config != nil {
		return nil
	}

	cfg, err := config.Load(o.ConfigPath)
	if err != nil {
		return o.configError(cmd, err)
	}
	if o.LedgerPath != "" {
		cfg.Ledger.Path = o.LedgerPath
	}
	o.Config = cfg

	level, err := parseLevel(cfg.Logging.Level)
	if err != nil {
		return o.configError(cmd, err)
	}
	if o.Verbose {
		level = slog.LevelDebug
	}
	o.Logger = newLogger(cmd.ErrOrStderr(), level)
	return nil
}

// configError reports a configuration failure, keeping err in the chain.
func (o *RootOptions) configError(cmd *cobra.Command, err error) error {
	_ = o.formatter(cmd).Error(ErrCodeConfig, err.Error(), nil)
	return WrapExitError(ExitCommandError, ErrCodeConfig, err)
}

// formatter builds the OutputFormatter for cmd.
func (o *RootOptions) formatter(cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    o.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   o.Verbose,
	}
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	return slices.Contains(ValidFormats, format)
}
