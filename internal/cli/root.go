// Package cli provides the command-line interface for bibbrev.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"bibbrev/internal/cli/commands"
	"bibbrev/internal/cli/config"
	"bibbrev/internal/match"
)

// Version is set at build time.
var Version = "0.1.0"

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:   "bibbrev [flags] TARGET",
		Short: "Abbreviate journal names in a BibTeX database",
		Long: `bibbrev rewrites the journal field of every entry in a BibTeX file using a
table of "Full Journal Name = Abbreviation" lines. With --reverse it expands
abbreviations to full names instead.

Exact matching is the default. Approximate matching scores each name against
every table key and accepts a candidate scoring at least --min-match.`,
		Version: Version,
		Args:    cobra.ExactArgs(1),
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip config loading for help and completion commands
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			cfg, err := config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			logger := NewLogger(cmd.ErrOrStderr(), cfg.Verbose)
			if cfg.File != "" {
				logger.Debug("using config file", "path", cfg.File)
			}

			ctx := config.NewContext(cmd.Context(), cfg)
			ctx = config.WithLogger(ctx, logger)
			cmd.SetContext(ctx)

			return nil
		},
		RunE:          commands.RunAbbreviate,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default: ./bibbrev.yaml)")
	pf.StringP("output", "o", "", "Output file (default: stdout)")
	pf.BoolP("reverse", "r", false, "Expand abbreviations to full names")
	pf.StringP("abbreviations", "a", "", "Abbreviation table (default: bundled "+config.DefaultTableFile+")")
	pf.BoolP("verbose", "v", false, "Log every replacement")
	pf.StringP("match-algorithm", "m", config.DefaultAlgorithm, "Matching algorithm")
	pf.IntP("min-match", "s", match.DefaultMinScore, "Minimum score for approximate matches (0-100)")
	pf.String("selection", config.DefaultSelection, "Candidate selection for approximate matches (legacy|best)")
	pf.Bool("lenient-delimiters", false, "Accept table lines with more than one '='")
	pf.String("strip-chars", "", "Extra characters removed before matching")
	pf.Bool("unicode-nfkc", false, "Apply NFKC normalization before matching")
	pf.Int("workers", config.DefaultWorkers, "Parallel scoring workers")
	pf.String("report", config.DefaultReport, "Summary written to stderr (none|text|markdown|json)")

	_ = rootCmd.RegisterFlagCompletionFunc("match-algorithm", fixedCompletion(match.AlgorithmNames()...))
	_ = rootCmd.RegisterFlagCompletionFunc("selection", fixedCompletion(match.Selections()...))
	_ = rootCmd.RegisterFlagCompletionFunc("report", fixedCompletion(config.ReportFormats()...))

	rootCmd.AddCommand(commands.NewVersionCommand(Version))
	rootCmd.AddCommand(commands.NewCheckCommand())
	rootCmd.AddCommand(commands.NewCompletionCommand())

	return rootCmd
}

func fixedCompletion(values ...string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return values, cobra.ShellCompDirectiveNoFileComp
	}
}

// NewLogger builds the CLI logger: warnings and errors by default, every
// replacement with verbose.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelInfo
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}
