// Package commands holds the bibbrev subcommands.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"bibbrev/internal/abbrev"
	"bibbrev/internal/cli/config"
)

// NewCheckCommand creates the check command.
func NewCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check TABLE",
		Short: "Validate an abbreviation table",
		Long: `Load an abbreviation table and report its size and every key that a later
line overrides. Honors --reverse and --lenient-delimiters.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.FromContext(cmd.Context())
			logger := config.GetLogger(cmd.Context())

			tbl, err := abbrev.LoadFile(args[0], cfg.Direction(), cfg.TableOptions()...)
			if err != nil {
				return err
			}

			logger.Info("table loaded", "path", args[0], "entries", tbl.Len())

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "%s: %d entries (%s)\n", args[0], tbl.Len(), tbl.Direction())

			for _, d := range tbl.Duplicates() {
				_, _ = fmt.Fprintf(out, "  line %d overrides line %d: %s\n", d.Line, d.PreviousLine, d.Key)
			}

			if n := len(tbl.Duplicates()); n > 0 {
				_, _ = fmt.Fprintf(out, "%d duplicate keys, last definition wins\n", n)
			}

			return nil
		},
	}
}
