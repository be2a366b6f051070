package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"bibbrev/internal/abbrev"
	"bibbrev/internal/bibtex"
	"bibbrev/internal/cli/config"
	"bibbrev/internal/cli/report"
	"bibbrev/internal/diagnostic"
	"bibbrev/internal/resolve"
)

// RunAbbreviate rewrites the journal fields of the BibTeX file named by
// args[0] and writes the result to the configured output.
func RunAbbreviate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := config.FromContext(ctx)
	logger := config.GetLogger(ctx)

	strategy, err := cfg.Resolver()
	if err != nil {
		return err
	}

	tablePath, err := cfg.TablePath()
	if err != nil {
		return err
	}

	tbl, err := abbrev.LoadFile(tablePath, cfg.Direction(), cfg.TableOptions()...)
	if err != nil {
		return err
	}

	logger.Debug("abbreviation table loaded",
		"path", tablePath, "direction", tbl.Direction().String(), "entries", tbl.Len())

	var diags diagnostic.Diagnostics

	sink := diagnostic.Tee(diagnostic.NewLogSink(logger), &diags)

	for _, d := range tbl.Duplicates() {
		sink.Emit(diagnostic.DuplicateKey(d.Key, d.Line, d.PreviousLine))
	}

	doc, err := bibtex.ReadFile(args[0])
	if err != nil {
		return err
	}

	coll := doc.Collection()

	rep, err := resolve.Journals(ctx, coll, tbl, strategy, sink)
	if err != nil {
		return fmt.Errorf("resolve journals: %w", err)
	}

	changed := doc.Apply(coll)
	logger.Debug("journals resolved",
		"records", rep.Total, "matched", rep.Matched, "changed", changed, "warnings", len(diags.Warnings))

	if err := writeDocument(cmd.OutOrStdout(), cfg.Output, doc); err != nil {
		return err
	}

	return report.NewRenderer(cmd.ErrOrStderr(), report.Format(cfg.Report)).WithDiagnostics(&diags).Render(rep)
}

// writeDocument writes doc to path, or to stdout when path is empty.
func writeDocument(stdout io.Writer, path string, doc *bibtex.Document) error {
	if path == "" {
		_, err := doc.WriteTo(stdout)
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}

	if _, err := doc.WriteTo(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}

	return f.Close()
}
