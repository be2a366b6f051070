// Package main provides the CLI entrypoint for bibbrev.
//
// bibbrev rewrites journal names in BibTeX databases:
//   - Loads a "Full Name = Abbreviation" table, forward or reversed
//   - Matches each multi-word journal field exactly or approximately
//   - Writes the database back with only journal fields changed
package main

import (
	"os"

	"bibbrev/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
