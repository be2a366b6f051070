// Package config loads bibbrev settings from defaults, a YAML file, the
// environment and command-line flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"bibbrev/internal/abbrev"
	"bibbrev/internal/match"
	"bibbrev/internal/resolve"
)

// Default configuration values.
const (
	DefaultAlgorithm = string(match.AlgorithmExact)
	DefaultSelection = string(match.SelectLegacy)
	DefaultReport    = "none"
	DefaultWorkers   = 1

	// DefaultTableDir and DefaultTableFile locate the bundled table
	// relative to the executable.
	DefaultTableDir  = "journal_files"
	DefaultTableFile = "journal_abbreviations_general.txt"
)

// Config holds every CLI setting.
type Config struct {
	Abbreviations     string `koanf:"abbreviations"`
	Reverse           bool   `koanf:"reverse"`
	Algorithm         string `koanf:"algorithm"`
	MinScore          int    `koanf:"min_score"`
	Selection         string `koanf:"selection"`
	LenientDelimiters bool   `koanf:"lenient_delimiters"`
	StripChars        string `koanf:"strip_chars"`
	UnicodeNFKC       bool   `koanf:"unicode_nfkc"`
	Workers           int    `koanf:"workers"`
	Output            string `koanf:"output"`
	Report            string `koanf:"report"`
	Verbose           bool   `koanf:"verbose"`

	// File is the config file that was loaded, if any.
	File string `koanf:"-"`
}

// Resolver converts the matching settings into a validated resolve.Config.
func (c *Config) Resolver() (resolve.Config, error) {
	cfg := resolve.Config{
		Algorithm: match.Algorithm(strings.ToLower(c.Algorithm)),
		MinScore:  c.MinScore,
		Selection: match.Selection(strings.ToLower(c.Selection)),
		Normalizer: match.BuildNormalizer(match.NormalizerOptions{
			ExtraStripChars: c.StripChars,
			UnicodeNFKC:     c.UnicodeNFKC,
		}),
		Workers: c.Workers,
	}

	if err := cfg.Validate(); err != nil {
		return resolve.Config{}, err
	}

	return cfg, nil
}

// Direction returns the table direction selected by Reverse.
func (c *Config) Direction() abbrev.Direction {
	return abbrev.DirectionFor(c.Reverse)
}

// TableOptions returns the loader options implied by the config.
func (c *Config) TableOptions() []abbrev.Option {
	if c.LenientDelimiters {
		return []abbrev.Option{abbrev.WithLenientDelimiters()}
	}

	return nil
}

// TablePath returns the configured table, or the bundled table next to the
// running executable.
func (c *Config) TablePath() (string, error) {
	if c.Abbreviations != "" {
		return c.Abbreviations, nil
	}

	return DefaultTablePath()
}

// DefaultTablePath locates the bundled abbreviation table.
func DefaultTablePath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locate executable: %w", err)
	}

	return filepath.Join(filepath.Dir(exe), DefaultTableDir, DefaultTableFile), nil
}

// Validate checks the settings that do not belong to the resolver.
func (c *Config) Validate() error {
	if !ValidReport(c.Report) {
		return fmt.Errorf("invalid report format %q (want one of %s)",
			c.Report, strings.Join(ReportFormats(), ", "))
	}

	_, err := c.Resolver()

	return err
}

// ReportFormats lists accepted values of the report setting.
func ReportFormats() []string {
	return []string{"none", "text", "markdown", "json"}
}

// ValidReport reports whether s names a report format.
func ValidReport(s string) bool {
	return slices.Contains(ReportFormats(), s)
}
