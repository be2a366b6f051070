package resolve

import (
	"errors"
	"fmt"
	"strings"

	"bibbrev/internal/match"
	"bibbrev/utils"
)

// ErrConfig is matched by every ConfigError.
var ErrConfig = errors.New("invalid resolver configuration")

// ConfigError reports an unusable strategy setting.
type ConfigError struct {
	Field  string
	Value  any
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid %s %v: %s", e.Field, e.Value, e.Reason)
}

// Unwrap lets errors.Is(err, ErrConfig) match.
func (e *ConfigError) Unwrap() error {
	return ErrConfig
}

// Config holds the matching strategy for one run.
type Config struct {
	// Algorithm selects exact lookup or a similarity scorer.
	Algorithm match.Algorithm
	// MinScore is the lowest accepted similarity (approximate algorithms only).
	MinScore int
	// Selection picks one candidate from the ranked list.
	Selection match.Selection
	// Normalizer cleans names before matching; nil means match.DefaultNormalizer.
	Normalizer *match.Normalizer
	// Workers bounds concurrent scoring; 0 and 1 both mean sequential.
	Workers int
}

// DefaultConfig returns exact matching with legacy selection and the default
// normalizer.
func DefaultConfig() Config {
	return Config{
		Algorithm:  match.AlgorithmExact,
		MinScore:   match.DefaultMinScore,
		Selection:  match.SelectLegacy,
		Normalizer: match.DefaultNormalizer(),
		Workers:    1,
	}
}

// Validate checks every field and returns a *ConfigError for the first bad one.
func (c Config) Validate() error {
	if !c.Algorithm.Valid() {
		return &ConfigError{
			Field:  "algorithm",
			Value:  fmt.Sprintf("%q", c.Algorithm),
			Reason: "want one of " + strings.Join(match.AlgorithmNames(), ", "),
		}
	}

	if !utils.IsInRange(0, c.MinScore, match.MaxScore) {
		return &ConfigError{
			Field:  "min score",
			Value:  c.MinScore,
			Reason: fmt.Sprintf("must be between 0 and %d", match.MaxScore),
		}
	}

	if !c.Selection.Valid() {
		return &ConfigError{
			Field:  "selection",
			Value:  fmt.Sprintf("%q", c.Selection),
			Reason: "want one of " + strings.Join(match.Selections(), ", "),
		}
	}

	if c.Workers < 0 {
		return &ConfigError{
			Field:  "workers",
			Value:  c.Workers,
			Reason: "must not be negative",
		}
	}

	return nil
}
