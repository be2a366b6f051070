package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"bibbrev/internal/match"
)

// EnvPrefix prefixes every environment variable read as configuration.
const EnvPrefix = "BIBBREV_"

// configFiles are tried in the working directory when no file is given.
var configFiles = []string{"bibbrev.yaml", "bibbrev.yml"}

// flagKeys maps flag names that differ from their config key.
var flagKeys = map[string]string{
	"match-algorithm": "algorithm",
	"min-match":       "min_score",
}

type (
	configKey struct{}
	loggerKey struct{}
)

func defaults() map[string]any {
	return map[string]any{
		"abbreviations":      "",
		"reverse":            false,
		"algorithm":          DefaultAlgorithm,
		"min_score":          match.DefaultMinScore,
		"selection":          DefaultSelection,
		"lenient_delimiters": false,
		"strip_chars":        "",
		"unicode_nfkc":       false,
		"workers":            DefaultWorkers,
		"output":             "",
		"report":             DefaultReport,
		"verbose":            false,
	}
}

// findConfigFile returns the explicit path, or the first default file present
// in the working directory.
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}

	for _, name := range configFiles {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}

	return ""
}

// Load reads configuration from defaults, the config file, BIBBREV_
// environment variables and explicitly set flags, in increasing precedence.
// The result is validated before it is returned.
func Load(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// 2. Config file
	used := findConfigFile(cfgFile)
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", used, err)
		}
	}

	// 3. Environment: BIBBREV_MIN_SCORE -> min_score
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// 4. Flags, only those set on the command line
	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			if !f.Changed || f.Name == "config" {
				return "", nil
			}

			key, ok := flagKeys[f.Name]
			if !ok {
				key = strings.ReplaceAll(f.Name, "-", "_")
			}

			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("failed to load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	cfg.File = used

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// NewContext returns ctx carrying cfg.
func NewContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// FromContext retrieves the config stored by NewContext, or the defaults.
func FromContext(ctx context.Context) *Config {
	if c, ok := ctx.Value(configKey{}).(*Config); ok {
		return c
	}

	return &Config{
		Algorithm: DefaultAlgorithm,
		MinScore:  match.DefaultMinScore,
		Selection: DefaultSelection,
		Workers:   DefaultWorkers,
		Report:    DefaultReport,
	}
}

// WithLogger returns ctx carrying logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// GetLogger retrieves the logger from the command context.
func GetLogger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return l
	}
	// Return discard logger as safe fallback
	return slog.New(slog.DiscardHandler)
}
