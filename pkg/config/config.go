// Package config loads run configuration for the analysis commands.
//
// Precedence (highest to lowest): flags > environment variables > defaults.
// Environment variables use the GRIDFIT_ prefix, e.g. GRIDFIT_FOLDS=10.
package config

import (
	"runtime"
	"strings"

	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/hikaru-sato/gridfit/pkg/errors"
)

// Config holds the options shared by the analysis commands.
type Config struct {
	Folds    int     `koanf:"folds"`
	Workers  int     `koanf:"workers"`
	Seed     uint64  `koanf:"seed"`
	TestFrac float64 `koanf:"test_frac"`
	OutDir   string  `koanf:"out"`
	LogLevel string  `koanf:"log_level"`
	NoPlots  bool    `koanf:"no_plots"`
}

// Default configuration values.
const (
	DefaultFolds    = 5
	DefaultSeed     = 42
	DefaultTestFrac = 0.25
	DefaultOutDir   = "."
	DefaultLogLevel = "info"
)

// Load builds a Config from defaults, GRIDFIT_ environment variables, and
// the command's flags, in increasing order of precedence. Flags take effect
// only when explicitly set.
func Load(flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(map[string]interface{}{
		"folds":     DefaultFolds,
		"workers":   runtime.NumCPU(),
		"seed":      DefaultSeed,
		"test_frac": DefaultTestFrac,
		"out":       DefaultOutDir,
		"log_level": DefaultLogLevel,
		"no_plots":  false,
	}, "."), nil); err != nil {
		return nil, errors.Wrap(err, "loading config defaults")
	}

	// GRIDFIT_TEST_FRAC -> test_frac
	if err := k.Load(env.Provider("GRIDFIT_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "GRIDFIT_"))
	}), nil); err != nil {
		return nil, errors.Wrap(err, "loading config environment")
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed {
				return "", nil
			}
			return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, errors.Wrap(err, "loading config flags")
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, "decoding config")
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Folds < 2 {
		return errors.NewValueError("config.Load", "folds must be at least 2")
	}
	if c.Workers < 1 {
		return errors.NewValueError("config.Load", "workers must be at least 1")
	}
	if c.TestFrac <= 0 || c.TestFrac >= 1 {
		return errors.NewValueError("config.Load", "test_frac must be in (0, 1)")
	}
	return nil
}

// RegisterFlags adds the shared configuration flags to a command's flag set.
func RegisterFlags(flags *pflag.FlagSet) {
	flags.Int("folds", DefaultFolds, "number of cross-validation folds")
	flags.Int("workers", runtime.NumCPU(), "parallel workers for the grid search")
	flags.Uint64("seed", DefaultSeed, "random seed for splits and model fitting")
	flags.Float64("test-frac", DefaultTestFrac, "fraction of rows held out for the test split")
	flags.String("out", DefaultOutDir, "directory plots are written to")
	flags.String("log-level", DefaultLogLevel, "log level (debug, info, warn, error)")
	flags.Bool("no-plots", false, "skip writing plot files")
}
