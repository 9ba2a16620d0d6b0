package config

import (
	"runtime"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, DefaultFolds, cfg.Folds)
	assert.Equal(t, runtime.NumCPU(), cfg.Workers)
	assert.Equal(t, uint64(DefaultSeed), cfg.Seed)
	assert.Equal(t, DefaultTestFrac, cfg.TestFrac)
	assert.Equal(t, DefaultOutDir, cfg.OutDir)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.False(t, cfg.NoPlots)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("GRIDFIT_FOLDS", "10")
	t.Setenv("GRIDFIT_LOG_LEVEL", "debug")

	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.Folds)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadFlagsBeatEnv(t *testing.T) {
	t.Setenv("GRIDFIT_FOLDS", "10")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(flags)
	require.NoError(t, flags.Parse([]string{"--folds", "3", "--out", "/tmp/run"}))

	cfg, err := Load(flags)
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Folds)
	assert.Equal(t, "/tmp/run", cfg.OutDir)
}

func TestLoadUnchangedFlagsIgnored(t *testing.T) {
	t.Setenv("GRIDFIT_WORKERS", "2")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(flags)
	require.NoError(t, flags.Parse(nil))

	cfg, err := Load(flags)
	require.NoError(t, err)

	// Default flag values must not shadow the environment.
	assert.Equal(t, 2, cfg.Workers)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"folds too small", map[string]string{"GRIDFIT_FOLDS": "1"}},
		{"zero workers", map[string]string{"GRIDFIT_WORKERS": "0"}},
		{"test frac too large", map[string]string{"GRIDFIT_TEST_FRAC": "1.5"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(nil)
			assert.Error(t, err)
		})
	}
}
