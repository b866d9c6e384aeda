package config

import (
	"flag"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromDefaults(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{})
	require.NoError(t, err)

	assert.Equal(t, "foundry", cfg.Level)
	assert.Equal(t, "prefabs", cfg.PrefabDir)
	assert.Equal(t, 8, cfg.MaxChain)
	assert.Equal(t, 32, cfg.HistorySize)
	assert.False(t, cfg.Watch)

	lvl, err := cfg.SlogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, lvl)
}

func TestLoadFromEnvironment(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{
		"MOLTEN_LEVEL":         "crucible",
		"MOLTEN_WATCH":         "true",
		"MOLTEN_LOG_LEVEL":     "debug",
		"MOLTEN_FSM_MAX_CHAIN": "3",
		"MOLTEN_METRICS_ADDR":  ":9090",
	})
	require.NoError(t, err)

	assert.Equal(t, "crucible", cfg.Level)
	assert.True(t, cfg.Watch)
	assert.Equal(t, 3, cfg.MaxChain)
	assert.Equal(t, ":9090", cfg.MetricsAddr)
	lvl, _ := cfg.SlogLevel()
	assert.Equal(t, slog.LevelDebug, lvl)
}

func TestLoadFromRejectsBadValues(t *testing.T) {
	cases := map[string]map[string]string{
		"zero_chain":    {"MOLTEN_FSM_MAX_CHAIN": "0"},
		"not_a_number":  {"MOLTEN_FSM_HISTORY": "many"},
		"unknown_level": {"MOLTEN_LOG_LEVEL": "loud"},
	}
	for name, environ := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadFrom(environ)
			require.Error(t, err)
		})
	}
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{"MOLTEN_LEVEL": "crucible", "MOLTEN_WATCH": "true"})
	require.NoError(t, err)

	fs := flag.NewFlagSet("molten", flag.ContinueOnError)
	cfg.BindFlags(fs)
	require.NoError(t, fs.Parse([]string{"-level", "intake", "-max-chain", "5"}))

	assert.Equal(t, "intake", cfg.Level)
	assert.True(t, cfg.Watch, "unset flags keep the environment value")
	assert.Equal(t, 5, cfg.MaxChain)
}
