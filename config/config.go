// Package config reads process settings from the environment. Command line
// flags bound with BindFlags override the environment.
package config

import (
	"flag"
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

type Runtime struct {
	Level       string `env:"MOLTEN_LEVEL" envDefault:"foundry"`
	Debug       bool   `env:"MOLTEN_DEBUG"`
	LogLevel    string `env:"MOLTEN_LOG_LEVEL" envDefault:"info"`
	MetricsAddr string `env:"MOLTEN_METRICS_ADDR"`
	PrefabDir   string `env:"MOLTEN_PREFAB_DIR" envDefault:"prefabs"`
	Watch       bool   `env:"MOLTEN_WATCH"`
	MaxChain    int    `env:"MOLTEN_FSM_MAX_CHAIN" envDefault:"8"`
	HistorySize int    `env:"MOLTEN_FSM_HISTORY" envDefault:"32"`
}

// Load parses the process environment.
func Load() (Runtime, error) {
	var cfg Runtime
	if err := env.Parse(&cfg); err != nil {
		return Runtime{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, cfg.Validate()
}

// LoadFrom parses environ instead of the process environment.
func LoadFrom(environ map[string]string) (Runtime, error) {
	var cfg Runtime
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return Runtime{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, cfg.Validate()
}

// BindFlags registers flags whose defaults are the current values.
func (r *Runtime) BindFlags(fs *flag.FlagSet) {
	fs.StringVar(&r.Level, "level", r.Level, "level name in levels/ (basename, .json optional)")
	fs.BoolVar(&r.Debug, "debug", r.Debug, "open the debug panel at start")
	fs.StringVar(&r.LogLevel, "log-level", r.LogLevel, "debug, info, warn or error")
	fs.StringVar(&r.MetricsAddr, "metrics", r.MetricsAddr, "serve Prometheus metrics on this address (e.g. :9090)")
	fs.StringVar(&r.PrefabDir, "prefabs", r.PrefabDir, "directory checked for prefab overrides")
	fs.BoolVar(&r.Watch, "watch", r.Watch, "reload prefabs when they change on disk")
	fs.IntVar(&r.MaxChain, "max-chain", r.MaxChain, "transitions allowed within one machine call")
	fs.IntVar(&r.HistorySize, "history", r.HistorySize, "transitions kept per machine")
}

func (r Runtime) Validate() error {
	if r.MaxChain <= 0 {
		return fmt.Errorf("config: max chain must be positive, got %d", r.MaxChain)
	}
	if r.HistorySize < 0 {
		return fmt.Errorf("config: history size must not be negative, got %d", r.HistorySize)
	}
	if _, err := r.SlogLevel(); err != nil {
		return err
	}
	return nil
}

func (r Runtime) SlogLevel() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(r.LogLevel))); err != nil {
		return 0, fmt.Errorf("config: log level: %w", err)
	}
	return lvl, nil
}
