package config

import (
	"context"
	"log/slog"
)

// current stores the config loaded by the root command so subcommands can
// reach it without re-parsing.
var current *Config

// SetCurrent records the loaded configuration.
func SetCurrent(cfg *Config) {
	current = cfg
}

// Current returns the loaded configuration, or a defaults-only config when
// the root command has not run (e.g. in tests).
func Current() *Config {
	if current != nil {
		return current
	}
	cfg := &Config{}
	cfg.ApplyDefaults()
	return cfg
}

// loggerKey stores the logger in a command context.
type loggerKey struct{}

// WithLogger returns a context carrying the logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// GetLogger returns the context's logger, or slog.Default() when unset.
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}
