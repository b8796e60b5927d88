package app

import (
	"io"
	"log/slog"
)

// logLevels maps the accepted --log-level values to slog levels.
var logLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// newLogger creates the run's slog.Logger writing to logW. It does not set
// the global logger, allowing for isolated logger instances in tests.
func newLogger(cfg *Config, logW io.Writer) *slog.Logger {
	level, ok := logLevels[cfg.LogLevel]
	if !ok {
		level = slog.LevelInfo
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler

	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(logW, handlerOpts)
	} else {
		handler = slog.NewTextHandler(logW, handlerOpts)
	}

	return slog.New(handler).With("input", cfg.InputPath)
}
