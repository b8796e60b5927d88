package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/specialistvlad/cellgridgo/internal/ctxlog"
	"github.com/specialistvlad/cellgridgo/internal/evaluator"
	"github.com/specialistvlad/cellgridgo/internal/table"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config
	eval   evaluator.Evaluator
}

// NewApp is the constructor for the main application. Results are written to
// outW unless the config names an output file; logs go to logW.
func NewApp(outW, logW io.Writer, cfg *Config) (*App, error) {
	logger := newLogger(cfg, logW)
	logger.Debug("Logger configured successfully.", "level", cfg.LogLevel, "format", cfg.LogFormat)

	eval, err := evaluator.New(cfg.Evaluator)
	if err != nil {
		return nil, fmt.Errorf("failed to create evaluator: %w", err)
	}
	logger.Debug("Evaluator selected.", "backend", cfg.Evaluator)

	return &App{
		outW:   outW,
		logger: logger,
		config: cfg,
		eval:   eval,
	}, nil
}

// tableOptions translates the config into loader and printer options.
func (a *App) tableOptions() []table.Option {
	return []table.Option{
		table.WithDelimiter(a.config.Delimiter),
		table.WithComment(a.config.Comment),
	}
}

// withLogger attaches the app logger to ctx.
func (a *App) withLogger(ctx context.Context) context.Context {
	return ctxlog.WithLogger(ctx, a.logger)
}
