package app

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/specialistvlad/cellgridgo/internal/evaluator"
)

// Defaults applied by DefaultConfig and the CLI.
const (
	DefaultLogFormat = "text"
	DefaultLogLevel  = "info"
	DefaultWorkers   = 1
	DefaultDelimiter = ','
)

// ErrInvalidConfig is matched by every validation failure from NewConfig.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	InputPath  string // delimited text table
	OutputPath string // empty writes to stdout
	ConfigPath string // optional HCL settings file

	LogFormat string
	LogLevel  string
	Evaluator string
	Workers   int

	Delimiter rune
	Comment   rune // zero disables comment lines
}

// DefaultConfig returns a Config with every optional field at its default.
func DefaultConfig() Config {
	return Config{
		LogFormat: DefaultLogFormat,
		LogLevel:  DefaultLogLevel,
		Evaluator: evaluator.KindHCL,
		Workers:   DefaultWorkers,
		Delimiter: DefaultDelimiter,
	}
}

// NewConfig validates cfg and returns a normalised copy.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.InputPath == "" {
		return nil, fmt.Errorf("%w: input path is required", ErrInvalidConfig)
	}

	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("%w: log format %q: must be 'text' or 'json'", ErrInvalidConfig, cfg.LogFormat)
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	if _, ok := logLevels[cfg.LogLevel]; !ok {
		return nil, fmt.Errorf("%w: log level %q: must be 'debug', 'info', 'warn', or 'error'", ErrInvalidConfig, cfg.LogLevel)
	}

	cfg.Evaluator = strings.ToLower(cfg.Evaluator)
	if cfg.Evaluator == "" {
		cfg.Evaluator = evaluator.KindHCL
	}
	if !slices.Contains(evaluator.Kinds(), cfg.Evaluator) {
		return nil, fmt.Errorf("%w: evaluator %q: must be one of %s", ErrInvalidConfig, cfg.Evaluator, strings.Join(evaluator.Kinds(), ", "))
	}

	if cfg.Workers < 1 {
		return nil, fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalidConfig, cfg.Workers)
	}

	if cfg.Delimiter == 0 {
		cfg.Delimiter = DefaultDelimiter
	}
	if !validSeparator(cfg.Delimiter) {
		return nil, fmt.Errorf("%w: delimiter %q is not usable", ErrInvalidConfig, cfg.Delimiter)
	}
	if cfg.Comment != 0 && (!validSeparator(cfg.Comment) || cfg.Comment == cfg.Delimiter) {
		return nil, fmt.Errorf("%w: comment character %q is not usable", ErrInvalidConfig, cfg.Comment)
	}

	return &cfg, nil
}

// ParseRune converts a single-character setting into a rune. An empty string
// yields zero.
func ParseRune(name, s string) (rune, error) {
	if s == "" {
		return 0, nil
	}
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("%w: %s must be a single character, got %q", ErrInvalidConfig, name, s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r, nil
}

// validSeparator mirrors the restrictions encoding/csv places on Comma and
// Comment.
func validSeparator(r rune) bool {
	return r != '"' && r != '\r' && r != '\n' && r != utf8.RuneError && utf8.ValidRune(r)
}
