package cli

import (
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/cellgridgo/internal/app"
	"github.com/specialistvlad/cellgridgo/internal/evaluator"
	"github.com/spf13/cobra"
)

// Exit codes used by ExitError.
const (
	ExitRuntime = 1
	ExitUsage   = 2
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(err error) *ExitError {
	return &ExitError{Code: ExitUsage, Message: err.Error()}
}

// flags holds the raw flag values before they are merged into app.Config.
type flags struct {
	configPath string
	outputPath string
	logLevel   string
	logFormat  string
	evaluator  string
	workers    int
	delimiter  string
	comment    string
}

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")

	var (
		f      flags
		config *app.Config
	)
	defaults := app.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "cellgridgo [flags] INPUT",
		Short: "Evaluate a table of arithmetic cell formulas",
		Long: `CellGridGo - evaluates every cell of a delimited text table.

Each cell holds an arithmetic expression that may reference other cells by
column letter and 1-based row number (a1, b12). The solved table is printed
in the same shape; cells that cannot be evaluated print as #ERR.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, positional []string) error {
			if len(positional) == 0 {
				slog.Debug("No input path provided, printing usage and exiting.")
				return cmd.Usage()
			}
			cfg, err := f.resolve(positional[0], cmd)
			if err != nil {
				return err
			}
			config = cfg
			return nil
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	fs := cmd.Flags()
	fs.StringVarP(&f.configPath, "config", "c", "", "Path to an HCL settings file.")
	fs.StringVarP(&f.outputPath, "output", "o", "", "Write the solved table to this file instead of stdout.")
	fs.StringVar(&f.logLevel, "log-level", defaults.LogLevel, "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	fs.StringVar(&f.logFormat, "log-format", defaults.LogFormat, "Log output format. Options: 'text' or 'json'.")
	fs.StringVar(&f.evaluator, "evaluator", defaults.Evaluator, "Arithmetic backend. Options: "+strings.Join(evaluator.Kinds(), ", ")+".")
	fs.IntVarP(&f.workers, "workers", "w", defaults.Workers, "Number of cells evaluated concurrently. 1 is sequential.")
	fs.StringVarP(&f.delimiter, "delimiter", "d", string(defaults.Delimiter), "Field delimiter for input and output.")
	fs.StringVar(&f.comment, "comment", "", "Skip input lines starting with this character.")

	// A nil slice would make cobra fall back to os.Args.
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	cmd.SetOut(output)
	cmd.SetErr(output)

	if err := cmd.Execute(); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			return nil, false, exitErr
		}
		return nil, false, usageError(err)
	}
	if config == nil {
		// Help was requested or no input was given.
		return nil, true, nil
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}

// resolve merges defaults, the settings file and explicit flags, in that
// order of precedence, and validates the result.
func (f *flags) resolve(input string, cmd *cobra.Command) (*app.Config, error) {
	explicit := func(name string) bool { return cmd.Flags().Changed(name) }

	cfg := app.DefaultConfig()
	cfg.InputPath = input
	cfg.OutputPath = f.outputPath
	cfg.ConfigPath = f.configPath

	if f.configPath != "" {
		fileConfig, err := app.LoadFileConfig(f.configPath)
		if err != nil {
			return nil, usageError(err)
		}
		if err := fileConfig.ApplyTo(&cfg, explicit); err != nil {
			return nil, usageError(err)
		}
		slog.Debug("Settings file applied.", "path", f.configPath)
	}

	if explicit("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if explicit("log-format") {
		cfg.LogFormat = f.logFormat
	}
	if explicit("evaluator") {
		cfg.Evaluator = f.evaluator
	}
	if explicit("workers") {
		cfg.Workers = f.workers
	}
	if explicit("delimiter") {
		r, err := app.ParseRune("delimiter", f.delimiter)
		if err != nil {
			return nil, usageError(err)
		}
		cfg.Delimiter = r
	}
	if explicit("comment") {
		r, err := app.ParseRune("comment", f.comment)
		if err != nil {
			return nil, usageError(err)
		}
		cfg.Comment = r
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(cfg)
	if err != nil {
		return nil, usageError(err)
	}
	return config, nil
}
