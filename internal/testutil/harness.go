// Package testutil provides a harness for running the full application
// against table fixtures in integration tests.
package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/cellgridgo/internal/app"
	"github.com/stretchr/testify/require"
)

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	Output    string
	LogOutput string
	Err       error
	App       *app.App
}

// RunIntegrationTest runs the application over input using a default
// background context.
func RunIntegrationTest(t *testing.T, input string, cfg app.Config) *HarnessResult {
	t.Helper()
	return RunIntegrationTestWithContext(context.Background(), t, input, cfg)
}

// RunIntegrationTestWithContext writes input to a temporary table file and
// runs the application over it with cfg. Zero-valued fields of cfg take
// their defaults; logging is always at debug level in text format.
func RunIntegrationTestWithContext(ctx context.Context, t *testing.T, input string, cfg app.Config) *HarnessResult {
	t.Helper()

	cfg.InputPath = filepath.Join(t.TempDir(), "table.csv")
	require.NoError(t, os.WriteFile(cfg.InputPath, []byte(input), 0o644))

	defaults := app.DefaultConfig()
	cfg.LogLevel = "debug"
	cfg.LogFormat = "text"
	if cfg.Evaluator == "" {
		cfg.Evaluator = defaults.Evaluator
	}
	if cfg.Workers == 0 {
		cfg.Workers = defaults.Workers
	}

	validated, err := app.NewConfig(cfg)
	require.NoError(t, err)

	outBuffer, logBuffer := &app.SafeBuffer{}, &app.SafeBuffer{}
	testApp, err := app.NewApp(outBuffer, logBuffer, validated)
	require.NoError(t, err)

	runErr := testApp.Run(ctx)

	if os.Getenv("CGGO_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
	}

	return &HarnessResult{
		Output:    outBuffer.String(),
		LogOutput: logBuffer.String(),
		Err:       runErr,
		App:       testApp,
	}
}
