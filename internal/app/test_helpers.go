package app

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// WriteInput stores a table fixture in a temporary directory and returns its
// path.
func WriteInput(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600), "failed to set up input file")
	return path
}

// SetupAppTest creates a new app instance for system testing. Results are
// captured in the first returned buffer, logs in the second.
func SetupAppTest(t *testing.T, cfg Config) (*App, *SafeBuffer, *SafeBuffer) {
	t.Helper()

	if cfg.LogLevel == "" {
		cfg.LogLevel = "debug"
	}
	defaults := DefaultConfig()
	if cfg.LogFormat == "" {
		cfg.LogFormat = defaults.LogFormat
	}
	if cfg.Workers == 0 {
		cfg.Workers = defaults.Workers
	}

	validated, err := NewConfig(cfg)
	require.NoError(t, err)

	outBuffer, logBuffer := &SafeBuffer{}, &SafeBuffer{}
	testApp, err := NewApp(outBuffer, logBuffer, validated)
	require.NoError(t, err)

	t.Cleanup(func() {
		if os.Getenv("CGGO_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})

	return testApp, outBuffer, logBuffer
}
