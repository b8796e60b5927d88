package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	cfg := DefaultConfig()
	cfg.InputPath = "table.csv"
	return cfg
}

func TestNewConfig_Normalises(t *testing.T) {
	cfg := validConfig()
	cfg.LogLevel = "DEBUG"
	cfg.LogFormat = "Json"
	cfg.Evaluator = ""
	cfg.Delimiter = 0

	got, err := NewConfig(cfg)
	require.NoError(t, err)

	assert.Equal(t, "debug", got.LogLevel)
	assert.Equal(t, "json", got.LogFormat)
	assert.Equal(t, "hcl", got.Evaluator)
	assert.Equal(t, ',', got.Delimiter)
	assert.Equal(t, "table.csv", got.InputPath)
}

func TestNewConfig_Rejects(t *testing.T) {
	testCases := []struct {
		name    string
		mutate  func(*Config)
		wantMsg string
	}{
		{"missing input", func(c *Config) { c.InputPath = "" }, "input path is required"},
		{"log format", func(c *Config) { c.LogFormat = "xml" }, "log format"},
		{"log level", func(c *Config) { c.LogLevel = "trace" }, "log level"},
		{"evaluator", func(c *Config) { c.Evaluator = "lua" }, "evaluator"},
		{"workers", func(c *Config) { c.Workers = 0 }, "workers must be at least 1"},
		{"quote delimiter", func(c *Config) { c.Delimiter = '"' }, "delimiter"},
		{"newline delimiter", func(c *Config) { c.Delimiter = '\n' }, "delimiter"},
		{"comment equals delimiter", func(c *Config) { c.Comment = ',' }, "comment character"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)

			_, err := NewConfig(cfg)
			require.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), tc.wantMsg)
		})
	}
}

func TestParseRune(t *testing.T) {
	r, err := ParseRune("delimiter", ";")
	require.NoError(t, err)
	assert.Equal(t, ';', r)

	r, err = ParseRune("comment", "")
	require.NoError(t, err)
	assert.Equal(t, rune(0), r)

	r, err = ParseRune("delimiter", "¦")
	require.NoError(t, err)
	assert.Equal(t, '¦', r)

	_, err = ParseRune("delimiter", ";;")
	require.ErrorIs(t, err, ErrInvalidConfig)
	assert.Contains(t, err.Error(), "delimiter must be a single character")
}
