package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlagSet(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	BindFlags(fs)
	require.NoError(t, fs.Parse(args))
	return fs
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://localhost:8000", c.ServerURL)
	assert.NotEmpty(t, c.StorePath)
	assert.Equal(t, 30*time.Second, c.RequestTimeout)
	assert.Equal(t, 30*time.Second, c.ExpiryCheckInterval)
	assert.Equal(t, "warn", c.LogLevel)
	require.NoError(t, c.Validate())
}

func TestLoad_DefaultsOnly(t *testing.T) {
	cfg, err := Load(newFlagSet(t))
	require.NoError(t, err)

	var want Config
	want.LoadDefaults()
	assert.Empty(t, cmp.Diff(&want, cfg))
}

func TestLoad_FlagsOverride(t *testing.T) {
	cfg, err := Load(newFlagSet(t, "-a", "https://share.example.com", "--store=", "-t", "5s", "--expiry-check=0", "-l", "debug"))
	require.NoError(t, err)

	assert.Equal(t, &Config{
		ServerURL:           "https://share.example.com",
		StorePath:           "",
		RequestTimeout:      5 * time.Second,
		ExpiryCheckInterval: 0,
		LogLevel:            "debug",
	}, cfg)
}

func TestLoad_JSONThenFlags(t *testing.T) {
	path := writeTempJSON(t, "", "", map[string]any{
		"server_url":      "http://json.example:9000",
		"request_timeout": "10s",
		"log_level":       "info",
	})

	cfg, err := Load(newFlagSet(t, "-c", path, "--log-level", "error"))
	require.NoError(t, err)

	assert.Equal(t, "http://json.example:9000", cfg.ServerURL)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "error", cfg.LogLevel, "explicit flag wins over JSON")
	assert.Equal(t, 30*time.Second, cfg.ExpiryCheckInterval, "absent key keeps default")
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing json file", []string{"-c", "/definitely/not/here.json"}},
		{"bad url", []string{"-a", "localhost:8000"}},
		{"bad log level", []string{"-l", "loud"}},
		{"negative timeout", []string{"--timeout=-1s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(newFlagSet(t, tt.args...))
			require.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}

func TestLoad_NilFlagSet(t *testing.T) {
	cfg, err := Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", cfg.ServerURL)
}
