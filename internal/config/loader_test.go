package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable Load reads so the host environment does
// not leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for key := range knownKeys {
		t.Setenv(strings.ToUpper(key), "")
		os.Unsetenv(strings.ToUpper(key))
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_EnvOnlyAppliesDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultPort, cfg.Port)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, DefaultDatabase, cfg.MongoDatabase)
	assert.Equal(t, DefaultPrivatePassword, cfg.PrivatePassword.Value())
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
	assert.True(t, cfg.MetricsEnabled)
}

func TestLoad_MissingURI(t *testing.T) {
	clearEnv(t)

	_, err := Load("")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingDatabaseURI))
}

func TestLoad_FileThenEnvOverride(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
port: 9000
mongodb_uri: mongodb://from-file/db
private_space_password: fromfile
log_level: debug
metrics_enabled: false
`)
	t.Setenv("PRIVATE_SPACE_PASSWORD", "fromenv")
	t.Setenv("PORT", "9100")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Port)
	assert.Equal(t, "mongodb://from-file/db", cfg.MongoURI)
	assert.Equal(t, "fromenv", cfg.PrivatePassword.Value())
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.MetricsEnabled)
}

func TestLoad_MetricsToggleFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("MONGODB_URI", "sqlite::memory:")
	t.Setenv("METRICS_ENABLED", "false")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.False(t, cfg.MetricsEnabled)
}

func TestLoad_BadFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("MONGODB_URI", "mongodb://localhost")

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "port: [unterminated"))
	assert.Error(t, err)

	_, err = Load(t.TempDir())
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{Port: 8080, MongoURI: "mongodb://x", PrivatePassword: "p", LogLevel: "info"}
	}

	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"blank uri", func(c *Config) { c.MongoURI = "   " }, true},
		{"port too high", func(c *Config) { c.Port = 70000 }, true},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, true},
		{"long password", func(c *Config) { c.PrivatePassword = Secret(strings.Repeat("x", 200)) }, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("warn")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)

	_, err = ParseLevel("verbose")
	assert.Error(t, err)
}

func TestSecret_IsRedacted(t *testing.T) {
	s := Secret("ourlove")
	assert.Equal(t, "[REDACTED]", s.String())
	assert.NotContains(t, fmt.Sprintf("%v %#v", s, s), "ourlove")
	assert.Equal(t, "", Secret("").String())
}
