// Package config loads the server configuration from an optional YAML file
// and the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

const (
	DefaultPort            = 8080
	DefaultDatabase        = "scrapbook"
	DefaultPrivatePassword = "ourlove"
	DefaultLogLevel        = "info"
	metricsEnabledKey      = "metrics_enabled"
)

// ErrMissingDatabaseURI is returned when no connection string is configured.
var ErrMissingDatabaseURI = errors.New("mongodb_uri is required (set MONGODB_URI)")

type Config struct {
	Port            int    `koanf:"port"`
	MongoURI        string `koanf:"mongodb_uri"`
	MongoDatabase   string `koanf:"mongodb_database"`
	PrivatePassword Secret `koanf:"private_space_password"`
	LogLevel        string `koanf:"log_level"`
	MetricsEnabled  bool   `koanf:"metrics_enabled"`
}

// Secret keeps a value out of logs and %v output. Use Value() to read it.
type Secret string

func (s Secret) String() string {
	if s == "" {
		return ""
	}
	return "[REDACTED]"
}

func (s Secret) GoString() string {
	return "Secret([REDACTED])"
}

func (s Secret) Value() string {
	return string(s)
}

func applyDefaults(cfg *Config) {
	if cfg.Port == 0 {
		cfg.Port = DefaultPort
	}
	if cfg.MongoDatabase == "" {
		cfg.MongoDatabase = DefaultDatabase
	}
	if cfg.PrivatePassword == "" {
		cfg.PrivatePassword = DefaultPrivatePassword
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.MongoURI) == "" {
		return ErrMissingDatabaseURI
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ParseLevel maps a log_level value to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log_level %q: use debug, info, warn or error", s)
	}
	return level, nil
}
