package app

import (
	"errors"
	"fmt"
	"strings"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	RunPath string // run file or directory of run files

	LogFormat       string
	LogLevel        string
	HealthcheckPort int
}

// NewConfig validates cfg and returns a copy with defaults applied.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, errors.New("invalid log-format: must be 'text' or 'json'")
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, errors.New("invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
	}
	if cfg.HealthcheckPort < 0 || cfg.HealthcheckPort > 65535 {
		return nil, fmt.Errorf("invalid healthcheck-port %d", cfg.HealthcheckPort)
	}
	return &cfg, nil
}
