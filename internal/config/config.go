// Showlog - Personal Show Tracking and Watch History
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/showlog

// Package config loads Showlog configuration with Koanf v2 from layered
// sources: built-in defaults, an optional YAML file, then environment
// variables (highest priority).
package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyDataPath indicates a blank snapshot file path.
	ErrEmptyDataPath = errors.New("data path cannot be empty")

	// ErrInvalidLogFormat indicates a log format other than json or console.
	ErrInvalidLogFormat = errors.New("log format must be json or console")

	// ErrInvalidRecommendLimit indicates a nonpositive default recommendation limit.
	ErrInvalidRecommendLimit = errors.New("default recommendation limit must be positive")

	// ErrInvalidAuditHistory indicates a nonpositive audit history size.
	ErrInvalidAuditHistory = errors.New("audit history size must be positive")
)

// Config is the full application configuration.
type Config struct {
	Data      DataConfig      `koanf:"data"`
	Logging   LoggingConfig   `koanf:"logging"`
	Recommend RecommendConfig `koanf:"recommend"`
	Audit     AuditConfig     `koanf:"audit"`
}

// DataConfig configures the persistence gateway.
type DataConfig struct {
	// Path is the JSON snapshot file. Relative paths resolve against the
	// working directory.
	Path string `koanf:"path"`
}

// LoggingConfig configures the global logger.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// RecommendConfig configures the recommendation engine.
type RecommendConfig struct {
	// DefaultLimit is the number of recommendations returned when the
	// caller does not ask for a specific count.
	DefaultLimit int `koanf:"default_limit"`
}

// AuditConfig configures the mutation action recorder.
type AuditConfig struct {
	Enabled bool `koanf:"enabled"`

	// History is how many recent events the in-memory ring retains.
	History int `koanf:"history"`
}

// defaultConfig returns a Config with all default values. Defaults are
// applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Data: DataConfig{
			Path: "showlog.json",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console", // interactive tool; json is opt-in
			Caller: false,
		},
		Recommend: RecommendConfig{
			DefaultLimit: 5,
		},
		Audit: AuditConfig{
			Enabled: true,
			History: 100,
		},
	}
}

// Validate rejects configurations the application cannot run with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Data.Path) == "" {
		return ErrEmptyDataPath
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("%w: got %q", ErrInvalidLogFormat, c.Logging.Format)
	}
	if c.Recommend.DefaultLimit <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidRecommendLimit, c.Recommend.DefaultLimit)
	}
	if c.Audit.History <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidAuditHistory, c.Audit.History)
	}
	return nil
}
