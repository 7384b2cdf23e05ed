// Package config provides configuration types and defaults for strata.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"strata/internal/tracing"
)

// Config holds all configuration options for strata.
type Config struct {
	// DatabasePath is the location of the artifact store database.
	// Default: ~/.strata/store.db
	DatabasePath string `mapstructure:"database_path"`

	// Author is recorded on every artifact this process creates.
	Author string `mapstructure:"author"`

	Cache   CacheConfig    `mapstructure:"cache"`
	Log     LogConfig      `mapstructure:"log"`
	Watch   WatchConfig    `mapstructure:"watch"`
	Tracing tracing.Config `mapstructure:"tracing"`
}

// CacheConfig holds payload cache configuration.
type CacheConfig struct {
	// Disabled turns off payload caching entirely; every load hits the store.
	Disabled bool `mapstructure:"disabled"`

	// TTLSeconds is how long a loaded payload stays cached.
	TTLSeconds int `mapstructure:"ttl_seconds"`
}

// TTL returns the cache TTL as a duration.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// LogConfig holds debug logging configuration.
type LogConfig struct {
	// Path is the log file location. Default: ~/.strata/debug.log
	Path string `mapstructure:"path"`

	// Level is the minimum level written: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
}

// WatchConfig holds store file watcher configuration.
type WatchConfig struct {
	// Enabled turns on watching the store database for external writes.
	Enabled bool `mapstructure:"enabled"`

	// DebounceMS collapses bursts of file events into one notification.
	DebounceMS int `mapstructure:"debounce_ms"`
}

// Debounce returns the watcher debounce as a duration.
func (w WatchConfig) Debounce() time.Duration {
	return time.Duration(w.DebounceMS) * time.Millisecond
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		DatabasePath: filepath.Join(homeDir(), ".strata", "store.db"),
		Author:       "default",
		Cache: CacheConfig{
			Disabled:   false,
			TTLSeconds: 600,
		},
		Log: LogConfig{
			Path:  filepath.Join(homeDir(), ".strata", "debug.log"),
			Level: "debug",
		},
		Watch: WatchConfig{
			Enabled:    false,
			DebounceMS: 1000,
		},
		Tracing: tracing.DefaultConfig(),
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(homeDir(), ".config", "strata", "config.yaml")
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}

// Validate checks the configuration for invalid values.
func (c Config) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("database_path must not be empty")
	}
	if c.Cache.TTLSeconds < 0 {
		return fmt.Errorf("cache.ttl_seconds must be non-negative, got %d", c.Cache.TTLSeconds)
	}
	if c.Watch.DebounceMS < 0 {
		return fmt.Errorf("watch.debounce_ms must be non-negative, got %d", c.Watch.DebounceMS)
	}

	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be \"debug\", \"info\", \"warn\", or \"error\", got %q", c.Log.Level)
	}

	tr := c.Tracing
	if tr.SampleRate < 0.0 || tr.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tr.SampleRate)
	}
	if tr.Exporter != "" {
		switch tr.Exporter {
		case "none", "file", "stdout", "otlp":
		default:
			return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tr.Exporter)
		}
	}
	if tr.Enabled {
		if tr.Exporter == "file" && tr.FilePath == "" {
			return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
		}
		if tr.Exporter == "otlp" && tr.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}

	return nil
}
