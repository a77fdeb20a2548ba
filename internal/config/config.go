// Package config manages the goftpd daemon configuration using koanf/v2.
//
// Supports properties files (key=value, one pair per line, matching the
// original daemon's configuration format), environment variables, and
// defaults layered underneath both.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/knadh/koanf/parsers/properties"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Config holds the complete goftpd daemon configuration. Each sub-config
// is squashed into Config's own key space rather than nested under a
// section name, since the properties file format documents flat keys
// like control_port and log_level with no section prefix.
type Config struct {
	Server  ServerConfig  `koanf:",squash"`
	Log     LogConfig     `koanf:",squash"`
	Metrics MetricsConfig `koanf:",squash"`
}

// ServerConfig holds the core FTP server parameters. Names follow the
// original daemon's properties file keys.
type ServerConfig struct {
	// ControlPort is the TCP port the control listener binds to.
	ControlPort int `koanf:"control_port"`

	// DataPort is loaded from the data_port key. It is not passed to the
	// data channel: ACTIVE data connections dial from an OS-chosen source
	// port whatever its value.
	DataPort int `koanf:"data_port"`

	// ThreadsNumber is the fixed size of the command WorkerPool.
	ThreadsNumber int `koanf:"threads_number"`

	// ConnectionQueueSize is loaded from the connection_queue_size key. The
	// control listener does not apply it; its accept backlog is the
	// system default.
	ConnectionQueueSize int `koanf:"connection_queue_size"`

	// RootDirectory is the filesystem root every session is confined to.
	RootDirectory string `koanf:"root_directory"`
}

// LogConfig holds the logging configuration.
type LogConfig struct {
	// File is loaded from the log_file key. The daemon's logger does not
	// open it; log records are written to stdout.
	File string `koanf:"log_file"`

	// Level is the log level: "debug", "info", "warn", "error".
	Level string `koanf:"log_level"`

	// Format is the log output format: "json" or "text".
	Format string `koanf:"log_format"`
}

// MetricsConfig holds the optional Prometheus metrics endpoint
// configuration. Addr empty disables the endpoint.
type MetricsConfig struct {
	// Addr is the HTTP listen address for the metrics endpoint (e.g., ":9100").
	Addr string `koanf:"metrics_addr"`

	// Path is the URL path for the metrics endpoint (e.g., "/metrics").
	Path string `koanf:"metrics_path"`
}

// DefaultConfig returns a Config populated with sensible defaults. 20
// worker threads matches the original daemon's default thread pool size.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			ControlPort:         2020,
			DataPort:            0,
			ThreadsNumber:       20,
			ConnectionQueueSize: 10,
			RootDirectory:       ".",
		},
		Log: LogConfig{
			File:   "goftpd.log",
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Addr: "",
			Path: "/metrics",
		},
	}
}

// envPrefix is the environment variable prefix for goftpd configuration.
// Variables are named GOFTPD_<KEY>, e.g., GOFTPD_CONTROL_PORT overrides
// the flat control_port key.
const envPrefix = "GOFTPD_"

// Load reads configuration from a properties file at path, overlays
// environment variable overrides (GOFTPD_ prefix), and merges on top of
// DefaultConfig(). Missing fields inherit defaults.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	defaults := DefaultConfig()
	if err := loadDefaults(k, defaults); err != nil {
		return nil, fmt.Errorf("load config defaults: %w", err)
	}

	if err := k.Load(file.Provider(path), properties.Parser()); err != nil {
		return nil, fmt.Errorf("load config from %s: %w", path, err)
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKeyMapper), nil); err != nil {
		return nil, fmt.Errorf("load env overrides: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config from %s: %w", path, err)
	}

	return cfg, nil
}

// envKeyMapper transforms GOFTPD_CONTROL_PORT -> control_port.
func envKeyMapper(s string) string {
	s = strings.TrimPrefix(s, envPrefix)
	return strings.ToLower(s)
}

// loadDefaults marshals the default config into koanf as the base layer.
func loadDefaults(k *koanf.Koanf, defaults *Config) error {
	defaultMap := map[string]any{
		"control_port":          defaults.Server.ControlPort,
		"data_port":             defaults.Server.DataPort,
		"threads_number":        defaults.Server.ThreadsNumber,
		"connection_queue_size": defaults.Server.ConnectionQueueSize,
		"root_directory":        defaults.Server.RootDirectory,
		"log_file":              defaults.Log.File,
		"log_level":             defaults.Log.Level,
		"log_format":            defaults.Log.Format,
		"metrics_addr":          defaults.Metrics.Addr,
		"metrics_path":          defaults.Metrics.Path,
	}

	for key, val := range defaultMap {
		if err := k.Set(key, val); err != nil {
			return fmt.Errorf("set default %s: %w", key, err)
		}
	}

	return nil
}

// Validation errors.
var (
	// ErrInvalidControlPort indicates the control port is out of range.
	ErrInvalidControlPort = errors.New("control_port must be between 1 and 65535")

	// ErrInvalidThreadsNumber indicates the worker pool size is not positive.
	ErrInvalidThreadsNumber = errors.New("threads_number must be >= 1")

	// ErrEmptyRootDirectory indicates no root directory was configured.
	ErrEmptyRootDirectory = errors.New("root_directory must not be empty")
)

// Validate checks the configuration for logical errors. Returns the
// first validation error encountered.
func Validate(cfg *Config) error {
	if cfg.Server.ControlPort < 1 || cfg.Server.ControlPort > 65535 {
		return ErrInvalidControlPort
	}

	if cfg.Server.ThreadsNumber < 1 {
		return ErrInvalidThreadsNumber
	}

	if cfg.Server.RootDirectory == "" {
		return ErrEmptyRootDirectory
	}

	return nil
}

// ParseLogLevel maps a configuration log level string to the
// corresponding slog.Level. Unknown values default to slog.LevelInfo.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
