// Package config loads settings for the binaries from defaults, an optional
// config file, the environment and bound command-line flags.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/viper"
)

const (
	DefaultPort         = "8080"
	DefaultTemporalHost = "localhost:7233"
	DefaultTaskQueue    = "ticket-admission-queue"
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "text"
)

// Config holds every setting the binaries read.
type Config struct {
	APIPort      string
	TemporalHost string
	Namespace    string
	TaskQueue    string
	LogLevel     string
	LogFormat    string
}

// Keys shared with flag bindings.
const (
	KeyAPIPort      = "api_port"
	KeyTemporalHost = "temporal_host"
	KeyNamespace    = "temporal_namespace"
	KeyTaskQueue    = "task_queue"
	KeyLogLevel     = "log_level"
	KeyLogFormat    = "log_format"
)

// New returns a viper instance with defaults and environment binding. Keys map
// to upper-case variables, e.g. api_port reads API_PORT.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyAPIPort, DefaultPort)
	v.SetDefault(KeyTemporalHost, DefaultTemporalHost)
	v.SetDefault(KeyNamespace, "default")
	v.SetDefault(KeyTaskQueue, DefaultTaskQueue)
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
	v.SetDefault(KeyLogFormat, DefaultLogFormat)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the optional config file and returns the resolved settings.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", file, err)
		}
	}

	cfg := &Config{
		APIPort:      v.GetString(KeyAPIPort),
		TemporalHost: v.GetString(KeyTemporalHost),
		Namespace:    v.GetString(KeyNamespace),
		TaskQueue:    v.GetString(KeyTaskQueue),
		LogLevel:     v.GetString(KeyLogLevel),
		LogFormat:    v.GetString(KeyLogFormat),
	}
	if _, err := parseLevel(cfg.LogLevel); err != nil {
		return nil, err
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("unknown log format %q", cfg.LogFormat)
	}
	return cfg, nil
}

// NewLogger builds the slog logger described by cfg, writing to w.
func NewLogger(cfg *Config, w io.Writer) *slog.Logger {
	level, err := parseLevel(cfg.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return level, fmt.Errorf("unknown log level %q", s)
	}
	return level, nil
}
