package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, DefaultPort, cfg.APIPort)
	assert.Equal(t, DefaultTemporalHost, cfg.TemporalHost)
	assert.Equal(t, DefaultTaskQueue, cfg.TaskQueue)
	assert.Equal(t, "default", cfg.Namespace)
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel)
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("API_PORT", "9090")
	t.Setenv("TEMPORAL_HOST", "temporal:7233")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.APIPort)
	assert.Equal(t, "temporal:7233", cfg.TemporalHost)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "admission.yaml")
	require.NoError(t, os.WriteFile(path, []byte("task_queue: custom-queue\nlog_format: json\n"), 0o600))

	cfg, err := Load(New(), path)
	require.NoError(t, err)

	assert.Equal(t, "custom-queue", cfg.TaskQueue)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "log level", key: KeyLogLevel, value: "loud"},
		{name: "log format", key: KeyLogFormat, value: "xml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New()
			v.Set(tt.key, tt.value)
			_, err := Load(v, "")
			assert.Error(t, err)
		})
	}

	_, err := Load(New(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&Config{LogLevel: "warn", LogFormat: "json"}, &buf)

	logger.Info("hidden")
	logger.Warn("shown", "flight", "F1")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"flight":"F1"`)
}
