package config

import (
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envMap(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func TestFromEnvDefaults(t *testing.T) {
	cfg, err := FromEnv(envMap(nil))
	require.NoError(t, err)

	assert.Equal(t, 20, cfg.GridSize)
	assert.Equal(t, 200*time.Millisecond, cfg.TickInterval)
	assert.Equal(t, "0.0.0.0:6996", cfg.Address())
	assert.Equal(t, 2, cfg.MaxConnectionsPerIP)
	assert.Equal(t, log.InfoLevel, cfg.LogLevel)
	assert.False(t, cfg.TelemetryEnabled)
	assert.Empty(t, cfg.AutopilotScript)
}

func TestFromEnvOverrides(t *testing.T) {
	cfg, err := FromEnv(envMap(map[string]string{
		"SNAKE_GRID_SIZE":              "30",
		"SNAKE_TICK_MS":                "120",
		"SNAKE_SEED":                   "99",
		"SNAKE_PORT":                   "2222",
		"SNAKE_MAX_CONNECTIONS_PER_IP": "5",
		"SNAKE_LOG_LEVEL":              "debug",
		"SNAKE_AUTOPILOT_SCRIPT":       "builtin",
		"OTEL_EXPORTER_OTLP_ENDPOINT":  "http://localhost:4318",
	}))
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.GridSize)
	assert.Equal(t, 120*time.Millisecond, cfg.TickInterval)
	assert.Equal(t, int64(99), cfg.Seed)
	assert.Equal(t, "0.0.0.0:2222", cfg.Address())
	assert.Equal(t, 5, cfg.MaxConnectionsPerIP)
	assert.Equal(t, log.DebugLevel, cfg.LogLevel)
	assert.Equal(t, "builtin", cfg.AutopilotScript)
	assert.True(t, cfg.TelemetryEnabled)

	settings := cfg.GameSettings()
	assert.Equal(t, 30, settings.GridSize)
	assert.Equal(t, 120*time.Millisecond, settings.TickInterval)
	assert.Equal(t, int64(99), settings.Seed)
}

func TestFromEnvRejectsBadValues(t *testing.T) {
	cases := map[string]map[string]string{
		"grid not a number": {"SNAKE_GRID_SIZE": "big"},
		"grid too small":    {"SNAKE_GRID_SIZE": "1"},
		"zero tick":         {"SNAKE_TICK_MS": "0"},
		"bad seed":          {"SNAKE_SEED": "x"},
		"bad level":         {"SNAKE_LOG_LEVEL": "loud"},
		"no connections":    {"SNAKE_MAX_CONNECTIONS_PER_IP": "0"},
	}
	for name, vars := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := FromEnv(envMap(vars))
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}
