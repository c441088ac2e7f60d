// Package config reads runtime settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/Mshel/gridsnake/internal/game"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

const (
	envGridSize        = "SNAKE_GRID_SIZE"
	envTickMillis      = "SNAKE_TICK_MS"
	envSeed            = "SNAKE_SEED"
	envHost            = "SNAKE_HOST"
	envPort            = "SNAKE_PORT"
	envPrivateKeyPath  = "SNAKE_PRIVATE_KEY_PATH"
	envMaxConnsPerIP   = "SNAKE_MAX_CONNECTIONS_PER_IP"
	envLogLevel        = "SNAKE_LOG_LEVEL"
	envLogFile         = "SNAKE_LOG_FILE"
	envAutopilotScript = "SNAKE_AUTOPILOT_SCRIPT"
	envOTLPEndpoint    = "OTEL_EXPORTER_OTLP_ENDPOINT"
)

var ErrInvalid = errors.New("invalid configuration")

type Config struct {
	GridSize     int
	TickInterval time.Duration
	Seed         int64

	Host                string
	Port                string
	PrivateKeyPath      string
	MaxConnectionsPerIP int

	LogLevel log.Level
	LogFile  string

	// AutopilotScript is a Lua file path, "builtin" for the embedded script,
	// or empty for keyboard only play.
	AutopilotScript  string
	TelemetryEnabled bool
}

func Default() Config {
	return Config{
		GridSize:            game.DefaultGridSize,
		TickInterval:        game.DefaultTickInterval,
		Host:                "0.0.0.0",
		Port:                "6996",
		PrivateKeyPath:      ".ssh/id_ed25519",
		MaxConnectionsPerIP: 2,
		LogLevel:            log.InfoLevel,
	}
}

// Load reads a .env file from the working directory when there is one and
// then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv(os.Getenv)
}

func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Default()
	var err error

	if cfg.GridSize, err = intVar(getenv, envGridSize, cfg.GridSize); err != nil {
		return Config{}, err
	}
	if cfg.GridSize < 2 {
		return Config{}, fmt.Errorf("%w: %s must be at least 2, got %d", ErrInvalid, envGridSize, cfg.GridSize)
	}

	tickMillis, err := intVar(getenv, envTickMillis, int(cfg.TickInterval/time.Millisecond))
	if err != nil {
		return Config{}, err
	}
	if tickMillis <= 0 {
		return Config{}, fmt.Errorf("%w: %s must be positive, got %d", ErrInvalid, envTickMillis, tickMillis)
	}
	cfg.TickInterval = time.Duration(tickMillis) * time.Millisecond

	if raw := getenv(envSeed); raw != "" {
		if cfg.Seed, err = strconv.ParseInt(raw, 10, 64); err != nil {
			return Config{}, fmt.Errorf("%w: %s: %w", ErrInvalid, envSeed, err)
		}
	}

	cfg.Host = stringVar(getenv, envHost, cfg.Host)
	cfg.Port = stringVar(getenv, envPort, cfg.Port)
	cfg.PrivateKeyPath = stringVar(getenv, envPrivateKeyPath, cfg.PrivateKeyPath)

	if cfg.MaxConnectionsPerIP, err = intVar(getenv, envMaxConnsPerIP, cfg.MaxConnectionsPerIP); err != nil {
		return Config{}, err
	}
	if cfg.MaxConnectionsPerIP < 1 {
		return Config{}, fmt.Errorf("%w: %s must be at least 1", ErrInvalid, envMaxConnsPerIP)
	}

	if raw := getenv(envLogLevel); raw != "" {
		if cfg.LogLevel, err = log.ParseLevel(raw); err != nil {
			return Config{}, fmt.Errorf("%w: %s: %w", ErrInvalid, envLogLevel, err)
		}
	}
	cfg.LogFile = getenv(envLogFile)

	cfg.AutopilotScript = getenv(envAutopilotScript)
	cfg.TelemetryEnabled = getenv(envOTLPEndpoint) != ""

	return cfg, nil
}

func (c Config) GameSettings() game.Settings {
	return game.Settings{
		GridSize:     c.GridSize,
		TickInterval: c.TickInterval,
		Seed:         c.Seed,
	}
}

func (c Config) Address() string {
	return c.Host + ":" + c.Port
}

func stringVar(getenv func(string) string, key, fallback string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return fallback
}

func intVar(getenv func(string) string, key string, fallback int) (int, error) {
	raw := getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrInvalid, key, err)
	}
	return v, nil
}
