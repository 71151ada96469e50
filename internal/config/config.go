package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	StoreDriverMemory = "memory"
	StoreDriverSQLite = "sqlite"
)

// Config holds the server configuration.
// Values come from the TOML file named by CONFIG_FILE, if any, and are then
// overridden by environment variables.
type Config struct {
	Host            string        `toml:"host"`
	Port            int           `toml:"port"`
	StoreDriver     string        `toml:"store_driver"`
	LogLevel        string        `toml:"log_level"`
	LogFormat       string        `toml:"log_format"`
	GinMode         string        `toml:"gin_mode"`
	ShutdownTimeout time.Duration `toml:"-"`
	// ShutdownTimeoutRaw is the TOML form of ShutdownTimeout, e.g. "5s"
	ShutdownTimeoutRaw string `toml:"shutdown_timeout"`
}

func Default() Config {
	return Config{
		Host:            "0.0.0.0",
		Port:            5002,
		StoreDriver:     StoreDriverMemory,
		LogLevel:        "info",
		LogFormat:       "json",
		GinMode:         "release",
		ShutdownTimeout: 5 * time.Second,
	}
}

// Load builds the configuration from defaults, the optional TOML file and the environment.
func Load() (Config, error) {
	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return Config{}, err
		}
	}

	cfg.Host = envOrDefault("HOST", cfg.Host)
	cfg.Port = envOrDefaultInt("PORT", cfg.Port)
	cfg.StoreDriver = envOrDefault("STORE_DRIVER", cfg.StoreDriver)
	cfg.LogLevel = envOrDefault("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = envOrDefault("LOG_FORMAT", cfg.LogFormat)
	cfg.GinMode = envOrDefault("GIN_MODE", cfg.GinMode)
	cfg.ShutdownTimeout = envOrDefaultDuration("SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	fileCfg := *c
	if _, err := toml.DecodeFile(path, &fileCfg); err != nil {
		return fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	if fileCfg.ShutdownTimeoutRaw != "" {
		d, err := time.ParseDuration(fileCfg.ShutdownTimeoutRaw)
		if err != nil {
			return fmt.Errorf("invalid shutdown_timeout %q in %s: %w", fileCfg.ShutdownTimeoutRaw, path, err)
		}
		fileCfg.ShutdownTimeout = d
	}

	*c = fileCfg
	return nil
}

// Validate reports settings the server cannot start with
func (c Config) Validate() error {
	switch c.StoreDriver {
	case StoreDriverMemory, StoreDriverSQLite:
	default:
		return fmt.Errorf("unknown store driver %q", c.StoreDriver)
	}

	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}

	return nil
}

// Addr returns the listen address for http.Server
func (c Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envOrDefaultInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envOrDefaultDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
