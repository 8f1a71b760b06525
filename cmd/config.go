package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/etnz/dungeon"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Environment variables overriding the configuration file.
const (
	EnvDataDir  = "DCL_DATA_DIR"
	EnvBackend  = "DCL_BACKEND"
	EnvLogLevel = "DCL_LOG_LEVEL"
	EnvDebounce = "DCL_DEBOUNCE"
	EnvTimezone = "DCL_TIMEZONE"
	EnvGemini   = "GEMINI_API_KEY"
)

// Config holds the application configuration.
type Config struct {
	DataDir      string        `yaml:"data_dir"`
	Backend      string        `yaml:"backend"`   // file or sqlite
	LogLevel     string        `yaml:"log_level"` // debug, info, warn, error
	Debounce     time.Duration `yaml:"debounce"`  // delay before a change is saved
	Timezone     string        `yaml:"timezone"`  // IANA name, local time when empty
	GeminiAPIKey string        `yaml:"gemini_api_key"`
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/dcl/config.yaml.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(dir, "dcl", "config.yaml")
}

func defaultConfig() *Config {
	dataDir := ".dcl"
	if dir, err := os.UserConfigDir(); err == nil {
		dataDir = filepath.Join(dir, "dcl")
	}
	return &Config{
		DataDir:  dataDir,
		Backend:  BackendFile,
		LogLevel: "info",
		Debounce: dungeon.DefaultDebounce,
	}
}

// LoadConfig reads the configuration file at path, then applies the
// environment variables, a .env file in the working directory included.
//
// An empty path reads the default configuration file if it exists.
func LoadConfig(path string) (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := defaultConfig()
	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath()
	}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		// Expand environment variables in the YAML content
		if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config %s: %w", path, err)
		}
	}

	cfg.DataDir = getEnv(EnvDataDir, cfg.DataDir)
	cfg.Backend = getEnv(EnvBackend, cfg.Backend)
	cfg.LogLevel = getEnv(EnvLogLevel, cfg.LogLevel)
	cfg.Timezone = getEnv(EnvTimezone, cfg.Timezone)
	cfg.GeminiAPIKey = getEnv(EnvGemini, cfg.GeminiAPIKey)
	if v := os.Getenv(EnvDebounce); v != "" {
		d, err := parseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", EnvDebounce, err)
		}
		cfg.Debounce = d
	}
	return cfg, nil
}

// Validate checks the values of the configuration.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendFile, BackendSQLite:
	default:
		return fmt.Errorf("unknown backend %q, want %s or %s", c.Backend, BackendFile, BackendSQLite)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	if c.Debounce < 0 {
		return fmt.Errorf("negative debounce %v", c.Debounce)
	}
	if c.DataDir == "" {
		return errors.New("empty data directory")
	}
	_, err := c.Location()
	return err
}

// Location returns the time zone in which days are counted.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone: %w", err)
	}
	return loc, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parseDuration accepts a Go duration or a number of milliseconds.
func parseDuration(s string) (time.Duration, error) {
	if ms, err := strconv.Atoi(s); err == nil {
		return time.Duration(ms) * time.Millisecond, nil
	}
	return time.ParseDuration(s)
}
