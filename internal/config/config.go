package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvPrefix prefixes every environment override, e.g. FENCING_TIMEOUT.
	EnvPrefix = "FENCING_"
	// FileEnv names the environment variable holding the YAML config path.
	FileEnv = "FENCING_CONFIG"
)

var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoadConfig    = errors.New("load config failed")
)

// Config holds process settings.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `koanf:"log_level"`
	// LogFormat is json or console.
	LogFormat string `koanf:"log_format"`

	UserAgent string        `koanf:"user_agent"`
	Timeout   time.Duration `koanf:"timeout"`

	// MaxConcurrent bounds parallel category fetches when crawling an event.
	MaxConcurrent int `koanf:"max_concurrent"`

	// DataDir holds the results database unless DBPath is set.
	DataDir string `koanf:"data_dir"`
	DBPath  string `koanf:"db_path"`

	// OverrideClub makes imports record the country in place of the club.
	OverrideClub bool `koanf:"override_club"`
}

// New returns a Config with defaults applied.
func New() *Config {
	return &Config{
		LogLevel:      "info",
		LogFormat:     "json",
		UserAgent:     "fencing-results/1.0 (github.com/pfrederiksen/fencing-results)",
		Timeout:       30 * time.Second,
		MaxConcurrent: 4,
		DataDir:       "~/.fencing-results",
	}
}

// Load builds a Config from defaults, the optional YAML file and the
// environment.
func Load(_ context.Context) (*Config, error) {
	k := koanf.New(".")

	if path := os.Getenv(FileEnv); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: reading %s: %v", ErrLoadConfig, path, err)
		}
	}

	// FENCING_DB_PATH -> db_path
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: reading environment: %v", ErrLoadConfig, err)
	}

	cfg := *New()
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports settings that cannot work.
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive", ErrInvalidConfig)
	}
	if c.MaxConcurrent < 1 {
		return fmt.Errorf("%w: max_concurrent must be at least 1", ErrInvalidConfig)
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("%w: log_format must be json or console, got %q", ErrInvalidConfig, c.LogFormat)
	}
	return nil
}

// DatabasePath returns DBPath, or results.db under DataDir, with a leading
// ~/ expanded to the home directory.
func (c *Config) DatabasePath() (string, error) {
	path := c.DBPath
	if path == "" {
		path = filepath.Join(c.DataDir, "results.db")
	}
	return ExpandHome(path)
}

// ExpandHome replaces a leading ~/ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, path[2:]), nil
}
