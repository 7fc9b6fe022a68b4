// ABOUTME: Configuration loading and parsing for moodspace
// ABOUTME: Supports YAML or TOML files with environment variable expansion and timezone parsing

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/2389/moodspace/internal/kv"
)

// Config represents the complete moodspace configuration
type Config struct {
	Database DatabaseConfig `yaml:"database" toml:"database"`
	Store    StoreConfig    `yaml:"store" toml:"store"`
	Logging  LoggingConfig  `yaml:"logging" toml:"logging"`
}

// DatabaseConfig holds the key-value backend configuration
type DatabaseConfig struct {
	Driver string `yaml:"driver" toml:"driver"` // sqlite (pure Go) or sqlite3 (cgo)
	Path   string `yaml:"path" toml:"path"`     // file path or ":memory:"
}

// StoreConfig holds table store behaviour
type StoreConfig struct {
	// MaxRows caps every table on create; 0 keeps the default of 7, negative disables
	MaxRows  int    `yaml:"max_rows" toml:"max_rows"`
	Language string `yaml:"language" toml:"language"`

	// Location is resolved from Timezone during Load
	Location *time.Location `yaml:"-" toml:"-"`
	Timezone string         `yaml:"timezone" toml:"timezone"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Driver: kv.DriverModernc,
			Path:   filepath.Join(DataDir(), "moodspace.db"),
		},
		Store: StoreConfig{
			Language: "fr",
			Timezone: "Local",
			Location: time.Local,
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// Load reads a configuration file from the given path and returns a parsed Config.
// Files ending in .toml are decoded as TOML, anything else as YAML.
// Environment variables in the format ${VAR_NAME} are expanded.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the raw content
	expanded := expandEnvVars(string(data))

	cfg := Default()
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.Decode(expanded, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	} else if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.Database.Path = expandHome(cfg.Database.Path)

	if err := parseTimezone(cfg); err != nil {
		return nil, fmt.Errorf("parsing timezone: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault loads path, falling back to Default when the file does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// expandEnvVars replaces ${VAR_NAME} patterns with the corresponding environment variable values.
// If the environment variable is not set, it is replaced with an empty string.
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)

	return re.ReplaceAllStringFunc(s, func(match string) string {
		varName := re.FindStringSubmatch(match)[1]
		return os.Getenv(varName)
	})
}

// expandHome replaces a leading ~/ with the user's home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

// parseTimezone resolves the timezone name into a *time.Location
func parseTimezone(cfg *Config) error {
	switch cfg.Store.Timezone {
	case "", "Local":
		cfg.Store.Location = time.Local
		return nil
	}

	loc, err := time.LoadLocation(cfg.Store.Timezone)
	if err != nil {
		return fmt.Errorf("loading timezone %q: %w", cfg.Store.Timezone, err)
	}
	cfg.Store.Location = loc
	return nil
}

// Validate checks that all required configuration fields are present and valid.
// Returns an error describing the first validation failure encountered.
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case kv.DriverModernc, kv.DriverMattn:
	default:
		return fmt.Errorf("database.driver must be %q or %q, got %q", kv.DriverModernc, kv.DriverMattn, c.Database.Driver)
	}

	if c.Database.Path == "" {
		return fmt.Errorf("database.path is required")
	}

	switch c.Store.Language {
	case "fr", "en":
	default:
		return fmt.Errorf("store.language must be \"fr\" or \"en\", got %q", c.Store.Language)
	}

	switch c.Logging.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("logging.format must be \"text\" or \"json\", got %q", c.Logging.Format)
	}

	return nil
}

// ConfigPath returns the path to the config file.
// Priority: MOODSPACE_CONFIG env var > XDG_CONFIG_HOME/moodspace/config.yaml > ~/.config/moodspace/config.yaml
func ConfigPath() string {
	if envPath := os.Getenv("MOODSPACE_CONFIG"); envPath != "" {
		return envPath
	}

	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "config.yaml" // fallback
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	return filepath.Join(configDir, "moodspace", "config.yaml")
}

// DataDir returns the moodspace data directory.
// Priority: XDG_DATA_HOME/moodspace > ~/.local/share/moodspace
func DataDir() string {
	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "data" // fallback
		}
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	return filepath.Join(dataDir, "moodspace")
}
