// ABOUTME: Tests for configuration loading and parsing
// ABOUTME: Covers YAML and TOML loading, env var expansion, defaults and validation

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
database:
  driver: "sqlite3"
  path: "./test.db"

store:
  max_rows: 10
  timezone: "Europe/Paris"
  language: "en"

logging:
  level: "debug"
  format: "json"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "sqlite3", cfg.Database.Driver)
	assert.Equal(t, "./test.db", cfg.Database.Path)
	assert.Equal(t, 10, cfg.Store.MaxRows)
	assert.Equal(t, "en", cfg.Store.Language)
	require.NotNil(t, cfg.Store.Location)
	assert.Equal(t, "Europe/Paris", cfg.Store.Location.String())
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_TOML(t *testing.T) {
	path := writeConfig(t, "config.toml", `
[database]
path = "/tmp/moodspace.db"

[store]
max_rows = -1
timezone = "UTC"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Driver, "driver keeps its default")
	assert.Equal(t, "/tmp/moodspace.db", cfg.Database.Path)
	assert.Equal(t, -1, cfg.Store.MaxRows)
	assert.Equal(t, time.UTC, cfg.Store.Location)
	assert.Equal(t, "fr", cfg.Store.Language)
}

func TestLoad_DefaultsFillMissingSections(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
logging:
  level: "info"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.True(t, strings.HasSuffix(cfg.Database.Path, "moodspace.db"))
	assert.Equal(t, time.Local, cfg.Store.Location)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestLoad_EnvVarExpansion(t *testing.T) {
	t.Setenv("MOODSPACE_TEST_DB", "/var/tmp/mood.db")
	t.Setenv("MOODSPACE_TEST_TZ", "Asia/Tokyo")

	path := writeConfig(t, "config.yaml", `
database:
  path: "${MOODSPACE_TEST_DB}"
store:
  timezone: "${MOODSPACE_TEST_TZ}"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/var/tmp/mood.db", cfg.Database.Path)
	assert.Equal(t, "Asia/Tokyo", cfg.Store.Location.String())
}

func TestLoad_HomeExpansion(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := writeConfig(t, "config.yaml", `
database:
  path: "~/data/mood.db"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "data", "mood.db"), cfg.Database.Path)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadOrDefault_MissingFile(t *testing.T) {
	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default().Database.Driver, cfg.Database.Driver)
	assert.Equal(t, "fr", cfg.Store.Language)
}

func TestLoadOrDefault_InvalidFileStillFails(t *testing.T) {
	path := writeConfig(t, "config.yaml", "database: [not, a, map")

	_, err := LoadOrDefault(path)
	assert.Error(t, err)
}

func TestLoad_InvalidTimezone(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
store:
  timezone: "Mars/Olympus_Mons"
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timezone")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"defaults", func(c *Config) {}, ""},
		{"unknown driver", func(c *Config) { c.Database.Driver = "postgres" }, "database.driver"},
		{"empty path", func(c *Config) { c.Database.Path = "" }, "database.path"},
		{"unknown language", func(c *Config) { c.Store.Language = "de" }, "store.language"},
		{"unknown log format", func(c *Config) { c.Logging.Format = "xml" }, "logging.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("MOODSPACE_A", "alpha")

	assert.Equal(t, "x-alpha-y", expandEnvVars("x-${MOODSPACE_A}-y"))
	assert.Equal(t, "x--y", expandEnvVars("x-${MOODSPACE_UNSET_VAR}-y"))
	assert.Equal(t, "no vars", expandEnvVars("no vars"))
}

func TestConfigPath(t *testing.T) {
	t.Setenv("MOODSPACE_CONFIG", "/etc/moodspace.yaml")
	assert.Equal(t, "/etc/moodspace.yaml", ConfigPath())

	t.Setenv("MOODSPACE_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	assert.Equal(t, filepath.Join("/xdg", "moodspace", "config.yaml"), ConfigPath())
}

func TestDataDir(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/xdg-data")
	assert.Equal(t, filepath.Join("/xdg-data", "moodspace"), DataDir())
}
