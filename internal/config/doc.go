// Package config handles configuration loading for moodspace.
//
// # Overview
//
// Configuration is loaded from a YAML or TOML file with environment variable
// expansion. A missing file is not an error: LoadOrDefault returns Default.
//
// # Configuration File
//
// Default locations (in order):
//
//  1. Path from MOODSPACE_CONFIG environment variable
//  2. $XDG_CONFIG_HOME/moodspace/config.yaml
//  3. ~/.config/moodspace/config.yaml
//
// Files ending in .toml are decoded as TOML.
//
// # Environment Variable Expansion
//
// Configuration values can reference environment variables:
//
//	database:
//	  path: "${MOODSPACE_DB}"
//
// Unset variables expand to the empty string. A leading ~/ in
// database.path is replaced with the home directory.
//
// # Example
//
//	database:
//	  driver: "sqlite"          # or "sqlite3" for the cgo driver
//	  path: "~/.local/share/moodspace/moodspace.db"
//
//	store:
//	  max_rows: 7               # 0 keeps the default, negative disables the cap
//	  language: "fr"            # fr or en
//	  timezone: "Europe/Paris"  # IANA name or Local
//
//	logging:
//	  level: "warn"
//	  format: "text"
package config
