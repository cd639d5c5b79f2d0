// Package config provides XDG path helpers and the persisted settings file.
package config

import (
	"os"
	"path/filepath"
)

const appDir = "wastelandhub"

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".config")
}

// XDGDataHome returns the XDG data home or a default fallback.
func XDGDataHome() string {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".local", "share")
}

// XDGStateHome returns the XDG state home or a default fallback.
func XDGStateHome() string {
	if v := os.Getenv("XDG_STATE_HOME"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, ".local", "state")
}

// Dir returns the configuration directory.
func Dir() string {
	return filepath.Join(XDGConfigHome(), appDir)
}

// DataDir returns the data directory.
func DataDir() string {
	return filepath.Join(XDGDataHome(), appDir)
}

// DefaultConfigPath returns the default JSON settings path.
func DefaultConfigPath() string {
	return filepath.Join(Dir(), "config.json")
}

// DefaultCatalogPath returns the optional TOML log catalog path.
func DefaultCatalogPath() string {
	return filepath.Join(Dir(), "logs.toml")
}

// DefaultDBPath returns the default path for the SQLite database.
func DefaultDBPath() string {
	return filepath.Join(DataDir(), "wastelandhub.db")
}

// DefaultLogPath returns the default diagnostic log file path.
func DefaultLogPath() string {
	return filepath.Join(XDGStateHome(), appDir, "wastelandhub.log")
}
