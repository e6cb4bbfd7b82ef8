// Package config loads the user's settings file and resolves XDG paths.
package config

import (
	"os"
	"path/filepath"
)

const appDir = "tablestar"

// XDGConfigHome returns $XDG_CONFIG_HOME or ~/.config.
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

// XDGDataHome returns $XDG_DATA_HOME or ~/.local/share.
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

// DefaultConfigPath returns $TABLESTAR_CONFIG, falling back to
// config.toml under the XDG config home.
func DefaultConfigPath() string {
	if p := os.Getenv("TABLESTAR_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(XDGConfigHome(), appDir, "config.toml")
}

// DefaultDBPath returns $TABLESTAR_DB, falling back to tablestar.db under
// the XDG data home.
func DefaultDBPath() string {
	if p := os.Getenv("TABLESTAR_DB"); p != "" {
		return p
	}
	return filepath.Join(XDGDataHome(), appDir, "tablestar.db")
}
