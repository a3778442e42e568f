// Package config provides XDG path helpers.
package config

import (
	"os"
	"path/filepath"
)

const appName = "typoeq"

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

// DefaultDictionaryPath returns dict.xdxf in the working directory.
func DefaultDictionaryPath() string {
	wd, err := os.Getwd()
	if err != nil || wd == "" {
		return "dict.xdxf"
	}
	return filepath.Join(wd, "dict.xdxf")
}

// DefaultProfilePath returns the default profile file path.
func DefaultProfilePath() string {
	return filepath.Join(XDGDataHome(), appName, "profiles.txt")
}

// DefaultDBPath returns the default path for the SQLite database.
func DefaultDBPath() string {
	return filepath.Join(XDGDataHome(), appName, appName+".db")
}

// DefaultLogPath returns the debug log path.
func DefaultLogPath() string {
	return filepath.Join(XDGStateHome(), appName, "debug.log")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), appName, "config.toml")
}
