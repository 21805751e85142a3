package config

import (
	"os"
	"path/filepath"
)

// UserConfigPath returns the path to the user-level config file.
// This follows the XDG Base Directory Specification:
// - Linux: ~/.config/copr-release/config.yml
// - macOS: ~/Library/Application Support/copr-release/config.yml
//
// If XDG_CONFIG_HOME is set, it will be respected on Linux.
func UserConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "copr-release", "config.yml"), nil
}

// ProjectConfigPath returns the path to the project-level config file.
// This is always .copr-release/config.yml relative to the current directory.
func ProjectConfigPath() string {
	return filepath.Join(".copr-release", "config.yml")
}

// ProjectConfigDir returns the path to the project-level config directory.
func ProjectConfigDir() string {
	return ".copr-release"
}

// LegacyProjectConfigPath returns the path to the legacy project-level JSON
// config file, read only when no YAML config exists.
func LegacyProjectConfigPath() string {
	return filepath.Join(".copr-release", "config.json")
}
