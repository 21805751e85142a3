// Package config provides hierarchical configuration management for
// copr-release using koanf. Configuration is loaded with priority:
// environment variables > project config (.copr-release/config.yml) >
// user config (~/.config/copr-release/config.yml) > defaults. A legacy
// project-level JSON config (.copr-release/config.json) is still read when
// no YAML config exists.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// envPrefix is the prefix for environment variable overrides,
// e.g. COPR_RELEASE_COPR_PROJECT=szydell/system76.
const envPrefix = "COPR_RELEASE_"

// Configuration represents the copr-release tool configuration.
type Configuration struct {
	// Package is the name of the packaged project as it appears in the
	// changelog and in release tags.
	Package string `koanf:"package"`

	// SpecFile is the path of the RPM spec file to stamp, relative to the
	// repository root.
	SpecFile string `koanf:"spec_file"`

	// Changelog is the path of the Debian-style changelog read for the
	// latest version, relative to the repository root.
	Changelog string `koanf:"changelog"`

	// CoprProject is the COPR project builds are submitted to.
	CoprProject string `koanf:"copr_project"`

	// Remote and Branch name where release commits and tags are pushed.
	Remote string `koanf:"remote"`
	Branch string `koanf:"branch"`

	// RpkgCmd and CoprCmd name the external tools to invoke.
	RpkgCmd string `koanf:"rpkg_cmd"`
	CoprCmd string `koanf:"copr_cmd"`

	// Outdir is the temporary directory the SRPM is built into.
	Outdir string `koanf:"outdir"`

	// BuildTimeout bounds the rpkg and copr-cli invocations, in seconds.
	// 0 means no timeout.
	BuildTimeout int `koanf:"build_timeout"`

	// SkipFetch skips the remote fetch/merge step of the release pipeline.
	SkipFetch bool `koanf:"skip_fetch"`

	// KeepArtifacts leaves the build output directory in place after a
	// successful release instead of removing it.
	KeepArtifacts bool `koanf:"keep_artifacts"`

	// NoWait passes --nowait to the submission tool.
	NoWait bool `koanf:"no_wait"`

	// HistoryFile is where release submissions are recorded.
	HistoryFile string `koanf:"history_file"`

	// MaxHistoryEntries caps the history file; oldest entries are pruned.
	MaxHistoryEntries int `koanf:"max_history_entries"`
}

// Load loads configuration from user, project, and environment sources.
// Priority: Environment variables > Project config > User config > Defaults.
// projectConfigPath overrides the project config location when non-empty.
func Load(projectConfigPath string) (*Configuration, error) {
	k := koanf.New(".")

	for key, value := range GetDefaults() {
		k.Set(key, value)
	}

	if err := loadUserConfig(k); err != nil {
		return nil, err
	}

	if err := loadProjectConfig(k, projectConfigPath); err != nil {
		return nil, err
	}

	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling configuration: %w", err)
	}

	// An empty outdir means the system temp directory, as the config
	// template documents.
	if cfg.Outdir == "" {
		cfg.Outdir = filepath.Join(os.TempDir(), "copr-release")
	}
	return &cfg, nil
}

// loadUserConfig loads the user-level YAML config if it exists.
func loadUserConfig(k *koanf.Koanf) error {
	path, err := UserConfigPath()
	if err != nil {
		return nil
	}
	if !fileExists(path) {
		return nil
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("loading user config %s: %w", path, err)
	}
	return nil
}

// loadProjectConfig loads the project-level config. YAML is preferred; the
// legacy JSON location is read only when no YAML config exists.
func loadProjectConfig(k *koanf.Koanf, override string) error {
	if override != "" {
		if err := k.Load(file.Provider(override), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config %s: %w", override, err)
		}
		return nil
	}

	yamlPath := ProjectConfigPath()
	if fileExists(yamlPath) {
		if err := k.Load(file.Provider(yamlPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading project config %s: %w", yamlPath, err)
		}
		return nil
	}

	jsonPath := LegacyProjectConfigPath()
	if fileExists(jsonPath) {
		if err := k.Load(file.Provider(jsonPath), json.Parser()); err != nil {
			return fmt.Errorf("loading legacy project config %s: %w", jsonPath, err)
		}
	}
	return nil
}

// loadEnvironmentConfig applies COPR_RELEASE_* environment overrides.
func loadEnvironmentConfig(k *koanf.Koanf) error {
	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil)
	if err != nil {
		return fmt.Errorf("loading environment config: %w", err)
	}
	return nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
