// Package history records past release submissions in a YAML file so the
// history command can show what was shipped when.
package history

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultMaxEntries is the pruning limit applied when no limit is configured.
const DefaultMaxEntries = 500

// Entry is one recorded release submission.
type Entry struct {
	Package     string    `yaml:"package"`
	Version     string    `yaml:"version"`
	Release     int       `yaml:"release"`
	Tag         string    `yaml:"tag"`
	Artifact    string    `yaml:"artifact,omitempty"`
	Project     string    `yaml:"project,omitempty"`
	SubmittedAt time.Time `yaml:"submitted_at"`
}

// Load reads the history file at path. A missing file is an empty history.
func Load(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading history file: %w", err)
	}

	var entries []Entry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parsing history file: %w", err)
	}
	return entries, nil
}

// Append adds an entry to the history file, pruning the oldest entries when
// maxEntries is exceeded. The parent directory is created as needed.
func Append(path string, entry Entry, maxEntries int) error {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}

	entries, err := Load(path)
	if err != nil {
		return err
	}

	entries = append(entries, entry)
	if len(entries) > maxEntries {
		entries = entries[len(entries)-maxEntries:]
	}

	data, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encoding history: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating history directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing history file: %w", err)
	}
	return nil
}
