package config

import (
	"os"
	"path/filepath"
)

// GetDefaultConfigTemplate returns a fully commented config template
// that helps users understand all available options.
func GetDefaultConfigTemplate() string {
	return `# copr-release Configuration
# Values can be overridden via COPR_RELEASE_* environment variables.

# Package settings
package: system76-power                # Package name as used in changelog and release tags
spec_file: system76-power.spec         # RPM spec file to stamp
changelog: debian/changelog            # Debian-style changelog read for the latest version

# Build service settings
copr_project: ""                       # COPR project to submit builds to (required for release)
no_wait: false                         # Return once the build is accepted instead of waiting

# Version control settings
remote: origin                         # Remote release commits and tags are pushed to
branch: master                         # Branch to release from

# External tools
rpkg_cmd: rpkg                         # Source package build tool
copr_cmd: copr-cli                     # Build service submission tool

# Build output
outdir: ""                             # SRPM output directory (empty = system temp dir)
build_timeout: 1800                    # Timeout for rpkg/copr-cli in seconds (0 = no timeout)
keep_artifacts: false                  # Keep the output directory after a successful release
skip_fetch: false                      # Skip the fetch/merge step

# History settings
history_file: .copr-release/history.yml
max_history_entries: 500               # Oldest entries are pruned past this limit
`
}

// GetDefaults returns the default configuration values.
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"package":   "system76-power",
		"spec_file": "system76-power.spec",
		"changelog": "debian/changelog",
		// copr_project has no sensible default; release refuses to run
		// without it.
		"copr_project": "",
		"remote":       "origin",
		"branch":       "master",
		"rpkg_cmd":     "rpkg",
		"copr_cmd":     "copr-cli",
		// outdir: the SRPM build directory. Cleaned after a successful
		// release unless keep_artifacts is set.
		"outdir":         filepath.Join(os.TempDir(), "copr-release"),
		"build_timeout":  1800, // 30 minutes
		"skip_fetch":     false,
		"keep_artifacts": false,
		"no_wait":        false,
		"history_file":   filepath.Join(".copr-release", "history.yml"),
		// max_history_entries: maximum number of release records to retain.
		"max_history_entries": 500,
	}
}
