package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir moves into a temp directory for the duration of the test so project
// config lookups see a clean tree.
func chdir(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(orig) })
	return dir
}

// isolateUserConfig points the user config dir at an empty temp dir.
func isolateUserConfig(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
}

func TestLoadDefaults(t *testing.T) {
	chdir(t)
	isolateUserConfig(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "system76-power", cfg.Package)
	assert.Equal(t, "system76-power.spec", cfg.SpecFile)
	assert.Equal(t, "debian/changelog", cfg.Changelog)
	assert.Equal(t, "origin", cfg.Remote)
	assert.Equal(t, "master", cfg.Branch)
	assert.Equal(t, "rpkg", cfg.RpkgCmd)
	assert.Equal(t, "copr-cli", cfg.CoprCmd)
	assert.Equal(t, 500, cfg.MaxHistoryEntries)
	assert.Empty(t, cfg.CoprProject)
}

func TestLoadProjectConfig(t *testing.T) {
	dir := chdir(t)
	isolateUserConfig(t)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".copr-release"), 0o755))
	content := "package: mypkg\ncopr_project: me/myproject\nbranch: main\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".copr-release", "config.yml"), []byte(content), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "mypkg", cfg.Package)
	assert.Equal(t, "me/myproject", cfg.CoprProject)
	assert.Equal(t, "main", cfg.Branch)
	// Untouched keys keep their defaults
	assert.Equal(t, "origin", cfg.Remote)
}

func TestLoadLegacyJSONConfig(t *testing.T) {
	dir := chdir(t)
	isolateUserConfig(t)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".copr-release"), 0o755))
	content := `{"package": "jsonpkg", "no_wait": true}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".copr-release", "config.json"), []byte(content), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "jsonpkg", cfg.Package)
	assert.True(t, cfg.NoWait)
}

func TestLoadExplicitConfigPath(t *testing.T) {
	dir := chdir(t)
	isolateUserConfig(t)

	path := filepath.Join(dir, "custom.yml")
	require.NoError(t, os.WriteFile(path, []byte("package: custompkg\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "custompkg", cfg.Package)
}

func TestEnvironmentOverridesProject(t *testing.T) {
	dir := chdir(t)
	isolateUserConfig(t)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".copr-release"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".copr-release", "config.yml"),
		[]byte("copr_project: file/project\n"), 0o644))

	t.Setenv("COPR_RELEASE_COPR_PROJECT", "env/project")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "env/project", cfg.CoprProject)
}

func TestLoadConfigTemplate(t *testing.T) {
	dir := chdir(t)
	isolateUserConfig(t)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".copr-release"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".copr-release", "config.yml"),
		[]byte(GetDefaultConfigTemplate()), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)

	// The template ships every key; loading it must reproduce a working
	// configuration, not clobber computed defaults.
	assert.Equal(t, "system76-power", cfg.Package)
	assert.Equal(t, filepath.Join(os.TempDir(), "copr-release"), cfg.Outdir)
	assert.NoError(t, cfg.Validate())
}

func TestLoadEmptyOutdirFallsBackToTempDir(t *testing.T) {
	dir := chdir(t)
	isolateUserConfig(t)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".copr-release"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".copr-release", "config.yml"),
		[]byte("outdir: \"\"\n"), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(os.TempDir(), "copr-release"), cfg.Outdir)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	t.Run("defaults validate for resolution", func(t *testing.T) {
		t.Parallel()

		cfg := &Configuration{Package: "pkg", SpecFile: "pkg.spec", Changelog: "debian/changelog"}
		assert.NoError(t, cfg.Validate())
	})

	t.Run("missing package", func(t *testing.T) {
		t.Parallel()

		cfg := &Configuration{SpecFile: "pkg.spec", Changelog: "debian/changelog"}
		assert.Error(t, cfg.Validate())
	})

	t.Run("release requires copr project", func(t *testing.T) {
		t.Parallel()

		cfg := &Configuration{
			Package:   "pkg",
			SpecFile:  "pkg.spec",
			Changelog: "debian/changelog",
			Remote:    "origin",
			Branch:    "master",
		}
		assert.Error(t, cfg.ValidateForRelease())

		cfg.CoprProject = "me/proj"
		assert.NoError(t, cfg.ValidateForRelease())
	})
}
