package release

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ariel-frischer/copr-release/internal/config"
	"github.com/ariel-frischer/copr-release/internal/gitrepo"
	"github.com/ariel-frischer/copr-release/internal/history"
	"github.com/ariel-frischer/copr-release/internal/testutil"
	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testChangelog = "pkg (2.0.0) focal; urgency=medium\n\n  * New release\n"

const testSpec = "Name:       pkg\nVersion:    1.0.0\nRelease:    9%{?dist}\nSummary:    Test package\n"

type fakeBuilder struct {
	artifact string
	err      error
	called   bool
}

func (f *fakeBuilder) Build(_ context.Context, _ string) (string, error) {
	f.called = true
	return f.artifact, f.err
}

type fakeSubmitter struct {
	submitted []string
	err       error
}

func (f *fakeSubmitter) Submit(_ context.Context, srpmPath string) error {
	if f.err != nil {
		return f.err
	}
	f.submitted = append(f.submitted, srpmPath)
	return nil
}

// setupReleaseRepo builds a work repository with changelog and spec file
// committed, plus a local bare repository wired up as origin.
func setupReleaseRepo(t *testing.T) (string, *config.Configuration) {
	t.Helper()

	dir, raw := testutil.InitRepo(t)
	testutil.WriteFile(t, dir, "debian/changelog", testChangelog)
	testutil.WriteFile(t, dir, "pkg.spec", testSpec)
	testutil.CommitAll(t, raw, "add packaging files")

	bareDir := t.TempDir()
	_, err := git.PlainInit(bareDir, true)
	require.NoError(t, err)

	_, err = raw.CreateRemote(&gitconfig.RemoteConfig{
		Name: "origin",
		URLs: []string{bareDir},
	})
	require.NoError(t, err)

	repo, err := gitrepo.Open(dir)
	require.NoError(t, err)

	branch, err := repo.CurrentBranch()
	require.NoError(t, err)
	require.NoError(t, repo.PushContext(context.Background(), "origin", branch, ""))

	cfg := &config.Configuration{
		Package:           "pkg",
		SpecFile:          "pkg.spec",
		Changelog:         "debian/changelog",
		CoprProject:       "me/proj",
		Remote:            "origin",
		Branch:            branch,
		Outdir:            filepath.Join(t.TempDir(), "out"),
		HistoryFile:       filepath.Join(".copr-release", "history.yml"),
		MaxHistoryEntries: 10,
	}
	return dir, cfg
}

func TestPipelineRun(t *testing.T) {
	dir, cfg := setupReleaseRepo(t)

	b := &fakeBuilder{artifact: "/tmp/pkg-2.0.0-1.src.rpm"}
	s := &fakeSubmitter{}
	p := &Pipeline{Config: cfg, RepoDir: dir, Out: os.Stderr, Builder: b, Submitter: s}

	res, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2.0.0", res.Version)
	assert.Equal(t, 1, res.Release)
	assert.True(t, b.called)
	assert.Equal(t, []string{"/tmp/pkg-2.0.0-1.src.rpm"}, s.submitted)

	// Spec file stamped on disk
	data, err := os.ReadFile(filepath.Join(dir, "pkg.spec"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "Version:    2.0.0\n")
	assert.Contains(t, string(data), "Release:    1\n")

	// Tag exists locally
	repo, err := gitrepo.Open(dir)
	require.NoError(t, err)
	names, err := repo.TagNames()
	require.NoError(t, err)
	assert.Contains(t, names, "pkg-2.0.0-1")

	// History recorded
	entries, err := history.Load(filepath.Join(dir, ".copr-release", "history.yml"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "pkg-2.0.0-1", entries[0].Tag)
}

func TestPipelineIncrementsRelease(t *testing.T) {
	dir, cfg := setupReleaseRepo(t)

	run := func() *Resolution {
		p := &Pipeline{
			Config:    cfg,
			RepoDir:   dir,
			Out:       os.Stderr,
			Builder:   &fakeBuilder{artifact: "/tmp/a.src.rpm"},
			Submitter: &fakeSubmitter{},
		}
		res, err := p.Run(context.Background())
		require.NoError(t, err)
		return res
	}

	first := run()
	assert.Equal(t, 1, first.Release)

	second := run()
	assert.Equal(t, "2.0.0", second.Version)
	assert.Equal(t, 2, second.Release)
}

func TestPipelineSubmitFailureLeavesNoTag(t *testing.T) {
	dir, cfg := setupReleaseRepo(t)

	p := &Pipeline{
		Config:    cfg,
		RepoDir:   dir,
		Out:       os.Stderr,
		Builder:   &fakeBuilder{artifact: "/tmp/a.src.rpm"},
		Submitter: &fakeSubmitter{err: errors.New("submission refused")},
	}

	_, err := p.Run(context.Background())
	require.Error(t, err)

	repo, err := gitrepo.Open(dir)
	require.NoError(t, err)
	names, err := repo.TagNames()
	require.NoError(t, err)
	assert.NotContains(t, names, "pkg-2.0.0-1")
}

func TestPipelineBuildFailureStopsBeforeSubmit(t *testing.T) {
	dir, cfg := setupReleaseRepo(t)

	s := &fakeSubmitter{}
	p := &Pipeline{
		Config:    cfg,
		RepoDir:   dir,
		Out:       os.Stderr,
		Builder:   &fakeBuilder{err: errors.New("build exploded")},
		Submitter: s,
	}

	_, err := p.Run(context.Background())
	require.Error(t, err)
	assert.Empty(t, s.submitted)
}

func TestPipelineMissingChangelog(t *testing.T) {
	dir, cfg := setupReleaseRepo(t)
	cfg.Changelog = "debian/nonexistent"

	p := &Pipeline{
		Config:    cfg,
		RepoDir:   dir,
		Out:       os.Stderr,
		Builder:   &fakeBuilder{},
		Submitter: &fakeSubmitter{},
	}

	_, err := p.Run(context.Background())
	require.Error(t, err)
}
