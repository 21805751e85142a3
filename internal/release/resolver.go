// Package release implements version/release resolution and the release
// pipeline: resolve, stamp the spec file, commit, build the SRPM, submit to
// COPR, tag, and push. Resolution is pure given the changelog content and
// the tag listing; all side effects live in the pipeline.
package release

import (
	"io"

	"github.com/ariel-frischer/copr-release/internal/changelog"
	"github.com/ariel-frischer/copr-release/internal/tag"
)

// Resolution is a resolved version/release pair for a package.
type Resolution struct {
	Package string
	Version string
	Release int
}

// Tag returns the release tag record for this resolution.
func (r Resolution) Tag() tag.Tag {
	return tag.Tag{Package: r.Package, Version: r.Version, Release: r.Release}
}

// Resolve derives the next version/release pair for pkg from the changelog
// content and the existing tag names. The version is the first (most recent)
// changelog entry for the package; the release counter is one past the
// highest existing tag for that version, or 1 when none exists.
func Resolve(changelogContent io.Reader, tagNames []string, pkg string) (*Resolution, error) {
	version, err := changelog.LatestVersion(changelogContent, pkg)
	if err != nil {
		return nil, err
	}
	return resolveRelease(version, tagNames, pkg)
}

// ResolveFile is Resolve reading the changelog from a file. A missing
// changelog reports the same fatal parse error as a missing entry.
func ResolveFile(changelogPath string, tagNames []string, pkg string) (*Resolution, error) {
	version, err := changelog.LatestVersionFile(changelogPath, pkg)
	if err != nil {
		return nil, err
	}
	return resolveRelease(version, tagNames, pkg)
}

func resolveRelease(version string, tagNames []string, pkg string) (*Resolution, error) {
	rel, err := tag.NextRelease(tagNames, pkg, version)
	if err != nil {
		return nil, err
	}
	return &Resolution{Package: pkg, Version: version, Release: rel}, nil
}
