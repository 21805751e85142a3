// Package tag models release tags of the form <package>-<version>-<release>.
// The release counter is persisted in version control as a tag per packaging
// attempt; the next counter for a version is derived from the existing tag
// set by integer comparison over parsed records, never by string sorting.
package tag

import (
	"fmt"
	"strconv"
	"strings"
)

// Tag is a parsed release tag record.
type Tag struct {
	Package string
	Version string
	Release int
}

// String renders the tag in its canonical <package>-<version>-<release> form.
func (t Tag) String() string {
	return fmt.Sprintf("%s-%s-%d", t.Package, t.Version, t.Release)
}

// ValidationError indicates a tag that matches the package/version prefix
// but carries a non-numeric release suffix. This is fatal: a malformed tag
// in the release namespace means the counter can no longer be trusted.
type ValidationError struct {
	Tag    string
	Suffix string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("tag %q has non-numeric release suffix %q", e.Tag, e.Suffix)
}

// Parse attempts to parse name as a release tag for the given package and
// version. The second return value reports whether the tag belongs to that
// package/version at all; a matching tag with a bad suffix returns a
// *ValidationError.
func Parse(name, pkg, version string) (Tag, bool, error) {
	prefix := pkg + "-" + version + "-"
	if !strings.HasPrefix(name, prefix) {
		return Tag{}, false, nil
	}

	suffix := strings.TrimPrefix(name, prefix)
	release, err := strconv.Atoi(suffix)
	if err != nil || release < 0 {
		return Tag{}, true, &ValidationError{Tag: name, Suffix: suffix}
	}

	return Tag{Package: pkg, Version: version, Release: release}, true, nil
}

// NextRelease computes the next release counter for pkg/version from the
// existing tag names. Returns 1 when no tag matches, otherwise the highest
// existing counter plus one. The result is independent of the iteration
// order of names.
func NextRelease(names []string, pkg, version string) (int, error) {
	highest := 0
	found := false

	for _, name := range names {
		t, matched, err := Parse(name, pkg, version)
		if err != nil {
			return 0, err
		}
		if !matched {
			continue
		}
		found = true
		if t.Release > highest {
			highest = t.Release
		}
	}

	if !found {
		return 1, nil
	}
	return highest + 1, nil
}

// ForVersion returns the parsed release tags for pkg/version, in the order
// the names were given. Malformed tags in the namespace are an error.
func ForVersion(names []string, pkg, version string) ([]Tag, error) {
	var tags []Tag
	for _, name := range names {
		t, matched, err := Parse(name, pkg, version)
		if err != nil {
			return nil, err
		}
		if matched {
			tags = append(tags, t)
		}
	}
	return tags, nil
}
