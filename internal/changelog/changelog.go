// Package changelog extracts the latest declared package version from a
// Debian-style changelog file. Entries are expected in strict
// reverse-chronological order; the first line matching the package name is
// taken as the most recent version. The parser never compares versions
// semantically across entries, it only validates the one it extracts.
package changelog

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"

	"github.com/Masterminds/semver/v3"
)

// ParseError indicates that no changelog entry for the package could be
// found, or that the changelog itself is missing or unreadable.
type ParseError struct {
	Package string
	Path    string
	Err     error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("reading changelog %s: %v", e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("no changelog entry for %q in %s", e.Package, e.Path)
	}
	return fmt.Sprintf("no changelog entry for %q", e.Package)
}

func (e *ParseError) Unwrap() error { return e.Err }

// entryPattern builds the line pattern for a package's changelog entries,
// e.g. "system76-power (1.2.3) ...". Only MAJOR.MINOR.PATCH versions match.
func entryPattern(pkg string) *regexp.Regexp {
	return regexp.MustCompile(`^` + regexp.QuoteMeta(pkg) + `\s+\((\d+\.\d+\.\d+)\)`)
}

// LatestVersion scans the changelog for the first entry matching pkg and
// returns its version string. The first match is assumed to be the most
// recent entry (entries must be maintained newest-first).
func LatestVersion(r io.Reader, pkg string) (string, error) {
	pattern := entryPattern(pkg)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		m := pattern.FindStringSubmatch(scanner.Text())
		if m == nil {
			continue
		}
		version := m[1]
		if _, err := semver.StrictNewVersion(version); err != nil {
			return "", fmt.Errorf("validating version %q: %w", version, err)
		}
		return version, nil
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("scanning changelog: %w", err)
	}

	return "", &ParseError{Package: pkg}
}

// LatestVersionFile reads the changelog at path and returns the latest
// version declared for pkg. A missing or unreadable file is a *ParseError,
// matching the fatal missing-changelog behavior of the release pipeline.
func LatestVersionFile(path, pkg string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", &ParseError{Package: pkg, Path: path, Err: err}
	}
	defer f.Close()

	version, err := LatestVersion(f, pkg)
	if err != nil {
		if perr, ok := err.(*ParseError); ok {
			perr.Path = path
		}
		return "", err
	}
	return version, nil
}
