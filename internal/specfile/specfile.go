// Package specfile rewrites version metadata in an RPM spec file. The file
// is parsed into an in-memory line list; only the targeted field lines are
// rewritten and every other line is preserved verbatim, so repeated stamping
// with the same values is byte-identical outside the two target lines.
package specfile

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// fieldPattern matches an RPM preamble field line such as "Version:    1.2.3".
// Capture groups: field name, whitespace between colon and value, value.
var fieldPattern = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9_]*):(\s*)(.*)$`)

// File is a spec file loaded into memory for field rewriting.
type File struct {
	path  string
	lines []string
}

// Load reads the spec file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading spec file: %w", err)
	}
	return &File{
		path:  path,
		lines: strings.Split(string(data), "\n"),
	}, nil
}

// SetField rewrites the first preamble line for the named field, keeping the
// original whitespace between the colon and the value. Returns an error if
// the field is not present.
func (f *File) SetField(name, value string) error {
	for i, line := range f.lines {
		m := fieldPattern.FindStringSubmatch(line)
		if m == nil || m[1] != name {
			continue
		}
		padding := m[2]
		if padding == "" {
			padding = " "
		}
		f.lines[i] = name + ":" + padding + value
		return nil
	}
	return fmt.Errorf("field %q not found in %s", name, f.path)
}

// Stamp sets the Version and Release fields to the resolved pair. The spec
// file must carry both fields before any build is attempted, otherwise the
// package would be built with stale metadata.
func (f *File) Stamp(version string, release int) error {
	if err := f.SetField("Version", version); err != nil {
		return err
	}
	return f.SetField("Release", strconv.Itoa(release))
}

// Content returns the current in-memory content of the file.
func (f *File) Content() string {
	return strings.Join(f.lines, "\n")
}

// Save writes the file back to its original path.
func (f *File) Save() error {
	if err := os.WriteFile(f.path, []byte(f.Content()), 0o644); err != nil {
		return fmt.Errorf("writing spec file: %w", err)
	}
	return nil
}
