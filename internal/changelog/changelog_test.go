package changelog

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLatestVersion(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		changelog string
		pkg       string
		want      string
		wantErr   bool
	}{
		"single entry": {
			changelog: "pkg (1.2.3) focal; urgency=medium\n\n  * Initial release\n",
			pkg:       "pkg",
			want:      "1.2.3",
		},
		"first match wins over later entries": {
			changelog: strings.Join([]string{
				"pkg (2.0.0) focal; urgency=medium",
				"",
				"  * New major release",
				"",
				"pkg (1.9.9) focal; urgency=medium",
				"",
				"  * Old release",
			}, "\n"),
			pkg:  "pkg",
			want: "2.0.0",
		},
		"package name with dashes": {
			changelog: "system76-power (1.1.17) focal; urgency=medium\n",
			pkg:       "system76-power",
			want:      "1.1.17",
		},
		"other package entries are skipped": {
			changelog: strings.Join([]string{
				"other-pkg (9.9.9) focal; urgency=medium",
				"pkg (1.0.0) focal; urgency=medium",
			}, "\n"),
			pkg:  "pkg",
			want: "1.0.0",
		},
		"two-component version does not match": {
			changelog: "pkg (1.2) focal; urgency=medium\n",
			pkg:       "pkg",
			wantErr:   true,
		},
		"entry in middle of line does not match": {
			changelog: "  see pkg (1.2.3) for details\n",
			pkg:       "pkg",
			wantErr:   true,
		},
		"empty changelog": {
			changelog: "",
			pkg:       "pkg",
			wantErr:   true,
		},
		"no entry for package": {
			changelog: "another (1.0.0) focal; urgency=medium\n",
			pkg:       "pkg",
			wantErr:   true,
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := LatestVersion(strings.NewReader(tt.changelog), tt.pkg)
			if tt.wantErr {
				require.Error(t, err)
				var perr *ParseError
				assert.True(t, errors.As(err, &perr))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLatestVersionFile(t *testing.T) {
	t.Parallel()

	t.Run("reads version from file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "changelog")
		require.NoError(t, os.WriteFile(path, []byte("pkg (3.1.4) focal; urgency=medium\n"), 0o644))

		got, err := LatestVersionFile(path, "pkg")
		require.NoError(t, err)
		assert.Equal(t, "3.1.4", got)
	})

	t.Run("missing file is a parse error", func(t *testing.T) {
		t.Parallel()

		_, err := LatestVersionFile(filepath.Join(t.TempDir(), "nope"), "pkg")
		require.Error(t, err)

		var perr *ParseError
		require.True(t, errors.As(err, &perr))
		assert.Contains(t, perr.Path, "nope")
	})

	t.Run("parse error carries path", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "changelog")
		require.NoError(t, os.WriteFile(path, []byte("other (1.0.0) focal\n"), 0o644))

		_, err := LatestVersionFile(path, "pkg")
		var perr *ParseError
		require.True(t, errors.As(err, &perr))
		assert.Equal(t, path, perr.Path)
		assert.Equal(t, "pkg", perr.Package)
	})
}
