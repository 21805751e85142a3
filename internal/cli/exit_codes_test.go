package cli

import (
	"fmt"
	"testing"

	"github.com/ariel-frischer/copr-release/internal/changelog"
	"github.com/ariel-frischer/copr-release/internal/copr"
	"github.com/ariel-frischer/copr-release/internal/errors"
	"github.com/ariel-frischer/copr-release/internal/gitrepo"
	"github.com/ariel-frischer/copr-release/internal/srpm"
	"github.com/ariel-frischer/copr-release/internal/tag"
	"github.com/stretchr/testify/assert"
)

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err  error
		want int
	}{
		"nil error is success": {
			err:  nil,
			want: ExitSuccess,
		},
		"missing changelog entry": {
			err:  &changelog.ParseError{Package: "system76-power", Path: "debian/changelog"},
			want: ExitMissingChangelog,
		},
		"malformed tag suffix": {
			err:  &tag.ValidationError{Tag: "system76-power-1.2.3-rc1", Suffix: "rc1"},
			want: ExitMalformedTag,
		},
		"build failure": {
			err:  &srpm.BuildError{ExitCode: 1},
			want: ExitBuildFailed,
		},
		"submission failure": {
			err:  &copr.SubmitError{Project: "user/proj", ExitCode: 1},
			want: ExitSubmitFailed,
		},
		"push failure": {
			err:  &gitrepo.PushError{Remote: "origin"},
			want: ExitPushFailed,
		},
		"explicit exit error wins": {
			err:  &ExitError{Code: ExitInvalidArguments, Err: fmt.Errorf("bad shell")},
			want: ExitInvalidArguments,
		},
		"wrapped typed error still maps": {
			err:  fmt.Errorf("step failed: %w", &srpm.BuildError{ExitCode: 2}),
			want: ExitBuildFailed,
		},
		"argument cli error": {
			err:  errors.NewArgumentError("unknown shell", "use bash, zsh, or fish"),
			want: ExitInvalidArguments,
		},
		"config cli error": {
			err:  errors.NewConfigError("package is required", "set package in config"),
			want: ExitInvalidArguments,
		},
		"unknown error is a general failure, not missing changelog": {
			err:  fmt.Errorf("fetching from remote \"origin\": connection reset"),
			want: ExitGeneralFailure,
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestExitError_Unwrap(t *testing.T) {
	t.Parallel()

	inner := fmt.Errorf("inner")
	err := &ExitError{Code: ExitInvalidArguments, Err: inner}
	assert.Equal(t, "inner", err.Error())
	assert.Equal(t, inner, err.Unwrap())

	bare := NewExitError(ExitBuildFailed)
	assert.Equal(t, "exit", bare.Error())
	assert.Nil(t, bare.Unwrap())
}

func TestCategoryFor(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		err  error
		want errors.ErrorCategory
	}{
		"changelog error is resolution": {
			err:  &changelog.ParseError{Package: "p"},
			want: errors.Resolution,
		},
		"build error is packaging": {
			err:  &srpm.BuildError{ExitCode: 1},
			want: errors.Packaging,
		},
		"submit error is remote": {
			err:  &copr.SubmitError{Project: "p"},
			want: errors.Remote,
		},
		"push error is remote": {
			err:  &gitrepo.PushError{Remote: "origin"},
			want: errors.Remote,
		},
		"argument exit error is argument": {
			err:  &ExitError{Code: ExitInvalidArguments},
			want: errors.Argument,
		},
		"unknown error is runtime": {
			err:  fmt.Errorf("write pkg.spec: permission denied"),
			want: errors.Runtime,
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, categoryFor(tt.err))
		})
	}
}
