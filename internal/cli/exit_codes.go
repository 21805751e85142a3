package cli

import (
	stderrors "errors"

	"github.com/ariel-frischer/copr-release/internal/changelog"
	"github.com/ariel-frischer/copr-release/internal/copr"
	"github.com/ariel-frischer/copr-release/internal/errors"
	"github.com/ariel-frischer/copr-release/internal/gitrepo"
	"github.com/ariel-frischer/copr-release/internal/srpm"
	"github.com/ariel-frischer/copr-release/internal/tag"
)

// Exit codes for the copr-release CLI. All failures are fatal and
// non-retryable; the codes support scripting around the tool.
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitMissingChangelog indicates the changelog is missing or carries no
	// entry for the package
	ExitMissingChangelog = 1

	// ExitMalformedTag indicates a release tag with a non-numeric counter suffix
	ExitMalformedTag = 2

	// ExitInvalidArguments indicates invalid command arguments
	ExitInvalidArguments = 3

	// ExitBuildFailed indicates the source package build failed
	ExitBuildFailed = 4

	// ExitSubmitFailed indicates the remote build submission failed
	ExitSubmitFailed = 5

	// ExitPushFailed indicates pushing commits or tags to the remote failed
	ExitPushFailed = 6

	// ExitGeneralFailure indicates a failure outside the enumerated cases,
	// such as a fetch error or an unwritable spec file
	ExitGeneralFailure = 7
)

// ExitError carries an explicit process exit code through the command layer.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return "exit"
}

func (e *ExitError) Unwrap() error { return e.Err }

// NewExitError creates an ExitError with the given code.
func NewExitError(code int) *ExitError {
	return &ExitError{Code: code}
}

// ExitCode maps an error returned by Execute to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if stderrors.As(err, &exitErr) {
		return exitErr.Code
	}

	var parseErr *changelog.ParseError
	if stderrors.As(err, &parseErr) {
		return ExitMissingChangelog
	}

	var tagErr *tag.ValidationError
	if stderrors.As(err, &tagErr) {
		return ExitMalformedTag
	}

	var buildErr *srpm.BuildError
	if stderrors.As(err, &buildErr) {
		return ExitBuildFailed
	}

	var submitErr *copr.SubmitError
	if stderrors.As(err, &submitErr) {
		return ExitSubmitFailed
	}

	var pushErr *gitrepo.PushError
	if stderrors.As(err, &pushErr) {
		return ExitPushFailed
	}

	if cliErr := errors.AsCLIError(err); cliErr != nil {
		switch cliErr.Category {
		case errors.Argument, errors.Configuration:
			return ExitInvalidArguments
		}
	}

	return ExitGeneralFailure
}

// categoryFor picks the error category for terminal output.
func categoryFor(err error) errors.ErrorCategory {
	switch ExitCode(err) {
	case ExitMissingChangelog, ExitMalformedTag:
		return errors.Resolution
	case ExitInvalidArguments:
		return errors.Argument
	case ExitBuildFailed:
		return errors.Packaging
	case ExitSubmitFailed, ExitPushFailed:
		return errors.Remote
	default:
		return errors.Runtime
	}
}
