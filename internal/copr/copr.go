// Package copr submits source packages to a COPR project via copr-cli.
// The build service is modeled only as "submit artifact, report exit code";
// build monitoring stays with copr-cli itself.
package copr

import (
	"context"
	"fmt"
	"io"
	"os/exec"
)

// SubmitError indicates that the remote build submission failed.
type SubmitError struct {
	Project  string
	ExitCode int
	Err      error
}

func (e *SubmitError) Error() string {
	if e.ExitCode > 0 {
		return fmt.Sprintf("submitting build to %q failed with exit code %d", e.Project, e.ExitCode)
	}
	return fmt.Sprintf("submitting build to %q failed: %v", e.Project, e.Err)
}

func (e *SubmitError) Unwrap() error { return e.Err }

// Client submits builds to a COPR project.
type Client struct {
	// Command is the submission tool to invoke (default "copr-cli").
	Command string
	// Project is the COPR project to submit to, e.g. "szydell/system76".
	Project string
	// NoWait returns as soon as the build is accepted instead of waiting
	// for it to finish.
	NoWait bool
	// Stdout and Stderr receive the tool's output. Nil discards it.
	Stdout io.Writer
	Stderr io.Writer
}

// Submit sends the source package at srpmPath to the configured project.
// Any non-zero exit of the submission tool is fatal; there is no retry.
func (c *Client) Submit(ctx context.Context, srpmPath string) error {
	command := c.Command
	if command == "" {
		command = "copr-cli"
	}

	args := []string{"build"}
	if c.NoWait {
		args = append(args, "--nowait")
	}
	args = append(args, c.Project, srpmPath)

	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr

	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return &SubmitError{Project: c.Project, ExitCode: exitErr.ExitCode(), Err: err}
		}
		return &SubmitError{Project: c.Project, Err: err}
	}
	return nil
}
