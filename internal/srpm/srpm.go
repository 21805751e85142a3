// Package srpm builds the source RPM by invoking rpkg. The artifact path is
// captured by watching the output directory while the build runs, since
// rpkg's stdout format is not stable enough to parse.
package srpm

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"
)

// BuildError indicates that the source package build failed. It maps to its
// own exit code; the pipeline never retries a failed build.
type BuildError struct {
	ExitCode int
	Err      error
}

func (e *BuildError) Error() string {
	if e.ExitCode > 0 {
		return fmt.Sprintf("source package build failed with exit code %d", e.ExitCode)
	}
	return fmt.Sprintf("source package build failed: %v", e.Err)
}

func (e *BuildError) Unwrap() error { return e.Err }

// Builder runs the source package build tool.
type Builder struct {
	// Command is the build tool to invoke (default "rpkg").
	Command string
	// Outdir is where the tool writes the .src.rpm artifact.
	Outdir string
	// Stdout and Stderr receive the tool's output. Nil discards it.
	Stdout io.Writer
	Stderr io.Writer
}

// Build runs "<command> srpm --outdir <outdir>" in repoDir and returns the
// path of the produced .src.rpm artifact. The output directory is watched
// while the command runs; a glob over the directory serves as fallback in
// case the artifact appeared before the watcher was registered.
func (b *Builder) Build(ctx context.Context, repoDir string) (string, error) {
	command := b.Command
	if command == "" {
		command = "rpkg"
	}

	if err := os.MkdirAll(b.Outdir, 0o755); err != nil {
		return "", &BuildError{Err: fmt.Errorf("creating output directory: %w", err)}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return "", &BuildError{Err: fmt.Errorf("creating watcher: %w", err)}
	}
	defer watcher.Close()

	if err := watcher.Add(b.Outdir); err != nil {
		return "", &BuildError{Err: fmt.Errorf("watching output directory: %w", err)}
	}

	done := make(chan struct{})
	var artifact string

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		for {
			select {
			case <-gctx.Done():
				return nil
			case <-done:
				return nil
			case ev, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if ev.Op&(fsnotify.Create|fsnotify.Write) != 0 && strings.HasSuffix(ev.Name, ".src.rpm") {
					artifact = ev.Name
				}
			case <-watcher.Errors:
				// Watch errors are non-fatal; the glob fallback covers them.
			}
		}
	})

	g.Go(func() error {
		defer close(done)

		cmd := exec.CommandContext(gctx, command, "srpm", "--outdir", b.Outdir)
		cmd.Dir = repoDir
		cmd.Stdout = b.Stdout
		cmd.Stderr = b.Stderr

		if err := cmd.Run(); err != nil {
			if exitErr, ok := err.(*exec.ExitError); ok {
				return &BuildError{ExitCode: exitErr.ExitCode(), Err: err}
			}
			return &BuildError{Err: err}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return "", err
	}

	if artifact == "" {
		artifact, err = findArtifact(b.Outdir)
		if err != nil {
			return "", err
		}
	}
	return artifact, nil
}

// findArtifact globs the output directory for a .src.rpm file.
func findArtifact(outdir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(outdir, "*.src.rpm"))
	if err != nil {
		return "", fmt.Errorf("globbing output directory: %w", err)
	}
	if len(matches) == 0 {
		return "", &BuildError{Err: fmt.Errorf("no .src.rpm artifact found in %s", outdir)}
	}
	return matches[0], nil
}
