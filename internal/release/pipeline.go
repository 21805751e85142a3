package release

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/ariel-frischer/copr-release/internal/config"
	"github.com/ariel-frischer/copr-release/internal/copr"
	"github.com/ariel-frischer/copr-release/internal/gitrepo"
	"github.com/ariel-frischer/copr-release/internal/history"
	"github.com/ariel-frischer/copr-release/internal/output"
	"github.com/ariel-frischer/copr-release/internal/progress"
	"github.com/ariel-frischer/copr-release/internal/specfile"
	"github.com/ariel-frischer/copr-release/internal/srpm"
)

// totalSteps is the number of numbered pipeline steps shown to the user.
const totalSteps = 8

// builder builds the source package. Satisfied by *srpm.Builder.
type builder interface {
	Build(ctx context.Context, repoDir string) (string, error)
}

// submitter submits the source package to the build service.
// Satisfied by *copr.Client.
type submitter interface {
	Submit(ctx context.Context, srpmPath string) error
}

// Pipeline runs the full release sequence. Every step blocks until its
// external operation completes; the first failure aborts the run.
type Pipeline struct {
	Config *config.Configuration
	// RepoDir is the repository to release from. Empty means the current
	// working directory.
	RepoDir string
	// Out receives progress output.
	Out io.Writer

	// Builder and Submitter are settable for tests; nil selects the real
	// rpkg/copr-cli implementations from the configuration.
	Builder   builder
	Submitter submitter
}

// New creates a release pipeline for the given configuration.
func New(cfg *config.Configuration, out io.Writer) *Pipeline {
	return &Pipeline{Config: cfg, Out: out}
}

// Run executes the release pipeline and returns the resolution it shipped.
func (p *Pipeline) Run(ctx context.Context) (*Resolution, error) {
	cfg := p.Config

	repo, err := gitrepo.Open(p.RepoDir)
	if err != nil {
		return nil, err
	}
	root, err := repo.Root()
	if err != nil {
		return nil, err
	}

	// Step 1: sync with the remote
	output.PrintStepHeader(p.Out, 1, totalSteps, "Syncing with remote")
	if cfg.SkipFetch {
		fmt.Fprintln(p.Out, "  (skipped)")
	} else {
		if err := repo.FetchContext(ctx, cfg.Remote); err != nil {
			return nil, err
		}
		if err := repo.PullContext(ctx, cfg.Remote, cfg.Branch); err != nil {
			return nil, err
		}
	}

	// Step 2: resolve version/release
	output.PrintStepHeader(p.Out, 2, totalSteps, "Resolving version and release")
	res, err := p.resolve(repo, root)
	if err != nil {
		return nil, err
	}
	output.PrintResolved(p.Out, res.Package, res.Version, res.Release)

	// Step 3: stamp the spec file
	output.PrintStepHeader(p.Out, 3, totalSteps, "Stamping spec file")
	spec, err := specfile.Load(filepath.Join(root, cfg.SpecFile))
	if err != nil {
		return nil, err
	}
	if err := spec.Stamp(res.Version, res.Release); err != nil {
		return nil, err
	}
	if err := spec.Save(); err != nil {
		return nil, err
	}

	// Step 4: commit the stamped metadata
	output.PrintStepHeader(p.Out, 4, totalSteps, "Committing")
	changed, err := repo.HasChanges()
	if err != nil {
		return nil, err
	}
	if changed {
		message := fmt.Sprintf("Release %s %s-%d", res.Package, res.Version, res.Release)
		if _, err := repo.CommitAll(message); err != nil {
			return nil, err
		}
	} else {
		fmt.Fprintln(p.Out, "  (nothing to commit)")
	}

	buildCtx := ctx
	if cfg.BuildTimeout > 0 {
		var cancel context.CancelFunc
		buildCtx, cancel = context.WithTimeout(ctx, time.Duration(cfg.BuildTimeout)*time.Second)
		defer cancel()
	}

	// Step 5: build the source package
	output.PrintStepHeader(p.Out, 5, totalSteps, "Building source package")
	artifact, err := p.build(buildCtx, root)
	if err != nil {
		return nil, err
	}
	output.PrintStepSuccess(p.Out, artifact)

	// Step 6: submit to the build service
	output.PrintStepHeader(p.Out, 6, totalSteps, "Submitting to "+cfg.CoprProject)
	if err := p.submit(buildCtx, artifact); err != nil {
		return nil, err
	}

	// Step 7: tag the release
	tagName := res.Tag().String()
	output.PrintStepHeader(p.Out, 7, totalSteps, "Tagging "+tagName)
	if err := repo.CreateTag(tagName); err != nil {
		return nil, err
	}

	// Step 8: push branch and tag
	output.PrintStepHeader(p.Out, 8, totalSteps, "Pushing to "+cfg.Remote)
	if err := repo.PushContext(ctx, cfg.Remote, cfg.Branch, tagName); err != nil {
		return nil, err
	}

	p.record(root, res, artifact)

	if !cfg.KeepArtifacts {
		if err := os.RemoveAll(cfg.Outdir); err != nil {
			fmt.Fprintf(p.Out, "warning: removing %s: %v\n", cfg.Outdir, err)
		}
	}

	output.PrintStepSuccess(p.Out, fmt.Sprintf("Released %s %s-%d", res.Package, res.Version, res.Release))
	return res, nil
}

// resolve reads the changelog from the repository and computes the next
// version/release pair from the existing tag set.
func (p *Pipeline) resolve(repo *gitrepo.Repo, root string) (*Resolution, error) {
	names, err := repo.TagNames()
	if err != nil {
		return nil, err
	}
	return ResolveFile(filepath.Join(root, p.Config.Changelog), names, p.Config.Package)
}

func (p *Pipeline) build(ctx context.Context, root string) (string, error) {
	b := p.Builder
	if b == nil {
		b = &srpm.Builder{
			Command: p.Config.RpkgCmd,
			Outdir:  p.Config.Outdir,
			Stdout:  p.Out,
			Stderr:  p.Out,
		}
	}

	output.PrintExecutingCommand(p.Out, fmt.Sprintf("%s srpm --outdir %s", p.Config.RpkgCmd, p.Config.Outdir))

	spin := progress.NewStepSpinner(p.Out)
	spin.Start("rpkg srpm")
	artifact, err := b.Build(ctx, root)
	if err != nil {
		spin.Fail("source package build failed")
		return "", err
	}
	spin.Success("source package built")
	return artifact, nil
}

func (p *Pipeline) submit(ctx context.Context, artifact string) error {
	s := p.Submitter
	if s == nil {
		s = &copr.Client{
			Command: p.Config.CoprCmd,
			Project: p.Config.CoprProject,
			NoWait:  p.Config.NoWait,
			Stdout:  p.Out,
			Stderr:  p.Out,
		}
	}

	output.PrintExecutingCommand(p.Out, fmt.Sprintf("%s build %s %s", p.Config.CoprCmd, p.Config.CoprProject, artifact))

	spin := progress.NewStepSpinner(p.Out)
	spin.Start("copr-cli build")
	if err := s.Submit(ctx, artifact); err != nil {
		spin.Fail("build submission failed")
		return err
	}
	spin.Success("build submitted")
	return nil
}

// record appends the shipped release to the history file. History failures
// are reported but never fail a release that already shipped.
func (p *Pipeline) record(root string, res *Resolution, artifact string) {
	path := p.Config.HistoryFile
	if !filepath.IsAbs(path) {
		path = filepath.Join(root, path)
	}

	err := history.Append(path, history.Entry{
		Package:     res.Package,
		Version:     res.Version,
		Release:     res.Release,
		Tag:         res.Tag().String(),
		Artifact:    artifact,
		Project:     p.Config.CoprProject,
		SubmittedAt: time.Now().UTC(),
	}, p.Config.MaxHistoryEntries)
	if err != nil {
		fmt.Fprintf(p.Out, "warning: recording history: %v\n", err)
	}
}
