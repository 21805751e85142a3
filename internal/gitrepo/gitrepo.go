// Package gitrepo provides the git operations the release pipeline needs:
// tag listing, fetch, fast-forward merge, commit, tag creation, and push.
// It uses the go-git library so no git CLI installation is required.
package gitrepo

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// DefaultFetchTimeout bounds remote fetch operations to prevent indefinite hangs.
const DefaultFetchTimeout = 60 * time.Second

// debugLogger is a function that logs debug messages when debug mode is enabled.
// By default, it's a no-op. Set it via SetDebugLogger to enable debug output.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for git operations.
// Pass nil to disable debug logging. The logger function should format
// and output the message (similar to log.Printf signature).
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// PushError indicates a failed push to the remote. It maps to its own exit
// code because a release that built and submitted but failed to push leaves
// the tag only locally.
type PushError struct {
	Remote string
	Err    error
}

func (e *PushError) Error() string {
	return fmt.Sprintf("pushing to remote %q: %v", e.Remote, e.Err)
}

func (e *PushError) Unwrap() error { return e.Err }

// Repo wraps an opened git repository rooted at a working directory.
type Repo struct {
	repo *git.Repository
	path string
}

// Open opens the git repository at the specified path or current working
// directory. It uses go-git's PlainOpenWithOptions with DetectDotGit enabled
// to traverse up the directory tree to find the repository root.
func Open(path string) (*Repo, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	logDebug("[git] opening repository at %s", path)

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}

	return &Repo{repo: repo, path: path}, nil
}

// Root returns the absolute path to the repository root.
func (r *Repo) Root() (string, error) {
	worktree, err := r.repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("getting worktree: %w", err)
	}
	return worktree.Filesystem.Root(), nil
}

// CurrentBranch returns the name of the current git branch.
// Returns an error in detached HEAD state.
func (r *Repo) CurrentBranch() (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", fmt.Errorf("getting HEAD reference: %w", err)
	}
	if !head.Name().IsBranch() {
		return "", fmt.Errorf("detached HEAD state")
	}
	return head.Name().Short(), nil
}

// TagNames returns the names of all tags in the repository.
// The release counter per version is derived from this listing.
func (r *Repo) TagNames() ([]string, error) {
	iter, err := r.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}

	var names []string
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		names = append(names, ref.Name().Short())
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating tags: %w", err)
	}

	logDebug("[git] TagNames: found %d tags", len(names))
	return names, nil
}

// Fetch fetches from the named remote with the default timeout.
// "already up-to-date" is not an error.
func (r *Repo) Fetch(remote string) error {
	ctx, cancel := context.WithTimeout(context.Background(), DefaultFetchTimeout)
	defer cancel()
	return r.FetchContext(ctx, remote)
}

// FetchContext fetches from the named remote with context support.
func (r *Repo) FetchContext(ctx context.Context, remote string) error {
	rem, err := r.repo.Remote(remote)
	if err != nil {
		return fmt.Errorf("looking up remote %q: %w", remote, err)
	}

	url := remoteURL(rem)
	logDebug("[git] fetching from remote '%s' (%s)", remote, url)

	// Tags are fetched too: the release counter is derived from the full
	// tag set, including tags created by other machines.
	err = r.repo.FetchContext(ctx, &git.FetchOptions{
		RemoteName: remote,
		Auth:       getAuthForURL(url),
		RefSpecs: []config.RefSpec{
			config.RefSpec("+refs/heads/*:refs/remotes/" + remote + "/*"),
			config.RefSpec("+refs/tags/*:refs/tags/*"),
		},
	})
	if err == git.NoErrAlreadyUpToDate {
		return nil
	}
	if err != nil {
		return fmt.Errorf("fetching from remote %q: %w", remote, err)
	}
	return nil
}

// PullContext fast-forwards the current branch from the named remote.
func (r *Repo) PullContext(ctx context.Context, remote, branch string) error {
	worktree, err := r.repo.Worktree()
	if err != nil {
		return fmt.Errorf("getting worktree: %w", err)
	}

	rem, err := r.repo.Remote(remote)
	if err != nil {
		return fmt.Errorf("looking up remote %q: %w", remote, err)
	}

	logDebug("[git] pulling %s from remote '%s'", branch, remote)

	err = worktree.PullContext(ctx, &git.PullOptions{
		RemoteName:    remote,
		ReferenceName: plumbing.NewBranchReferenceName(branch),
		Auth:          getAuthForURL(remoteURL(rem)),
	})
	if err == git.NoErrAlreadyUpToDate {
		return nil
	}
	if err != nil {
		return fmt.Errorf("pulling %s from remote %q: %w", branch, remote, err)
	}
	return nil
}

// CommitAll stages all changes in the worktree and commits them with the
// given message. Returns the new commit hash.
func (r *Repo) CommitAll(message string) (plumbing.Hash, error) {
	worktree, err := r.repo.Worktree()
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("getting worktree: %w", err)
	}

	if err := worktree.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		return plumbing.ZeroHash, fmt.Errorf("staging changes: %w", err)
	}

	hash, err := worktree.Commit(message, &git.CommitOptions{
		Author: defaultSignature(),
	})
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("committing: %w", err)
	}

	logDebug("[git] CommitAll: %s %q", hash.String()[:8], message)
	return hash, nil
}

// HasChanges reports whether the worktree has uncommitted changes.
func (r *Repo) HasChanges() (bool, error) {
	worktree, err := r.repo.Worktree()
	if err != nil {
		return false, fmt.Errorf("getting worktree: %w", err)
	}
	status, err := worktree.Status()
	if err != nil {
		return false, fmt.Errorf("getting status: %w", err)
	}
	return !status.IsClean(), nil
}

// CreateTag creates a lightweight tag at HEAD.
func (r *Repo) CreateTag(name string) error {
	head, err := r.repo.Head()
	if err != nil {
		return fmt.Errorf("getting HEAD: %w", err)
	}
	if _, err := r.repo.CreateTag(name, head.Hash(), nil); err != nil {
		return fmt.Errorf("creating tag %q: %w", name, err)
	}
	logDebug("[git] CreateTag: %s at %s", name, head.Hash().String()[:8])
	return nil
}

// PushContext pushes the branch and, when tagName is non-empty, the tag to
// the named remote. A failed push is reported as a *PushError.
func (r *Repo) PushContext(ctx context.Context, remote, branch, tagName string) error {
	rem, err := r.repo.Remote(remote)
	if err != nil {
		return &PushError{Remote: remote, Err: err}
	}

	refSpecs := []config.RefSpec{
		config.RefSpec(fmt.Sprintf("refs/heads/%s:refs/heads/%s", branch, branch)),
	}
	if tagName != "" {
		refSpecs = append(refSpecs, config.RefSpec(fmt.Sprintf("refs/tags/%s:refs/tags/%s", tagName, tagName)))
	}

	logDebug("[git] pushing %v to remote '%s'", refSpecs, remote)

	err = r.repo.PushContext(ctx, &git.PushOptions{
		RemoteName: remote,
		RefSpecs:   refSpecs,
		Auth:       getAuthForURL(remoteURL(rem)),
	})
	if err == git.NoErrAlreadyUpToDate {
		return nil
	}
	if err != nil {
		return &PushError{Remote: remote, Err: err}
	}
	return nil
}

// remoteURL returns the first configured URL of a remote, or empty string.
func remoteURL(rem *git.Remote) string {
	if urls := rem.Config().URLs; len(urls) > 0 {
		return urls[0]
	}
	return ""
}

// defaultSignature builds the commit signature from GIT_AUTHOR_* environment
// variables, falling back to a generic packager identity. go-git does not
// read user.name/user.email from the global git config on all setups.
func defaultSignature() *object.Signature {
	name := os.Getenv("GIT_AUTHOR_NAME")
	if name == "" {
		name = "copr-release"
	}
	email := os.Getenv("GIT_AUTHOR_EMAIL")
	if email == "" {
		email = "copr-release@localhost"
	}
	return &object.Signature{
		Name:  name,
		Email: email,
		When:  time.Now(),
	}
}
