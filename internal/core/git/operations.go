// Package git is the version-control substrate used by twp.
//
// Read-only queries (HEAD, remotes, the index) go through go-git. Anything
// that mutates the repository or needs git's own ignore handling and
// credential setup shells out to the git binary through a CommandExecutor.
package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/format/index"

	"github.com/aki/twp/internal/core/logger"
)

// Operations provides git operations for one working tree
type Operations struct {
	root     string
	repo     *gogit.Repository
	executor CommandExecutor
	logger   logger.Logger
}

// Option configures Operations
type Option func(*Operations)

// WithExecutor replaces the git command executor
func WithExecutor(executor CommandExecutor) Option {
	return func(o *Operations) {
		o.executor = executor
	}
}

// WithLogger sets the logger used for command tracing
func WithLogger(log logger.Logger) Option {
	return func(o *Operations) {
		o.logger = log
	}
}

// Open finds the repository containing path and prepares operations on its working tree
func Open(path string, opts ...Option) (*Operations, error) {
	repo, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%s: %w", path, ErrNotRepository)
		}
		return nil, fmt.Errorf("failed to open repository: %w", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to open working tree: %w", err)
	}

	o := &Operations{
		root:     wt.Filesystem.Root(),
		repo:     repo,
		executor: NewExecExecutor(),
		logger:   logger.Nop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	o.logger = o.logger.With("component", "git")

	return o, nil
}

// IsGitRepository reports whether path is inside a git working tree
func IsGitRepository(path string) bool {
	_, err := gogit.PlainOpenWithOptions(path, &gogit.PlainOpenOptions{DetectDotGit: true})
	return err == nil
}

// Root returns the working tree root
func (o *Operations) Root() string {
	return o.root
}

// Filesystem returns the working tree as a billy filesystem rooted at Root
func (o *Operations) Filesystem() (billy.Filesystem, error) {
	wt, err := o.repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to open working tree: %w", err)
	}
	return wt.Filesystem, nil
}

// UntrackedPaths lists untracked, non-ignored files relative to Root in git's order.
// Untracked directories are expanded into the files they contain.
func (o *Operations) UntrackedPaths(ctx context.Context) ([]string, error) {
	out, err := o.run(ctx, "ls-files", "--others", "--exclude-standard", "-z")
	if err != nil {
		return nil, fmt.Errorf("failed to list untracked files: %w", err)
	}

	var paths []string
	for _, p := range bytes.Split(out, []byte{0}) {
		if len(p) > 0 {
			paths = append(paths, string(p))
		}
	}
	return paths, nil
}

// IsTracked reports whether path (relative to Root) has an entry in the index.
// A staged but uncommitted file counts as tracked.
func (o *Operations) IsTracked(ctx context.Context, path string) (bool, error) {
	idx, err := o.repo.Storer.Index()
	if err != nil {
		return false, fmt.Errorf("failed to read index: %w", err)
	}

	_, err = idx.Entry(filepath.ToSlash(path))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, index.ErrEntryNotFound):
		return false, nil
	default:
		return false, fmt.Errorf("failed to look up %s in index: %w", path, err)
	}
}

// CurrentBranch returns the branch HEAD points at, including an unborn branch
// in a repository without commits. A detached HEAD yields an empty string.
func (o *Operations) CurrentBranch(ctx context.Context) (string, error) {
	head, err := o.repo.Reference(plumbing.HEAD, false)
	if err != nil {
		return "", fmt.Errorf("failed to read HEAD: %w", err)
	}
	if head.Type() != plumbing.SymbolicReference {
		return "", nil
	}
	return head.Target().Short(), nil
}

// RemoteURL returns the first URL configured for the named remote
func (o *Operations) RemoteURL(ctx context.Context, name string) (string, error) {
	remote, err := o.repo.Remote(name)
	if err != nil {
		if errors.Is(err, gogit.ErrRemoteNotFound) {
			return "", &RemoteError{Remote: name, Err: ErrNoRemote}
		}
		return "", fmt.Errorf("failed to read remote %s: %w", name, err)
	}

	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", &RemoteError{Remote: name, Err: ErrNoRemote}
	}
	return urls[0], nil
}

// Identify resolves host, owner, repository and branch for the named remote
func (o *Operations) Identify(ctx context.Context, remote string) (Identity, error) {
	return Identify(ctx, o, remote)
}

// IdentitySource is the subset of the substrate needed to build an Identity
type IdentitySource interface {
	RemoteURL(ctx context.Context, name string) (string, error)
	CurrentBranch(ctx context.Context) (string, error)
}

// Identify builds an Identity from any source of remote URL and branch
func Identify(ctx context.Context, src IdentitySource, remote string) (Identity, error) {
	url, err := src.RemoteURL(ctx, remote)
	if err != nil {
		return Identity{}, err
	}

	ep, err := ParseRemote(url)
	if err != nil {
		var re *RemoteError
		if errors.As(err, &re) {
			re.Remote = remote
		}
		return Identity{}, err
	}

	branch, err := src.CurrentBranch(ctx)
	if err != nil {
		return Identity{}, err
	}

	return Identity{
		Endpoint:   ep,
		Branch:     branch,
		RemoteName: remote,
		RemoteURL:  url,
	}, nil
}

// StageTracked stages modifications and deletions of already tracked files
func (o *Operations) StageTracked(ctx context.Context) error {
	_, err := o.run(ctx, "add", "--update")
	return err
}

// Stage adds the given paths to the index. Paths are fed to git on stdin,
// NUL separated, so the argument list stays the same size however many
// paths there are. Paths are matched literally, not as globs.
func (o *Operations) Stage(ctx context.Context, paths ...string) error {
	if len(paths) == 0 {
		return nil
	}

	var input bytes.Buffer
	for _, p := range paths {
		input.WriteString(p)
		input.WriteByte(0)
	}

	_, err := o.runWithInput(ctx, &input, "--literal-pathspecs", "add", "--pathspec-from-file=-", "--pathspec-file-nul")
	return err
}

// Commit records the index with message
func (o *Operations) Commit(ctx context.Context, message string) error {
	_, err := o.run(ctx, "commit", "-m", message)
	return err
}

// Push publishes branch to remote and sets it as upstream
func (o *Operations) Push(ctx context.Context, remote, branch string) error {
	_, err := o.run(ctx, "push", "--set-upstream", remote, branch)
	return err
}

func (o *Operations) run(ctx context.Context, args ...string) ([]byte, error) {
	return o.runWithInput(ctx, nil, args...)
}

func (o *Operations) runWithInput(ctx context.Context, input io.Reader, args ...string) ([]byte, error) {
	o.logger.Debug("running git", "args", strings.Join(args, " "), "dir", o.root)

	var (
		out []byte
		err error
	)
	if input == nil {
		out, err = o.executor.Run(ctx, o.root, args...)
	} else {
		out, err = o.executor.RunWithInput(ctx, o.root, input, args...)
	}
	if err != nil {
		o.logger.Debug("git failed", "args", strings.Join(args, " "), "error", err)
		return nil, err
	}
	return out, nil
}
