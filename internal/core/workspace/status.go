// Package workspace reports the untracked state of a working tree without changing it.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/go-git/go-billy/v5"

	"github.com/aki/twp/internal/core/ignore"
	"github.com/aki/twp/internal/core/untracked"
)

// Source is the part of the substrate needed to inspect a working tree
type Source interface {
	UntrackedPaths(ctx context.Context) ([]string, error)
	IsTracked(ctx context.Context, path string) (bool, error)
}

// QueryNames lists the single-fact questions scripts can ask about a workspace
var QueryNames = []string{"untracked", "untracked-dirs", "dotfiles", "has-untracked-ignore"}

// Status is a read-only snapshot of untracked files and the ignore file
type Status struct {
	Untracked     untracked.Classification `json:"untracked"`
	IgnoreFile    string                   `json:"ignoreFile"`
	IgnoreExists  bool                     `json:"ignoreExists"`
	IgnoreTracked bool                     `json:"ignoreTracked"`
	IgnoreState   ignore.State             `json:"ignoreState"`
}

// HasUntrackedIgnoreFile reports whether the ignore file exists but is not tracked
func (s Status) HasUntrackedIgnoreFile() bool {
	return ignore.HasUntrackedIgnoreFile(s.IgnoreState)
}

// Inspect lists and classifies untracked paths and derives the ignore file state.
// fs must be rooted at the working tree root.
func Inspect(ctx context.Context, src Source, fs billy.Filesystem, ignoreFile string) (Status, error) {
	if ignoreFile == "" {
		ignoreFile = ignore.DefaultFile
	}

	paths, err := src.UntrackedPaths(ctx)
	if err != nil {
		return Status{}, err
	}

	exists, err := FileExists(fs, ignoreFile)
	if err != nil {
		return Status{}, err
	}

	tracked, err := src.IsTracked(ctx, ignoreFile)
	if err != nil {
		return Status{}, err
	}

	return Status{
		Untracked:     untracked.Classify(paths),
		IgnoreFile:    ignoreFile,
		IgnoreExists:  exists,
		IgnoreTracked: tracked,
		IgnoreState:   ignore.StateOf(exists, tracked),
	}, nil
}

// FileExists reports whether name exists on fs
func FileExists(fs billy.Filesystem, name string) (bool, error) {
	_, err := fs.Stat(name)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, os.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("failed to stat %s: %w", name, err)
	}
}
