// Package save runs the stage, commit and publish sequence behind `twp save`.
//
// A run moves through a fixed set of states:
//
//	inspecting -> governing -> staging -> committing -> publishing -> done
//
// A declined ignore-file prompt ends the run in aborted before anything is
// staged. A failed push ends it in publish-failed with the local commit kept.
// Any other substrate error ends it in failed.
package save

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"

	"github.com/aki/twp/internal/core/git"
	"github.com/aki/twp/internal/core/id"
	"github.com/aki/twp/internal/core/ignore"
	"github.com/aki/twp/internal/core/logger"
	"github.com/aki/twp/internal/core/prompt"
	"github.com/aki/twp/internal/core/untracked"
	"github.com/aki/twp/internal/core/workspace"
)

// DefaultMessage is the commit message used when none is given
const DefaultMessage = "Save work via twp"

// DefaultRemote is the remote published to when none is given
const DefaultRemote = "origin"

// Substrate is the version-control system a save runs against
type Substrate interface {
	UntrackedPaths(ctx context.Context) ([]string, error)
	IsTracked(ctx context.Context, path string) (bool, error)
	CurrentBranch(ctx context.Context) (string, error)
	RemoteURL(ctx context.Context, name string) (string, error)
	StageTracked(ctx context.Context) error
	Stage(ctx context.Context, paths ...string) error
	Commit(ctx context.Context, message string) error
	Push(ctx context.Context, remote, branch string) error
}

// Options controls one save run
type Options struct {
	Remote         string
	IgnoreFile     string
	Message        string
	IgnorePatterns []string
	// SeedDotfiles lists the untracked dotfiles in a newly created ignore file
	SeedDotfiles bool
	// IncludeTracked stages modifications to tracked files as well
	IncludeTracked bool
}

// DefaultOptions returns the options used when nothing is configured
func DefaultOptions() Options {
	return Options{
		Remote:         DefaultRemote,
		IgnoreFile:     ignore.DefaultFile,
		Message:        DefaultMessage,
		IncludeTracked: true,
	}
}

// Session is the in-memory record of one save run
type Session struct {
	ID         string                   `json:"id"`
	State      State                    `json:"state"`
	History    []Transition             `json:"history"`
	Identity   git.Identity             `json:"identity"`
	Untracked  untracked.Classification `json:"untracked"`
	IgnoreFile string                   `json:"ignoreFile"`
	Ignore     ignore.Decision          `json:"ignore"`
	// IgnoreCreated is set once the ignore file has been written
	IgnoreCreated bool     `json:"ignoreCreated"`
	Staged        []string `json:"staged"`
	Message       string   `json:"message,omitempty"`
	Err           error    `json:"-"`
}

// TransitionHandler observes state changes. Errors are logged and ignored.
type TransitionHandler func(ctx context.Context, from, to State, s *Session) error

// Orchestrator composes the substrate, the ignore-file governor and the
// operator prompt into a save run
type Orchestrator struct {
	substrate Substrate
	fs        billy.Filesystem
	confirm   ignore.ConfirmFunc
	governor  *ignore.Governor
	opts      Options
	logger    logger.Logger
	ids       id.Generator
	handlers  []TransitionHandler
}

// NewOrchestrator creates an orchestrator. fs must be rooted at the working
// tree root; it is used to check for and create the ignore file.
func NewOrchestrator(substrate Substrate, fs billy.Filesystem, confirm ignore.ConfirmFunc, opts Options, log logger.Logger) *Orchestrator {
	defaults := DefaultOptions()
	if opts.Remote == "" {
		opts.Remote = defaults.Remote
	}
	if opts.IgnoreFile == "" {
		opts.IgnoreFile = defaults.IgnoreFile
	}
	if opts.Message == "" {
		opts.Message = defaults.Message
	}
	if confirm == nil {
		confirm = func(string) prompt.Confirmation {
			return prompt.Confirmation{Closed: true}
		}
	}
	if log == nil {
		log = logger.Nop()
	}

	return &Orchestrator{
		substrate: substrate,
		fs:        fs,
		confirm:   confirm,
		governor:  ignore.NewGovernor(opts.IgnoreFile),
		opts:      opts,
		logger:    logger.WithComponent(log, "save"),
		ids:       id.NewShortUUIDGenerator(),
	}
}

// SetIDGenerator replaces the generator of run IDs
func (o *Orchestrator) SetIDGenerator(g id.Generator) {
	o.ids = g
}

// OnTransition registers a handler called after every state change
func (o *Orchestrator) OnTransition(handler TransitionHandler) {
	o.handlers = append(o.handlers, handler)
}

// Run performs one save. The returned session is never nil and records how
// far the run got; the error is the reason it did not reach done.
func (o *Orchestrator) Run(ctx context.Context) (*Session, error) {
	s := &Session{
		ID:         o.ids.Generate(),
		State:      StateInspecting,
		IgnoreFile: o.opts.IgnoreFile,
	}
	log := o.logger.With("run", s.ID)
	log.Debug("save started", "remote", o.opts.Remote, "ignoreFile", o.opts.IgnoreFile)

	exists, tracked, err := o.inspect(ctx, s)
	if err != nil {
		return s, o.fail(ctx, s, err)
	}

	if err := o.transition(ctx, s, StateGoverning); err != nil {
		return s, err
	}
	s.Ignore = o.governor.Govern(exists, tracked, o.confirm)
	if s.Ignore.Declined() {
		s.Err = ErrDeclinedByOperator
		if err := o.transition(ctx, s, StateAborted); err != nil {
			return s, err
		}
		log.Info("save aborted", "reason", "ignore file declined")
		return s, ErrDeclinedByOperator
	}
	if s.Ignore.Action != nil && s.Ignore.Action.Create {
		if err := o.createIgnoreFile(ctx, s); err != nil {
			return s, o.fail(ctx, s, err)
		}
	}

	if err := o.transition(ctx, s, StateStaging); err != nil {
		return s, err
	}
	if err := o.stage(ctx, s); err != nil {
		return s, o.fail(ctx, s, err)
	}

	if err := o.transition(ctx, s, StateCommitting); err != nil {
		return s, err
	}
	s.Message = o.opts.Message
	if err := o.substrate.Commit(ctx, s.Message); err != nil {
		return s, o.fail(ctx, s, fmt.Errorf("failed to commit: %w", err))
	}

	if err := o.transition(ctx, s, StatePublishing); err != nil {
		return s, err
	}
	if err := o.substrate.Push(ctx, s.Identity.RemoteName, s.Identity.Branch); err != nil {
		s.Err = &PublishRejectedError{
			Remote: s.Identity.RemoteName,
			Branch: s.Identity.Branch,
			Err:    err,
		}
		if terr := o.transition(ctx, s, StatePublishFailed); terr != nil {
			return s, terr
		}
		log.Warn("publish failed, local commit kept", "error", err)
		return s, s.Err
	}

	if err := o.transition(ctx, s, StateDone); err != nil {
		return s, err
	}
	log.Info("save complete", "branch", s.Identity.Branch, "staged", len(s.Staged))
	return s, nil
}

// inspect gathers everything the governing step needs without mutating anything
func (o *Orchestrator) inspect(ctx context.Context, s *Session) (exists, tracked bool, err error) {
	id, err := git.Identify(ctx, o.substrate, o.opts.Remote)
	if err != nil {
		return false, false, err
	}
	if id.Detached() {
		return false, false, fmt.Errorf("cannot publish: %w", git.ErrDetachedHead)
	}
	s.Identity = id

	status, err := workspace.Inspect(ctx, o.substrate, o.fs, o.opts.IgnoreFile)
	if err != nil {
		return false, false, err
	}
	s.Untracked = status.Untracked

	o.logger.Debug("inspected workspace",
		"run", s.ID,
		"untracked", len(status.Untracked.All),
		"dotfiles", len(status.Untracked.Dotfiles),
		"ignoreState", status.IgnoreState)
	return status.IgnoreExists, status.IgnoreTracked, nil
}

// createIgnoreFile writes the ignore file and lists untracked paths again so
// that the new rules apply to what gets staged
func (o *Orchestrator) createIgnoreFile(ctx context.Context, s *Session) error {
	var dotfiles []untracked.Path
	if o.opts.SeedDotfiles {
		dotfiles = s.Untracked.Dotfiles
	}
	content := ignore.Content(o.opts.IgnorePatterns, dotfiles)

	if err := util.WriteFile(o.fs, o.opts.IgnoreFile, []byte(content), 0o644); err != nil {
		return fmt.Errorf("failed to create %s: %w", o.opts.IgnoreFile, err)
	}
	s.IgnoreCreated = true

	paths, err := o.substrate.UntrackedPaths(ctx)
	if err != nil {
		return err
	}
	s.Untracked = untracked.Classify(paths)
	return nil
}

func (o *Orchestrator) stage(ctx context.Context, s *Session) error {
	if o.opts.IncludeTracked {
		if err := o.substrate.StageTracked(ctx); err != nil {
			return fmt.Errorf("failed to stage tracked changes: %w", err)
		}
	}

	paths := untracked.Strings(s.Untracked.All)
	if s.IgnoreCreated && !slices.Contains(paths, o.opts.IgnoreFile) {
		paths = append(paths, o.opts.IgnoreFile)
	}
	if err := o.substrate.Stage(ctx, paths...); err != nil {
		return fmt.Errorf("failed to stage untracked files: %w", err)
	}
	s.Staged = paths
	return nil
}

// fail records err and moves the session to failed
func (o *Orchestrator) fail(ctx context.Context, s *Session, err error) error {
	s.Err = err
	if terr := o.transition(ctx, s, StateFailed); terr != nil {
		return errors.Join(err, terr)
	}
	o.logger.Error("save failed", "run", s.ID, "state", s.History[len(s.History)-1].From, "error", err)
	return err
}

func (o *Orchestrator) transition(ctx context.Context, s *Session, to State) error {
	from := s.State
	if !isValidTransition(from, to) {
		return &InvalidTransitionError{From: from, To: to}
	}

	s.State = to
	s.History = append(s.History, Transition{From: from, To: to})
	o.logger.Debug("state transitioned", "run", s.ID, "from", from, "to", to)

	for _, handler := range o.handlers {
		if err := handler(ctx, from, to, s); err != nil {
			o.logger.Error("transition handler failed", "from", from, "to", to, "error", err)
		}
	}
	return nil
}
