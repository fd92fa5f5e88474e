package git

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrCommandFailed is wrapped by every CommandError
	ErrCommandFailed = errors.New("git command failed")

	// ErrNotRepository is returned when no repository contains the path
	ErrNotRepository = errors.New("not a git repository")

	// ErrNoRemote is returned when the named remote is not configured
	ErrNoRemote = errors.New("remote not configured")

	// ErrDetachedHead is returned when HEAD does not point at a branch
	ErrDetachedHead = errors.New("HEAD is detached")
)

// CommandError is a failed git invocation with the output git printed
type CommandError struct {
	Args   []string
	Stderr string
	Err    error
}

// maxErrorArgs bounds how much of the argument list an error message repeats
const maxErrorArgs = 8

func (e *CommandError) Error() string {
	args := e.Args
	if len(args) > maxErrorArgs {
		args = append(args[:maxErrorArgs:maxErrorArgs], fmt.Sprintf("... (%d more)", len(e.Args)-maxErrorArgs))
	}
	msg := fmt.Sprintf("git %s failed", strings.Join(args, " "))
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg = fmt.Sprintf("%s: %s", msg, stderr)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns both the process error and ErrCommandFailed
func (e *CommandError) Unwrap() []error {
	return []error{ErrCommandFailed, e.Err}
}

// RemoteError reports a remote that is missing or cannot be parsed
type RemoteError struct {
	Remote string
	URL    string
	Err    error
}

func (e *RemoteError) Error() string {
	switch {
	case e.URL != "":
		return fmt.Sprintf("remote %q has unusable url %q: %v", e.Remote, e.URL, e.Err)
	case e.Remote != "":
		return fmt.Sprintf("remote %q: %v", e.Remote, e.Err)
	default:
		return fmt.Sprintf("remote: %v", e.Err)
	}
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}
