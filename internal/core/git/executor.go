package git

import (
	"bytes"
	"context"
	"io"
	"os/exec"
)

// CommandExecutor runs git in a directory. Tests replace it with a fake.
type CommandExecutor interface {
	// Run executes git with args and returns stdout.
	// A non-zero exit is returned as *CommandError carrying stderr.
	Run(ctx context.Context, dir string, args ...string) ([]byte, error)
	// RunWithInput is Run with input connected to git's stdin
	RunWithInput(ctx context.Context, dir string, input io.Reader, args ...string) ([]byte, error)
}

// ExecExecutor runs the git binary found on PATH
type ExecExecutor struct {
	// Binary overrides the executable name, "git" when empty
	Binary string
}

// NewExecExecutor creates an executor for the git on PATH
func NewExecExecutor() *ExecExecutor {
	return &ExecExecutor{}
}

// Run implements CommandExecutor
func (e *ExecExecutor) Run(ctx context.Context, dir string, args ...string) ([]byte, error) {
	return e.RunWithInput(ctx, dir, nil, args...)
}

// RunWithInput implements CommandExecutor
func (e *ExecExecutor) RunWithInput(ctx context.Context, dir string, input io.Reader, args ...string) ([]byte, error) {
	binary := e.Binary
	if binary == "" {
		binary = "git"
	}

	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Dir = dir
	cmd.Stdin = input

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, &CommandError{
			Args:   args,
			Stderr: stderr.String(),
			Err:    err,
		}
	}

	return stdout.Bytes(), nil
}
