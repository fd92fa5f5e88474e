package git

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aki/twp/internal/tests/helpers"
)

// recordingExecutor records git invocations and replays canned results
type recordingExecutor struct {
	calls   [][]string
	inputs  []string
	outputs map[string][]byte
	errs    map[string]error
}

func (r *recordingExecutor) Run(ctx context.Context, dir string, args ...string) ([]byte, error) {
	return r.RunWithInput(ctx, dir, nil, args...)
}

func (r *recordingExecutor) RunWithInput(_ context.Context, _ string, input io.Reader, args ...string) ([]byte, error) {
	r.calls = append(r.calls, args)
	if input != nil {
		data, err := io.ReadAll(input)
		if err != nil {
			return nil, err
		}
		r.inputs = append(r.inputs, string(data))
	}
	key := strings.Join(args, " ")
	if err, ok := r.errs[key]; ok {
		return nil, err
	}
	return r.outputs[key], nil
}

func openExample(t *testing.T, opts ...Option) (*Operations, string) {
	t.Helper()
	dir := helpers.CreateTestRepo(t)
	helpers.SetupExampleWorkspace(t, dir)

	ops, err := Open(dir, opts...)
	require.NoError(t, err)
	return ops, dir
}

func TestOpen_NotRepository(t *testing.T) {
	_, err := Open(t.TempDir())
	assert.ErrorIs(t, err, ErrNotRepository)
	assert.False(t, IsGitRepository(t.TempDir()))
}

func TestOperations_UntrackedPaths(t *testing.T) {
	ops, _ := openExample(t)

	paths, err := ops.UntrackedPaths(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{".env", ".example", "README.md", "package.json"}, paths)
}

func TestOperations_UntrackedPathsExpandsDirectories(t *testing.T) {
	ops, dir := openExample(t)
	helpers.WriteFile(t, dir, "src/.secret", "x")
	helpers.WriteFile(t, dir, "src/main.go", "package main")

	paths, err := ops.UntrackedPaths(context.Background())

	require.NoError(t, err)
	assert.Contains(t, paths, "src/.secret")
	assert.Contains(t, paths, "src/main.go")
	assert.NotContains(t, paths, "src/")
}

func TestOperations_IsTracked(t *testing.T) {
	ops, dir := openExample(t)
	ctx := context.Background()

	tracked, err := ops.IsTracked(ctx, ".gitignore")
	require.NoError(t, err)
	assert.False(t, tracked, "missing file is not tracked")

	helpers.WriteFile(t, dir, ".gitignore", "")
	tracked, err = ops.IsTracked(ctx, ".gitignore")
	require.NoError(t, err)
	assert.False(t, tracked, "file on disk but not added")

	helpers.Git(t, dir, "add", ".gitignore")
	tracked, err = ops.IsTracked(ctx, ".gitignore")
	require.NoError(t, err)
	assert.True(t, tracked, "staged file counts as tracked")
}

func TestOperations_Identify(t *testing.T) {
	ops, _ := openExample(t)

	id, err := ops.Identify(context.Background(), "origin")

	require.NoError(t, err)
	assert.Equal(t, "github.com", id.Host)
	assert.Equal(t, "eeue56", id.Owner)
	assert.Equal(t, "twp-example", id.Repo)
	assert.Equal(t, "main", id.Branch)
}

func TestOperations_RemoteURLMissing(t *testing.T) {
	ops, _ := openExample(t)

	_, err := ops.RemoteURL(context.Background(), "upstream")

	assert.ErrorIs(t, err, ErrNoRemote)
	var re *RemoteError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, "upstream", re.Remote)
}

func TestOperations_StageCommitPush(t *testing.T) {
	ops, dir := openExample(t)
	ctx := context.Background()
	remote := helpers.CreateBareRemote(t)
	helpers.Git(t, dir, "remote", "add", "local", remote)

	require.NoError(t, ops.Stage(ctx, "README.md", "package.json"))
	require.NoError(t, ops.Commit(ctx, "first save"))
	require.NoError(t, ops.Push(ctx, "local", "main"))

	assert.Equal(t, "first save", helpers.Git(t, remote, "log", "-1", "--format=%s", "main"))

	paths, err := ops.UntrackedPaths(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{".env", ".example"}, paths)
}

func TestOperations_CommitNothingStaged(t *testing.T) {
	ops, _ := openExample(t)

	err := ops.Commit(context.Background(), "empty")

	var ce *CommandError
	require.True(t, errors.As(err, &ce))
	assert.ErrorIs(t, err, ErrCommandFailed)
	assert.Equal(t, []string{"commit", "-m", "empty"}, ce.Args)
}

func TestOperations_CommandArguments(t *testing.T) {
	rec := &recordingExecutor{
		outputs: map[string][]byte{
			"ls-files --others --exclude-standard -z": []byte("b.txt\x00.a\x00"),
		},
	}
	ops, _ := openExample(t, WithExecutor(rec))
	ctx := context.Background()

	paths, err := ops.UntrackedPaths(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"b.txt", ".a"}, paths)

	require.NoError(t, ops.StageTracked(ctx))
	require.NoError(t, ops.Stage(ctx))
	require.NoError(t, ops.Stage(ctx, ".gitignore", "b.txt"))
	require.NoError(t, ops.Commit(ctx, "msg"))
	require.NoError(t, ops.Push(ctx, "origin", "main"))

	assert.Equal(t, [][]string{
		{"ls-files", "--others", "--exclude-standard", "-z"},
		{"add", "--update"},
		{"--literal-pathspecs", "add", "--pathspec-from-file=-", "--pathspec-file-nul"},
		{"commit", "-m", "msg"},
		{"push", "--set-upstream", "origin", "main"},
	}, rec.calls)
	assert.Equal(t, []string{".gitignore\x00b.txt\x00"}, rec.inputs)
}

func TestOperations_PushFailureKeepsStderr(t *testing.T) {
	rec := &recordingExecutor{
		errs: map[string]error{
			"push --set-upstream origin main": &CommandError{
				Args:   []string{"push", "--set-upstream", "origin", "main"},
				Stderr: "! [rejected] main -> main (non-fast-forward)",
				Err:    errors.New("exit status 1"),
			},
		},
	}
	ops, _ := openExample(t, WithExecutor(rec))

	err := ops.Push(context.Background(), "origin", "main")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "non-fast-forward")
}

func TestOperations_StageManyPaths(t *testing.T) {
	if testing.Short() {
		t.Skip("writes tens of thousands of files")
	}
	ops, dir := openExample(t)
	ctx := context.Background()

	// Enough long paths to exceed the kernel's argument list limit
	deep := "node_modules/" + strings.Repeat("a-very-long-package-directory-name-", 3)
	const count = 25000
	for i := 0; i < count; i++ {
		helpers.WriteFile(t, dir, fmt.Sprintf("%s/file-%05d.js", deep, i), "")
	}

	paths, err := ops.UntrackedPaths(ctx)
	require.NoError(t, err)
	require.Len(t, paths, count+4)

	require.NoError(t, ops.Stage(ctx, paths...))

	staged := strings.Split(helpers.Git(t, dir, "diff", "--cached", "--name-only"), "\n")
	assert.Len(t, staged, count+4)
}

func TestOperations_StageLiteralPaths(t *testing.T) {
	ops, dir := openExample(t)
	helpers.WriteFile(t, dir, "[ab].txt", "literal")
	helpers.WriteFile(t, dir, "a.txt", "glob match")

	require.NoError(t, ops.Stage(context.Background(), "[ab].txt"))

	assert.Equal(t, "[ab].txt", helpers.Git(t, dir, "diff", "--cached", "--name-only"))
}

func TestCommandError_TruncatesArguments(t *testing.T) {
	args := []string{"add", "--"}
	for i := 0; i < 1000; i++ {
		args = append(args, fmt.Sprintf("node_modules/pkg/file-%d.js", i))
	}
	err := &CommandError{Args: args, Stderr: "fatal: boom", Err: errors.New("exit status 128")}

	msg := err.Error()
	assert.Contains(t, msg, "git add -- node_modules/pkg/file-0.js")
	assert.Contains(t, msg, "... (994 more) failed: fatal: boom: exit status 128")
	assert.NotContains(t, msg, "file-999.js")
	assert.Len(t, err.Args, 1002)
}
