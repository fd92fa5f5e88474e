// Package helpers builds throwaway git repositories for tests.
package helpers

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// ExampleRemote is the origin URL given to every test repository
const ExampleRemote = "git@github.com:eeue56/twp-example.git"

// RequireGit skips the test when git is not installed
func RequireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
}

// CreateTestRepo creates an empty repository on branch main with origin set
// to ExampleRemote. No commit is made, matching a freshly initialised project.
func CreateTestRepo(t *testing.T) string {
	t.Helper()
	RequireGit(t)
	isolateGitEnv(t)

	dir := t.TempDir()

	if _, err := run(dir, "init", "--initial-branch=main"); err != nil {
		Git(t, dir, "init")
		Git(t, dir, "symbolic-ref", "HEAD", "refs/heads/main")
	}
	Git(t, dir, "config", "user.email", "test@example.com")
	Git(t, dir, "config", "user.name", "Test User")
	Git(t, dir, "config", "commit.gpgsign", "false")
	Git(t, dir, "remote", "add", "origin", ExampleRemote)

	return dir
}

// CreateBareRemote creates a bare repository usable as a push target
func CreateBareRemote(t *testing.T) string {
	t.Helper()
	RequireGit(t)

	dir := filepath.Join(t.TempDir(), "remote.git")
	Git(t, filepath.Dir(dir), "init", "--bare", dir)
	return dir
}

// RoutePushes creates a bare repository and sets it as the push URL of
// origin. Fetch URL and identity stay on ExampleRemote.
func RoutePushes(t *testing.T, dir string) string {
	t.Helper()

	remote := CreateBareRemote(t)
	Git(t, dir, "remote", "set-url", "--push", "origin", remote)
	return remote
}

// WriteFile writes content to name inside dir, creating parent directories
func WriteFile(t *testing.T, dir, name, content string) {
	t.Helper()

	path := filepath.Join(dir, filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("Failed to create directory for %s: %v", name, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
}

// SetupExampleWorkspace writes the dotfiles and regular files used by the
// save scenarios: .env, .example, README.md and package.json.
func SetupExampleWorkspace(t *testing.T, dir string) {
	t.Helper()

	WriteFile(t, dir, ".env", "API_KEY=")
	WriteFile(t, dir, ".example", "API_KEY=")
	WriteFile(t, dir, "README.md", "### Example")
	WriteFile(t, dir, "package.json", "{}")
}

// Git runs git in dir and fails the test on error, returning trimmed stdout
func Git(t *testing.T, dir string, args ...string) string {
	t.Helper()

	out, err := run(dir, args...)
	if err != nil {
		t.Fatalf("git %s failed: %v\n%s", strings.Join(args, " "), err, out)
	}
	return strings.TrimSpace(out)
}

func run(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// isolateGitEnv clears variables that would point git at another repository
func isolateGitEnv(t *testing.T) {
	t.Helper()

	for _, key := range []string{"GIT_DIR", "GIT_WORK_TREE", "GIT_INDEX_FILE"} {
		if _, ok := os.LookupEnv(key); ok {
			t.Setenv(key, "")
			os.Unsetenv(key)
		}
	}
}
