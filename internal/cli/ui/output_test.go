package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"

	"github.com/aki/twp/internal/core/git"
	"github.com/aki/twp/internal/core/ignore"
	"github.com/aki/twp/internal/core/save"
	"github.com/aki/twp/internal/core/untracked"
)

// captureOutput redirects Stdout for the duration of the test and disables colors
func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := Stdout
	Stdout = &buf
	t.Cleanup(func() { Stdout = old })

	profile := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.Ascii)
	t.Cleanup(func() { lipgloss.SetColorProfile(profile) })
	return &buf
}

func captureErrors(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := Stderr
	Stderr = &buf
	t.Cleanup(func() { Stderr = old })
	return &buf
}

func TestPrintIdentity(t *testing.T) {
	out := captureOutput(t)

	PrintIdentity(git.Identity{
		Endpoint: git.Endpoint{Host: "github.com", Owner: "eeue56", Repo: "twp-example"},
		Branch:   "main",
	})

	assert.Equal(t, "Hostname: github.com\nRepo: eeue56/twp-example\nOn branch main\n", out.String())
}

func TestBranchLabelDetached(t *testing.T) {
	assert.Equal(t, "(detached HEAD)", BranchLabel(git.Identity{}))
	assert.Equal(t, "dev", BranchLabel(git.Identity{Branch: "dev"}))
}

func TestPrintUntracked(t *testing.T) {
	out := captureOutput(t)

	c := untracked.Classify([]string{".env", "README.md"})
	PrintUntracked(c, ".gitignore", ignore.Absent)

	got := out.String()
	assert.Contains(t, got, "Ignore file: .gitignore (absent)")
	assert.Contains(t, got, "Untracked (2)")

	lines := strings.Split(got, "\n")
	var rows []string
	for _, l := range lines {
		if strings.HasPrefix(l, ".env") || strings.HasPrefix(l, "README.md") {
			rows = append(rows, strings.Join(strings.Fields(l), " "))
		}
	}
	assert.Equal(t, []string{".env dotfile", "README.md file"}, rows)
}

func TestPrintUntrackedEmpty(t *testing.T) {
	out := captureOutput(t)

	PrintUntracked(untracked.Classify(nil), ".gitignore", ignore.PresentTracked)

	assert.Contains(t, out.String(), "No untracked files")
}

func TestPrintTransition(t *testing.T) {
	out := captureOutput(t)

	PrintTransition(save.StateStaging)
	PrintTransition(save.StateDone)

	assert.Equal(t, "→ staging\n", out.String())
}

func TestPrintSaveResult(t *testing.T) {
	id := git.Identity{Branch: "main", RemoteName: "origin"}

	t.Run("done", func(t *testing.T) {
		out := captureOutput(t)
		PrintSaveResult(&save.Session{
			State:         save.StateDone,
			Identity:      id,
			IgnoreFile:    ".gitignore",
			IgnoreCreated: true,
			Staged:        []string{".gitignore", "README.md"},
			Message:       "wip",
		})
		assert.Contains(t, out.String(), "Saved 2 path(s) and pushed main to origin")
		assert.Contains(t, out.String(), "Created: .gitignore")
		assert.Contains(t, out.String(), "Commit: wip")
	})

	t.Run("publish failed", func(t *testing.T) {
		captureOutput(t)
		errOut := captureErrors(t)
		PrintSaveResult(&save.Session{State: save.StatePublishFailed, Identity: id})
		assert.Contains(t, errOut.String(), "Pull or rebase onto origin/main")
	})
}

func TestConfirmFunc(t *testing.T) {
	var out bytes.Buffer
	confirm := NewConfirmFunc(strings.NewReader("n\ny\n"), &out, false)

	first := confirm("Would you like to add a .gitignore?")
	second := confirm("Again?")

	assert.False(t, first.Value)
	assert.True(t, second.Value)
	assert.Equal(t, "Would you like to add a .gitignore? [Y/n] Again? [Y/n] ", out.String())
}
