package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/aki/twp/internal/core/git"
	"github.com/aki/twp/internal/core/ignore"
	"github.com/aki/twp/internal/core/save"
	"github.com/aki/twp/internal/core/untracked"
)

var (
	// Stdout receives command output
	Stdout io.Writer = os.Stdout
	// Stderr receives errors, warnings and prompts in JSON mode
	Stderr io.Writer = os.Stderr
)

// Print functions for consistent output

func Error(format string, args ...interface{}) {
	fmt.Fprintf(Stderr, "%s %s\n", ErrorIcon, ErrorStyle.Render(fmt.Sprintf(format, args...)))
}

func Success(format string, args ...interface{}) {
	fmt.Fprintf(Stdout, "%s %s\n", SuccessIcon, SuccessStyle.Render(fmt.Sprintf(format, args...)))
}

func Info(format string, args ...interface{}) {
	fmt.Fprintf(Stdout, "%s %s\n", InfoIcon, InfoStyle.Render(fmt.Sprintf(format, args...)))
}

func Warning(format string, args ...interface{}) {
	fmt.Fprintf(Stderr, "%s %s\n", WarningIcon, WarningStyle.Render(fmt.Sprintf(format, args...)))
}

// OutputLine prints one unstyled line to stdout
func OutputLine(format string, args ...interface{}) {
	fmt.Fprintf(Stdout, format+"\n", args...)
}

// PrintKeyValue prints a dimmed key followed by its value
func PrintKeyValue(key, value string) {
	fmt.Fprintf(Stdout, "%s %s\n", DimStyle.Render(key+":"), value)
}

// PrintIdentity prints the three lines of `twp info`
func PrintIdentity(id git.Identity) {
	OutputLine("Hostname: %s", id.Host)
	OutputLine("Repo: %s", id.FullName())
	OutputLine("On branch %s", BranchLabel(id))
}

// BranchLabel returns the branch name or a marker for a detached HEAD
func BranchLabel(id git.Identity) string {
	if id.Detached() {
		return "(detached HEAD)"
	}
	return id.Branch
}

// PathKind labels an untracked path for the status table
func PathKind(p untracked.Path) string {
	if p.IsDotfile() {
		return "dotfile"
	}
	return "file"
}

// PrintUntracked displays the untracked paths and the ignore file state
func PrintUntracked(c untracked.Classification, file string, state ignore.State) {
	PrintKeyValue("Ignore file", fmt.Sprintf("%s (%s)", file, state))

	if c.Empty() {
		Info("No untracked files")
		return
	}

	tbl := NewTable("PATH", "KIND")
	for _, p := range c.All {
		kind := PathKind(p)
		if p.IsDotfile() {
			kind = DotfileStyle.Render(kind)
		}
		tbl.AddRow(p.String(), kind)
	}

	PrintSectionHeader(UntrackedIcon, "Untracked", len(c.All))
	tbl.Print()
	fmt.Fprintln(Stdout)
}

// PrintTransition prints one save progress line
func PrintTransition(to save.State) {
	switch to {
	case save.StateDone, save.StateAborted, save.StatePublishFailed, save.StateFailed:
		return
	}
	fmt.Fprintf(Stdout, "%s %s\n", DimStyle.Render(StepIcon), DimStyle.Render(string(to)))
}

// PrintSaveResult summarises a finished save run
func PrintSaveResult(s *save.Session) {
	switch s.State {
	case save.StateDone:
		Success("Saved %d path(s) and pushed %s to %s", len(s.Staged), s.Identity.Branch, s.Identity.RemoteName)
		if s.IgnoreCreated {
			PrintKeyValue("Created", s.IgnoreFile)
		}
		PrintKeyValue("Commit", s.Message)
	case save.StateAborted:
		Warning("Save aborted: nothing was staged, committed or pushed")
	case save.StatePublishFailed:
		Warning("Committed locally but could not push %s to %s", s.Identity.Branch, s.Identity.RemoteName)
		Warning("Pull or rebase onto %s/%s, then run `twp save` again", s.Identity.RemoteName, s.Identity.Branch)
	}
}
