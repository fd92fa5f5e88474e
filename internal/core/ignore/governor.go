// Package ignore decides what to do about the workspace ignore file before a save.
package ignore

import (
	"fmt"
	"strings"

	"github.com/aki/twp/internal/core/prompt"
	"github.com/aki/twp/internal/core/untracked"
)

// DefaultFile is the ignore file git reads at the workspace root
const DefaultFile = ".gitignore"

// State describes the ignore file as seen on disk and by git
type State int

const (
	// Absent means the file does not exist
	Absent State = iota
	// PresentUntracked means the file exists but git does not track it
	PresentUntracked
	// PresentTracked means the file exists and is in the index
	PresentTracked
)

// String implements fmt.Stringer
func (s State) String() string {
	switch s {
	case Absent:
		return "absent"
	case PresentUntracked:
		return "present-untracked"
	case PresentTracked:
		return "present-tracked"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// MarshalText renders the state for JSON output
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// StateOf derives the state from the two facts the substrate reports.
// A file that does not exist is Absent even if git still lists it.
func StateOf(exists, tracked bool) State {
	switch {
	case !exists:
		return Absent
	case tracked:
		return PresentTracked
	default:
		return PresentUntracked
	}
}

// HasUntrackedIgnoreFile reports whether the ignore file exists but is not tracked
func HasUntrackedIgnoreFile(s State) bool {
	return s == PresentUntracked
}

// ConfirmFunc asks the operator a yes/no question
type ConfirmFunc func(question string) prompt.Confirmation

// Action is the work requested by a confirmed governance prompt
type Action struct {
	Create              bool
	AddToVersionControl bool
}

// Decision is the outcome of one governance run
type Decision struct {
	State        State                `json:"state"`
	Prompted     bool                 `json:"prompted"`
	Confirmation *prompt.Confirmation `json:"-"`
	Action       *Action              `json:"action,omitempty"`
}

// Declined reports whether the operator was asked and said no
func (d Decision) Declined() bool {
	return d.Prompted && d.Action == nil
}

// Question returns the fixed governance question for the named ignore file
func Question(file string) string {
	return fmt.Sprintf("Would you like to add a %s?", file)
}

// Governor makes the ignore-file decision for one workspace
type Governor struct {
	file string
}

// NewGovernor creates a governor for the named ignore file
func NewGovernor(file string) *Governor {
	if file == "" {
		file = DefaultFile
	}
	return &Governor{file: file}
}

// File returns the ignore file name
func (g *Governor) File() string {
	return g.file
}

// Govern derives the state and, only when the file is absent, asks whether to add it.
func (g *Governor) Govern(exists, tracked bool, confirm ConfirmFunc) Decision {
	d := Decision{State: StateOf(exists, tracked)}
	if d.State != Absent {
		return d
	}

	c := confirm(Question(g.file))
	d.Prompted = true
	d.Confirmation = &c
	if c.Value {
		d.Action = &Action{Create: true, AddToVersionControl: true}
	}
	return d
}

// Govern runs the default governor for .gitignore
func Govern(exists, tracked bool, confirm ConfirmFunc) Decision {
	return NewGovernor(DefaultFile).Govern(exists, tracked, confirm)
}

// Content renders the body of a new ignore file: the configured patterns
// followed by the untracked dotfiles, without duplicates.
func Content(patterns []string, dotfiles []untracked.Path) string {
	seen := make(map[string]bool)
	var lines []string

	add := func(entry string) {
		entry = strings.TrimSpace(entry)
		if entry == "" || seen[entry] {
			return
		}
		seen[entry] = true
		lines = append(lines, entry)
	}

	for _, p := range patterns {
		add(p)
	}
	for _, p := range dotfiles {
		add("/" + strings.TrimRight(string(p), "/"))
	}

	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}
