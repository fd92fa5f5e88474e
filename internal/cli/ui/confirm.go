package ui

import (
	"io"
	"os"

	"golang.org/x/term"

	"github.com/aki/twp/internal/core/ignore"
	"github.com/aki/twp/internal/core/prompt"
)

// IsTerminal reports whether f is attached to a terminal
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// NewConfirmFunc returns the operator prompt used by `twp save`.
// Questions are styled only when styled is true, so piped sessions see plain text.
func NewConfirmFunc(in io.Reader, out io.Writer, styled bool) ignore.ConfirmFunc {
	var opts []prompt.Option
	if styled {
		opts = append(opts, prompt.WithRenderer(func(q string) string {
			return BoldStyle.Render(q)
		}))
	}
	return prompt.New(in, out, opts...).Ask
}

// ConfirmWithDefault asks a yes/no question on stdin where an empty answer is yes
func ConfirmWithDefault(question string) bool {
	return NewConfirmFunc(os.Stdin, Stdout, IsTerminal(os.Stdin))(question).Value
}
