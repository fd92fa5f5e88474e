// Package prompt implements the yes/no confirmation read from the operator.
//
// A prompt writes its question, then reads exactly one line from the input.
// Bytes after the first newline are left unread so that a caller sharing the
// stream can keep using it.
package prompt

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// Suffix is appended to every question
const Suffix = " [Y/n] "

// Confirmation is the operator's answer to one question
type Confirmation struct {
	// Value is the parsed decision
	Value bool
	// Input is the raw line without its trailing newline
	Input string
	// Closed is set when the input ended before any byte was read
	Closed bool
}

// Parse turns one input line into a decision.
// An empty line or a line starting with y/Y is a yes, anything else is a no.
func Parse(line string) bool {
	line = strings.TrimRight(line, "\r\n")
	if line == "" {
		return true
	}
	return line[0] == 'y' || line[0] == 'Y'
}

// Prompter asks questions on an input/output pair
type Prompter struct {
	in     io.Reader
	out    io.Writer
	render func(string) string
}

// Option configures a Prompter
type Option func(*Prompter)

// WithRenderer styles the question before it is written
func WithRenderer(render func(string) string) Option {
	return func(p *Prompter) {
		p.render = render
	}
}

// New creates a Prompter reading from in and writing questions to out
func New(in io.Reader, out io.Writer, opts ...Option) *Prompter {
	p := &Prompter{
		in:  in,
		out: out,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Ask writes the question and reads one line of answer.
// A closed or failing input stream is a no.
func (p *Prompter) Ask(question string) Confirmation {
	text := question
	if p.render != nil {
		text = p.render(question)
	}
	_, _ = fmt.Fprint(p.out, text+Suffix)

	line, err := readLine(p.in)
	if err != nil {
		return Confirmation{Value: false, Closed: true}
	}

	line = strings.TrimRight(line, "\r\n")
	return Confirmation{
		Value: Parse(line),
		Input: line,
	}
}

// Confirm is Ask reduced to its decision
func (p *Prompter) Confirm(question string) bool {
	return p.Ask(question).Value
}

// readLine reads up to and including the first newline, one byte at a time.
// It returns whatever was read together with the terminating error, if any.
func readLine(r io.Reader) (string, error) {
	var sb strings.Builder
	buf := make([]byte, 1)

	for {
		n, err := r.Read(buf)
		if n > 0 {
			if buf[0] == '\n' {
				return sb.String(), nil
			}
			sb.WriteByte(buf[0])
		}
		if err != nil {
			if errors.Is(err, io.EOF) && sb.Len() > 0 {
				return sb.String(), nil
			}
			return sb.String(), err
		}
	}
}
