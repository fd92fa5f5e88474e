package save

import (
	"errors"
	"fmt"
)

// ErrDeclinedByOperator is returned when the operator answers no to the
// ignore-file question. Nothing has been staged, committed or pushed.
var ErrDeclinedByOperator = errors.New("declined by operator")

// PublishRejectedError is returned when the push fails after a successful
// local commit. The commit is kept.
type PublishRejectedError struct {
	Remote string
	Branch string
	Err    error
}

func (e *PublishRejectedError) Error() string {
	return fmt.Sprintf("failed to publish %s to %s: %v", e.Branch, e.Remote, e.Err)
}

func (e *PublishRejectedError) Unwrap() error {
	return e.Err
}
