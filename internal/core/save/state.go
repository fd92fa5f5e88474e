package save

import (
	"fmt"
	"slices"
)

// State is a phase of a save run
type State string

const (
	StateInspecting    State = "inspecting"
	StateGoverning     State = "governing"
	StateStaging       State = "staging"
	StateCommitting    State = "committing"
	StatePublishing    State = "publishing"
	StateDone          State = "done"
	StateAborted       State = "aborted"
	StatePublishFailed State = "publish-failed"
	StateFailed        State = "failed"
)

// validTransitions lists the states reachable from each state.
// Terminal states have no successors.
var validTransitions = map[State][]State{
	StateInspecting:    {StateGoverning, StateFailed},
	StateGoverning:     {StateStaging, StateAborted, StateFailed},
	StateStaging:       {StateCommitting, StateFailed},
	StateCommitting:    {StatePublishing, StateFailed},
	StatePublishing:    {StateDone, StatePublishFailed},
	StateDone:          {},
	StateAborted:       {},
	StatePublishFailed: {},
	StateFailed:        {},
}

// IsTerminal reports whether no further transition is possible
func (s State) IsTerminal() bool {
	next, ok := validTransitions[s]
	return ok && len(next) == 0
}

func isValidTransition(from, to State) bool {
	allowed, ok := validTransitions[from]
	if !ok {
		return false
	}
	return slices.Contains(allowed, to)
}

// InvalidTransitionError is returned when the orchestrator attempts a
// transition the table does not allow
type InvalidTransitionError struct {
	From State
	To   State
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition from %s to %s", e.From, e.To)
}

// Transition records one state change
type Transition struct {
	From State `json:"from"`
	To   State `json:"to"`
}
