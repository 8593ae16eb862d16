package workflow

import (
	"errors"
	"fmt"
)

// State is the lifecycle position of the current submission.
type State int

const (
	StateIdle State = iota
	StatePreviewing
	StateAnalyzing
	StateFailed
	StateResultsDisplayed
	StateUploadingProcessed
	StateFetchingReport
	StateDone
)

var stateNames = map[State]string{
	StateIdle:               "idle",
	StatePreviewing:         "previewing",
	StateAnalyzing:          "analyzing",
	StateFailed:             "failed",
	StateResultsDisplayed:   "results",
	StateUploadingProcessed: "uploading",
	StateFetchingReport:     "report",
	StateDone:               "done",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Busy reports whether the state has a network call in flight.
func (s State) Busy() bool {
	switch s {
	case StateAnalyzing, StateUploadingProcessed, StateFetchingReport:
		return true
	}
	return false
}

// ErrInvalidTransition marks a transition the state machine does not allow.
var ErrInvalidTransition = errors.New("invalid workflow transition")

// transitions lists the legal successors of each state. StatePreviewing is
// reachable from anywhere because a new submission supersedes the old one.
var transitions = map[State][]State{
	StatePreviewing:         {StateAnalyzing, StateFailed},
	StateAnalyzing:          {StateFailed, StateResultsDisplayed},
	StateResultsDisplayed:   {StateUploadingProcessed, StateFailed},
	StateUploadingProcessed: {StateFetchingReport, StateFailed},
	StateFetchingReport:     {StateDone, StateFailed},
}

// CanTransition reports whether from -> to is legal.
func CanTransition(from, to State) bool {
	if to == StatePreviewing {
		return true
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func checkTransition(from, to State) error {
	if CanTransition(from, to) {
		return nil
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}
