package process

import (
	"errors"
	"fmt"
)

// ErrPrivilegeDrop indicates the OS refused to change the child's identity.
var ErrPrivilegeDrop = errors.New("unable to change user. are you running as root?")

// State is a launcher state
type State int

const (
	StateIdle State = iota
	StateSpawning
	StateDemoting
	StateExecuting
	StateExited
	StateFailed
)

// String returns the state name
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSpawning:
		return "spawning"
	case StateDemoting:
		return "demoting"
	case StateExecuting:
		return "executing"
	case StateExited:
		return "exited"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

var transitions = map[State][]State{
	StateIdle:      {StateSpawning},
	StateSpawning:  {StateDemoting, StateExecuting, StateFailed},
	StateDemoting:  {StateExecuting, StateFailed},
	StateExecuting: {StateExited, StateFailed},
}

// Lifecycle tracks a single launch through
// idle -> spawning -> (demoting ->) executing -> exited, or failed.
type Lifecycle struct {
	state   State
	history []State
}

// NewLifecycle returns a lifecycle in the idle state
func NewLifecycle() *Lifecycle {
	return &Lifecycle{state: StateIdle, history: []State{StateIdle}}
}

// State returns the current state
func (l *Lifecycle) State() State {
	return l.state
}

// History returns every state visited, in order
func (l *Lifecycle) History() []State {
	return append([]State(nil), l.history...)
}

// Transition moves to the next state if the move is allowed
func (l *Lifecycle) Transition(to State) error {
	for _, allowed := range transitions[l.state] {
		if allowed == to {
			l.state = to
			l.history = append(l.history, to)
			return nil
		}
	}
	return fmt.Errorf("invalid launch transition %s -> %s", l.state, to)
}

// Visited reports whether the lifecycle has been in state s
func (l *Lifecycle) Visited(s State) bool {
	for _, h := range l.history {
		if h == s {
			return true
		}
	}
	return false
}
