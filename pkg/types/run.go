// Package types defines the records a poll run produces
package types

import (
	"time"
)

// Attempt is the immutable record of one execution cycle. A fresh Attempt is
// produced per cycle; Number and Elapsed are monotonically non-decreasing
// across a single run.
type Attempt struct {
	// Number is the 1-based attempt counter
	Number int

	// Elapsed is the total time since the run started
	Elapsed time.Duration

	// Kind is the outcome category the operation reported
	Kind OutcomeKind

	// Err is the most recent transient error, if the operation captured one
	Err error
}

// RunState describes where a poll run currently is in its lifecycle
type RunState int32

const (
	// StateIdle means the run has not started yet
	StateIdle RunState = iota
	// StateAttempting means the operation is being invoked
	StateAttempting
	// StateWaiting means the run is sleeping between attempts
	StateWaiting
	// StateSucceeded means the operation reported Finished
	StateSucceeded
	// StateUserBroken means the operation reported Broken
	StateUserBroken
	// StateStopTriggered means a stop policy fired
	StateStopTriggered
	// StateErrored means the operation failed outside the outcome protocol
	StateErrored
	// StateInterrupted means the run was cancelled externally
	StateInterrupted
)

// String returns the string representation of RunState
func (s RunState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAttempting:
		return "attempting"
	case StateWaiting:
		return "waiting"
	case StateSucceeded:
		return "succeeded"
	case StateUserBroken:
		return "user-broken"
	case StateStopTriggered:
		return "stop-triggered"
	case StateErrored:
		return "errored"
	case StateInterrupted:
		return "interrupted"
	default:
		return "unknown"
	}
}

// Terminal returns true once the run can no longer change state
func (s RunState) Terminal() bool {
	switch s {
	case StateSucceeded, StateUserBroken, StateStopTriggered, StateErrored, StateInterrupted:
		return true
	default:
		return false
	}
}

// Result is the outcome of a completed poll run, delivered asynchronously
type Result[T any] struct {
	// Value is the final value on success
	Value T

	// Error is the terminal failure, nil on success
	Error error

	// Attempts is the number of operation invocations the run made
	Attempts int

	// Duration is the total wall time of the run
	Duration time.Duration
}
