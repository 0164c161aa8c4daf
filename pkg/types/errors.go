// Package types defines the error taxonomy of terminal poll failures
package types

import (
	"errors"
	"fmt"
	"time"
)

// Kind sentinels. Callers match them through errors.Is on the wrapped
// *PollError, e.g. errors.Is(err, types.ErrStopTriggered).
var (
	// ErrUserBreak indicates the operation explicitly broke out of the run
	ErrUserBreak = errors.New("poll: user break")

	// ErrStopTriggered indicates a configured stop policy fired
	ErrStopTriggered = errors.New("poll: stop policy triggered")

	// ErrUncaught indicates the operation failed outside the outcome protocol
	ErrUncaught = errors.New("poll: uncaught operation error")

	// ErrInterrupted indicates the run was cancelled externally
	ErrInterrupted = errors.New("poll: interrupted")
)

// ErrorKind identifies the terminal failure category of a poll run
type ErrorKind int

const (
	// KindUserBreak corresponds to a Broken outcome
	KindUserBreak ErrorKind = iota + 1
	// KindStopTriggered corresponds to a fired stop policy
	KindStopTriggered
	// KindUncaught corresponds to an operation error outside the protocol
	KindUncaught
	// KindInterrupted corresponds to external cancellation
	KindInterrupted
)

// String returns the string representation of ErrorKind
func (k ErrorKind) String() string {
	switch k {
	case KindUserBreak:
		return "user-break"
	case KindStopTriggered:
		return "stop-triggered"
	case KindUncaught:
		return "uncaught"
	case KindInterrupted:
		return "interrupted"
	default:
		return "unknown"
	}
}

// sentinel returns the package-level sentinel matching the kind
func (k ErrorKind) sentinel() error {
	switch k {
	case KindUserBreak:
		return ErrUserBreak
	case KindStopTriggered:
		return ErrStopTriggered
	case KindUncaught:
		return ErrUncaught
	case KindInterrupted:
		return ErrInterrupted
	default:
		return nil
	}
}

// PollError is the single wrapper surfaced for every terminal failure of a
// poll run. It exposes the failure kind, how far the run got, and the
// original cause.
type PollError struct {
	// Kind is the failure category
	Kind ErrorKind

	// Attempts is the number of operation invocations made before failing
	Attempts int

	// Elapsed is the total run time at the point of failure
	Elapsed time.Duration

	// Cause is the underlying error; may be nil for stop-triggered failures
	Cause error
}

// NewPollError creates a terminal poll failure
func NewPollError(kind ErrorKind, attempts int, elapsed time.Duration, cause error) *PollError {
	return &PollError{
		Kind:     kind,
		Attempts: attempts,
		Elapsed:  elapsed,
		Cause:    cause,
	}
}

// Error implements the error interface
func (e *PollError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("poll failed (%s) after %d attempt(s) in %v: %v", e.Kind, e.Attempts, e.Elapsed, e.Cause)
	}
	return fmt.Sprintf("poll failed (%s) after %d attempt(s) in %v", e.Kind, e.Attempts, e.Elapsed)
}

// Unwrap returns the underlying cause
func (e *PollError) Unwrap() error {
	return e.Cause
}

// Is matches the kind sentinel so callers can use errors.Is without
// unwrapping to the cause first
func (e *PollError) Is(target error) bool {
	if s := e.Kind.sentinel(); s != nil && target == s {
		return true
	}
	return false
}

// IsUserBreak reports whether err is a user-break terminal failure
func IsUserBreak(err error) bool {
	return errors.Is(err, ErrUserBreak)
}

// IsStopTriggered reports whether err is a stop-policy terminal failure
func IsStopTriggered(err error) bool {
	return errors.Is(err, ErrStopTriggered)
}

// IsUncaught reports whether err wraps an error raised outside the protocol
func IsUncaught(err error) bool {
	return errors.Is(err, ErrUncaught)
}

// IsInterrupted reports whether err is an external-cancellation failure
func IsInterrupted(err error) bool {
	return errors.Is(err, ErrInterrupted)
}

// AsPollError extracts the *PollError from an error chain
func AsPollError(err error) (*PollError, bool) {
	var pe *PollError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}
