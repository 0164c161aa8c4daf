// Package types defines the outcome protocol between an operation and the poll engine
package types

// OutcomeKind classifies the result an operation reports per attempt
type OutcomeKind int

const (
	// OutcomeContinue indicates the operation has not completed and should be retried
	OutcomeContinue OutcomeKind = iota

	// OutcomeFinished indicates the operation completed and carries a value
	OutcomeFinished

	// OutcomeBroken indicates the operation hit an unrecoverable condition
	OutcomeBroken
)

// String returns the string representation of OutcomeKind
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeContinue:
		return "continue"
	case OutcomeFinished:
		return "finished"
	case OutcomeBroken:
		return "broken"
	default:
		return "unknown"
	}
}

// Outcome is the three-way result an operation reports for a single attempt.
// Exactly one variant applies: Finished carries a value, Broken carries a
// reason, Continue optionally carries the transient error that caused it.
type Outcome[T any] struct {
	// Kind is the outcome variant
	Kind OutcomeKind

	// Value is the final result, set only for Finished outcomes
	Value T

	// Err carries the Broken reason or the transient error of a Continue
	Err error
}

// Finished reports that the operation completed with value v
func Finished[T any](v T) Outcome[T] {
	return Outcome[T]{Kind: OutcomeFinished, Value: v}
}

// Continue reports that the operation has not completed yet
func Continue[T any]() Outcome[T] {
	return Outcome[T]{Kind: OutcomeContinue}
}

// ContinueWith reports a Continue and records the transient error that caused
// it. The error is captured on the Attempt handed to wait and stop policies
// and becomes the cause of a stop-triggered failure.
func ContinueWith[T any](err error) Outcome[T] {
	return Outcome[T]{Kind: OutcomeContinue, Err: err}
}

// Broken reports an unrecoverable condition; the engine stops immediately
func Broken[T any](reason error) Outcome[T] {
	return Outcome[T]{Kind: OutcomeBroken, Err: reason}
}

// IsFinished returns true if the outcome carries a final value
func (o Outcome[T]) IsFinished() bool {
	return o.Kind == OutcomeFinished
}

// IsContinue returns true if the operation asked for another attempt
func (o Outcome[T]) IsContinue() bool {
	return o.Kind == OutcomeContinue
}

// IsBroken returns true if the operation signaled an unrecoverable condition
func (o Outcome[T]) IsBroken() bool {
	return o.Kind == OutcomeBroken
}
