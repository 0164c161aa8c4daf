// Package poll provides stop policy implementations
package poll

import (
	"time"

	"github.com/jzx17/gopoller/pkg/types"
)

// StopPolicy decides whether the run must give up after an attempt asked to
// continue. Multiple policies configured on a poller combine by logical OR.
type StopPolicy interface {
	// ShouldStop returns true when the run must be abandoned
	ShouldStop(a types.Attempt) bool
}

// StopFunc adapts a plain function to a StopPolicy
type StopFunc func(a types.Attempt) bool

// ShouldStop returns the function's decision
func (f StopFunc) ShouldStop(a types.Attempt) bool {
	return f(a)
}

// MaxAttempts stops once the attempt counter reaches k. A non-positive k
// never stops.
func MaxAttempts(k int) StopPolicy {
	return StopFunc(func(a types.Attempt) bool {
		return k > 0 && a.Number >= k
	})
}

// MaxElapsed stops once the total run time reaches d. A non-positive d
// never stops.
func MaxElapsed(d time.Duration) StopPolicy {
	return StopFunc(func(a types.Attempt) bool {
		return d > 0 && a.Elapsed >= d
	})
}

// Any combines stop policies by logical OR; the first to signal stop wins
func Any(policies ...StopPolicy) StopPolicy {
	return StopFunc(func(a types.Attempt) bool {
		for _, p := range policies {
			if p != nil && p.ShouldStop(a) {
				return true
			}
		}
		return false
	})
}

// Never is the explicit unbounded policy; the run only ends when the
// operation finishes, breaks, or the run is cancelled
func Never() StopPolicy {
	return StopFunc(func(types.Attempt) bool {
		return false
	})
}
