// Package poll provides wait policy implementations
package poll

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/jzx17/gopoller/pkg/types"
)

// WaitPolicy computes the delay before the next attempt. Implementations
// must be safe for concurrent use; the built-in policies derive the delay
// from the attempt number, so one instance can serve concurrent runs.
type WaitPolicy interface {
	// NextDelay returns a non-negative delay given the last attempt
	NextDelay(a types.Attempt) time.Duration

	// Reset clears any accumulated state. The built-in policies carry none,
	// so for them it is a no-op.
	Reset()
}

// WaitFunc adapts a plain function to a WaitPolicy
type WaitFunc func(a types.Attempt) time.Duration

// NextDelay returns the delay computed by the function
func (f WaitFunc) NextDelay(a types.Attempt) time.Duration {
	return f(a)
}

// Reset is a no-op for function policies
func (f WaitFunc) Reset() {}

// FixedWait waits the same delay between every attempt
type FixedWait struct {
	delay  time.Duration
	jitter JitterFunc
}

// NewFixedWait creates a fixed-delay wait policy
func NewFixedWait(delay time.Duration, opts ...WaitOption) *FixedWait {
	w := &FixedWait{delay: delay}

	for _, opt := range opts {
		opt.applyToFixed(w)
	}

	return w
}

// NextDelay returns the fixed delay
func (w *FixedWait) NextDelay(a types.Attempt) time.Duration {
	delay := w.delay
	if w.jitter != nil {
		delay = w.jitter(delay)
	}
	return delay
}

// Reset is a no-op; fixed wait is stateless
func (w *FixedWait) Reset() {}

// RandomWait waits a uniformly random delay within [min, max)
type RandomWait struct {
	min time.Duration
	max time.Duration
}

// NewRandomWait creates a randomized wait policy bounded by [min, max).
// Invalid bounds collapse to the fixed lower bound.
func NewRandomWait(min, max time.Duration) *RandomWait {
	if min < 0 {
		min = 0
	}
	if max < min {
		max = min
	}
	return &RandomWait{min: min, max: max}
}

// NextDelay returns a random delay within the configured bounds
func (w *RandomWait) NextDelay(a types.Attempt) time.Duration {
	if w.max == w.min {
		return w.min
	}
	return w.min + time.Duration(rand.Int63n(int64(w.max-w.min)))
}

// Reset is a no-op; random wait is stateless
func (w *RandomWait) Reset() {}

// ExponentialWait grows the delay geometrically: before attempt i the delay
// is min(base * multiplier^(i-1), cap)
type ExponentialWait struct {
	base       time.Duration
	multiplier float64
	maxDelay   time.Duration
	jitter     JitterFunc
}

// NewExponentialWait creates an exponential backoff wait policy with a
// default multiplier of 2 and a default cap of 30s
func NewExponentialWait(base time.Duration, opts ...WaitOption) *ExponentialWait {
	w := &ExponentialWait{
		base:       base,
		multiplier: 2.0,
		maxDelay:   30 * time.Second,
	}

	for _, opt := range opts {
		opt.applyToExponential(w)
	}

	return w
}

// NextDelay returns the capped geometric delay for the attempt
func (w *ExponentialWait) NextDelay(a types.Attempt) time.Duration {
	n := a.Number
	if n <= 0 {
		n = 1
	}

	delay := time.Duration(float64(w.base) * math.Pow(w.multiplier, float64(n-1)))

	// guard against overflow of the float conversion
	if delay > w.maxDelay || delay < 0 {
		delay = w.maxDelay
	}

	if w.jitter != nil {
		delay = w.jitter(delay)
	}

	return delay
}

// Reset is a no-op; exponential wait is stateless
func (w *ExponentialWait) Reset() {}

// FibonacciWait scales the base delay by the Fibonacci sequence
type FibonacciWait struct {
	base     time.Duration
	maxDelay time.Duration
	jitter   JitterFunc

	mu       sync.Mutex // guards fibCache
	fibCache []int64
}

// NewFibonacciWait creates a Fibonacci backoff wait policy with a default
// cap of 30s
func NewFibonacciWait(base time.Duration, opts ...WaitOption) *FibonacciWait {
	w := &FibonacciWait{
		base:     base,
		maxDelay: 30 * time.Second,
		fibCache: []int64{1, 1},
	}

	for _, opt := range opts {
		opt.applyToFibonacci(w)
	}

	return w
}

// NextDelay returns base scaled by the attempt's Fibonacci number, capped
func (w *FibonacciWait) NextDelay(a types.Attempt) time.Duration {
	n := a.Number
	if n <= 0 {
		n = 1
	}

	delay := time.Duration(w.fib(n-1)) * w.base

	if delay > w.maxDelay || delay < 0 {
		delay = w.maxDelay
	}

	if w.jitter != nil {
		delay = w.jitter(delay)
	}

	return delay
}

// fib returns the nth Fibonacci number, extending the cache as needed
func (w *FibonacciWait) fib(n int) int64 {
	w.mu.Lock()
	defer w.mu.Unlock()

	if n < len(w.fibCache) {
		return w.fibCache[n]
	}

	for i := len(w.fibCache); i <= n; i++ {
		next := w.fibCache[i-1] + w.fibCache[i-2]
		// clamp on overflow
		if next < w.fibCache[i-1] {
			next = math.MaxInt32
		}
		w.fibCache = append(w.fibCache, next)
	}

	return w.fibCache[n]
}

// Reset is a no-op; the cache is a memo keyed by attempt number, not per-run
// state
func (w *FibonacciWait) Reset() {}

// JitterFunc perturbs a computed delay
type JitterFunc func(time.Duration) time.Duration

// FullJitter returns a random delay within [0, delay)
func FullJitter(delay time.Duration) time.Duration {
	if delay <= 0 {
		return 0
	}
	return time.Duration(rand.Int63n(int64(delay)))
}

// EqualJitter returns delay/2 plus a random delay within [0, delay/2)
func EqualJitter(delay time.Duration) time.Duration {
	if delay <= 0 {
		return 0
	}
	half := delay / 2
	if half <= 0 {
		return delay
	}
	return half + time.Duration(rand.Int63n(int64(half)))
}

// WaitOption configures a built-in wait policy
type WaitOption interface {
	applyToFixed(*FixedWait)
	applyToExponential(*ExponentialWait)
	applyToFibonacci(*FibonacciWait)
}

type waitOption struct {
	multiplier *float64
	maxDelay   *time.Duration
	jitter     JitterFunc
}

func (o *waitOption) applyToFixed(w *FixedWait) {
	if o.jitter != nil {
		w.jitter = o.jitter
	}
}

func (o *waitOption) applyToExponential(w *ExponentialWait) {
	if o.multiplier != nil {
		w.multiplier = *o.multiplier
	}
	if o.maxDelay != nil {
		w.maxDelay = *o.maxDelay
	}
	if o.jitter != nil {
		w.jitter = o.jitter
	}
}

func (o *waitOption) applyToFibonacci(w *FibonacciWait) {
	if o.maxDelay != nil {
		w.maxDelay = *o.maxDelay
	}
	if o.jitter != nil {
		w.jitter = o.jitter
	}
}

// WithMultiplier sets the growth factor (exponential wait only)
func WithMultiplier(multiplier float64) WaitOption {
	return &waitOption{multiplier: &multiplier}
}

// WithMaxDelay caps the computed delay
func WithMaxDelay(maxDelay time.Duration) WaitOption {
	return &waitOption{maxDelay: &maxDelay}
}

// WithJitter perturbs computed delays with the given function
func WithJitter(jitter JitterFunc) WaitOption {
	return &waitOption{jitter: jitter}
}
