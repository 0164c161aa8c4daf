// Package poll provides the poll run engine
package poll

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jzx17/gopoller/pkg/types"
)

// Op is the operation a poller drives. It is invoked once per attempt and
// reports a three-way Outcome. The engine never aborts an in-flight
// invocation; cancellation is observed only between attempts and during
// waits.
type Op[T any] func(ctx context.Context) types.Outcome[T]

// config holds the run policies shared by sync and async execution
type config struct {
	wait          WaitPolicy
	stops         []StopPolicy
	clock         types.Clock
	events        EventHandler
	pool          types.WorkerPool
	recoverPanics bool
}

// Option is a configuration option for a poller
type Option func(*config)

// WithWaitPolicy sets the delay computed between attempts
func WithWaitPolicy(w WaitPolicy) Option {
	return func(c *config) {
		c.wait = w
	}
}

// WithStopPolicies adds stop policies; any of them signalling stop abandons
// the run
func WithStopPolicies(policies ...StopPolicy) Option {
	return func(c *config) {
		c.stops = append(c.stops, policies...)
	}
}

// WithClock sets the clock for time operations
func WithClock(clock types.Clock) Option {
	return func(c *config) {
		c.clock = clock
	}
}

// WithEventHandler sets the event handler
func WithEventHandler(h EventHandler) Option {
	return func(c *config) {
		c.events = h
	}
}

// WithWorkerPool sets the execution context used by RunAsync. Without a
// pool, async runs execute on a dedicated goroutine.
func WithWorkerPool(pool types.WorkerPool) Option {
	return func(c *config) {
		c.pool = pool
	}
}

// WithoutPanicRecovery disables panic recovery; operation panics then unwind
// through Run instead of terminating the run with an uncaught error
func WithoutPanicRecovery() Option {
	return func(c *config) {
		c.recoverPanics = false
	}
}

// Poller repeatedly invokes an operation under wait and stop policies until
// it finishes, breaks, a stop policy fires, or the run is cancelled.
// Concurrent runs of the same poller are independent; only the stats sink is
// shared.
type Poller[T any] struct {
	op    Op[T]
	cfg   config
	stats PollStats
}

// New creates a poller for op. Defaults: fixed 1s wait, no stop policies
// (unbounded), real clock, panic recovery enabled.
func New[T any](op Op[T], opts ...Option) *Poller[T] {
	cfg := config{
		wait:          NewFixedWait(time.Second),
		clock:         types.NewRealClock(),
		recoverPanics: true,
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	if cfg.wait == nil {
		cfg.wait = NewFixedWait(time.Second)
	}
	if cfg.clock == nil {
		cfg.clock = types.NewRealClock()
	}

	return &Poller[T]{op: op, cfg: cfg}
}

// Run executes the poll run synchronously, blocking the caller through the
// whole retry loop until a terminal state is reached
func (p *Poller[T]) Run(ctx context.Context) (T, error) {
	return p.run(ctx, newRunTracker())
}

// run drives the retry loop; tr records observable progress for async handles
func (p *Poller[T]) run(ctx context.Context, tr *runTracker) (T, error) {
	var zero T

	p.updateStats(func(s *PollStats) {
		s.TotalRuns++
		s.LastRunTime = p.cfg.clock.Now()
	})

	start := p.cfg.clock.Now()
	attempt := 0
	var lastErr error

	for {
		// cancellation is observed only between attempts and during waits
		select {
		case <-ctx.Done():
			tr.setState(types.StateInterrupted)
			if p.cfg.events != nil {
				p.cfg.events.OnInterrupted(ctx, attempt)
			}
			return zero, p.fail(types.KindInterrupted, attempt, p.cfg.clock.Since(start), ctx.Err())
		default:
		}

		attempt++
		tr.observeAttempt(attempt)
		p.updateStats(func(s *PollStats) {
			s.TotalAttempts++
		})

		if p.cfg.events != nil {
			p.cfg.events.OnAttempt(ctx, attempt)
		}

		out, panicErr := p.invoke(ctx)
		elapsed := p.cfg.clock.Since(start)

		if panicErr != nil {
			tr.setState(types.StateErrored)
			if p.cfg.events != nil {
				p.cfg.events.OnPanic(ctx, attempt, panicErr)
			}
			p.updateStats(func(s *PollStats) {
				s.Panics++
				s.finishRun()
			})
			return zero, types.NewPollError(types.KindUncaught, attempt, elapsed, panicErr)
		}

		switch out.Kind {
		case types.OutcomeFinished:
			tr.setState(types.StateSucceeded)
			if p.cfg.events != nil {
				p.cfg.events.OnFinished(ctx, attempt, elapsed)
			}
			p.updateStats(func(s *PollStats) {
				s.Successes++
				s.finishRun()
			})
			return out.Value, nil

		case types.OutcomeBroken:
			tr.setState(types.StateUserBroken)
			if p.cfg.events != nil {
				p.cfg.events.OnUserBreak(ctx, attempt, out.Err)
			}
			return zero, p.fail(types.KindUserBreak, attempt, elapsed, out.Err)
		}

		if out.Err != nil {
			lastErr = out.Err
		}

		a := types.Attempt{
			Number:  attempt,
			Elapsed: elapsed,
			Kind:    out.Kind,
			Err:     lastErr,
		}

		if p.mustStop(a) {
			tr.setState(types.StateStopTriggered)
			if p.cfg.events != nil {
				p.cfg.events.OnStopTriggered(ctx, attempt, elapsed)
			}
			return zero, p.fail(types.KindStopTriggered, attempt, elapsed, lastErr)
		}

		delay := p.cfg.wait.NextDelay(a)
		if delay < 0 {
			delay = 0
		}

		if p.cfg.events != nil {
			p.cfg.events.OnWait(ctx, attempt, delay)
		}
		p.updateStats(func(s *PollStats) {
			s.TotalWait += delay
		})

		if delay > 0 {
			tr.setState(types.StateWaiting)
			timer := p.cfg.clock.NewTimer(delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				tr.setState(types.StateInterrupted)
				if p.cfg.events != nil {
					p.cfg.events.OnInterrupted(ctx, attempt)
				}
				return zero, p.fail(types.KindInterrupted, attempt, p.cfg.clock.Since(start), ctx.Err())
			case <-timer.C():
			}
		}
	}
}

// invoke runs the operation, converting a panic into an error when recovery
// is enabled
func (p *Poller[T]) invoke(ctx context.Context) (out types.Outcome[T], panicErr error) {
	if p.cfg.recoverPanics {
		defer func() {
			if r := recover(); r != nil {
				if err, ok := r.(error); ok {
					panicErr = err
				} else {
					panicErr = fmt.Errorf("%v", r)
				}
			}
		}()
	}

	out = p.op(ctx)
	return out, nil
}

// mustStop evaluates the configured stop policies by logical OR
func (p *Poller[T]) mustStop(a types.Attempt) bool {
	for _, sp := range p.cfg.stops {
		if sp != nil && sp.ShouldStop(a) {
			return true
		}
	}
	return false
}

// fail records the failure in the stats and wraps it as a PollError
func (p *Poller[T]) fail(kind types.ErrorKind, attempts int, elapsed time.Duration, cause error) error {
	p.updateStats(func(s *PollStats) {
		switch kind {
		case types.KindUserBreak:
			s.UserBreaks++
		case types.KindStopTriggered:
			s.StopTriggers++
		case types.KindInterrupted:
			s.Interrupts++
		}
		s.finishRun()
	})
	return types.NewPollError(kind, attempts, elapsed, cause)
}

// PollStats contains accumulated statistics across a poller's runs
type PollStats struct {
	TotalRuns       int64         // runs started
	TotalAttempts   int64         // operation invocations across all runs
	Successes       int64         // runs that finished with a value
	UserBreaks      int64         // runs broken by the operation
	StopTriggers    int64         // runs abandoned by a stop policy
	Interrupts      int64         // runs cancelled externally
	Panics          int64         // runs terminated by an operation panic
	AverageAttempts float64       // attempts per completed run
	TotalWait       time.Duration // accumulated inter-attempt delay
	LastRunTime     time.Time     // start time of the most recent run
	mu              sync.RWMutex
}

// finishRun updates the per-run average; callers hold the lock
func (s *PollStats) finishRun() {
	completed := s.Successes + s.UserBreaks + s.StopTriggers + s.Interrupts + s.Panics
	if completed > 0 {
		s.AverageAttempts = float64(s.TotalAttempts) / float64(completed)
	}
}

// Stats returns a snapshot of the poller statistics
func (p *Poller[T]) Stats() PollStats {
	p.stats.mu.RLock()
	defer p.stats.mu.RUnlock()
	return PollStats{
		TotalRuns:       p.stats.TotalRuns,
		TotalAttempts:   p.stats.TotalAttempts,
		Successes:       p.stats.Successes,
		UserBreaks:      p.stats.UserBreaks,
		StopTriggers:    p.stats.StopTriggers,
		Interrupts:      p.stats.Interrupts,
		Panics:          p.stats.Panics,
		AverageAttempts: p.stats.AverageAttempts,
		TotalWait:       p.stats.TotalWait,
		LastRunTime:     p.stats.LastRunTime,
		// don't copy mutex
	}
}

// ResetStats resets statistics
func (p *Poller[T]) ResetStats() {
	p.stats.mu.Lock()
	defer p.stats.mu.Unlock()

	p.stats.TotalRuns = 0
	p.stats.TotalAttempts = 0
	p.stats.Successes = 0
	p.stats.UserBreaks = 0
	p.stats.StopTriggers = 0
	p.stats.Interrupts = 0
	p.stats.Panics = 0
	p.stats.AverageAttempts = 0
	p.stats.TotalWait = 0
	p.stats.LastRunTime = time.Time{}
}

// updateStats applies fn under the stats lock
func (p *Poller[T]) updateStats(fn func(*PollStats)) {
	p.stats.mu.Lock()
	defer p.stats.mu.Unlock()
	fn(&p.stats)
}

// runTracker records observable progress of a single run
type runTracker struct {
	state    int32 // types.RunState
	attempts int32
}

func newRunTracker() *runTracker {
	return &runTracker{state: int32(types.StateIdle)}
}

func (t *runTracker) setState(s types.RunState) {
	atomic.StoreInt32(&t.state, int32(s))
}

func (t *runTracker) currentState() types.RunState {
	return types.RunState(atomic.LoadInt32(&t.state))
}

func (t *runTracker) observeAttempt(n int) {
	atomic.StoreInt32(&t.attempts, int32(n))
	atomic.StoreInt32(&t.state, int32(types.StateAttempting))
}

func (t *runTracker) attemptCount() int {
	return int(atomic.LoadInt32(&t.attempts))
}
