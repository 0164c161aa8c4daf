package poll

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/jzx17/gopoller/pkg/types"
)

// handleIDCounter numbers async runs for task tracking
var handleIDCounter int64

// Handle is a future-like reference to an in-flight asynchronous poll run.
// The caller awaits the terminal result with Get and may cancel the run at
// any time; cancellation is cooperative and takes effect at the next wait
// boundary.
type Handle[T any] struct {
	done    chan struct{}
	cancel  context.CancelFunc
	tracker *runTracker
	result  types.Result[T]
}

// RunAsync starts the poll run on a separate worker and returns immediately.
// The run executes on the configured worker pool when one is set, otherwise
// on a dedicated goroutine. Retry, wait and stop semantics are identical to
// Run.
//
// A pool-backed run that is still queued when the pool stops is discarded
// and its handle never completes; callers sharing a pool that may shut down
// should bound Get with a context.
func (p *Poller[T]) RunAsync(ctx context.Context) *Handle[T] {
	runCtx, cancel := context.WithCancel(ctx)

	h := &Handle[T]{
		done:    make(chan struct{}),
		cancel:  cancel,
		tracker: newRunTracker(),
	}

	runFn := func(taskCtx context.Context) error {
		defer close(h.done)
		defer cancel()

		start := p.cfg.clock.Now()
		value, err := p.run(taskCtx, h.tracker)

		h.result = types.Result[T]{
			Value:    value,
			Error:    err,
			Attempts: h.tracker.attemptCount(),
			Duration: p.cfg.clock.Since(start),
		}
		return err
	}

	if p.cfg.pool != nil {
		id := atomic.AddInt64(&handleIDCounter, 1)
		task := &runTask{
			id: fmt.Sprintf("poll-run-%d", id),
			fn: func(context.Context) error {
				// the run context, not the pool context, governs cancellation
				return runFn(runCtx)
			},
		}
		if err := p.cfg.pool.Submit(task); err != nil {
			// the run never started; surface the submission failure
			h.result = types.Result[T]{Error: err}
			h.tracker.setState(types.StateErrored)
			close(h.done)
			cancel()
		}
		return h
	}

	// the error is delivered through the handle
	go func() { _ = runFn(runCtx) }()

	return h
}

// Done returns a channel closed once the run reaches a terminal state
func (h *Handle[T]) Done() <-chan struct{} {
	return h.done
}

// Get awaits the terminal result and unwraps it. The passed context bounds
// the wait only; cancelling it does not cancel the run itself. Always pass
// a bounded context when the run was submitted to a shared worker pool: a
// run dropped by a stopping pool never reaches a terminal state.
func (h *Handle[T]) Get(ctx context.Context) (T, error) {
	select {
	case <-h.done:
		return h.result.Value, h.result.Error
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Result returns the full run result once terminal; ok is false while the
// run is still in flight
func (h *Handle[T]) Result() (types.Result[T], bool) {
	select {
	case <-h.done:
		return h.result, true
	default:
		return types.Result[T]{}, false
	}
}

// Cancel requests cooperative cancellation of the run. An in-progress
// operation invocation is not aborted; the run terminates with an
// interrupted error at the next wait boundary.
func (h *Handle[T]) Cancel() {
	h.cancel()
}

// State returns the current run state
func (h *Handle[T]) State() types.RunState {
	return h.tracker.currentState()
}

// Attempts returns the number of attempts started so far
func (h *Handle[T]) Attempts() int {
	return h.tracker.attemptCount()
}

// runTask adapts an async poll run to the worker pool task interface
type runTask struct {
	id string
	fn func(ctx context.Context) error
}

// Execute executes the poll run
func (t *runTask) Execute(ctx context.Context) error {
	return t.fn(ctx)
}

// ID returns the task ID
func (t *runTask) ID() string {
	return t.id
}
