// Package poll implements a composable poll-retry-backoff execution engine.
//
// A Poller repeatedly invokes a user operation until the operation reports
// completion, reports an unrecoverable break, a stop policy fires, or the
// run is cancelled. The operation communicates through a three-way Outcome:
//
//   - Finished(value): the run succeeds immediately with value
//   - Continue / ContinueWith(err): the engine waits and tries again
//   - Broken(reason): the run fails immediately, no further attempts
//
// Key features:
//
// 1. Wait policies (delay between attempts):
//   - FixedWait: constant delay
//   - RandomWait: uniform delay within bounds
//   - ExponentialWait: geometric growth with configurable multiplier and cap
//   - FibonacciWait: Fibonacci-sequence growth with cap
//   - WaitFunc: custom policies from plain functions
//
// 2. Stop policies (when to give up), combined by logical OR:
//   - MaxAttempts: attempt budget
//   - MaxElapsed: time budget
//   - StopFunc / Any / Never: custom policies and combinators
//
// 3. Execution modes with identical semantics:
//   - Run: blocks the caller through the whole retry loop
//   - RunAsync: runs on a worker and returns a future-like Handle
//
// 4. Cooperative cancellation: context cancellation or Handle.Cancel
//    unblocks the inter-attempt wait immediately; an in-flight operation
//    invocation is never forcibly aborted.
//
// Basic usage:
//
//	p := poll.New(func(ctx context.Context) types.Outcome[string] {
//		status, err := checkJob(ctx)
//		switch {
//		case err != nil:
//			return types.Broken[string](err)
//		case status.Done:
//			return types.Finished(status.Output)
//		default:
//			return types.Continue[string]()
//		}
//	},
//		poll.WithWaitPolicy(poll.NewExponentialWait(100*time.Millisecond)),
//		poll.WithStopPolicies(poll.MaxAttempts(10), poll.MaxElapsed(time.Minute)),
//	)
//
//	out, err := p.Run(ctx)
//
// Asynchronous usage:
//
//	h := p.RunAsync(ctx)
//	// ... do other work ...
//	out, err := h.Get(ctx)
//
// Terminal failures are always a *types.PollError exposing the failure kind
// (user break, stop triggered, uncaught, interrupted) and the original
// cause; match kinds with errors.Is against the types package sentinels.
//
// Thread safety: a Poller may start any number of concurrent runs; each run
// owns its attempt counter and clock, and only the statistics sink is
// shared. The built-in wait policies derive their delay from the attempt
// number and are safe to share across concurrent runs.
package poll
