// Package poll provides event notification for poll runs
package poll

import (
	"context"
	"time"
)

// EventHandler receives notifications as a poll run progresses. All methods
// are called from the goroutine driving the run.
type EventHandler interface {
	// OnAttempt fires before the operation is invoked
	OnAttempt(ctx context.Context, attempt int)

	// OnWait fires before the inter-attempt sleep
	OnWait(ctx context.Context, attempt int, delay time.Duration)

	// OnFinished fires when the operation reports Finished
	OnFinished(ctx context.Context, attempt int, elapsed time.Duration)

	// OnUserBreak fires when the operation reports Broken
	OnUserBreak(ctx context.Context, attempt int, reason error)

	// OnStopTriggered fires when a stop policy abandons the run
	OnStopTriggered(ctx context.Context, attempt int, elapsed time.Duration)

	// OnInterrupted fires when the run is cancelled externally
	OnInterrupted(ctx context.Context, attempt int)

	// OnPanic fires when the operation fails outside the outcome protocol
	OnPanic(ctx context.Context, attempt int, cause error)
}

// Logger interface for logging
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// LogEventHandler is an EventHandler that writes run progress to a Logger
type LogEventHandler struct {
	logger Logger
}

// NewLogEventHandler creates a logging event handler
func NewLogEventHandler(logger Logger) *LogEventHandler {
	return &LogEventHandler{logger: logger}
}

// OnAttempt logs the start of an attempt
func (h *LogEventHandler) OnAttempt(ctx context.Context, attempt int) {
	if h.logger != nil {
		h.logger.Debugf("poll attempt %d starting", attempt)
	}
}

// OnWait logs the inter-attempt delay
func (h *LogEventHandler) OnWait(ctx context.Context, attempt int, delay time.Duration) {
	if h.logger != nil {
		h.logger.Debugf("poll attempt %d incomplete, waiting %v", attempt, delay)
	}
}

// OnFinished logs run completion
func (h *LogEventHandler) OnFinished(ctx context.Context, attempt int, elapsed time.Duration) {
	if h.logger != nil {
		h.logger.Infof("poll finished on attempt %d after %v", attempt, elapsed)
	}
}

// OnUserBreak logs an explicit break
func (h *LogEventHandler) OnUserBreak(ctx context.Context, attempt int, reason error) {
	if h.logger != nil {
		h.logger.Warnf("poll broken by operation on attempt %d: %v", attempt, reason)
	}
}

// OnStopTriggered logs a stop policy firing
func (h *LogEventHandler) OnStopTriggered(ctx context.Context, attempt int, elapsed time.Duration) {
	if h.logger != nil {
		h.logger.Errorf("poll gave up on attempt %d after %v", attempt, elapsed)
	}
}

// OnInterrupted logs external cancellation
func (h *LogEventHandler) OnInterrupted(ctx context.Context, attempt int) {
	if h.logger != nil {
		h.logger.Warnf("poll interrupted at attempt %d", attempt)
	}
}

// OnPanic logs an operation failure outside the outcome protocol
func (h *LogEventHandler) OnPanic(ctx context.Context, attempt int, cause error) {
	if h.logger != nil {
		h.logger.Errorf("poll operation panicked on attempt %d: %v", attempt, cause)
	}
}
