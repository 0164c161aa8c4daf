// Package types defines core interfaces shared across the library
package types

import (
	"context"
	"time"
)

// Task defines a unit of work submitted to a worker pool
type Task interface {
	// Execute executes the task
	Execute(ctx context.Context) error

	// ID returns the task ID (for tracking)
	ID() string
}

// WorkerPool defines the execution context a caller may supply for
// asynchronous poll runs
type WorkerPool interface {
	// Submit submits a task to the worker pool
	Submit(task Task) error

	// SubmitWithTimeout submits a task, giving up after the timeout
	SubmitWithTimeout(task Task, timeout time.Duration) error

	// Start starts the worker pool
	Start(ctx context.Context) error

	// Stop stops the worker pool
	Stop() error

	// Close closes the worker pool and releases resources
	Close() error

	// Size returns the number of workers
	Size() int

	// Stats returns worker pool statistics
	Stats() WorkerPoolStats
}

// WorkerPoolStats defines basic statistics for worker pools
type WorkerPoolStats struct {
	// PoolSize is the number of workers
	PoolSize int

	// ActiveWorkers is the number of workers currently executing a task
	ActiveWorkers int

	// QueueSize is the current number of queued tasks
	QueueSize int

	// QueueCapacity is the capacity of the queue
	QueueCapacity int
}

// ErrorHandler defines an error handling callback for worker pools
type ErrorHandler func(error)
