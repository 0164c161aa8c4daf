package worker

import (
	"context"
	"sync/atomic"

	"github.com/jzx17/gopoller/pkg/types"
)

// workerState tracks what a worker goroutine is doing
type workerState int32

const (
	workerIdle workerState = iota
	workerBusy
	workerStopped
)

// worker is a single pool goroutine draining the shared task channel
type worker struct {
	id       int
	state    int32 // atomic workerState
	taskChan <-chan types.Task
	done     chan struct{}

	// statistics
	processed int64
	failed    int64

	errorHandler types.ErrorHandler
}

func newWorker(id int, taskChan <-chan types.Task, errorHandler types.ErrorHandler) *worker {
	return &worker{
		id:           id,
		state:        int32(workerIdle),
		taskChan:     taskChan,
		done:         make(chan struct{}),
		errorHandler: errorHandler,
	}
}

// run drains tasks until the context is cancelled or the channel closes
func (w *worker) run(ctx context.Context) {
	defer close(w.done)
	defer atomic.StoreInt32(&w.state, int32(workerStopped))

	for {
		select {
		case <-ctx.Done():
			return
		case task, ok := <-w.taskChan:
			if !ok {
				return
			}
			w.execute(ctx, task)
		}
	}
}

func (w *worker) execute(ctx context.Context, task types.Task) {
	atomic.StoreInt32(&w.state, int32(workerBusy))
	defer atomic.StoreInt32(&w.state, int32(workerIdle))

	if err := task.Execute(ctx); err != nil {
		atomic.AddInt64(&w.failed, 1)
		if w.errorHandler != nil {
			w.errorHandler(err)
		}
		return
	}
	atomic.AddInt64(&w.processed, 1)
}

// busy reports whether the worker is currently executing a task
func (w *worker) busy() bool {
	return workerState(atomic.LoadInt32(&w.state)) == workerBusy
}
