package worker

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jzx17/gopoller/pkg/types"
)

// Pool errors
var (
	// ErrNotStarted indicates the pool has not been started
	ErrNotStarted = errors.New("worker pool is not started")

	// ErrClosed indicates the pool has been closed
	ErrClosed = errors.New("worker pool is closed")

	// ErrQueueFull indicates the task queue did not drain within the timeout
	ErrQueueFull = errors.New("worker pool queue is full")

	// ErrNilTask indicates a nil task was submitted
	ErrNilTask = errors.New("task cannot be nil")
)

// Config defines configuration for a fixed-size pool
type Config struct {
	// Workers is the number of worker goroutines
	Workers int

	// QueueSize is the task queue capacity
	QueueSize int

	// SubmitTimeout is the default task submission timeout
	SubmitTimeout time.Duration

	// Clock for time operations (optional, defaults to real clock)
	Clock types.Clock

	// ErrorHandler receives task execution errors
	ErrorHandler types.ErrorHandler
}

// DefaultConfig returns the default pool configuration
func DefaultConfig() *Config {
	return &Config{
		Workers:       10,
		QueueSize:     100,
		SubmitTimeout: 5 * time.Second,
		Clock:         types.NewRealClock(),
	}
}

// Pool is a fixed-size worker pool implementing types.WorkerPool. It is the
// optional execution context for asynchronous poll runs; the pool spawns no
// goroutines beyond its configured workers.
type Pool struct {
	config   *Config
	workers  []*worker
	taskChan chan types.Task

	// state management: 0 stopped, 1 running, 2 closed
	state     int32
	mu        sync.RWMutex // guards ctx and cancel
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

// NewPool creates a fixed-size worker pool
func NewPool(config *Config) (*Pool, error) {
	if config == nil {
		config = DefaultConfig()
	}

	if config.Workers <= 0 {
		return nil, fmt.Errorf("worker count must be positive, got %d", config.Workers)
	}
	if config.QueueSize <= 0 {
		return nil, fmt.Errorf("queue size must be positive, got %d", config.QueueSize)
	}
	if config.Clock == nil {
		config.Clock = types.NewRealClock()
	}

	taskChan := make(chan types.Task, config.QueueSize)
	workers := make([]*worker, config.Workers)
	for i := range workers {
		workers[i] = newWorker(i, taskChan, config.ErrorHandler)
	}

	return &Pool{
		config:   config,
		workers:  workers,
		taskChan: taskChan,
	}, nil
}

// Start starts the worker pool
func (p *Pool) Start(ctx context.Context) error {
	if !atomic.CompareAndSwapInt32(&p.state, 0, 1) {
		if atomic.LoadInt32(&p.state) == 1 {
			return fmt.Errorf("worker pool is already running")
		}
		return ErrClosed
	}

	p.mu.Lock()
	p.ctx, p.cancel = context.WithCancel(ctx)
	runCtx := p.ctx
	p.mu.Unlock()

	for _, w := range p.workers {
		go w.run(runCtx)
	}

	return nil
}

// Submit submits a task using the configured default timeout
func (p *Pool) Submit(task types.Task) error {
	return p.SubmitWithTimeout(task, p.config.SubmitTimeout)
}

// SubmitWithTimeout submits a task, failing with ErrQueueFull if the queue
// does not accept it within the timeout
func (p *Pool) SubmitWithTimeout(task types.Task, timeout time.Duration) error {
	switch atomic.LoadInt32(&p.state) {
	case 0:
		return ErrNotStarted
	case 2:
		return ErrClosed
	}

	if task == nil {
		return ErrNilTask
	}

	if timeout <= 0 {
		select {
		case p.taskChan <- task:
			return nil
		default:
			return ErrQueueFull
		}
	}

	p.mu.RLock()
	runCtx := p.ctx
	p.mu.RUnlock()
	if runCtx == nil {
		return ErrNotStarted
	}

	timer := p.config.Clock.NewTimer(timeout)
	defer timer.Stop()

	select {
	case p.taskChan <- task:
		return nil
	case <-timer.C():
		return ErrQueueFull
	case <-runCtx.Done():
		return ErrClosed
	}
}

// Stop stops the workers and waits for them to exit. Queued tasks that were
// not picked up are dropped.
func (p *Pool) Stop() error {
	if !atomic.CompareAndSwapInt32(&p.state, 1, 2) {
		if atomic.LoadInt32(&p.state) == 2 {
			return nil
		}
		return ErrNotStarted
	}

	p.mu.RLock()
	cancel := p.cancel
	p.mu.RUnlock()

	cancel()
	for _, w := range p.workers {
		<-w.done
	}

	return nil
}

// Close closes the pool and releases resources
func (p *Pool) Close() error {
	err := p.Stop()
	if err != nil && !errors.Is(err, ErrNotStarted) {
		return err
	}

	p.closeOnce.Do(func() {
		atomic.StoreInt32(&p.state, 2)
		close(p.taskChan)
	})

	return nil
}

// Size returns the number of workers
func (p *Pool) Size() int {
	return len(p.workers)
}

// Stats returns worker pool statistics
func (p *Pool) Stats() types.WorkerPoolStats {
	active := 0
	for _, w := range p.workers {
		if w.busy() {
			active++
		}
	}

	return types.WorkerPoolStats{
		PoolSize:      len(p.workers),
		ActiveWorkers: active,
		QueueSize:     len(p.taskChan),
		QueueCapacity: cap(p.taskChan),
	}
}
