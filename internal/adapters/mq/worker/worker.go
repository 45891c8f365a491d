// Package worker drains behavior feedback samples from the intake queue
// into their sessions.
package worker

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/okian/pawsense/internal/adapters/mq/queue"
	"github.com/okian/pawsense/pkg/logger"
	"github.com/okian/pawsense/pkg/metrics"
)

// Default worker configuration constants.
const (
	defaultWorkerCount    = 2
	workerShutdownTimeout = 5 * time.Second
)

// Sample abstracts what workers read off the queue.
type Sample = queue.Sample

// Applier delivers one feedback sample to its session.
type Applier interface {
	Apply(ctx context.Context, s Sample) error
}

// Queue defines how workers receive samples.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Sample
}

// Worker processes feedback samples using the provided interfaces.
type Worker struct {
	queue   Queue
	applier Applier
	name    string

	// Shutdown control
	shutdown chan struct{}
	stopOnce sync.Once
	done     chan struct{}

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Worker.
type Option func(*Worker)

// WithName sets the worker name for identification and logging.
func WithName(name string) Option {
	return func(w *Worker) {
		if name != "" {
			w.name = name
		}
	}
}

// WithLogger sets a custom logger for the worker.
func WithLogger(l logger.Logger) Option {
	return func(w *Worker) {
		if l != nil {
			w.logger = l
		}
	}
}

// NewWorker creates a new worker with configuration options.
func NewWorker(q Queue, applier Applier, opts ...Option) *Worker {
	w := &Worker{
		queue:    q,
		applier:  applier,
		name:     "worker",
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
		logger:   logger.Get().Named("worker"),
	}

	// Apply all options
	for _, opt := range opts {
		opt(w)
	}

	return w
}

// Run starts the worker loop until ctx is canceled, the queue closes, or
// Shutdown is called.
func (w *Worker) Run(ctx context.Context) {
	defer close(w.done)

	samples := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.shutdown:
			return
		case s, ok := <-samples:
			if !ok {
				return
			}
			if err := w.applier.Apply(ctx, s); err != nil {
				metrics.RecordErrorByComponent("worker", "apply_error")
				w.logger.Error(ctx, "error applying feedback sample",
					logger.String("sampleID", s.SampleID),
					logger.String("sessionID", s.SessionID),
					logger.Error(err),
				)
			}
		}
	}
}

// stop signals the worker loop to exit. Safe to call more than once.
func (w *Worker) stop() {
	w.stopOnce.Do(func() { close(w.shutdown) })
}

// Shutdown gracefully stops the worker.
func (w *Worker) Shutdown(ctx context.Context) error {
	w.stop()

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// Pool manages multiple workers.
type Pool struct {
	workers []*Worker

	// Shutdown control
	shutdown chan struct{}

	// Logging
	logger logger.Logger
}

// NewPool creates a worker pool draining the queue into the applier.
func NewPool(workerCount int, q Queue, applier Applier) *Pool {
	if workerCount < 1 {
		workerCount = defaultWorkerCount
	}

	pool := &Pool{
		workers:  make([]*Worker, workerCount),
		shutdown: make(chan struct{}),
		logger:   logger.Get().Named("worker-pool"),
	}

	for i := 0; i < workerCount; i++ {
		pool.workers[i] = NewWorker(q, applier, WithName("worker-"+strconv.Itoa(i)))
	}

	metrics.UpdateWorkerCount(workerCount)

	return pool
}

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
}

// Stop gracefully stops all workers.
func (p *Pool) Stop() {
	close(p.shutdown)

	for _, w := range p.workers {
		w.stop()
	}
	for _, w := range p.workers {
		select {
		case <-w.done:
		case <-time.After(workerShutdownTimeout):
		}
	}
	metrics.UpdateWorkerCount(0)
}
