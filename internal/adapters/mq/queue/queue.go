// Package queue defines the contract for enqueuing and consuming behavior
// feedback samples.
//
// Implementations may use channels or more advanced structures. The
// in-memory bounded queue is the only implementation today.
package queue

import (
	"context"
	"sync"

	"github.com/okian/pawsense/internal/domain/model"
	"github.com/okian/pawsense/pkg/metrics"
)

// Default queue configuration constants.
const (
	defaultQueueCapacity = 4096
)

// Sample is the payload type flowing through the queue.
type Sample = model.FeedbackSample

// Queue provides non-blocking enqueue and channel-based dequeue semantics.
type Queue interface {
	// Enqueue adds a sample to the queue.
	// Returns false if the queue is full and the sample was not enqueued.
	Enqueue(ctx context.Context, s Sample) bool

	// Dequeue returns a channel that will receive samples as they become
	// available. The channel is closed when the queue is closed.
	Dequeue(ctx context.Context) <-chan Sample

	// Len returns the current number of queued samples.
	Len(ctx context.Context) int

	// Close gracefully shuts down the queue.
	Close() error

	// IsClosed returns true if the queue has been closed.
	IsClosed() bool
}

// InMemoryQueue implements Queue using a buffered channel.
type InMemoryQueue struct {
	samples  chan Sample
	capacity int
	mu       sync.RWMutex
	closed   bool
}

// Option applies a configuration option to the InMemoryQueue.
type Option func(*InMemoryQueue)

// WithCapacity sets the maximum capacity of the queue.
func WithCapacity(capacity int) Option {
	return func(q *InMemoryQueue) {
		if capacity > 0 {
			q.capacity = capacity
		}
	}
}

// NewInMemoryQueue creates a new in-memory queue with configuration options.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{
		capacity: defaultQueueCapacity,
	}

	// Apply all options
	for _, opt := range opts {
		opt(q)
	}

	q.samples = make(chan Sample, q.capacity)

	metrics.UpdateQueueCapacity(q.capacity)
	metrics.UpdateQueueSize(0)
	metrics.UpdateQueueUtilization(0.0)

	return q
}

// Enqueue adds a sample without blocking. A full or closed queue drops
// the sample and reports false; backpressure is the caller's signal.
func (q *InMemoryQueue) Enqueue(ctx context.Context, s Sample) bool {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		metrics.RecordQueueEnqueueError()
		metrics.RecordErrorByComponent("queue", "closed")
		return false
	}

	select {
	case q.samples <- s:
		metrics.RecordQueueEnqueue()
		q.updateGauges()
		return true
	case <-ctx.Done():
		metrics.RecordQueueEnqueueError()
		metrics.RecordErrorByComponent("queue", "context_cancelled")
		return false
	default:
		metrics.RecordQueueEnqueueError()
		metrics.RecordErrorByComponent("queue", "queue_full")
		return false
	}
}

// Dequeue returns a channel that receives samples as they become available.
func (q *InMemoryQueue) Dequeue(ctx context.Context) <-chan Sample {
	out := make(chan Sample)
	go func() {
		defer close(out)
		for s := range q.samples {
			select {
			case out <- s:
				metrics.RecordQueueDequeue()
				q.updateGauges()
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// Len returns the current number of queued samples.
func (q *InMemoryQueue) Len(_ context.Context) int {
	size := len(q.samples)
	q.updateGauges()
	return size
}

// updateGauges refreshes the queue size and utilization gauges.
func (q *InMemoryQueue) updateGauges() {
	size := len(q.samples)
	metrics.UpdateQueueSize(size)
	metrics.UpdateQueueUtilization(float64(size) / float64(q.capacity))
}

// Close gracefully shuts down the queue.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}

	close(q.samples)
	q.closed = true

	return nil
}

// IsClosed returns true if the queue has been closed.
func (q *InMemoryQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
