// Package dedupe provides at-most-once intake of feedback sample IDs.
//
// Behavior sensors retry delivery, so the same sample can arrive more than
// once; applying it twice would double-count a stress observation. The
// deduper keeps a bounded set of recently seen IDs, evicting the oldest
// once full.
package dedupe

import (
	"context"
	"sync"
)

// defaultMaxSize bounds the seen-set.
const defaultMaxSize = 10000

// Deduper records seen sample IDs to ensure at-most-once intake.
type Deduper interface {
	// SeenAndRecord atomically checks if id was seen and records it if not.
	// Returns true if id was already seen, false if it was newly recorded.
	SeenAndRecord(ctx context.Context, id string) bool

	// Unrecord removes an id so a failed downstream handoff can be retried.
	Unrecord(ctx context.Context, id string)

	// Size returns the current number of retained IDs.
	Size() int
}

// Option applies a configuration option to the ring deduper.
type Option func(*ringDeduper)

// WithMaxSize sets the maximum number of IDs retained before the oldest
// is evicted. Values <= 0 keep the default bound.
func WithMaxSize(maxSize int) Option {
	return func(d *ringDeduper) {
		if maxSize > 0 {
			d.maxSize = maxSize
		}
	}
}

// ringDeduper implements Deduper with a map for membership and a ring of
// insertion order for FIFO eviction. The map stores each id's ring slot so
// Unrecord can free the slot; an id never occupies more than one slot.
type ringDeduper struct {
	mu      sync.Mutex
	seen    map[string]int
	ring    []string
	next    int
	maxSize int
}

// NewDeduper creates a bounded deduper.
func NewDeduper(opts ...Option) Deduper {
	d := &ringDeduper{
		maxSize: defaultMaxSize,
	}

	// Apply all options
	for _, opt := range opts {
		opt(d)
	}

	d.seen = make(map[string]int, d.maxSize)
	d.ring = make([]string, d.maxSize)

	return d
}

// SeenAndRecord atomically checks and records an id. The oldest retained
// id is evicted when the bound is reached.
func (d *ringDeduper) SeenAndRecord(_ context.Context, id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[id]; ok {
		return true
	}

	if old := d.ring[d.next]; old != "" {
		delete(d.seen, old)
	}
	d.ring[d.next] = id
	d.seen[id] = d.next
	d.next = (d.next + 1) % d.maxSize
	return false
}

// Unrecord removes an id from the seen-set and frees its ring slot, so a
// later eviction of that slot cannot drop the id if it was re-recorded.
func (d *ringDeduper) Unrecord(_ context.Context, id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if slot, ok := d.seen[id]; ok {
		d.ring[slot] = ""
		delete(d.seen, id)
	}
}

// Size returns the current number of retained IDs.
func (d *ringDeduper) Size() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.seen)
}
