package repository

import (
	"context"
	"hash/fnv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/pawsense/internal/domain/model"
	"github.com/okian/pawsense/pkg/metrics"
)

// Default store configuration constants.
const (
	defaultShardCount = 8
	defaultHistoryCap = 32
)

// Option applies a configuration option to the RingStore.
type Option func(*RingStore)

// WithShardCount sets the number of lock shards.
func WithShardCount(count int) Option {
	return func(s *RingStore) {
		if count > 0 {
			s.shardCount = count
		}
	}
}

// WithHistoryCap sets the per-session snapshot bound.
func WithHistoryCap(cap int) Option {
	return func(s *RingStore) {
		if cap > 0 {
			s.historyCap = cap
		}
	}
}

// ring is one session's bounded snapshot buffer.
type ring struct {
	entries []model.AdaptationParameters
	next    int
	filled  bool
}

func (r *ring) append(p model.AdaptationParameters, cap int) (evicted bool) {
	if len(r.entries) < cap {
		r.entries = append(r.entries, p)
		return false
	}
	// overwrite oldest
	r.entries[r.next] = p
	r.next = (r.next + 1) % cap
	r.filled = true
	return true
}

// newestFirst copies up to limit entries, newest first.
func (r *ring) newestFirst(limit int) []model.AdaptationParameters {
	n := len(r.entries)
	if n == 0 {
		return nil
	}
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]model.AdaptationParameters, 0, limit)
	// The newest entry sits just before next once the ring has wrapped,
	// else at the end of the slice.
	idx := n - 1
	if r.filled {
		idx = (r.next - 1 + n) % n
	}
	for i := 0; i < limit; i++ {
		out = append(out, r.entries[(idx-i+n)%n])
	}
	return out
}

// shard pairs a lock with its session rings.
type shard struct {
	mu       sync.RWMutex
	sessions map[string]*ring
}

// RingStore implements Store with sharded, fixed-capacity rings.
type RingStore struct {
	shardCount int
	historyCap int
	shards     []*shard
	count      atomic.Int64
}

// NewRingStore creates a ring store with configuration options.
func NewRingStore(_ context.Context, opts ...Option) *RingStore {
	s := &RingStore{
		shardCount: defaultShardCount,
		historyCap: defaultHistoryCap,
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	s.shards = make([]*shard, s.shardCount)
	for i := range s.shards {
		s.shards[i] = &shard{sessions: make(map[string]*ring)}
	}

	return s
}

// shardFor hashes a session id onto its shard.
func (s *RingStore) shardFor(sessionID string) *shard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(sessionID))
	return s.shards[h.Sum32()%uint32(s.shardCount)]
}

// Append records a snapshot, evicting the oldest once the bound is hit.
func (s *RingStore) Append(_ context.Context, sessionID string, p model.AdaptationParameters) {
	start := time.Now()
	defer func() {
		metrics.RecordHistoryLatency(float64(time.Since(start).Nanoseconds()) / 1e6)
	}()

	sh := s.shardFor(sessionID)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	r, ok := sh.sessions[sessionID]
	if !ok {
		r = &ring{}
		sh.sessions[sessionID] = r
	}
	if r.append(p, s.historyCap) {
		metrics.RecordHistoryEviction()
	} else {
		s.count.Add(1)
	}
	metrics.UpdateHistorySnapshots(int(s.count.Load()))
}

// Latest returns the most recent snapshot for a session.
func (s *RingStore) Latest(_ context.Context, sessionID string) (model.AdaptationParameters, error) {
	sh := s.shardFor(sessionID)
	sh.mu.RLock()
	defer sh.mu.RUnlock()

	r, ok := sh.sessions[sessionID]
	if !ok || len(r.entries) == 0 {
		return model.AdaptationParameters{}, ErrNotFound
	}
	return r.newestFirst(1)[0], nil
}

// Recent returns up to limit snapshots, newest first.
func (s *RingStore) Recent(_ context.Context, sessionID string, limit int) []model.AdaptationParameters {
	sh := s.shardFor(sessionID)
	sh.mu.RLock()
	defer sh.mu.RUnlock()

	r, ok := sh.sessions[sessionID]
	if !ok {
		return nil
	}
	return r.newestFirst(limit)
}

// Clear drops all snapshots for a session but keeps it addressable.
func (s *RingStore) Clear(_ context.Context, sessionID string) {
	sh := s.shardFor(sessionID)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	if r, ok := sh.sessions[sessionID]; ok {
		s.count.Add(int64(-len(r.entries)))
		sh.sessions[sessionID] = &ring{}
		metrics.UpdateHistorySnapshots(int(s.count.Load()))
	}
}

// Drop removes a session entirely.
func (s *RingStore) Drop(_ context.Context, sessionID string) {
	sh := s.shardFor(sessionID)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	if r, ok := sh.sessions[sessionID]; ok {
		s.count.Add(int64(-len(r.entries)))
		delete(sh.sessions, sessionID)
		metrics.UpdateHistorySnapshots(int(s.count.Load()))
	}
}

// Count returns the total number of retained snapshots.
func (s *RingStore) Count(_ context.Context) int {
	return int(s.count.Load())
}
