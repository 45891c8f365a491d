// Package app provides the core business service that implements the
// dependencies required by the HTTP API.
//
// The service owns the session registry, the feedback intake pipeline
// (dedupe -> queue -> workers), and the evaluation ticker that drives
// every session at a fixed cadence. Each session is evaluated serially;
// independent sessions share only the read-only profile registry and the
// snapshot store.
package app

import (
	"context"
	"sync"
	"time"

	feedbackqueue "github.com/okian/pawsense/internal/adapters/mq/queue"
	workerpool "github.com/okian/pawsense/internal/adapters/mq/worker"
	repository "github.com/okian/pawsense/internal/adapters/repository"
	"github.com/okian/pawsense/internal/domain/adapt"
	"github.com/okian/pawsense/internal/domain/dedupe"
	"github.com/okian/pawsense/internal/domain/model"
	"github.com/okian/pawsense/internal/domain/phase"
	"github.com/okian/pawsense/internal/domain/profile"
	"github.com/okian/pawsense/pkg/logger"
	"github.com/okian/pawsense/pkg/metrics"
)

// Default service configuration constants.
const (
	defaultWorkerCount  = 2
	defaultQueueSize    = 4096
	defaultDedupeSize   = 10000
	defaultHistoryCap   = 32
	defaultShardCount   = 8
	defaultEvalInterval = 2 * time.Second
)

// session binds one orchestrator to its subject identity and the latest
// feedback sample. The mutex serializes Evaluate/Reset per session.
type session struct {
	mu sync.Mutex

	orch  *adapt.Orchestrator
	breed string
	age   profile.AgeGroup

	latest    model.StressMetrics
	hasSample bool
	lastEval  time.Time
}

// evaluate runs one serialized evaluation using the latest sample.
func (s *session) evaluate(ctx context.Context, now time.Time) model.AdaptationParameters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.evaluateLocked(ctx, now)
}

func (s *session) evaluateLocked(ctx context.Context, now time.Time) model.AdaptationParameters {
	delta := 0.0
	if !s.lastEval.IsZero() {
		delta = now.Sub(s.lastEval).Seconds()
	}
	s.lastEval = now
	return s.orch.Evaluate(ctx, s.breed, s.age, s.latest, delta)
}

// Service implements the API dependencies for the adaptation system.
type Service struct {
	mu sync.RWMutex

	// Core components
	registry  *profile.Registry
	store     repository.Store
	queue     feedbackqueue.Queue
	deduper   dedupe.Deduper
	pool      *workerpool.Pool
	sessions  map[string]*session

	// Configuration
	workerCount    int
	queueSize      int
	dedupeSize     int
	historyCap     int
	shardCount     int
	evalInterval   time.Duration
	extraProfiles  []profile.BreedProfile
	phaseDurations []time.Duration // initial, deepening; empty means defaults

	// State
	started bool
	stopCh  chan struct{}

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of feedback workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum size of the feedback queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets the size of the sample dedupe cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithHistoryCap sets the per-session snapshot history bound.
func WithHistoryCap(cap int) Option {
	return func(s *Service) {
		if cap > 0 {
			s.historyCap = cap
		}
	}
}

// WithShardCount sets the snapshot store shard count.
func WithShardCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.shardCount = count
		}
	}
}

// WithEvalInterval sets the evaluation cadence.
func WithEvalInterval(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.evalInterval = d
		}
	}
}

// WithProfiles registers additional breed profiles from configuration.
func WithProfiles(profiles []profile.BreedProfile) Option {
	return func(s *Service) {
		s.extraProfiles = profiles
	}
}

// WithPhaseDurations sets the Initial and Deepening phase durations.
func WithPhaseDurations(initial, deepening time.Duration) Option {
	return func(s *Service) {
		if initial > 0 && deepening > 0 {
			s.phaseDurations = []time.Duration{initial, deepening}
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:  defaultWorkerCount,
		queueSize:    defaultQueueSize,
		dedupeSize:   defaultDedupeSize,
		historyCap:   defaultHistoryCap,
		shardCount:   defaultShardCount,
		evalInterval: defaultEvalInterval,
		sessions:     make(map[string]*session),
		stopCh:       make(chan struct{}),
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting adaptation service...")

	registry, err := profile.NewRegistry(profile.WithProfiles(s.extraProfiles))
	if err != nil {
		return err
	}
	s.registry = registry

	s.store = repository.NewRingStore(ctx,
		repository.WithHistoryCap(s.historyCap),
		repository.WithShardCount(s.shardCount),
	)
	s.deduper = dedupe.NewDeduper(
		dedupe.WithMaxSize(s.dedupeSize),
	)
	s.queue = feedbackqueue.NewInMemoryQueue(
		feedbackqueue.WithCapacity(s.queueSize),
	)

	s.pool = workerpool.NewPool(s.workerCount, s.queue, s)
	s.pool.Start(ctx)

	go s.evaluateLoop(ctx)

	s.started = true
	s.logger.Info(ctx, "adaptation service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Int("profiles", s.registry.Len()),
		logger.Duration("evalInterval", s.evalInterval),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping adaptation service...")

	select {
	case <-s.stopCh:
	default:
		close(s.stopCh)
	}

	if s.pool != nil {
		s.pool.Stop()
	}
	if q, ok := s.queue.(*feedbackqueue.InMemoryQueue); ok {
		_ = q.Close()
	}

	s.started = false
	s.logger.Info(context.Background(), "adaptation service stopped")
}

// evaluateLoop drives every session at the configured cadence.
func (s *Service) evaluateLoop(ctx context.Context) {
	ticker := time.NewTicker(s.evalInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopCh:
			return
		case now := <-ticker.C:
			for _, sess := range s.snapshotSessions() {
				sess.evaluate(ctx, now)
			}
		}
	}
}

// snapshotSessions copies the session list so evaluation does not hold
// the service lock.
func (s *Service) snapshotSessions() []*session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		out = append(out, sess)
	}
	return out
}

// CreateSession registers a new subject session and runs its first
// evaluation immediately so a snapshot is available right away.
func (s *Service) CreateSession(ctx context.Context, breedName string, age profile.AgeGroup) (string, error) {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return "", ErrNotStarted
	}

	opts := []adapt.Option{adapt.WithHistoryStore(s.store)}
	if len(s.phaseDurations) == 2 {
		opts = append(opts, adapt.WithPhaseController(
			phase.NewController(phase.WithPhaseDurations(s.phaseDurations[0], s.phaseDurations[1])),
		))
	}
	orch := adapt.New(s.registry, opts...)

	sess := &session{
		orch:  orch,
		breed: breedName,
		age:   age,
	}
	id := orch.SessionID()
	s.sessions[id] = sess
	metrics.UpdateActiveSessions(len(s.sessions))
	s.mu.Unlock()

	sess.evaluate(ctx, time.Now())

	s.logger.Info(ctx, "session created",
		logger.String("sessionID", id),
		logger.String("breed", profile.Canonical(breedName)),
		logger.String("age", age.String()),
	)
	return id, nil
}

// lookupSession resolves a session id.
func (s *Service) lookupSession(id string) (*session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

// EndSession removes a session and drops its history.
func (s *Service) EndSession(ctx context.Context, id string) error {
	s.mu.Lock()
	_, ok := s.sessions[id]
	if !ok {
		s.mu.Unlock()
		return ErrSessionNotFound
	}
	delete(s.sessions, id)
	metrics.UpdateActiveSessions(len(s.sessions))
	s.mu.Unlock()

	s.store.Drop(ctx, id)
	s.logger.Info(ctx, "session ended", logger.String("sessionID", id))
	return nil
}

// ResetSession clears a session's state back to initial values.
func (s *Service) ResetSession(ctx context.Context, id string) error {
	sess, err := s.lookupSession(id)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.orch.Reset(ctx)
	sess.latest = model.StressMetrics{}
	sess.hasSample = false
	sess.lastEval = time.Time{}

	s.logger.Info(ctx, "session reset", logger.String("sessionID", id))
	return nil
}

// HasSession reports whether a session id is registered.
func (s *Service) HasSession(_ context.Context, id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.sessions[id]
	return ok
}

// SeenAndRecord atomically checks if a sample id was seen and records it
// if not. Returns true if the sample was already seen.
func (s *Service) SeenAndRecord(ctx context.Context, id string) bool {
	seen := s.deduper.SeenAndRecord(ctx, id)
	if seen {
		metrics.RecordFeedbackDuplicate()
	}
	return seen
}

// Unrecord rolls back a recorded sample id after a failed enqueue so the
// sensor's retry is not mistaken for a duplicate.
func (s *Service) Unrecord(ctx context.Context, id string) {
	s.deduper.Unrecord(ctx, id)
}

// Size returns the number of sample ids retained by the dedupe cache.
func (s *Service) Size() int {
	return s.deduper.Size()
}

// Enqueue submits a feedback sample for asynchronous processing. Returns
// false on backpressure.
func (s *Service) Enqueue(ctx context.Context, sample model.FeedbackSample) bool {
	ok := s.queue.Enqueue(ctx, sample)
	if ok {
		metrics.RecordFeedbackSample()
	} else {
		s.logger.Warn(ctx, "feedback queue full, rejecting sample",
			logger.String("sampleID", sample.SampleID),
		)
	}
	return ok
}

// Apply delivers one feedback sample to its session. A changed stress
// level triggers an immediate out-of-band re-evaluation; otherwise the
// sample waits for the next tick.
func (s *Service) Apply(ctx context.Context, sample workerpool.Sample) error {
	sess, err := s.lookupSession(sample.SessionID)
	if err != nil {
		return err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	changed := !sess.hasSample || sess.latest.Level != sample.Metrics.Level
	sess.latest = sample.Metrics
	sess.hasSample = true

	if changed {
		sess.evaluateLocked(ctx, time.Now())
	}
	return nil
}

// Latest returns the newest parameter snapshot for a session.
func (s *Service) Latest(ctx context.Context, sessionID string) (model.AdaptationParameters, error) {
	if _, err := s.lookupSession(sessionID); err != nil {
		return model.AdaptationParameters{}, err
	}
	return s.store.Latest(ctx, sessionID)
}

// History returns up to limit snapshots for a session, newest first.
func (s *Service) History(ctx context.Context, sessionID string, limit int) ([]model.AdaptationParameters, error) {
	if _, err := s.lookupSession(sessionID); err != nil {
		return nil, err
	}
	return s.store.Recent(ctx, sessionID, limit), nil
}

// SessionState returns a read-only view of a session.
func (s *Service) SessionState(_ context.Context, sessionID string) (adapt.SessionState, error) {
	sess, err := s.lookupSession(sessionID)
	if err != nil {
		return adapt.SessionState{}, err
	}
	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.orch.State(), nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":      s.started,
		"workerCount":  s.workerCount,
		"queueSize":    s.queueSize,
		"evalInterval": s.evalInterval.String(),
		"sessions":     len(s.sessions),
	}

	if s.started {
		stats["queueLength"] = s.queue.Len(ctx)
		stats["snapshots"] = s.store.Count(ctx)
		stats["profiles"] = s.registry.Len()

		metrics.UpdateActiveSessions(len(s.sessions))
	}

	return stats
}

// Profiles returns the canonical names of all registered breed profiles.
func (s *Service) Profiles() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.registry == nil {
		return nil
	}
	return s.registry.Names()
}
