package adapt

import (
	"context"

	"github.com/okian/pawsense/internal/domain/model"
)

// HistoryStore retains a bounded, ordered sequence of past parameter
// snapshots per session, oldest evicted first. The repository adapter
// provides the shared implementation; memoryHistory serves standalone
// orchestrators.
type HistoryStore interface {
	// Append records a snapshot for a session, evicting the oldest entry
	// once the bound is reached.
	Append(ctx context.Context, sessionID string, p model.AdaptationParameters)

	// Recent returns up to limit snapshots for a session, newest first.
	Recent(ctx context.Context, sessionID string, limit int) []model.AdaptationParameters

	// Clear drops all snapshots for a session.
	Clear(ctx context.Context, sessionID string)
}

// memoryHistory is a minimal bounded history for a single orchestrator.
type memoryHistory struct {
	cap     int
	entries []model.AdaptationParameters
}

func newMemoryHistory(cap int) *memoryHistory {
	return &memoryHistory{cap: cap}
}

func (h *memoryHistory) Append(_ context.Context, _ string, p model.AdaptationParameters) {
	if len(h.entries) >= h.cap {
		// evict oldest
		copy(h.entries, h.entries[1:])
		h.entries = h.entries[:len(h.entries)-1]
	}
	h.entries = append(h.entries, p)
}

func (h *memoryHistory) Recent(_ context.Context, _ string, limit int) []model.AdaptationParameters {
	if limit <= 0 || limit > len(h.entries) {
		limit = len(h.entries)
	}
	out := make([]model.AdaptationParameters, limit)
	for i := 0; i < limit; i++ {
		out[i] = h.entries[len(h.entries)-1-i]
	}
	return out
}

func (h *memoryHistory) Clear(_ context.Context, _ string) {
	h.entries = h.entries[:0]
}
