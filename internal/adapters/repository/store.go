// Package repository defines the session history store interface and errors.
//
// The store retains a bounded ring of parameter snapshots per session so
// the HTTP surface can serve the latest snapshot and recent history
// without reaching into orchestrator internals. Nothing is persisted
// across restarts.
package repository

import (
	"context"

	"github.com/okian/pawsense/internal/domain/model"
)

// Store provides read/write access to per-session snapshot history.
type Store interface {
	// Append records a snapshot for a session, evicting the oldest entry
	// once the per-session bound is reached.
	Append(ctx context.Context, sessionID string, p model.AdaptationParameters)

	// Latest returns the most recent snapshot for a session.
	// Returns ErrNotFound when the session has no snapshots.
	Latest(ctx context.Context, sessionID string) (model.AdaptationParameters, error)

	// Recent returns up to limit snapshots for a session, newest first.
	Recent(ctx context.Context, sessionID string, limit int) []model.AdaptationParameters

	// Clear drops all snapshots for a session but keeps it addressable.
	Clear(ctx context.Context, sessionID string)

	// Drop removes a session entirely.
	Drop(ctx context.Context, sessionID string)

	// Count returns the total number of retained snapshots.
	Count(ctx context.Context) int
}
