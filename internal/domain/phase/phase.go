// Package phase tracks session elapsed time and derives the current
// relaxation phase.
//
// A session moves Initial -> Deepening -> Maintenance as cumulative time
// passes the configured phase durations. Maintenance is terminal until
// Reset. Stress changes never move the phase bucket; they only flag the
// controller so callers can re-derive parameter intensity out of band.
package phase

import (
	"time"
)

// Phase is a named stage of a relaxation session.
type Phase int

const (
	Initial Phase = iota
	Deepening
	Maintenance
)

// String returns the wire name of the phase.
func (p Phase) String() string {
	switch p {
	case Deepening:
		return "deepening"
	case Maintenance:
		return "maintenance"
	default:
		return "initial"
	}
}

// Default phase durations. Maintenance is open-ended; its nominal value
// is used only for progress reporting.
const (
	defaultInitialDuration    = 120 * time.Second
	defaultDeepeningDuration  = 300 * time.Second
	defaultMaintenanceNominal = 600 * time.Second
)

// State is a read-only view of the controller at one tick.
type State struct {
	// Phase is the current relaxation phase.
	Phase Phase

	// Elapsed is cumulative session time in seconds.
	Elapsed float64

	// Progress is the position within the current phase in [0,1].
	// Maintenance saturates at 1 once its nominal duration has passed.
	Progress float64

	// StressChanged reports whether the most recent tick observed a
	// different stress level than the one before it.
	StressChanged bool
}
