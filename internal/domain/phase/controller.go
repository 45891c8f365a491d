package phase

import (
	"time"

	"github.com/okian/pawsense/internal/domain/model"
)

// Controller derives the current relaxation phase from cumulative session
// time. It is owned by a single session and must be ticked serially.
type Controller struct {
	initialDur     time.Duration
	deepeningDur   time.Duration
	maintenanceDur time.Duration // nominal, for progress reporting only

	elapsed       float64 // seconds
	current       Phase
	lastStress    model.StressLevel
	stressSeen    bool
	stressChanged bool
}

// Option applies a configuration option to the Controller.
type Option func(*Controller)

// WithPhaseDurations sets the fixed Initial and Deepening durations.
func WithPhaseDurations(initial, deepening time.Duration) Option {
	return func(c *Controller) {
		if initial > 0 {
			c.initialDur = initial
		}
		if deepening > 0 {
			c.deepeningDur = deepening
		}
	}
}

// WithMaintenanceNominal sets the nominal Maintenance duration used for
// progress reporting.
func WithMaintenanceNominal(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.maintenanceDur = d
		}
	}
}

// NewController creates a controller positioned at the start of Initial.
func NewController(opts ...Option) *Controller {
	c := &Controller{
		initialDur:     defaultInitialDuration,
		deepeningDur:   defaultDeepeningDuration,
		maintenanceDur: defaultMaintenanceNominal,
	}

	// Apply all options
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Tick advances cumulative time by deltaSeconds and returns the current
// phase. Negative deltas are ignored, so repeated calls at the same
// cumulative time with the same stress level are idempotent. A stress
// level differing from the previous tick sets the StressChanged flag on
// the next State, signalling an out-of-band intensity re-derivation.
func (c *Controller) Tick(deltaSeconds float64, stress model.StressLevel) Phase {
	if deltaSeconds > 0 {
		c.elapsed += deltaSeconds
	}

	c.stressChanged = c.stressSeen && stress != c.lastStress
	c.lastStress = stress
	c.stressSeen = true

	c.current = c.phaseAt(c.elapsed)
	return c.current
}

// phaseAt maps cumulative elapsed seconds to a phase. Maintenance is
// terminal: once the Initial and Deepening windows are spent the session
// stays there until Reset.
func (c *Controller) phaseAt(elapsed float64) Phase {
	switch {
	case elapsed < c.initialDur.Seconds():
		return Initial
	case elapsed < (c.initialDur + c.deepeningDur).Seconds():
		return Deepening
	default:
		return Maintenance
	}
}

// Current returns the phase derived by the last Tick.
func (c *Controller) Current() Phase {
	return c.current
}

// LastStress returns the stress level observed by the last Tick.
func (c *Controller) LastStress() model.StressLevel {
	return c.lastStress
}

// Elapsed returns cumulative session seconds.
func (c *Controller) Elapsed() float64 {
	return c.elapsed
}

// Duration returns the fixed duration carried by a phase.
func (c *Controller) Duration(p Phase) time.Duration {
	switch p {
	case Initial:
		return c.initialDur
	case Deepening:
		return c.deepeningDur
	default:
		return c.maintenanceDur
	}
}

// State returns a read-only snapshot of the controller.
func (c *Controller) State() State {
	start := 0.0
	switch c.current {
	case Deepening:
		start = c.initialDur.Seconds()
	case Maintenance:
		start = (c.initialDur + c.deepeningDur).Seconds()
	}

	dur := c.Duration(c.current).Seconds()
	progress := 0.0
	if dur > 0 {
		progress = (c.elapsed - start) / dur
	}
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}

	return State{
		Phase:         c.current,
		Elapsed:       c.elapsed,
		Progress:      progress,
		StressChanged: c.stressChanged,
	}
}

// Reset returns the controller to the start of Initial and clears the
// recorded stress level.
func (c *Controller) Reset() {
	c.elapsed = 0
	c.current = Initial
	c.lastStress = model.StressLow
	c.stressSeen = false
	c.stressChanged = false
}
