// Package colorshape maps phase, profile, and stress into the visual
// subset of the adaptation parameters, and provides the pure per-pixel
// dichromatic color transform consumed by video renderers.
//
// The visual shaping mirrors the audio side of progressive relaxation:
// moderate stimulation in Initial, reduced in Deepening, minimal in
// Maintenance. Every branch is total over its enum domain.
package colorshape

import (
	"github.com/okian/pawsense/internal/domain/model"
	"github.com/okian/pawsense/internal/domain/phase"
	"github.com/okian/pawsense/internal/domain/profile"
)

// Documented safe ranges.
const (
	MinFrameRateCap = 10.0
	MaxFrameRateCap = 120.0
	MaxMotionLoss   = 0.9 // most motion a damping pass may remove
)

// Default dichromatic coefficients. Two-cone (blue/yellow) vision with
// reduced long-wavelength sensitivity; shipped as configuration defaults.
const (
	defaultBlueWeight       = 0.75
	defaultYellowWeight     = 0.85
	defaultRedWeight        = 0.20
	defaultGreenWeight      = 0.30
	defaultContrastExponent = 1.2

	// highContrastExponent replaces the default for high-contrast breeds.
	highContrastExponent = 1.35

	// dominanceShift rebalances blue/yellow for dominant color preferences.
	dominanceShift = 0.05

	// stressSlowdown reduces visual speed and frame cap per stress rank.
	stressSlowdown = 0.15
)

// phaseProfile carries the per-phase visual base coefficients.
type phaseProfile struct {
	baseContrast float64
	baseSpeed    float64
	baseFrameHz  float64
	stressFactor float64 // scales the stress contribution to motion damping
}

// phaseTable is the fixed per-phase visual lookup table.
var phaseTable = map[phase.Phase]phaseProfile{
	phase.Initial:     {baseContrast: 0.7, baseSpeed: 1.0, baseFrameHz: 60, stressFactor: 1.0},
	phase.Deepening:   {baseContrast: 0.55, baseSpeed: 0.7, baseFrameHz: 45, stressFactor: 0.85},
	phase.Maintenance: {baseContrast: 0.4, baseSpeed: 0.5, baseFrameHz: 30, stressFactor: 0.7},
}

// Params is the visual subset of the adaptation parameters.
type Params struct {
	VisualSpeed   float64
	ColorContrast float64
	MotionDamping float64
	FrameRateCap  float64
	Color         model.DichromaticWeights
}

// Shaper computes visual parameters from phase, profile, age, and stress.
type Shaper struct {
	weights model.DichromaticWeights
}

// Option applies a configuration option to the Shaper.
type Option func(*Shaper)

// WithWeights replaces the default dichromatic coefficients.
func WithWeights(w model.DichromaticWeights) Option {
	return func(s *Shaper) {
		if w.Blue > 0 && w.Yellow > 0 && w.ContrastExponent >= 1 {
			s.weights = w
		}
	}
}

// NewShaper creates a shaper with the default dichromatic coefficients.
func NewShaper(opts ...Option) *Shaper {
	s := &Shaper{
		weights: model.DichromaticWeights{
			Blue:             defaultBlueWeight,
			Yellow:           defaultYellowWeight,
			Red:              defaultRedWeight,
			Green:            defaultGreenWeight,
			ContrastExponent: defaultContrastExponent,
		},
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Shape computes the visual parameter subset.
func (s *Shaper) Shape(ph phase.Phase, prof *profile.BreedProfile, age profile.AgeGroup, stress model.StressMetrics) Params {
	pp := phaseTable[ph]
	traits := age.Traits()
	rank := float64(stress.Level.Ordinal())

	speed := pp.baseSpeed * traits.VisualSpeedFactor * (1 - stressSlowdown*rank)
	if speed < 0 {
		speed = 0
	}

	contrast := clamp(pp.baseContrast*(0.6+0.8*prof.ContrastPreference), 0, 1)

	// Higher motion-sensitivity breeds under higher stress get stronger
	// damping, leaving less motion on screen.
	factor := pp.stressFactor * (0.5 + 0.25*rank + 0.25*stress.MovementRate)
	damping := 1 - clamp(prof.MotionSensitivity*factor, 0, MaxMotionLoss)

	// Motion-sensitive breeds need a higher refresh to avoid perceived
	// flicker; stress and phase pull the cap back down. Advisory only:
	// the renderer clamps further against thermal limits.
	cap := pp.baseFrameHz * traits.FrameRateBias * (0.5 + 0.5*prof.MotionSensitivity) * (1 - stressSlowdown*rank)
	cap = clamp(cap, MinFrameRateCap, MaxFrameRateCap)

	return Params{
		VisualSpeed:   speed,
		ColorContrast: contrast,
		MotionDamping: damping,
		FrameRateCap:  cap,
		Color:         s.weightsFor(prof.ColorPreference),
	}
}

// weightsFor adjusts the base coefficients for a breed's color preference.
func (s *Shaper) weightsFor(pref profile.ColorPreference) model.DichromaticWeights {
	w := s.weights
	switch pref {
	case profile.ColorBlueDominant:
		w.Blue = clamp(w.Blue+dominanceShift, 0, 1)
		w.Yellow = clamp(w.Yellow-dominanceShift, 0, 1)
	case profile.ColorYellowDominant:
		w.Yellow = clamp(w.Yellow+dominanceShift, 0, 1)
		w.Blue = clamp(w.Blue-dominanceShift, 0, 1)
	case profile.ColorHighContrast:
		w.ContrastExponent = highContrastExponent
	case profile.ColorBalanced:
		// base coefficients as-is
	}
	return w
}

// Weights returns the shaper's base dichromatic coefficients.
func (s *Shaper) Weights() model.DichromaticWeights {
	return s.weights
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
