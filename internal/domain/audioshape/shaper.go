// Package audioshape maps phase, profile, and stress into the audio subset
// of the adaptation parameters.
//
// The shaping encodes progressive relaxation: the Initial phase is faster
// and brighter to engage the subject, Deepening settles to mid intensity,
// and Maintenance holds the slowest, flattest output. Every branch is a
// total function over its enum domain; shaping never fails.
package audioshape

import (
	"math"

	"github.com/okian/pawsense/internal/domain/model"
	"github.com/okian/pawsense/internal/domain/phase"
	"github.com/okian/pawsense/internal/domain/profile"
)

// Documented safe ranges. MaxVolumeDB is a hard welfare ceiling that must
// never be exceeded regardless of profile or phase.
const (
	MaxVolumeDB   = 85.0
	MinBandGainDB = -12.0
	MaxBandGainDB = 6.0
	MinBPM        = 30
	MaxBPM        = 120
)

// Default shaping coefficients.
const (
	defaultHearingFloorHz   = 40.0
	defaultHearingCeilingHz = 65000.0
	defaultBandCount        = 10

	// volumeAttenuationSpan is the fraction of the ceiling ceded to a
	// fully volume-sensitive breed.
	volumeAttenuationSpan = 0.4

	// stressSlowdownBPM is subtracted from the base BPM per stress rank.
	stressSlowdownBPM = 5

	// preferredBoostDB lifts bands containing a breed's preferred tones.
	preferredBoostDB = 1.5
)

// phaseProfile carries the per-phase base coefficients.
type phaseProfile struct {
	baseBPM      int
	baseGainDB   float64
	intensity    float64 // scales band boosts
	volumeFactor float64 // scales the volume ceiling
}

// phaseTable is the fixed progressive-relaxation lookup table.
var phaseTable = map[phase.Phase]phaseProfile{
	phase.Initial:     {baseBPM: 80, baseGainDB: 3, intensity: 1.0, volumeFactor: 0.9},
	phase.Deepening:   {baseBPM: 60, baseGainDB: 0, intensity: 0.8, volumeFactor: 0.8},
	phase.Maintenance: {baseBPM: 45, baseGainDB: -3, intensity: 0.6, volumeFactor: 0.7},
}

// stressBoostDB is the extra gain granted to stress-response bands per
// stress rank.
var stressBoostDB = map[model.StressLevel]float64{
	model.StressLow:      0,
	model.StressModerate: 2,
	model.StressHigh:     4,
}

// Params is the audio subset of the adaptation parameters.
type Params struct {
	BPM             int
	Bands           []model.FrequencyBand
	SpatialBias     model.Vector3
	VolumeCeilingDB float64
}

// Shaper computes audio parameters from phase, profile, age, and stress.
type Shaper struct {
	hearingFloorHz   float64
	hearingCeilingHz float64
	bandCount        int

	// Band edges precomputed at construction; the table is fixed per Shaper.
	edges []float64
}

// Option applies a configuration option to the Shaper.
type Option func(*Shaper)

// WithHearingRange sets the modeled hearing range in Hz.
func WithHearingRange(floorHz, ceilingHz float64) Option {
	return func(s *Shaper) {
		if floorHz > 0 && ceilingHz > floorHz {
			s.hearingFloorHz = floorHz
			s.hearingCeilingHz = ceilingHz
		}
	}
}

// WithBandCount sets the number of equalizer bands.
func WithBandCount(count int) Option {
	return func(s *Shaper) {
		if count > 0 {
			s.bandCount = count
		}
	}
}

// NewShaper creates a shaper with the documented canine hearing range
// split into log-spaced bands.
func NewShaper(opts ...Option) *Shaper {
	s := &Shaper{
		hearingFloorHz:   defaultHearingFloorHz,
		hearingCeilingHz: defaultHearingCeilingHz,
		bandCount:        defaultBandCount,
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	s.edges = logEdges(s.hearingFloorHz, s.hearingCeilingHz, s.bandCount)

	return s
}

// logEdges splits [floor, ceiling] into count log-spaced band edges.
func logEdges(floor, ceiling float64, count int) []float64 {
	edges := make([]float64, count+1)
	ratio := ceiling / floor
	for i := 0; i <= count; i++ {
		edges[i] = floor * math.Pow(ratio, float64(i)/float64(count))
	}
	return edges
}

// Shape computes the audio parameter subset. All outputs respect their
// documented ranges; cascading multipliers are clamped, never trusted.
func (s *Shaper) Shape(ph phase.Phase, prof *profile.BreedProfile, age profile.AgeGroup, stress model.StressMetrics) Params {
	pp := phaseTable[ph]
	traits := age.Traits()

	bpm := pp.baseBPM + traits.BPMOffset - stressSlowdownBPM*stress.Level.Ordinal()
	if bpm < MinBPM {
		bpm = MinBPM
	}
	if bpm > MaxBPM {
		bpm = MaxBPM
	}

	ceiling := MaxVolumeDB * pp.volumeFactor * (1 - volumeAttenuationSpan*prof.VolumeSensitivity)
	if ceiling > MaxVolumeDB {
		ceiling = MaxVolumeDB
	}

	return Params{
		BPM:             bpm,
		Bands:           s.shapeBands(pp, prof, traits, stress.Level),
		SpatialBias:     resolveSpatialBias(prof.SpatialPreference, stress.Location),
		VolumeCeilingDB: ceiling,
	}
}

// shapeBands builds the equalizer curve: the phase base gain everywhere,
// a mild lift on bands holding the breed's preferred tones, and a
// stress-scaled boost on bands overlapping its stress-response
// frequencies. Gains are clamped to [MinBandGainDB, MaxBandGainDB].
func (s *Shaper) shapeBands(pp phaseProfile, prof *profile.BreedProfile, traits profile.AgeTraits, level model.StressLevel) []model.FrequencyBand {
	bands := make([]model.FrequencyBand, s.bandCount)
	for i := 0; i < s.bandCount; i++ {
		lo, hi := s.edges[i], s.edges[i+1]

		gain := pp.baseGainDB
		if overlaps(prof.PreferredFrequencies, lo, hi) {
			gain += pp.intensity * preferredBoostDB
		}
		if overlaps(prof.StressResponseFrequencies, lo, hi) {
			gain += pp.intensity * stressBoostDB[level] * traits.AudioEngagement
		}

		if gain < MinBandGainDB {
			gain = MinBandGainDB
		}
		if gain > MaxBandGainDB {
			gain = MaxBandGainDB
		}

		bands[i] = model.FrequencyBand{
			CenterHz:    math.Sqrt(lo * hi),
			BandwidthHz: hi - lo,
			GainDB:      gain,
		}
	}
	return bands
}

// overlaps reports whether any frequency falls inside [lo, hi).
func overlaps(freqs []float64, lo, hi float64) bool {
	for _, f := range freqs {
		if f >= lo && f < hi {
			return true
		}
	}
	return false
}

// resolveSpatialBias maps the spatial preference to a bias vector. The
// adaptive preference follows the last known subject location when one is
// available, else center.
func resolveSpatialBias(pref profile.SpatialPreference, location *model.Vector3) model.Vector3 {
	if pref != profile.SpatialAdaptive {
		return pref.Bias()
	}
	if location == nil {
		return model.Vector3{}
	}
	return normalize(*location)
}

// normalize scales a vector to unit length; the zero vector stays zero.
func normalize(v model.Vector3) model.Vector3 {
	mag := math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
	if mag == 0 {
		return model.Vector3{}
	}
	return model.Vector3{X: v.X / mag, Y: v.Y / mag, Z: v.Z / mag}
}
