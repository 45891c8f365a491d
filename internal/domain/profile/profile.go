// Package profile defines breed and age characteristic records and the
// immutable registry used to resolve them.
//
// Profiles are created once at registry build time, never mutated, and
// shared by reference across sessions. Lookup is best-effort by design:
// an unrecognized breed resolves to the default profile instead of
// failing, so playback never halts on missing personalization data.
package profile

import (
	"fmt"
	"strings"

	"github.com/okian/pawsense/internal/domain/model"
)

// SpatialPreference selects how audio should be positioned around the subject.
type SpatialPreference int

const (
	SpatialSurround SpatialPreference = iota
	SpatialFrontFocused
	SpatialSideFocused
	SpatialOverhead
	SpatialAdaptive
)

// String returns the wire name of the spatial preference.
func (s SpatialPreference) String() string {
	switch s {
	case SpatialFrontFocused:
		return "front_focused"
	case SpatialSideFocused:
		return "side_focused"
	case SpatialOverhead:
		return "overhead"
	case SpatialAdaptive:
		return "adaptive"
	default:
		return "surround"
	}
}

// ParseSpatialPreference parses a wire name into a SpatialPreference.
func ParseSpatialPreference(s string) (SpatialPreference, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "surround":
		return SpatialSurround, nil
	case "front_focused", "front":
		return SpatialFrontFocused, nil
	case "side_focused", "side":
		return SpatialSideFocused, nil
	case "overhead":
		return SpatialOverhead, nil
	case "adaptive":
		return SpatialAdaptive, nil
	default:
		return SpatialSurround, fmt.Errorf("unknown spatial preference: %q", s)
	}
}

// Bias returns the fixed bias vector for the preference. SpatialAdaptive
// has no fixed vector; the shaper resolves it from the subject location.
func (s SpatialPreference) Bias() model.Vector3 {
	switch s {
	case SpatialFrontFocused:
		return model.Vector3{Z: 1}
	case SpatialSideFocused:
		return model.Vector3{X: 1}
	case SpatialOverhead:
		return model.Vector3{Y: 1}
	default:
		return model.Vector3{}
	}
}

// ColorPreference selects the visual weighting bias for a breed.
type ColorPreference int

const (
	ColorBalanced ColorPreference = iota
	ColorBlueDominant
	ColorYellowDominant
	ColorHighContrast
)

// String returns the wire name of the color preference.
func (c ColorPreference) String() string {
	switch c {
	case ColorBlueDominant:
		return "blue_dominant"
	case ColorYellowDominant:
		return "yellow_dominant"
	case ColorHighContrast:
		return "high_contrast"
	default:
		return "balanced"
	}
}

// ParseColorPreference parses a wire name into a ColorPreference.
func ParseColorPreference(s string) (ColorPreference, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "balanced":
		return ColorBalanced, nil
	case "blue_dominant", "blue":
		return ColorBlueDominant, nil
	case "yellow_dominant", "yellow":
		return ColorYellowDominant, nil
	case "high_contrast":
		return ColorHighContrast, nil
	default:
		return ColorBalanced, fmt.Errorf("unknown color preference: %q", s)
	}
}

// BreedProfile is an immutable record of audio/visual/behavioral preference
// coefficients for a named subject category.
type BreedProfile struct {
	// Name is the canonical lowercase breed name.
	Name string

	// PreferredFrequencies are tone frequencies (Hz) the breed engages with.
	// Always non-empty on a registered profile.
	PreferredFrequencies []float64

	// VolumeSensitivity in (0,1]; higher values lower the volume ceiling.
	VolumeSensitivity float64

	// SpatialPreference selects the audio bias vector.
	SpatialPreference SpatialPreference

	// StressResponseFrequencies are bands (Hz) boosted under elevated stress.
	StressResponseFrequencies []float64

	// ColorPreference biases the visual weighting.
	ColorPreference ColorPreference

	// MotionSensitivity in [0,1]; higher values increase motion damping.
	MotionSensitivity float64

	// ContrastPreference in [0,1]; scales the phase base contrast.
	ContrastPreference float64
}

// Validate checks the documented coefficient ranges.
func (p BreedProfile) Validate() error {
	switch {
	case strings.TrimSpace(p.Name) == "":
		return fmt.Errorf("%w: empty name", ErrInvalidProfile)
	case len(p.PreferredFrequencies) == 0:
		return fmt.Errorf("%w: %s has no preferred frequencies", ErrInvalidProfile, p.Name)
	case p.VolumeSensitivity <= 0 || p.VolumeSensitivity > 1:
		return fmt.Errorf("%w: %s volume sensitivity %v outside (0,1]", ErrInvalidProfile, p.Name, p.VolumeSensitivity)
	case p.MotionSensitivity < 0 || p.MotionSensitivity > 1:
		return fmt.Errorf("%w: %s motion sensitivity %v outside [0,1]", ErrInvalidProfile, p.Name, p.MotionSensitivity)
	case p.ContrastPreference < 0 || p.ContrastPreference > 1:
		return fmt.Errorf("%w: %s contrast preference %v outside [0,1]", ErrInvalidProfile, p.Name, p.ContrastPreference)
	}
	return nil
}

// AgeGroup classifies a subject's life stage.
type AgeGroup int

const (
	AgeAdult AgeGroup = iota
	AgePuppy
	AgeSenior
)

// String returns the wire name of the age group.
func (a AgeGroup) String() string {
	switch a {
	case AgePuppy:
		return "puppy"
	case AgeSenior:
		return "senior"
	default:
		return "adult"
	}
}

// ParseAgeGroup parses a wire name into an AgeGroup.
func ParseAgeGroup(s string) (AgeGroup, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "puppy":
		return AgePuppy, nil
	case "", "adult":
		return AgeAdult, nil
	case "senior":
		return AgeSenior, nil
	default:
		return AgeAdult, fmt.Errorf("unknown age group: %q", s)
	}
}

// AgeTraits are the fixed per-age adjustment multipliers.
type AgeTraits struct {
	// BPMOffset is added to the phase base BPM.
	BPMOffset int

	// VisualSpeedFactor scales the phase base visual speed.
	VisualSpeedFactor float64

	// FrameRateBias scales the computed frame-rate cap.
	FrameRateBias float64

	// AudioEngagement scales stress-response band boosts.
	AudioEngagement float64
}

// ageTable is the immutable constant table of age multipliers.
var ageTable = map[AgeGroup]AgeTraits{
	AgePuppy:  {BPMOffset: 5, VisualSpeedFactor: 1.15, FrameRateBias: 1.1, AudioEngagement: 1.1},
	AgeAdult:  {BPMOffset: 0, VisualSpeedFactor: 1.0, FrameRateBias: 1.0, AudioEngagement: 1.0},
	AgeSenior: {BPMOffset: -5, VisualSpeedFactor: 0.85, FrameRateBias: 0.9, AudioEngagement: 0.9},
}

// Traits returns the adjustment multipliers for the age group.
func (a AgeGroup) Traits() AgeTraits {
	if t, ok := ageTable[a]; ok {
		return t
	}
	return ageTable[AgeAdult]
}
