// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults, Load(ctx) to layer sources.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"fmt"

	"github.com/okian/pawsense/internal/domain/profile"
)

// BreedProfileConfig is the file/env shape of an operator-supplied breed
// profile. It is converted to a domain profile by Profile().
type BreedProfileConfig struct {
	Name                      string    `koanf:"name"`
	PreferredFrequencies      []float64 `koanf:"preferred_frequencies"`
	VolumeSensitivity         float64   `koanf:"volume_sensitivity"`
	SpatialPreference         string    `koanf:"spatial_preference"`
	StressResponseFrequencies []float64 `koanf:"stress_response_frequencies"`
	ColorPreference           string    `koanf:"color_preference"`
	MotionSensitivity         float64   `koanf:"motion_sensitivity"`
	ContrastPreference        float64   `koanf:"contrast_preference"`
}

// Profile converts the config shape to a validated domain profile.
func (b BreedProfileConfig) Profile() (profile.BreedProfile, error) {
	spatial, err := profile.ParseSpatialPreference(b.SpatialPreference)
	if err != nil {
		return profile.BreedProfile{}, fmt.Errorf("%w: profile %q: %v", ErrInvalidConfig, b.Name, err)
	}
	color, err := profile.ParseColorPreference(b.ColorPreference)
	if err != nil {
		return profile.BreedProfile{}, fmt.Errorf("%w: profile %q: %v", ErrInvalidConfig, b.Name, err)
	}
	p := profile.BreedProfile{
		Name:                      b.Name,
		PreferredFrequencies:      b.PreferredFrequencies,
		VolumeSensitivity:         b.VolumeSensitivity,
		SpatialPreference:         spatial,
		StressResponseFrequencies: b.StressResponseFrequencies,
		ColorPreference:           color,
		MotionSensitivity:         b.MotionSensitivity,
		ContrastPreference:        b.ContrastPreference,
	}
	if err := p.Validate(); err != nil {
		return profile.BreedProfile{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return p, nil
}

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// FeedbackQueueSize bounds the in-memory feedback queue.
	FeedbackQueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of feedback workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize sets the size of the sample deduplication cache.
	DedupeSize int `koanf:"dedupe_size"`

	// ShardCount configures the number of shards in the snapshot store.
	ShardCount int `koanf:"shard_count"`

	// HistoryCap bounds the per-session snapshot history.
	HistoryCap int `koanf:"history_cap"`

	// EvalIntervalMS sets the per-session evaluation cadence in milliseconds.
	EvalIntervalMS int `koanf:"eval_interval_ms"`

	// PhaseInitialSec and PhaseDeepeningSec override the relaxation phase
	// durations in seconds. Zero keeps the built-in schedule.
	PhaseInitialSec   int `koanf:"phase_initial_sec"`
	PhaseDeepeningSec int `koanf:"phase_deepening_sec"`

	// Profiles adds operator-supplied breed profiles on top of the builtins.
	Profiles []BreedProfileConfig `koanf:"profiles"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		Addr:              ":9090",
		FeedbackQueueSize: 4_096,
		WorkerCount:       2,
		DedupeSize:        10_000,
		ShardCount:        8,
		HistoryCap:        32,
		EvalIntervalMS:    2_000,
	}
}
