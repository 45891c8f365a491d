// Package model contains domain values passed between layers.
package model

import (
	"fmt"
	"strings"
)

// StressLevel is an ordered classification of observed subject stress.
type StressLevel int

const (
	StressLow StressLevel = iota
	StressModerate
	StressHigh
)

// String returns the wire name of the stress level.
func (s StressLevel) String() string {
	switch s {
	case StressModerate:
		return "moderate"
	case StressHigh:
		return "high"
	default:
		return "low"
	}
}

// Ordinal returns the numeric rank of the level (low=0, moderate=1, high=2).
func (s StressLevel) Ordinal() int {
	return int(s)
}

// ParseStressLevel parses a wire name into a StressLevel.
func ParseStressLevel(s string) (StressLevel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return StressLow, nil
	case "moderate":
		return StressModerate, nil
	case "high":
		return StressHigh, nil
	default:
		return StressLow, fmt.Errorf("unknown stress level: %q", s)
	}
}

// Vector3 is a 3D direction/position used for spatial audio bias and
// subject location.
type Vector3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// StressMetrics is one behavior-feedback sample produced by an external
// sensing collaborator. It is consumed per evaluation and never retained
// beyond it.
type StressMetrics struct {
	Level        StressLevel // ordered low/moderate/high
	MovementRate float64     // normalized [0,1]
	HeartRate    float64     // beats per minute; 0 means not observed
	Location     *Vector3    // last observed subject location, if any
}
