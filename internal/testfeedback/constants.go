package testfeedback

import "time"

// HTTP status code constants.
const (
	StatusOK       = 200
	StatusCreated  = 201
	StatusAccepted = 202
)

// Runner configuration constants.
const (
	ProcessingDelay      = 5 * time.Second
	PercentageMultiplier = 100
	MaxVolumeCeilingDB   = 85.0
	MinAudioBPM          = 30
	MaxAudioBPM          = 120
)

// Supported scenario names.
const (
	ScenarioRamp   = "ramp"
	ScenarioSpike  = "spike"
	ScenarioSteady = "steady"
)
