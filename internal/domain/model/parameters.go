package model

import "time"

// FrequencyBand is one entry of the rendered audio equalizer curve.
type FrequencyBand struct {
	CenterHz    float64 `json:"center_hz"`
	BandwidthHz float64 `json:"bandwidth_hz"`
	GainDB      float64 `json:"gain_db"`
}

// DichromaticWeights are the per-channel coefficients of the blue/yellow
// color remapping applied by the video renderer:
//
//	blue'   = blue * Blue
//	yellow' = (red*Red + green*Green) * Yellow
//
// ContrastExponent (>1) is applied to both output channels to compensate
// for reduced visual acuity.
type DichromaticWeights struct {
	Blue             float64 `json:"blue"`
	Yellow           float64 `json:"yellow"`
	Red              float64 `json:"red"`
	Green            float64 `json:"green"`
	ContrastExponent float64 `json:"contrast_exponent"`
}

// AdaptationParameters is the full parameter snapshot handed to external
// audio and video renderers. It is a pure value recomputed on every
// evaluation; renderers always apply the latest snapshot whole.
type AdaptationParameters struct {
	// Visual subset
	VisualSpeed   float64            `json:"visual_speed"`   // >= 0
	ColorContrast float64            `json:"color_contrast"` // [0,1]
	MotionDamping float64            `json:"motion_damping"` // [0.1,1], fraction of motion retained
	FrameRateCap  float64            `json:"frame_rate_cap"` // [10,120], advisory
	Color         DichromaticWeights `json:"color"`

	// Audio subset
	AudioBPM        int             `json:"audio_bpm"` // [30,120]
	FrequencyBands  []FrequencyBand `json:"frequency_bands"`
	SpatialBias     Vector3         `json:"spatial_bias"`
	VolumeCeilingDB float64         `json:"volume_ceiling_db"` // <= MaxVolumeDB

	// ContentCategory tags the snapshot for renderer-side content selection.
	ContentCategory string `json:"content_category"`

	// Phase names the relaxation phase the snapshot was produced in.
	Phase string `json:"phase"`

	// GeneratedAt records when the snapshot was produced.
	GeneratedAt time.Time `json:"generated_at"`
}

// FeedbackSample is a behavior feedback sample addressed to one session,
// flowing through the intake queue.
type FeedbackSample struct {
	SampleID  string // unique id for at-most-once intake
	SessionID string
	Metrics   StressMetrics
	TS        time.Time
}
