package testfeedback

import "time"

// Config holds configuration for the feedback test
type Config struct {
	BaseURL    string        // Base URL of the service
	Sessions   int           // Number of concurrent subject sessions
	Samples    int           // Number of feedback samples per session
	Scenario   string        // Stress scenario: ramp, spike, steady
	Timeout    time.Duration // HTTP request timeout
	Interval   time.Duration // Delay between samples of one session
	OutputFile string        // Output file for samples
	LogFile    string        // Log file for test output
	Verbose    bool          // Enable verbose logging
}

// SessionRequest represents the body of POST /sessions
type SessionRequest struct {
	Breed string `json:"breed"`
	Age   string `json:"age"`
}

// SessionResponse represents the response of POST /sessions
type SessionResponse struct {
	SessionID string `json:"session_id"`
}

// Sample represents a feedback sample to be submitted
type Sample struct {
	SampleID     string  `json:"sample_id"`
	SessionID    string  `json:"session_id"`
	StressLevel  string  `json:"stress_level"`
	MovementRate float64 `json:"movement_rate"`
	HeartRate    float64 `json:"heart_rate,omitempty"`
	TS           string  `json:"ts"`
}

// Parameters represents the subset of the snapshot the test verifies
type Parameters struct {
	VisualSpeed     float64 `json:"visual_speed"`
	ColorContrast   float64 `json:"color_contrast"`
	MotionDamping   float64 `json:"motion_damping"`
	FrameRateCap    float64 `json:"frame_rate_cap"`
	AudioBPM        int     `json:"audio_bpm"`
	VolumeCeilingDB float64 `json:"volume_ceiling_db"`
	Phase           string  `json:"phase"`
	GeneratedAt     string  `json:"generated_at"`
}

// AckResponse represents the response from feedback submission
type AckResponse struct {
	Status    string `json:"status"`
	Duplicate bool   `json:"duplicate"`
}

// Stats holds test statistics
type Stats struct {
	SessionsCreated    int
	SamplesGenerated   int
	SamplesSubmitted   int
	SamplesSuccessful  int
	SamplesDuplicate   int
	SamplesFailed      int
	SnapshotsRetrieved int
	HistoryEntries     int
	Violations         int
	StartTime          time.Time
	EndTime            time.Time
	Duration           time.Duration
}
