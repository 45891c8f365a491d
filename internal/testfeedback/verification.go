package testfeedback

import (
	"context"
	"time"

	"github.com/okian/pawsense/pkg/logger"
)

// verifySnapshots fetches the latest snapshot and history for every session
// and checks the rendered parameter ranges the engine promises.
func verifySnapshots(ctx context.Context, client *HTTPClient, config *Config, sessionIDs []string, stats *Stats) error {
	for _, id := range sessionIDs {
		params, err := fetchParameters(ctx, client, config, id)
		if err != nil {
			return err
		}
		stats.SnapshotsRetrieved++
		stats.Violations += checkParameterRanges(ctx, id, params)

		history, err := fetchHistory(ctx, client, config, id, config.Samples)
		if err != nil {
			return err
		}
		stats.HistoryEntries += len(history)
		stats.Violations += checkHistoryOrder(ctx, id, history)
	}

	logger.Get().Info(ctx, "verification completed",
		logger.Int("snapshots", stats.SnapshotsRetrieved),
		logger.Int("historyEntries", stats.HistoryEntries),
		logger.Int("violations", stats.Violations))
	return nil
}

// checkParameterRanges validates one snapshot against the documented ranges.
// Returns the number of violations found.
func checkParameterRanges(ctx context.Context, sessionID string, p *Parameters) int {
	violations := 0
	report := func(field string, value float64) {
		violations++
		logger.Get().Warn(ctx, "parameter out of range",
			logger.String("sessionID", sessionID),
			logger.String("field", field),
			logger.Float64("value", value))
	}

	if p.VolumeCeilingDB > MaxVolumeCeilingDB || p.VolumeCeilingDB < 0 {
		report("volume_ceiling_db", p.VolumeCeilingDB)
	}
	if p.AudioBPM < MinAudioBPM || p.AudioBPM > MaxAudioBPM {
		report("audio_bpm", float64(p.AudioBPM))
	}
	if p.ColorContrast < 0 || p.ColorContrast > 1 {
		report("color_contrast", p.ColorContrast)
	}
	if p.MotionDamping < 0.1 || p.MotionDamping > 1 {
		report("motion_damping", p.MotionDamping)
	}
	if p.FrameRateCap < 10 || p.FrameRateCap > 120 {
		report("frame_rate_cap", p.FrameRateCap)
	}
	if p.VisualSpeed < 0 {
		report("visual_speed", p.VisualSpeed)
	}
	return violations
}

// checkHistoryOrder verifies the history is ordered newest first.
func checkHistoryOrder(ctx context.Context, sessionID string, history []Parameters) int {
	violations := 0
	var prev time.Time
	for i, entry := range history {
		ts, err := time.Parse(time.RFC3339Nano, entry.GeneratedAt)
		if err != nil {
			violations++
			logger.Get().Warn(ctx, "unparseable snapshot timestamp",
				logger.String("sessionID", sessionID),
				logger.String("generatedAt", entry.GeneratedAt))
			continue
		}
		if i > 0 && ts.After(prev) {
			violations++
			logger.Get().Warn(ctx, "history not ordered newest first",
				logger.String("sessionID", sessionID),
				logger.Int("index", i))
		}
		prev = ts
	}
	return violations
}

// verifyDuplicates resubmits the first sample of each timeline and expects
// the service to report it as a duplicate.
func verifyDuplicates(ctx context.Context, client *HTTPClient, config *Config, timelines map[string][]Sample, stats *Stats) {
	url := config.BaseURL + "/feedback"
	for sessionID, samples := range timelines {
		if len(samples) == 0 {
			continue
		}
		if result := submitSingleSample(ctx, client, url, samples[0]); result != "duplicate" {
			stats.Violations++
			logger.Get().Warn(ctx, "resubmitted sample was not flagged duplicate",
				logger.String("sessionID", sessionID),
				logger.String("sampleID", samples[0].SampleID),
				logger.String("result", result))
		}
	}
}
