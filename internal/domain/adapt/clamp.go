package adapt

import (
	"fmt"

	"github.com/okian/pawsense/internal/domain/audioshape"
	"github.com/okian/pawsense/internal/domain/colorshape"
	"github.com/okian/pawsense/internal/domain/model"
	"github.com/okian/pawsense/pkg/metrics"
)

// clampParams forces every numeric field into its documented safe range.
// A clamp that actually changes a value is counted; steady clamp activity
// points at a coefficient-table bug upstream.
func clampParams(p *model.AdaptationParameters) {
	p.VisualSpeed = clampField("visual_speed", p.VisualSpeed, 0, maxVisualSpeed)
	p.ColorContrast = clampField("color_contrast", p.ColorContrast, 0, 1)
	p.MotionDamping = clampField("motion_damping", p.MotionDamping, 1-colorshape.MaxMotionLoss, 1)
	p.FrameRateCap = clampField("frame_rate_cap", p.FrameRateCap, colorshape.MinFrameRateCap, colorshape.MaxFrameRateCap)
	p.VolumeCeilingDB = clampField("volume_ceiling_db", p.VolumeCeilingDB, 0, audioshape.MaxVolumeDB)

	if p.AudioBPM < audioshape.MinBPM {
		metrics.RecordClampApplied("audio_bpm")
		p.AudioBPM = audioshape.MinBPM
	}
	if p.AudioBPM > audioshape.MaxBPM {
		metrics.RecordClampApplied("audio_bpm")
		p.AudioBPM = audioshape.MaxBPM
	}

	for i := range p.FrequencyBands {
		p.FrequencyBands[i].GainDB = clampField("band_gain_db", p.FrequencyBands[i].GainDB, audioshape.MinBandGainDB, audioshape.MaxBandGainDB)
	}
}

// maxVisualSpeed bounds the visual speed multiplier. No shaper path can
// exceed it; the ceiling exists so a corrupt coefficient table cannot
// push renderers into runaway playback.
const maxVisualSpeed = 4.0

func clampField(field string, v, lo, hi float64) float64 {
	if v < lo {
		metrics.RecordClampApplied(field)
		return lo
	}
	if v > hi {
		metrics.RecordClampApplied(field)
		return hi
	}
	return v
}

// Validate checks every numeric field of a snapshot against its documented
// closed range. It exists for tests and diagnostics; the evaluation path
// never returns it.
func Validate(p model.AdaptationParameters) error {
	switch {
	case p.VisualSpeed < 0 || p.VisualSpeed > maxVisualSpeed:
		return fmt.Errorf("%w: visual_speed=%v", ErrOutOfRangeParameter, p.VisualSpeed)
	case p.ColorContrast < 0 || p.ColorContrast > 1:
		return fmt.Errorf("%w: color_contrast=%v", ErrOutOfRangeParameter, p.ColorContrast)
	case p.MotionDamping < 1-colorshape.MaxMotionLoss || p.MotionDamping > 1:
		return fmt.Errorf("%w: motion_damping=%v", ErrOutOfRangeParameter, p.MotionDamping)
	case p.FrameRateCap < colorshape.MinFrameRateCap || p.FrameRateCap > colorshape.MaxFrameRateCap:
		return fmt.Errorf("%w: frame_rate_cap=%v", ErrOutOfRangeParameter, p.FrameRateCap)
	case p.AudioBPM < audioshape.MinBPM || p.AudioBPM > audioshape.MaxBPM:
		return fmt.Errorf("%w: audio_bpm=%v", ErrOutOfRangeParameter, p.AudioBPM)
	case p.VolumeCeilingDB > audioshape.MaxVolumeDB:
		return fmt.Errorf("%w: volume_ceiling_db=%v", ErrOutOfRangeParameter, p.VolumeCeilingDB)
	}
	for _, b := range p.FrequencyBands {
		if b.GainDB < audioshape.MinBandGainDB || b.GainDB > audioshape.MaxBandGainDB {
			return fmt.Errorf("%w: band %v gain_db=%v", ErrOutOfRangeParameter, b.CenterHz, b.GainDB)
		}
	}
	return nil
}
