package testfeedback

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"time"

	"github.com/okian/pawsense/pkg/logger"
)

// Constants for random number generation.
const (
	randomFloatDivisor = 1000000
	sampleIDDivisor    = 10000
	spikeOneIn         = 8
)

// Breeds and ages cycled across generated sessions.
var (
	testBreeds = []string{"labrador", "bulldog", "border collie", "german shepherd", "beagle", "mixed"}
	testAges   = []string{"puppy", "adult", "senior"}
)

// getRandomFloat returns a random float64 between 0.0 and 1.0 using crypto/rand.
func getRandomFloat() float64 {
	n, _ := rand.Int(rand.Reader, big.NewInt(randomFloatDivisor))
	return float64(n.Int64()) / float64(randomFloatDivisor)
}

// sessionRequestFor picks breed and age for the i-th session. "mixed" is an
// unknown breed on purpose; it exercises the default profile fallback.
func sessionRequestFor(i int) SessionRequest {
	return SessionRequest{
		Breed: testBreeds[i%len(testBreeds)],
		Age:   testAges[i%len(testAges)],
	}
}

// generateSamples creates the per-session sample timeline for the scenario.
func generateSamples(ctx context.Context, config *Config, sessionID string, sessionIdx int) []Sample {
	samples := make([]Sample, 0, config.Samples)
	for i := 0; i < config.Samples; i++ {
		samples = append(samples, generateSingleSample(config, sessionID, sessionIdx, i))
	}
	logger.Get().Debug(ctx, "generated samples for session",
		logger.String("sessionID", sessionID),
		logger.Int("count", len(samples)))
	return samples
}

// generateSingleSample creates one sample at position i of the timeline.
func generateSingleSample(config *Config, sessionID string, sessionIdx, i int) Sample {
	level, movement, heart := scenarioPoint(config.Scenario, i, config.Samples)

	randNum, _ := rand.Int(rand.Reader, big.NewInt(sampleIDDivisor))
	sampleID := "sample_" + strconv.Itoa(sessionIdx) + "_" + strconv.Itoa(i) + "_" +
		strconv.FormatInt(time.Now().UnixNano(), 10) + "_" + strconv.FormatInt(randNum.Int64(), 10)

	return Sample{
		SampleID:     sampleID,
		SessionID:    sessionID,
		StressLevel:  level,
		MovementRate: movement,
		HeartRate:    heart,
		TS:           time.Now().UTC().Format(time.RFC3339),
	}
}

// scenarioPoint maps a timeline position to stress metrics.
//
//	ramp:   high -> moderate -> low, the expected calming trajectory
//	spike:  mostly low with occasional high outliers
//	steady: constant moderate stress
func scenarioPoint(scenario string, i, total int) (level string, movement, heart float64) {
	switch scenario {
	case ScenarioSpike:
		n, _ := rand.Int(rand.Reader, big.NewInt(spikeOneIn))
		if n.Int64() == 0 {
			return "high", 0.8 + getRandomFloat()*0.2, 140 + getRandomFloat()*20
		}
		return "low", getRandomFloat() * 0.3, 70 + getRandomFloat()*20
	case ScenarioSteady:
		return "moderate", 0.4 + getRandomFloat()*0.2, 100 + getRandomFloat()*20
	default: // ramp
		progress := 0.0
		if total > 1 {
			progress = float64(i) / float64(total-1)
		}
		switch {
		case progress < 0.34:
			return "high", 0.7 + getRandomFloat()*0.3, 130 + getRandomFloat()*30
		case progress < 0.67:
			return "moderate", 0.3 + getRandomFloat()*0.3, 100 + getRandomFloat()*20
		default:
			return "low", getRandomFloat() * 0.3, 70 + getRandomFloat()*20
		}
	}
}

// validScenario reports whether the scenario name is supported.
func validScenario(s string) error {
	switch s {
	case ScenarioRamp, ScenarioSpike, ScenarioSteady:
		return nil
	}
	return fmt.Errorf("unknown scenario %q; want one of ramp, spike, steady", s)
}
