package testfeedback

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/okian/pawsense/pkg/logger"
)

// File permission constants.
const (
	directoryPermission = 0750
)

// Run executes the complete feedback test.
func Run(ctx context.Context, config *Config) error {
	if err := validScenario(config.Scenario); err != nil {
		return err
	}

	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting pawsense feedback test",
		logger.String("baseURL", config.BaseURL),
		logger.Int("sessions", config.Sessions),
		logger.Int("samplesPerSession", config.Samples),
		logger.String("scenario", config.Scenario),
		logger.String("interval", config.Interval.String()),
		logger.String("timeout", config.Timeout.String()),
		logger.Any("verbose", config.Verbose))

	client := newHTTPClient(config.Timeout)

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, client, config); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Create sessions
	sessionIDs, err := createSessions(ctx, client, config, stats)
	if err != nil {
		return fmt.Errorf("session creation failed: %w", err)
	}

	// Step 3: Generate per-session sample timelines
	timelines := make(map[string][]Sample, len(sessionIDs))
	for i, id := range sessionIDs {
		timeline := generateSamples(ctx, config, id, i)
		timelines[id] = timeline
		stats.SamplesGenerated += len(timeline)
	}

	// Step 4: Stream samples
	if err := submitSamples(ctx, client, config, timelines, stats); err != nil {
		return fmt.Errorf("sample submission failed: %w", err)
	}

	// Step 5: Wait for the evaluation ticker to absorb the tail
	logger.Get().Info(ctx, "waiting for samples to be processed")
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(ProcessingDelay):
	}

	// Step 6: Verify snapshots and history
	if err := verifySnapshots(ctx, client, config, sessionIDs, stats); err != nil {
		return fmt.Errorf("snapshot verification failed: %w", err)
	}

	// Step 7: Verify at-most-once intake
	verifyDuplicates(ctx, client, config, timelines, stats)

	// Step 8: Save samples to file
	if err := saveSamplesToFile(ctx, config, timelines); err != nil {
		logger.Get().Warn(ctx, "failed to save samples to file", logger.Error(err))
	}

	// Final statistics
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(stats)

	if stats.Violations > 0 {
		return fmt.Errorf("test found %d violations", stats.Violations)
	}
	logger.Get().Info(ctx, "test completed successfully")
	return nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, client *HTTPClient, config *Config) error {
	logger.Get().Info(ctx, "checking service health")

	resp, err := client.Get(ctx, config.BaseURL+"/healthz")
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()

	// Accept any 200 response as healthy (the service returns Prometheus metrics)
	if resp.StatusCode != StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}

	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// saveSamplesToFile saves all generated samples to a JSON file.
func saveSamplesToFile(ctx context.Context, config *Config, timelines map[string][]Sample) error {
	if len(timelines) == 0 {
		return fmt.Errorf("no samples to save")
	}

	filename := config.OutputFile
	if filename == "" {
		timestamp := time.Now().Format("20060102_150405")
		filename = "generated_samples_" + timestamp + ".json"
	}

	dir := filepath.Dir(filename)
	if dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close file", logger.Error(err))
		}
	}()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(timelines); err != nil {
		return fmt.Errorf("failed to write samples: %w", err)
	}

	logger.Get().Info(ctx, "samples saved to file", logger.String("filename", filename))
	return nil
}

// displayFinalStats prints the final test statistics.
func displayFinalStats(stats *Stats) {
	var successRate, samplesPerSecond float64

	if stats.SamplesSubmitted > 0 {
		successRate = float64(stats.SamplesSuccessful) / float64(stats.SamplesSubmitted) * PercentageMultiplier
	}

	if stats.Duration > 0 {
		samplesPerSecond = float64(stats.SamplesSubmitted) / stats.Duration.Seconds()
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("sessionsCreated", stats.SessionsCreated),
		logger.Int("samplesGenerated", stats.SamplesGenerated),
		logger.Int("samplesSubmitted", stats.SamplesSubmitted),
		logger.Int("samplesSuccessful", stats.SamplesSuccessful),
		logger.Int("samplesDuplicate", stats.SamplesDuplicate),
		logger.Int("samplesFailed", stats.SamplesFailed),
		logger.Int("snapshotsRetrieved", stats.SnapshotsRetrieved),
		logger.Int("historyEntries", stats.HistoryEntries),
		logger.Int("violations", stats.Violations),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("successRate", successRate),
		logger.Float64("samplesPerSecond", samplesPerSecond))
}
