package testfeedback

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/okian/pawsense/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging configures logging to both console and file.
// If logFile is empty, a timestamped filename is generated.
func SetupLogging(logFile string) error {
	// Initialize the logger first
	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if logFile == "" {
		timestamp := time.Now().Format("20060102_150405")
		logFile = "test_log_" + timestamp + ".log"
	}

	file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	multiWriter := io.MultiWriter(os.Stdout, file)
	log.SetOutput(multiWriter)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	logger.Get().Info(context.Background(), "logging to file", logger.String("logFile", logFile))
	return nil
}

// ShowHelp prints usage information for the feedback test tool.
func ShowHelp() {
	os.Stdout.WriteString(`PawSense Feedback Test Tool
===========================

Drives the adaptation service with scripted stress scenarios and verifies
the rendered parameter snapshots.

Usage:
  go run cmd/test-feedback/main.go [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9090")
  -sessions int
        Number of concurrent subject sessions (default 6)
  -samples int
        Number of feedback samples per session (default 30)
  -scenario string
        Stress scenario: ramp, spike, steady (default "ramp")
  -interval duration
        Delay between samples of one session (default 500ms)
  -timeout duration
        HTTP request timeout (default 30s)
  -output string
        Output file for generated samples (default: generated_samples_TIMESTAMP.json)
  -log string
        Log file for test output (default: test_log_TIMESTAMP.log)
  -verbose
        Enable verbose logging
  -help
        Show this help message

Examples:
  # Calming ramp against a local service
  go run cmd/test-feedback/main.go

  # Stress spikes with more subjects
  go run cmd/test-feedback/main.go -scenario spike -sessions 20 -samples 60

  # Fast steady-state soak
  go run cmd/test-feedback/main.go -scenario steady -interval 100ms -samples 200
`)
}
