package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/okian/pawsense/internal/testfeedback"
)

// Default configuration constants.
const (
	defaultSessions    = 6
	defaultSamples     = 30
	defaultInterval    = 500 * time.Millisecond
	defaultTimeout     = 30 * time.Second
	defaultTestTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL    = flag.String("url", "http://localhost:9090", "Base URL of the service")
		sessions   = flag.Int("sessions", defaultSessions, "Number of concurrent subject sessions")
		samples    = flag.Int("samples", defaultSamples, "Number of feedback samples per session")
		scenario   = flag.String("scenario", "ramp", "Stress scenario: ramp, spike, steady")
		interval   = flag.Duration("interval", defaultInterval, "Delay between samples of one session")
		timeout    = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		outputFile = flag.String("output", "", "Output file for generated samples (default: generated_samples_TIMESTAMP.json)")
		logFile    = flag.String("log", "", "Log file for test output (default: test_log_TIMESTAMP.log)")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging")
		help       = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		testfeedback.ShowHelp()
		return
	}

	// Setup logging
	if err := testfeedback.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	// Create context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), defaultTestTimeout)
	defer cancel()

	// Create test configuration
	config := &testfeedback.Config{
		BaseURL:    *baseURL,
		Sessions:   *sessions,
		Samples:    *samples,
		Scenario:   *scenario,
		Timeout:    *timeout,
		Interval:   *interval,
		OutputFile: *outputFile,
		LogFile:    *logFile,
		Verbose:    *verbose,
	}

	// Run the test
	if err := testfeedback.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Test failed: " + err.Error() + "\n")
		return
	}
}
