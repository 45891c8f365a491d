package testfeedback

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/pawsense/pkg/logger"
)

// HTTPClient wraps http.Client with timeout
type HTTPClient struct {
	client  *http.Client
	timeout time.Duration
}

// newHTTPClient creates a new HTTP client with timeout
func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		timeout: timeout,
	}
}

// Get performs a GET request
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	return c.client.Do(req)
}

// Post performs a POST request with JSON body
func (c *HTTPClient) Post(ctx context.Context, url string, body interface{}) (*http.Response, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	return c.client.Do(req)
}

// readResponseBody reads and closes the response body
func readResponseBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

// createSessions registers one session per subject and returns their ids.
func createSessions(ctx context.Context, client *HTTPClient, config *Config, stats *Stats) ([]string, error) {
	url := config.BaseURL + "/sessions"
	ids := make([]string, 0, config.Sessions)

	for i := 0; i < config.Sessions; i++ {
		req := sessionRequestFor(i)
		resp, err := client.Post(ctx, url, req)
		if err != nil {
			return nil, fmt.Errorf("failed to create session %d: %w", i, err)
		}
		body, err := readResponseBody(resp)
		if err != nil {
			return nil, fmt.Errorf("failed to read session response %d: %w", i, err)
		}
		if resp.StatusCode != StatusCreated {
			return nil, fmt.Errorf("session create %d failed with status %d: %s", i, resp.StatusCode, string(body))
		}
		var sr SessionResponse
		if err := json.Unmarshal(body, &sr); err != nil {
			return nil, fmt.Errorf("failed to parse session response %d: %w", i, err)
		}
		ids = append(ids, sr.SessionID)
		logger.Get().Debug(ctx, "created session",
			logger.String("sessionID", sr.SessionID),
			logger.String("breed", req.Breed),
			logger.String("age", req.Age))
	}

	stats.SessionsCreated = len(ids)
	logger.Get().Info(ctx, "sessions created", logger.Int("count", len(ids)))
	return ids, nil
}

// submitSamples streams each session's timeline concurrently. One worker per
// session keeps samples of a session in order; the interval paces delivery.
func submitSamples(ctx context.Context, client *HTTPClient, config *Config, timelines map[string][]Sample, stats *Stats) error {
	url := config.BaseURL + "/feedback"

	var (
		successful int64
		duplicate  int64
		failed     int64
		submitted  int64
	)

	var wg sync.WaitGroup
	for sessionID, samples := range timelines {
		wg.Add(1)
		go func(sessionID string, samples []Sample) {
			defer wg.Done()
			for _, sample := range samples {
				select {
				case <-ctx.Done():
					return
				default:
				}

				result := submitSingleSample(ctx, client, url, sample)
				atomic.AddInt64(&submitted, 1)
				switch result {
				case "success":
					atomic.AddInt64(&successful, 1)
				case "duplicate":
					atomic.AddInt64(&duplicate, 1)
				case "failed":
					atomic.AddInt64(&failed, 1)
				}

				if config.Interval > 0 {
					select {
					case <-ctx.Done():
						return
					case <-time.After(config.Interval):
					}
				}
			}
		}(sessionID, samples)
	}
	wg.Wait()

	stats.SamplesSubmitted = int(atomic.LoadInt64(&submitted))
	stats.SamplesSuccessful = int(atomic.LoadInt64(&successful))
	stats.SamplesDuplicate = int(atomic.LoadInt64(&duplicate))
	stats.SamplesFailed = int(atomic.LoadInt64(&failed))

	logger.Get().Info(ctx, "sample submission completed",
		logger.Int("successful", stats.SamplesSuccessful),
		logger.Int("duplicate", stats.SamplesDuplicate),
		logger.Int("failed", stats.SamplesFailed))
	return nil
}

// submitSingleSample submits a single sample and classifies the outcome.
func submitSingleSample(ctx context.Context, client *HTTPClient, url string, sample Sample) string {
	resp, err := client.Post(ctx, url, sample)
	if err != nil {
		return "failed"
	}

	body, err := readResponseBody(resp)
	if err != nil {
		return "failed"
	}

	if resp.StatusCode != StatusAccepted {
		return "failed"
	}
	var ack AckResponse
	if err := json.Unmarshal(body, &ack); err == nil && ack.Duplicate {
		return "duplicate"
	}
	return "success"
}

// fetchParameters retrieves the latest snapshot for a session.
func fetchParameters(ctx context.Context, client *HTTPClient, config *Config, sessionID string) (*Parameters, error) {
	url := config.BaseURL + "/parameters?session_id=" + sessionID
	resp, err := client.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch parameters: %w", err)
	}
	body, err := readResponseBody(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read parameters response: %w", err)
	}
	if resp.StatusCode != StatusOK {
		return nil, fmt.Errorf("parameters fetch failed with status %d: %s", resp.StatusCode, string(body))
	}
	var params Parameters
	if err := json.Unmarshal(body, &params); err != nil {
		return nil, fmt.Errorf("failed to parse parameters: %w", err)
	}
	return &params, nil
}

// fetchHistory retrieves up to limit snapshots for a session, newest first.
func fetchHistory(ctx context.Context, client *HTTPClient, config *Config, sessionID string, limit int) ([]Parameters, error) {
	url := fmt.Sprintf("%s/history?session_id=%s&limit=%d", config.BaseURL, sessionID, limit)
	resp, err := client.Get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch history: %w", err)
	}
	body, err := readResponseBody(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read history response: %w", err)
	}
	if resp.StatusCode != StatusOK {
		return nil, fmt.Errorf("history fetch failed with status %d: %s", resp.StatusCode, string(body))
	}
	var history []Parameters
	if err := json.Unmarshal(body, &history); err != nil {
		return nil, fmt.Errorf("failed to parse history: %w", err)
	}
	return history, nil
}
