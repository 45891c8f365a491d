// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/okian/pawsense/internal/domain/adapt"
	"github.com/okian/pawsense/internal/domain/dedupe"
	"github.com/okian/pawsense/internal/domain/model"
	"github.com/okian/pawsense/internal/domain/profile"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	dedupe.Deduper

	// Session lifecycle.
	CreateSession(ctx context.Context, breed string, age profile.AgeGroup) (string, error)
	EndSession(ctx context.Context, id string) error
	ResetSession(ctx context.Context, id string) error
	HasSession(ctx context.Context, id string) bool
	SessionState(ctx context.Context, id string) (adapt.SessionState, error)

	// Enqueue pushes a feedback sample for async processing. Returns false
	// on backpressure.
	Enqueue(ctx context.Context, sample model.FeedbackSample) bool

	// Read operations expose parameter snapshots.
	Latest(ctx context.Context, sessionID string) (model.AdaptationParameters, error)
	History(ctx context.Context, sessionID string, limit int) ([]model.AdaptationParameters, error)

	// Profiles lists the canonical names of registered breed profiles.
	Profiles() []string
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler     *HealthHandler
	statsHandler      *StatsHandler
	sessionsHandler   *SessionsHandler
	feedbackHandler   *FeedbackHandler
	parametersHandler *ParametersHandler
	profilesHandler   *ProfilesHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:     NewHealthHandler(),
		statsHandler:      NewStatsHandler(statsProvider),
		sessionsHandler:   NewSessionsHandler(deps),
		feedbackHandler:   NewFeedbackHandler(deps),
		parametersHandler: NewParametersHandler(deps),
		profilesHandler:   NewProfilesHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/metrics", MetricsMiddleware(s.healthHandler.HandleHealth, "metrics"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/profiles", MetricsMiddleware(s.profilesHandler.HandleGetProfiles, "profiles"))
	mux.HandleFunc("/sessions", MetricsMiddleware(s.sessionsHandler.HandleCreateSession, "sessions"))
	mux.HandleFunc("/sessions/", MetricsMiddleware(s.sessionsHandler.HandleSessionByID, "session"))
	mux.HandleFunc("/feedback", MetricsMiddleware(s.feedbackHandler.HandlePostFeedback, "feedback"))
	mux.HandleFunc("/parameters", MetricsMiddleware(s.parametersHandler.HandleGetParameters, "parameters"))
	mux.HandleFunc("/history", MetricsMiddleware(s.parametersHandler.HandleGetHistory, "history"))
}

// sessionRequest mirrors the wire schema for POST /sessions.
type sessionRequest struct {
	Breed string `json:"breed"`
	Age   string `json:"age"`
}

func (s sessionRequest) validate() error {
	if strings.TrimSpace(s.Breed) == "" {
		return errors.New("missing breed")
	}
	if strings.TrimSpace(s.Age) == "" {
		return errors.New("missing age")
	}
	if _, err := profile.ParseAgeGroup(s.Age); err != nil {
		return errors.New("invalid age; must be one of puppy, adult, senior")
	}
	return nil
}

// feedbackRequest mirrors the wire schema for POST /feedback.
type feedbackRequest struct {
	SampleID     string         `json:"sample_id"`
	SessionID    string         `json:"session_id"`
	StressLevel  string         `json:"stress_level"`
	MovementRate float64        `json:"movement_rate"`
	HeartRate    float64        `json:"heart_rate,omitempty"`
	Location     *model.Vector3 `json:"location,omitempty"`
	TS           string         `json:"ts"`
}

func (f feedbackRequest) validate() error {
	switch {
	case strings.TrimSpace(f.SampleID) == "":
		return errors.New("missing sample_id")
	case strings.TrimSpace(f.SessionID) == "":
		return errors.New("missing session_id")
	case strings.TrimSpace(f.StressLevel) == "":
		return errors.New("missing stress_level")
	case strings.TrimSpace(f.TS) == "":
		return errors.New("missing ts")
	}
	if _, err := model.ParseStressLevel(f.StressLevel); err != nil {
		return errors.New("invalid stress_level; must be one of low, moderate, high")
	}
	if f.MovementRate < 0 || f.MovementRate > 1 {
		return errors.New("movement_rate must be within [0,1]")
	}
	if f.HeartRate < 0 {
		return errors.New("heart_rate must be non-negative")
	}
	if _, err := time.Parse(time.RFC3339, f.TS); err != nil {
		return errors.New("invalid ts; must be RFC3339")
	}
	return nil
}

// sample converts a validated request to the domain shape.
func (f feedbackRequest) sample() model.FeedbackSample {
	level, _ := model.ParseStressLevel(f.StressLevel)
	ts, _ := time.Parse(time.RFC3339, f.TS)
	return model.FeedbackSample{
		SampleID:  f.SampleID,
		SessionID: f.SessionID,
		Metrics: model.StressMetrics{
			Level:        level,
			MovementRate: f.MovementRate,
			HeartRate:    f.HeartRate,
			Location:     f.Location,
		},
		TS: ts,
	}
}

type sessionResponse struct {
	SessionID string `json:"session_id"`
}

type ackResponse struct {
	Status    string `json:"status"`
	Duplicate bool   `json:"duplicate"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// isNotFound allows the API to translate upstream not-found errors to 404.
// This stays generic to avoid tight coupling with specific packages.
func isNotFound(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(strings.ToLower(err.Error()), "not found")
}
