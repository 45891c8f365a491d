// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/okian/pawsense/internal/domain/adapt"
	"github.com/okian/pawsense/internal/domain/profile"
)

// SessionDependencies defines the interface for session lifecycle operations.
type SessionDependencies interface {
	CreateSession(ctx context.Context, breed string, age profile.AgeGroup) (string, error)
	EndSession(ctx context.Context, id string) error
	ResetSession(ctx context.Context, id string) error
	SessionState(ctx context.Context, id string) (adapt.SessionState, error)
}

// SessionsHandler handles session lifecycle requests.
type SessionsHandler struct {
	deps SessionDependencies
}

// NewSessionsHandler creates a new sessions handler.
func NewSessionsHandler(deps SessionDependencies) *SessionsHandler {
	return &SessionsHandler{deps: deps}
}

// HandleCreateSession handles POST /sessions requests.
func (h *SessionsHandler) HandleCreateSession(w http.ResponseWriter, r *http.Request) {
	const op = "api.create_session"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req sessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	age, _ := profile.ParseAgeGroup(req.Age)
	id, err := h.deps.CreateSession(r.Context(), req.Breed, age)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusCreated, sessionResponse{SessionID: id})
}

// HandleSessionByID dispatches requests under /sessions/{id}.
//
//	GET    /sessions/{id}        session state
//	DELETE /sessions/{id}        end session
//	POST   /sessions/{id}/reset  reset session
func (h *SessionsHandler) HandleSessionByID(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/sessions/")
	if path == "" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	if id, ok := strings.CutSuffix(path, "/reset"); ok {
		h.handleReset(w, r, id)
		return
	}
	if strings.Contains(path, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.handleState(w, r, path)
	case http.MethodDelete:
		h.handleEnd(w, r, path)
	default:
		http.NotFound(w, r)
	}
}

func (h *SessionsHandler) handleReset(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodPost || id == "" || strings.Contains(id, "/") {
		http.NotFound(w, r)
		return
	}
	if err := h.deps.ResetSession(r.Context(), id); err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, ackResponse{Status: "reset"})
}

// sessionStateResponse is the wire shape for GET /sessions/{id}.
type sessionStateResponse struct {
	SessionID      string  `json:"session_id"`
	ElapsedSeconds float64 `json:"elapsed_seconds"`
	Phase          string  `json:"phase"`
	StressLevel    string  `json:"stress_level"`
	Evaluations    int     `json:"evaluations"`
}

func (h *SessionsHandler) handleState(w http.ResponseWriter, r *http.Request, id string) {
	state, err := h.deps.SessionState(r.Context(), id)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, sessionStateResponse{
		SessionID:      state.SessionID,
		ElapsedSeconds: state.ElapsedSeconds,
		Phase:          state.CurrentPhase.String(),
		StressLevel:    state.LastStress.String(),
		Evaluations:    state.Evaluations,
	})
}

func (h *SessionsHandler) handleEnd(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.deps.EndSession(r.Context(), id); err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, ackResponse{Status: "ended"})
}
