// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/okian/pawsense/internal/domain/model"
)

// maxHistoryLimit bounds GET /history responses.
const (
	defaultHistoryLimit = 10
	maxHistoryLimit     = 100
)

// ParameterDependencies defines the interface for snapshot reads.
type ParameterDependencies interface {
	Latest(ctx context.Context, sessionID string) (model.AdaptationParameters, error)
	History(ctx context.Context, sessionID string, limit int) ([]model.AdaptationParameters, error)
}

// ParametersHandler handles parameter snapshot requests.
type ParametersHandler struct {
	deps ParameterDependencies
}

// NewParametersHandler creates a new parameters handler.
func NewParametersHandler(deps ParameterDependencies) *ParametersHandler {
	return &ParametersHandler{deps: deps}
}

// HandleGetParameters handles GET /parameters?session_id= requests.
func (h *ParametersHandler) HandleGetParameters(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_parameters"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	sessionID := strings.TrimSpace(r.URL.Query().Get("session_id"))
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "bad_request",
			WrapKind(op, ErrBadRequest, errors.New("missing session_id")))
		return
	}
	params, err := h.deps.Latest(r.Context(), sessionID)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	writeJSON(w, http.StatusOK, params)
}

// HandleGetHistory handles GET /history?session_id=&limit= requests.
// Snapshots are returned newest first.
func (h *ParametersHandler) HandleGetHistory(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_history"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	sessionID := strings.TrimSpace(r.URL.Query().Get("session_id"))
	if sessionID == "" {
		writeError(w, http.StatusBadRequest, "bad_request",
			WrapKind(op, ErrBadRequest, errors.New("missing session_id")))
		return
	}

	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "bad_request",
				WrapKind(op, ErrBadRequest, errors.New("limit must be a positive integer")))
			return
		}
		if n > maxHistoryLimit {
			n = maxHistoryLimit
		}
		limit = n
	}

	snapshots, err := h.deps.History(r.Context(), sessionID, limit)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}
	if snapshots == nil {
		snapshots = []model.AdaptationParameters{}
	}
	writeJSON(w, http.StatusOK, snapshots)
}
