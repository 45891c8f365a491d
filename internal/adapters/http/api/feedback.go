// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/pawsense/internal/domain/dedupe"
	"github.com/okian/pawsense/internal/domain/model"
)

// FeedbackDependencies defines the interface for feedback intake dependencies.
type FeedbackDependencies interface {
	dedupe.Deduper
	HasSession(ctx context.Context, id string) bool
	Enqueue(ctx context.Context, sample model.FeedbackSample) bool
}

// FeedbackHandler handles behavior feedback intake.
type FeedbackHandler struct {
	deps FeedbackDependencies
}

// NewFeedbackHandler creates a new feedback handler.
func NewFeedbackHandler(deps FeedbackDependencies) *FeedbackHandler {
	return &FeedbackHandler{deps: deps}
}

// HandlePostFeedback handles POST /feedback requests.
func (h *FeedbackHandler) HandlePostFeedback(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_feedback"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req feedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if !h.deps.HasSession(r.Context(), req.SessionID) {
		writeError(w, http.StatusNotFound, "not_found", NewKind(op, ErrSessionNotFound))
		return
	}

	// Idempotency check - mark as seen first
	if h.deps.SeenAndRecord(r.Context(), req.SampleID) {
		writeJSON(w, http.StatusAccepted, ackResponse{Status: "duplicate", Duplicate: true})
		return
	}

	// Try to enqueue for async processing
	if ok := h.deps.Enqueue(r.Context(), req.sample()); !ok {
		// Rollback the "seen" status since enqueue failed
		h.deps.Unrecord(r.Context(), req.SampleID)
		writeError(w, http.StatusServiceUnavailable, "backpressure", NewKind(op, ErrBackpressure))
		return
	}
	writeJSON(w, http.StatusAccepted, ackResponse{Status: "accepted", Duplicate: false})
}
