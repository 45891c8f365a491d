// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
)

// ProfileDependencies defines the interface for profile listing.
type ProfileDependencies interface {
	Profiles() []string
}

// ProfilesHandler handles breed profile listing requests.
type ProfilesHandler struct {
	deps ProfileDependencies
}

// NewProfilesHandler creates a new profiles handler.
func NewProfilesHandler(deps ProfileDependencies) *ProfilesHandler {
	return &ProfilesHandler{deps: deps}
}

type profilesResponse struct {
	Profiles []string `json:"profiles"`
}

// HandleGetProfiles handles GET /profiles requests.
func (h *ProfilesHandler) HandleGetProfiles(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	names := h.deps.Profiles()
	if names == nil {
		names = []string{}
	}
	writeJSON(w, http.StatusOK, profilesResponse{Profiles: names})
}
