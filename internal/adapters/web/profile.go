package web

import (
	"net/http"

	"billdesk/internal/core"
)

func (h *Handler) getProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.svc.Profile.GetProfile(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("get business profile")
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, profile)
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	var input core.BusinessProfile
	if !decodeJSON(w, r, &input) {
		return
	}
	profile, err := h.svc.Profile.UpdateProfile(r.Context(), input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, profile)
}
