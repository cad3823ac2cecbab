package web

import (
	"io"
	"net/http"
)

// maxBillUploadBytes caps bill image uploads at 10 MB.
const maxBillUploadBytes = 10 << 20

// assistantReady returns false after writing a 503 when no API key was
// configured at startup.
func (h *Handler) assistantReady(w http.ResponseWriter, r *http.Request) bool {
	if h.svc.Assistant == nil {
		writeError(w, r, "assistant is not configured", "AI_UNAVAILABLE", http.StatusServiceUnavailable)
		return false
	}
	return true
}

// extractBill accepts a multipart upload under the "bill" field and returns a
// structured purchase draft read from the image.
func (h *Handler) extractBill(w http.ResponseWriter, r *http.Request) {
	if !h.assistantReady(w, r) {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBillUploadBytes)
	if err := r.ParseMultipartForm(maxBillUploadBytes); err != nil {
		writeError(w, r, "invalid multipart upload", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("bill")
	if err != nil {
		writeError(w, r, "missing bill file", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		writeError(w, r, "failed to read upload", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	extraction, err := h.svc.Assistant.ExtractBill(r.Context(), mimeType, image)
	if err != nil {
		h.log.Error().Err(err).Msg("bill extraction failed")
		writeError(w, r, "bill extraction failed", "AI_ERROR", http.StatusBadGateway)
		return
	}
	writeJSON(w, extraction)
}

// dashboardNarrative summarizes the current report period in plain language.
func (h *Handler) dashboardNarrative(w http.ResponseWriter, r *http.Request) {
	if !h.assistantReady(w, r) {
		return
	}

	q := r.URL.Query()
	report, err := h.svc.Reports.Summary(r.Context(), q.Get("from"), q.Get("to"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	narrative, err := h.svc.Assistant.DashboardNarrative(r.Context(), report)
	if err != nil {
		h.log.Error().Err(err).Msg("narrative generation failed")
		writeError(w, r, "narrative generation failed", "AI_ERROR", http.StatusBadGateway)
		return
	}

	type response struct {
		Narrative string `json:"narrative"`
	}
	writeJSON(w, response{Narrative: narrative})
}

// suggestTemplates proposes invoice template styles for the business profile.
func (h *Handler) suggestTemplates(w http.ResponseWriter, r *http.Request) {
	if !h.assistantReady(w, r) {
		return
	}

	profile, err := h.svc.Profile.GetProfile(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	suggestions, err := h.svc.Assistant.SuggestTemplates(r.Context(), profile)
	if err != nil {
		h.log.Error().Err(err).Msg("template suggestion failed")
		writeError(w, r, "template suggestion failed", "AI_ERROR", http.StatusBadGateway)
		return
	}

	type response struct {
		Suggestions []string `json:"suggestions"`
	}
	writeJSON(w, response{Suggestions: suggestions})
}
