package web

import "net/http"

func (h *Handler) reportSummary(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	report, err := h.svc.Reports.Summary(r.Context(), q.Get("from"), q.Get("to"))
	if err != nil {
		h.log.Error().Err(err).Msg("report summary")
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, report)
}

func (h *Handler) reportProfitAndLoss(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	view, err := h.svc.Reports.ProfitAndLoss(r.Context(), q.Get("from"), q.Get("to"))
	if err != nil {
		h.log.Error().Err(err).Msg("report pl")
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, view)
}

func (h *Handler) reportBalanceSheet(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	view, err := h.svc.Reports.BalanceSheet(r.Context(), q.Get("from"), q.Get("to"))
	if err != nil {
		h.log.Error().Err(err).Msg("report balance sheet")
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, view)
}
