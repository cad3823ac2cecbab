package web

import (
	"net/http"

	"billdesk/internal/core"
)

func (h *Handler) listPurchases(w http.ResponseWriter, r *http.Request) {
	purchases, err := h.svc.Purchases.ListPurchases(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		h.log.Error().Err(err).Msg("list purchases")
		writeServiceError(w, r, err)
		return
	}
	if purchases == nil {
		purchases = []core.Purchase{}
	}
	writeJSON(w, purchases)
}

func (h *Handler) getPurchase(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	purchase, err := h.svc.Purchases.GetPurchase(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, purchase)
}

func (h *Handler) createPurchase(w http.ResponseWriter, r *http.Request) {
	var input core.PurchaseInput
	if !decodeJSON(w, r, &input) {
		return
	}
	purchase, err := h.svc.Purchases.CreatePurchase(r.Context(), input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, purchase)
}

func (h *Handler) updatePurchase(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var input core.PurchaseInput
	if !decodeJSON(w, r, &input) {
		return
	}
	purchase, err := h.svc.Purchases.UpdatePurchase(r.Context(), id, input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, purchase)
}

func (h *Handler) deletePurchase(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := h.svc.Purchases.DeletePurchase(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) receivePurchase(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	purchase, err := h.svc.Purchases.ReceivePurchase(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, purchase)
}
