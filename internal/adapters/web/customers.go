package web

import (
	"net/http"

	"billdesk/internal/core"
)

func (h *Handler) listCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.svc.Customers.ListCustomers(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("list customers")
		writeServiceError(w, r, err)
		return
	}
	if customers == nil {
		customers = []core.Customer{}
	}
	writeJSON(w, customers)
}

func (h *Handler) getCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	customer, err := h.svc.Customers.GetCustomer(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, customer)
}

func (h *Handler) createCustomer(w http.ResponseWriter, r *http.Request) {
	var input core.CustomerInput
	if !decodeJSON(w, r, &input) {
		return
	}
	customer, err := h.svc.Customers.CreateCustomer(r.Context(), input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, customer)
}

func (h *Handler) updateCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var input core.CustomerInput
	if !decodeJSON(w, r, &input) {
		return
	}
	customer, err := h.svc.Customers.UpdateCustomer(r.Context(), id, input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, customer)
}

func (h *Handler) deleteCustomer(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := h.svc.Customers.DeleteCustomer(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
