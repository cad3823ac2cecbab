package web

import (
	"net/http"

	"billdesk/internal/core"
)

func (h *Handler) listVendors(w http.ResponseWriter, r *http.Request) {
	vendors, err := h.svc.Vendors.ListVendors(r.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("list vendors")
		writeServiceError(w, r, err)
		return
	}
	if vendors == nil {
		vendors = []core.Vendor{}
	}
	writeJSON(w, vendors)
}

func (h *Handler) getVendor(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	vendor, err := h.svc.Vendors.GetVendor(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, vendor)
}

func (h *Handler) createVendor(w http.ResponseWriter, r *http.Request) {
	var input core.VendorInput
	if !decodeJSON(w, r, &input) {
		return
	}
	vendor, err := h.svc.Vendors.CreateVendor(r.Context(), input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, vendor)
}

func (h *Handler) updateVendor(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var input core.VendorInput
	if !decodeJSON(w, r, &input) {
		return
	}
	vendor, err := h.svc.Vendors.UpdateVendor(r.Context(), id, input)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, vendor)
}

func (h *Handler) deleteVendor(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := h.svc.Vendors.DeleteVendor(r.Context(), id); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
