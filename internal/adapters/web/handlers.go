package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"billdesk/internal/ai"
	"billdesk/internal/core"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Services bundles everything the HTTP layer depends on.
type Services struct {
	Customers core.CustomerService
	Vendors   core.VendorService
	Products  core.ProductService
	Purchases core.PurchaseService
	Invoices  core.InvoiceService
	Reports   core.ReportService
	Profile   core.ProfileService
	Assistant *ai.Client
}

// Handler holds the services, the chi router, and the request logger.
type Handler struct {
	svc       Services
	router    chi.Router
	jwtSecret string
	log       zerolog.Logger
}

// NewHandler creates and wires the chi router with all routes.
func NewHandler(svc Services, allowedOrigins, jwtSecret string, log zerolog.Logger) http.Handler {
	h := &Handler{
		svc:       svc,
		jwtSecret: jwtSecret,
		log:       log,
	}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger(log))
	r.Use(Recoverer(log))
	r.Use(CORS(allowedOrigins))

	// ── Health (public) ───────────────────────────────────────────────────────
	r.Get("/api/health", h.health)

	// ── Protected API routes (return 401 JSON if unauthenticated) ────────────
	r.Group(func(r chi.Router) {
		r.Use(h.RequireAuth)

		// Bill uploads are multipart; the handler enforces its own size cap.
		r.Post("/api/ai/extract-bill", h.extractBill)

		// All other endpoints: 1 MB body limit to prevent unbounded request abuse.
		r.Group(func(r chi.Router) {
			r.Use(RequestBodyLimit(1 << 20)) // 1 MB

			// ── Master data ──────────────────────────────────────────────────
			r.Get("/api/customers", h.listCustomers)
			r.Post("/api/customers", h.createCustomer)
			r.Get("/api/customers/{id}", h.getCustomer)
			r.Put("/api/customers/{id}", h.updateCustomer)
			r.Delete("/api/customers/{id}", h.deleteCustomer)

			r.Get("/api/vendors", h.listVendors)
			r.Post("/api/vendors", h.createVendor)
			r.Get("/api/vendors/{id}", h.getVendor)
			r.Put("/api/vendors/{id}", h.updateVendor)
			r.Delete("/api/vendors/{id}", h.deleteVendor)

			r.Get("/api/products", h.listProducts)
			r.Post("/api/products", h.createProduct)
			r.Get("/api/products/{id}", h.getProduct)
			r.Put("/api/products/{id}", h.updateProduct)
			r.Delete("/api/products/{id}", h.deleteProduct)

			// ── Purchases ────────────────────────────────────────────────────
			r.Get("/api/purchases", h.listPurchases)
			r.Post("/api/purchases", h.createPurchase)
			r.Get("/api/purchases/{id}", h.getPurchase)
			r.Put("/api/purchases/{id}", h.updatePurchase)
			r.Delete("/api/purchases/{id}", h.deletePurchase)
			r.Post("/api/purchases/{id}/receive", h.receivePurchase)

			// ── Invoices ─────────────────────────────────────────────────────
			r.Get("/api/invoices", h.listInvoices)
			r.Post("/api/invoices", h.createInvoice)
			r.Get("/api/invoices/{id}", h.getInvoice)
			r.Put("/api/invoices/{id}", h.updateInvoice)
			r.Delete("/api/invoices/{id}", h.deleteInvoice)

			// ── Reports ──────────────────────────────────────────────────────
			r.Get("/api/reports/summary", h.reportSummary)
			r.Get("/api/reports/pl", h.reportProfitAndLoss)
			r.Get("/api/reports/balance-sheet", h.reportBalanceSheet)

			// ── Business profile ─────────────────────────────────────────────
			r.Get("/api/business-profile", h.getProfile)
			r.Put("/api/business-profile", h.updateProfile)

			// ── Assistant ────────────────────────────────────────────────────
			r.Post("/api/ai/narrative", h.dashboardNarrative)
			r.Post("/api/ai/templates", h.suggestTemplates)
		})
	})

	h.router = r
	return r
}

// health returns service status and the configured business name.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	business := ""
	if profile, err := h.svc.Profile.GetProfile(r.Context()); err == nil {
		business = profile.Name
	}

	type response struct {
		Status   string `json:"status"`
		Business string `json:"business"`
	}
	writeJSON(w, response{Status: "ok", Business: business})
}

// idParam extracts the {id} URL parameter as an int. Returns false after
// writing a 400 when the value is not a positive integer.
func idParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		writeError(w, r, "invalid id", "BAD_REQUEST", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// decodeJSON decodes the request body into v and returns false + writes an appropriate
// error response on failure. Returns HTTP 413 when the body exceeds the size limit set
// by RequestBodyLimit middleware; HTTP 400 for all other decode errors.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, r, "request body too large", "REQUEST_TOO_LARGE", http.StatusRequestEntityTooLarge)
			return false
		}
		writeError(w, r, "invalid JSON body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return false
	}
	return true
}
