package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/aluiggi96/Doc-MYPE/internal/app"
)

// Handler holds the ApplicationService and the chi router.
type Handler struct {
	svc    app.ApplicationService
	router chi.Router
}

// NewHandler creates and wires the chi router with all routes.
func NewHandler(svc app.ApplicationService, allowedOrigins []string) http.Handler {
	h := &Handler{svc: svc}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger)
	r.Use(Recoverer)
	r.Use(CORS(allowedOrigins))
	r.Use(RequestBodyLimit(1 << 20)) // 1 MB

	// ── Health ────────────────────────────────────────────────────────────────
	r.Get("/api/health", h.health)

	// ── Schemas ───────────────────────────────────────────────────────────────
	r.Get("/api/schema/{entity}", h.apiSchema)

	// ── Documents ─────────────────────────────────────────────────────────────
	r.Get("/api/documents", h.apiListDocuments)
	r.Post("/api/documents", h.apiCreateDocument)
	r.Get("/api/documents/{id}", h.apiGetDocument)
	r.Put("/api/documents/{id}", h.apiEditDocument)
	r.Post("/api/documents/{id}/void", h.apiVoidDocument)

	// ── Clients ───────────────────────────────────────────────────────────────
	r.Get("/api/clients", h.apiListClients)
	r.Post("/api/clients", h.apiCreateClient)
	r.Get("/api/clients/{id}", h.apiGetClient)
	r.Put("/api/clients/{id}", h.apiUpdateClient)
	r.Delete("/api/clients/{id}", h.apiDeleteClient)

	// ── Products ──────────────────────────────────────────────────────────────
	r.Get("/api/products", h.apiListProducts)
	r.Post("/api/products", h.apiCreateProduct)
	r.Get("/api/products/low-stock", h.apiLowStock)
	r.Get("/api/products/{id}", h.apiGetProduct)
	r.Put("/api/products/{id}", h.apiUpdateProduct)
	r.Delete("/api/products/{id}", h.apiDeleteProduct)

	// ── Reports ───────────────────────────────────────────────────────────────
	r.Get("/api/dashboard", h.apiDashboard)
	r.Get("/api/reports/accounting", h.apiAccounting)
	r.Get("/api/reports/cash-flow", h.apiCashFlow)

	// ── Sustainability ────────────────────────────────────────────────────────
	r.Get("/api/sustainability", h.apiListSustainability)
	r.Put("/api/sustainability/{month}", h.apiRecordSustainability)

	// ── AI insights ───────────────────────────────────────────────────────────
	r.Post("/api/insights", h.apiRequestInsights)
	r.Get("/api/insights", h.apiGetInsights)

	h.router = r
	return r
}

// health returns service status.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	type response struct {
		Status string `json:"status"`
	}
	writeJSON(w, response{Status: "ok"})
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

// confirmed reads the ?confirm= query flag that destructive routes require.
func confirmed(r *http.Request) bool {
	ok, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))
	return ok
}
