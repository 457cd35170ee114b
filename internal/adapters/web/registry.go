package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aluiggi96/Doc-MYPE/internal/app"
	"github.com/aluiggi96/Doc-MYPE/internal/core"
)

// ── Clients ───────────────────────────────────────────────────────────────────

func (h *Handler) apiListClients(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListClients(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Clients)
}

func (h *Handler) apiGetClient(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.GetClient(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Client)
}

func (h *Handler) apiCreateClient(w http.ResponseWriter, r *http.Request) {
	var body core.ClientInput
	if !decodeJSON(w, r, &body) {
		return
	}
	result, err := h.svc.CreateClient(r.Context(), body)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, result.Client)
}

func (h *Handler) apiUpdateClient(w http.ResponseWriter, r *http.Request) {
	var body core.ClientInput
	if !decodeJSON(w, r, &body) {
		return
	}
	result, err := h.svc.UpdateClient(r.Context(), chi.URLParam(r, "id"), body)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Client)
}

// apiDeleteClient handles DELETE /api/clients/{id}?confirm=true.
func (h *Handler) apiDeleteClient(w http.ResponseWriter, r *http.Request) {
	err := h.svc.DeleteClient(r.Context(), app.DeleteRequest{ID: chi.URLParam(r, "id"), Confirmed: confirmed(r)})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ── Products ──────────────────────────────────────────────────────────────────

func (h *Handler) apiListProducts(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListProducts(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// apiLowStock handles GET /api/products/low-stock.
func (h *Handler) apiLowStock(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.GetLowStock(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

func (h *Handler) apiGetProduct(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

func (h *Handler) apiCreateProduct(w http.ResponseWriter, r *http.Request) {
	var body core.ProductInput
	if !decodeJSON(w, r, &body) {
		return
	}
	result, err := h.svc.CreateProduct(r.Context(), body)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, result)
}

func (h *Handler) apiUpdateProduct(w http.ResponseWriter, r *http.Request) {
	var body core.ProductInput
	if !decodeJSON(w, r, &body) {
		return
	}
	result, err := h.svc.UpdateProduct(r.Context(), chi.URLParam(r, "id"), body)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// apiDeleteProduct handles DELETE /api/products/{id}?confirm=true.
func (h *Handler) apiDeleteProduct(w http.ResponseWriter, r *http.Request) {
	err := h.svc.DeleteProduct(r.Context(), app.DeleteRequest{ID: chi.URLParam(r, "id"), Confirmed: confirmed(r)})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ── Sustainability ────────────────────────────────────────────────────────────

func (h *Handler) apiListSustainability(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.GetSustainability(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// apiRecordSustainability handles PUT /api/sustainability/{month}. The month in
// the path wins over any month in the body.
func (h *Handler) apiRecordSustainability(w http.ResponseWriter, r *http.Request) {
	var body core.SustainabilityInput
	if !decodeJSON(w, r, &body) {
		return
	}
	body.Month = chi.URLParam(r, "month")
	result, err := h.svc.RecordSustainability(r.Context(), body)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Entry)
}
