package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/aluiggi96/Doc-MYPE/internal/app"
	"github.com/aluiggi96/Doc-MYPE/internal/core"
)

// apiListDocuments handles GET /api/documents?type=invoices.
func (h *Handler) apiListDocuments(w http.ResponseWriter, r *http.Request) {
	kind, err := core.ParseKind(r.URL.Query().Get("type"))
	if err != nil {
		writeError(w, r, err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	result, err := h.svc.ListDocuments(r.Context(), kind)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// apiGetDocument handles GET /api/documents/{id}.
func (h *Handler) apiGetDocument(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.GetDocument(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Document)
}

// apiCreateDocument handles POST /api/documents.
func (h *Handler) apiCreateDocument(w http.ResponseWriter, r *http.Request) {
	var body core.DocumentInput
	if !decodeJSON(w, r, &body) {
		return
	}
	result, err := h.svc.CreateDocument(r.Context(), app.DocumentRequest{DocumentInput: body})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, result.Document)
}

// apiEditDocument handles PUT /api/documents/{id}.
func (h *Handler) apiEditDocument(w http.ResponseWriter, r *http.Request) {
	var body core.DocumentInput
	if !decodeJSON(w, r, &body) {
		return
	}
	result, err := h.svc.EditDocument(r.Context(), chi.URLParam(r, "id"), app.DocumentRequest{DocumentInput: body})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result.Document)
}

// apiVoidDocument handles POST /api/documents/{id}/void?confirm=true.
func (h *Handler) apiVoidDocument(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.VoidDocument(r.Context(), app.VoidDocumentRequest{
		ID:        chi.URLParam(r, "id"),
		Confirmed: confirmed(r),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}
