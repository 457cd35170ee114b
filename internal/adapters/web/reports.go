package web

import (
	"net/http"
)

// apiDashboard handles GET /api/dashboard.
func (h *Handler) apiDashboard(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.GetDashboard(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// apiAccounting handles GET /api/reports/accounting.
func (h *Handler) apiAccounting(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.GetAccounting(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// apiCashFlow handles GET /api/reports/cash-flow.
func (h *Handler) apiCashFlow(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.GetCashFlow(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// apiRequestInsights handles POST /api/insights. The request runs on the
// request context, so a client disconnect cancels it. Failed insights are
// still 200 responses: the status and reason are in the body.
func (h *Handler) apiRequestInsights(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.RequestInsights(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// apiGetInsights handles GET /api/insights.
func (h *Handler) apiGetInsights(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.GetInsights(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, result)
}
