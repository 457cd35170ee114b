package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aluiggi96/Doc-MYPE/internal/app"
	"github.com/aluiggi96/Doc-MYPE/internal/core"
	"github.com/aluiggi96/Doc-MYPE/internal/logger"
)

type errorResponse struct {
	Error     string            `json:"error"`
	Code      string            `json:"code"`
	RequestID string            `json:"request_id,omitempty"`
	Fields    []core.FieldError `json:"fields,omitempty"`
}

// writeError writes a structured JSON error response.
func writeError(w http.ResponseWriter, r *http.Request, message, code string, status int) {
	writeErrorResponse(w, r, errorResponse{Error: message, Code: code}, status)
}

func writeErrorResponse(w http.ResponseWriter, r *http.Request, resp errorResponse, status int) {
	resp.RequestID = requestIDFromContext(r.Context())
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// writeServiceError maps service errors onto HTTP status codes.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var ve *core.ValidationError
	switch {
	case errors.As(err, &ve):
		writeErrorResponse(w, r, errorResponse{Error: err.Error(), Code: "VALIDATION_FAILED", Fields: ve.Fields}, http.StatusBadRequest)
	case errors.Is(err, core.ErrInvalidReference):
		writeError(w, r, err.Error(), "INVALID_REFERENCE", http.StatusBadRequest)
	case errors.Is(err, core.ErrNotFound):
		writeError(w, r, err.Error(), "NOT_FOUND", http.StatusNotFound)
	case errors.Is(err, core.ErrConflict):
		writeError(w, r, err.Error(), "CONFLICT", http.StatusConflict)
	case errors.Is(err, core.ErrNotEditable):
		writeError(w, r, err.Error(), "NOT_EDITABLE", http.StatusConflict)
	case errors.Is(err, app.ErrConfirmationRequired):
		writeError(w, r, "this action requires confirmation: resend with confirm=true", "CONFIRMATION_REQUIRED", http.StatusPreconditionRequired)
	default:
		l := logger.WithRequestID(requestIDFromContext(r.Context()))
		l.Error().Err(err).
			Str("path", r.URL.Path).Msg("request failed")
		writeError(w, r, "internal server error", "INTERNAL_ERROR", http.StatusInternalServerError)
	}
}

// writeJSON writes a JSON response with status 200.
func writeJSON(w http.ResponseWriter, v any) {
	writeJSONStatus(w, http.StatusOK, v)
}

func writeJSONStatus(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
