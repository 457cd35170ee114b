package web_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aluiggi96/Doc-MYPE/internal/adapters/web"
	"github.com/aluiggi96/Doc-MYPE/internal/ai"
	"github.com/aluiggi96/Doc-MYPE/internal/app"
	"github.com/aluiggi96/Doc-MYPE/internal/core"
	"github.com/aluiggi96/Doc-MYPE/internal/store"
)

func newServer(t *testing.T) http.Handler {
	t.Helper()
	st := core.OpenStore(context.Background(), store.NewMemoryBackend(), "test")
	svc := app.NewFromStore(st, nil, ai.AdvisorConfig{Model: "m"}, nil)
	return web.NewHandler(svc, []string{"http://localhost:5173"})
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

type errorBody struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id"`
	Fields    []struct {
		Field string `json:"field"`
	} `json:"fields"`
}

func TestHealth(t *testing.T) {
	rec := do(t, newServer(t), http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestDocumentLifecycle(t *testing.T) {
	h := newServer(t)

	rec := do(t, h, http.MethodPost, "/api/clients", `{"name":"Bodega Lucía","doc_type":"DNI","doc_number":"45678912"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	client := decode[core.Client](t, rec)

	rec = do(t, h, http.MethodPost, "/api/products", `{"code":"ACE-1","name":"Aceite 1L","unit_price":"8.50","stock":4}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	product := decode[app.ProductResult](t, rec)
	assert.True(t, product.LowStock)

	body := `{"type":"receipt","client_id":"` + client.ID + `","issue_date":"2024-05-02","status":"issued",
		"items":[{"product_id":"` + product.Product.ID + `","quantity":10}]}`
	rec = do(t, h, http.MethodPost, "/api/documents", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var doc struct {
		ID         string `json:"id"`
		Number     string `json:"number"`
		ClientName string `json:"client_name"`
		Total      string `json:"total"`
		Status     string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, "B001-00000001", doc.Number)
	assert.Equal(t, "Bodega Lucía", doc.ClientName)
	assert.Equal(t, "100.3", doc.Total)

	rec = do(t, h, http.MethodGet, "/api/documents?type=receipts", "")
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[struct {
		Kind      string            `json:"kind"`
		Label     string            `json:"label"`
		Documents []json.RawMessage `json:"documents"`
	}](t, rec)
	assert.Equal(t, "receipt", list.Kind)
	assert.Equal(t, "Boleta de Venta Electrónica", list.Label)
	assert.Len(t, list.Documents, 1)

	rec = do(t, h, http.MethodPost, "/api/documents/"+doc.ID+"/void", "")
	assert.Equal(t, http.StatusPreconditionRequired, rec.Code)
	assert.Equal(t, "CONFIRMATION_REQUIRED", decode[errorBody](t, rec).Code)

	rec = do(t, h, http.MethodPost, "/api/documents/"+doc.ID+"/void?confirm=true", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.True(t, decode[struct {
		Changed bool `json:"changed"`
	}](t, rec).Changed)

	rec = do(t, h, http.MethodPut, "/api/documents/"+doc.ID, body)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "NOT_EDITABLE", decode[errorBody](t, rec).Code)

	rec = do(t, h, http.MethodDelete, "/api/clients/"+client.ID+"?confirm=true", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestValidationErrorsListFields(t *testing.T) {
	h := newServer(t)

	rec := do(t, h, http.MethodPost, "/api/clients", `{"doc_type":"RUC","doc_number":"123","email":"x"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decode[errorBody](t, rec)
	assert.Equal(t, "VALIDATION_FAILED", body.Code)
	assert.NotEmpty(t, body.RequestID)
	var fields []string
	for _, f := range body.Fields {
		fields = append(fields, f.Field)
	}
	assert.ElementsMatch(t, []string{"name", "doc_number", "email"}, fields)
}

func TestErrorStatuses(t *testing.T) {
	h := newServer(t)

	tests := []struct {
		method, path, body string
		status             int
		code               string
	}{
		{http.MethodGet, "/api/documents?type=quote", "", http.StatusBadRequest, "BAD_REQUEST"},
		{http.MethodGet, "/api/documents/missing", "", http.StatusNotFound, "NOT_FOUND"},
		{http.MethodPost, "/api/clients", `{"name":`, http.StatusBadRequest, "BAD_REQUEST"},
		{http.MethodDelete, "/api/products/missing?confirm=true", "", http.StatusNotFound, "NOT_FOUND"},
		{http.MethodGet, "/api/schema/order", "", http.StatusNotFound, "NOT_FOUND"},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec := do(t, h, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			assert.Equal(t, tt.code, decode[errorBody](t, rec).Code)
		})
	}
}

func TestReportsAndInsights(t *testing.T) {
	h := newServer(t)

	rec := do(t, h, http.MethodGet, "/api/dashboard", "")
	require.Equal(t, http.StatusOK, rec.Code)
	dash := decode[map[string]any](t, rec)
	assert.Contains(t, dash, "sales")
	assert.Contains(t, dash, "low_stock_count")

	rec = do(t, h, http.MethodGet, "/api/reports/accounting", "")
	require.Equal(t, http.StatusOK, rec.Code)
	acc := decode[app.AccountingResult](t, rec)
	assert.Equal(t, "15000", acc.BalanceSheet.Equity.String())

	rec = do(t, h, http.MethodPut, "/api/sustainability/2024-06", `{"energy_consumption":320,"paper_usage":"2.5","waste_generated":14}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec = do(t, h, http.MethodGet, "/api/sustainability", "")
	sus := decode[app.SustainabilityResult](t, rec)
	require.Len(t, sus.Entries, 1)
	assert.Equal(t, "2024-06", sus.Entries[0].ID)

	rec = do(t, h, http.MethodPost, "/api/insights", "")
	require.Equal(t, http.StatusOK, rec.Code)
	ins := decode[map[string]any](t, rec)
	assert.Equal(t, "failed", ins["status"])
	assert.Equal(t, "unavailable", ins["reason"])
}

func TestSchemaEndpoint(t *testing.T) {
	rec := do(t, newServer(t), http.MethodGet, "/api/schema/document", "")
	require.Equal(t, http.StatusOK, rec.Code)

	schema := decode[map[string]any](t, rec)
	props, ok := schema["properties"].(map[string]any)
	require.True(t, ok, rec.Body.String())
	assert.Contains(t, props, "client_id")
	assert.Contains(t, props, "items")
	assert.Contains(t, props, "carrier_ruc")
}

func TestCORS(t *testing.T) {
	h := newServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/clients", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/api/clients", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
