package app_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aluiggi96/Doc-MYPE/internal/ai"
	"github.com/aluiggi96/Doc-MYPE/internal/app"
	"github.com/aluiggi96/Doc-MYPE/internal/core"
	"github.com/aluiggi96/Doc-MYPE/internal/store"
)

type stubGenerator struct {
	calls int
	text  string
}

func (g *stubGenerator) Generate(ctx context.Context, req ai.GenerateRequest) (string, error) {
	g.calls++
	return g.text, nil
}

type fixture struct {
	svc     app.ApplicationService
	st      *core.Store
	gen     *stubGenerator
	client  core.Client
	product core.Product
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	st := core.OpenStore(ctx, store.NewMemoryBackend(), "test")
	gen := &stubGenerator{text: "Buen mes."}
	svc := app.NewFromStore(st, gen, ai.AdvisorConfig{Model: "m"}, nil)

	c, err := svc.CreateClient(ctx, core.ClientInput{Name: "Comercial Rímac SAC", DocType: core.DocTypeRUC, DocNumber: "20512345678"})
	require.NoError(t, err)
	p, err := svc.CreateProduct(ctx, core.ProductInput{Code: "ARR-50", Name: "Arroz 50kg", UnitPrice: decimal.NewFromInt(150), Stock: 20})
	require.NoError(t, err)

	return &fixture{svc: svc, st: st, gen: gen, client: c.Client, product: p.Product}
}

func (f *fixture) invoiceRequest() app.DocumentRequest {
	return app.DocumentRequest{DocumentInput: core.DocumentInput{
		Type:       core.KindInvoice,
		ClientID:   f.client.ID,
		ClientName: "ignored",
		IssueDate:  "2024-04-02",
		Status:     core.StatusIssued,
		Items:      []core.ItemInput{{ProductID: f.product.ID, Quantity: decimal.NewFromInt(2)}},
	}}
}

func TestCreateDocument_ResolvesNamesAndPrices(t *testing.T) {
	f := newFixture(t)

	res, err := f.svc.CreateDocument(context.Background(), f.invoiceRequest())
	require.NoError(t, err)

	h := res.Document.Base()
	assert.Equal(t, "Comercial Rímac SAC", h.ClientName)
	require.Len(t, h.Items, 1)
	assert.Equal(t, "Arroz 50kg", h.Items[0].ProductName)
	assert.True(t, h.Items[0].UnitPrice.Equal(decimal.NewFromInt(150)))
	assert.True(t, h.Total.Equal(decimal.RequireFromString("354")))
	assert.Equal(t, "F001-00000001", h.Number)
}

func TestCreateDocument_UnknownReferences(t *testing.T) {
	f := newFixture(t)
	req := f.invoiceRequest()
	req.ClientID = "nope"
	req.Items[0].ProductID = "nope"

	_, err := f.svc.CreateDocument(context.Background(), req)
	var ve *core.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.True(t, ve.Has("client_id"))
	assert.True(t, ve.Has("items[0].product_id"))
	assert.Empty(t, f.st.Documents.Get())
}

func TestDestructiveActionsRequireConfirmation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	doc, err := f.svc.CreateDocument(ctx, f.invoiceRequest())
	require.NoError(t, err)
	id := doc.Document.Base().ID
	version := f.st.Documents.Version()

	_, err = f.svc.VoidDocument(ctx, app.VoidDocumentRequest{ID: id})
	assert.ErrorIs(t, err, app.ErrConfirmationRequired)
	assert.ErrorIs(t, f.svc.DeleteClient(ctx, app.DeleteRequest{ID: f.client.ID}), app.ErrConfirmationRequired)
	assert.ErrorIs(t, f.svc.DeleteProduct(ctx, app.DeleteRequest{ID: f.product.ID}), app.ErrConfirmationRequired)

	assert.Equal(t, version, f.st.Documents.Version())
	got, err := f.svc.GetDocument(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, core.StatusIssued, got.Document.Base().Status)
	clients, _ := f.svc.ListClients(ctx)
	assert.Len(t, clients.Clients, 1)

	voided, err := f.svc.VoidDocument(ctx, app.VoidDocumentRequest{ID: id, Confirmed: true})
	require.NoError(t, err)
	assert.True(t, voided.Changed)
	assert.Equal(t, core.StatusVoided, voided.Document.Base().Status)

	again, err := f.svc.VoidDocument(ctx, app.VoidDocumentRequest{ID: id, Confirmed: true})
	require.NoError(t, err)
	assert.False(t, again.Changed)

	assert.ErrorIs(t, f.svc.DeleteClient(ctx, app.DeleteRequest{ID: f.client.ID, Confirmed: true}), core.ErrConflict)
}

func TestReportsAndInsights(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	insights, err := f.svc.RequestInsights(ctx)
	require.NoError(t, err)
	assert.Equal(t, ai.ReasonInsufficientData, insights.Reason)
	assert.Zero(t, f.gen.calls)

	_, err = f.svc.CreateDocument(ctx, f.invoiceRequest())
	require.NoError(t, err)

	acc, err := f.svc.GetAccounting(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, acc.Sales.Count)
	assert.True(t, acc.IncomeStatement.Sales.Equal(decimal.NewFromInt(300)))

	dash, err := f.svc.GetDashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, dash.ClientCount)
	assert.Len(t, dash.RecentDocuments, 1)

	flow, err := f.svc.GetCashFlow(ctx)
	require.NoError(t, err)
	require.Len(t, flow.Months, 1)
	assert.Equal(t, "2024-04", flow.Months[0].Month)

	insights, err = f.svc.RequestInsights(ctx)
	require.NoError(t, err)
	assert.True(t, insights.Succeeded())
	assert.Equal(t, "Buen mes.", insights.Text)
	assert.Equal(t, 1, f.gen.calls)

	state, err := f.svc.GetInsights(ctx)
	require.NoError(t, err)
	assert.Equal(t, insights.Text, state.Text)

	low, err := f.svc.GetLowStock(ctx)
	require.NoError(t, err)
	assert.Zero(t, low.LowStockCount)
}
