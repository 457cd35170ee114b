package core_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aluiggi96/Doc-MYPE/internal/core"
	"github.com/aluiggi96/Doc-MYPE/internal/store"
)

// countingBackend records how many writes reach the backend.
type countingBackend struct {
	*store.MemoryBackend
	saves int
}

func (b *countingBackend) Save(ctx context.Context, key string, data []byte) error {
	b.saves++
	return b.MemoryBackend.Save(ctx, key, data)
}

func newTestStore(t *testing.T) (*core.Store, *countingBackend) {
	t.Helper()
	backend := &countingBackend{MemoryBackend: store.NewMemoryBackend()}
	return core.OpenStore(context.Background(), backend, "test"), backend
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDec(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.Truef(t, dec(want).Equal(got), "want %s, got %s %v", want, got.String(), msgAndArgs)
}

func header(id string, kind core.Kind, date string, total string) core.Header {
	return core.Header{
		ID:        id,
		Type:      kind,
		Number:    id,
		ClientID:  "c1",
		IssueDate: date,
		Currency:  core.CurrencyPEN,
		Subtotal:  dec(total),
		Tax:       decimal.Zero,
		Total:     dec(total),
		Status:    core.StatusIssued,
	}
}

func invoice(id, date, total string) *core.Invoice {
	return &core.Invoice{Header: header(id, core.KindInvoice, date, total)}
}

func receipt(id, date, total string) *core.Receipt {
	return &core.Receipt{Header: header(id, core.KindReceipt, date, total)}
}

func creditNote(id, date, total, modified string) *core.CreditNote {
	return &core.CreditNote{
		Header:  header(id, core.KindCreditNote, date, total),
		NoteRef: core.NoteRef{ModifiedDocumentID: modified, Reason: "devolución"},
	}
}

func dispatchGuide(id, date string) *core.DispatchGuide {
	return &core.DispatchGuide{
		Header: header(id, core.KindDispatchGuide, date, "0"),
		Transport: core.Transport{
			StartPoint:  "Lima",
			EndPoint:    "Arequipa",
			CarrierRUC:  "20123456789",
			CarrierName: "Transportes Andinos",
			TotalWeight: dec("120.5"),
		},
	}
}

func seedDocuments(t *testing.T, st *core.Store, docs ...core.Document) {
	t.Helper()
	require.NoError(t, st.Documents.Set(context.Background(), core.DocumentList(docs)))
}

func ids(docs []core.Document) []string {
	out := make([]string, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.Base().ID)
	}
	return out
}

func issuedInvoiceInput() core.DocumentInput {
	return core.DocumentInput{
		Type:       core.KindInvoice,
		ClientID:   "c1",
		ClientName: "Comercial Rímac SAC",
		IssueDate:  "2024-03-10",
		Status:     core.StatusIssued,
		Items: []core.ItemInput{
			{ProductID: "p1", ProductName: "Arroz 50kg", Quantity: dec("2"), UnitPrice: dec("150")},
			{ProductID: "p2", ProductName: "Aceite 1L", Quantity: dec("3"), UnitPrice: dec("8.50")},
		},
	}
}
