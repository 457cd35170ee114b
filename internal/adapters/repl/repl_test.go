package repl_test

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aluiggi96/Doc-MYPE/internal/adapters/repl"
	"github.com/aluiggi96/Doc-MYPE/internal/ai"
	"github.com/aluiggi96/Doc-MYPE/internal/app"
	"github.com/aluiggi96/Doc-MYPE/internal/core"
	"github.com/aluiggi96/Doc-MYPE/internal/store"
)

func newService(t *testing.T) app.ApplicationService {
	t.Helper()
	st := core.OpenStore(context.Background(), store.NewMemoryBackend(), "test")
	svc := app.NewFromStore(st, nil, ai.AdvisorConfig{}, nil)

	ctx := context.Background()
	_, err := svc.CreateClient(ctx, core.ClientInput{Name: "Minimarket Andino", DocNumber: "20512345678"})
	require.NoError(t, err)
	_, err = svc.CreateProduct(ctx, core.ProductInput{
		Code: "ARR-5", Name: "Arroz 5kg", UnitPrice: decimal.RequireFromString("22.50"), Stock: 40,
	})
	require.NoError(t, err)
	return svc
}

func runScript(svc app.ApplicationService, lines ...string) string {
	var out bytes.Buffer
	in := bufio.NewReader(strings.NewReader(strings.Join(lines, "\n") + "\n"))
	repl.Run(context.Background(), svc, in, &out)
	return out.String()
}

func TestRun_CreateAndVoidDocument(t *testing.T) {
	svc := newService(t)

	out := runScript(svc,
		"/new invoice 20512345678",
		"ARR-5 2",
		"XYZ 1",
		"done",
		"2024-07-10", // issue date
		"",           // currency
		"",           // due date
		"y",          // issue now
		"/docs invoices",
		"/exit",
	)
	assert.Contains(t, out, "Unknown product code: XYZ")
	assert.Contains(t, out, "Document created: F001-00000001 (issued)")
	assert.Contains(t, out, "53.10") // 45.00 + 18% IGV
	assert.Contains(t, out, "Goodbye!")

	docs, err := svc.ListDocuments(context.Background(), core.KindInvoice)
	require.NoError(t, err)
	require.Len(t, docs.Documents, 1)
	id := docs.Documents[0].Base().ID

	out = runScript(svc, "/void "+id, "n")
	assert.Contains(t, out, "Canceled.")

	out = runScript(svc, "/void "+id, "y", "/void "+id, "y")
	assert.Contains(t, out, "F001-00000001 VOIDED.")
	assert.Contains(t, out, "F001-00000001 was already voided.")
}

func TestRun_Reports(t *testing.T) {
	svc := newService(t)

	out := runScript(svc,
		"/dashboard",
		"/products",
		"/accounting",
		"/cashflow",
		"/sustainability 2024-05",
		"310",
		"2",
		"12.5",
		"/sustainability",
		"/insights",
		"/bogus",
		"hello",
	)
	assert.Contains(t, out, "DASHBOARD")
	assert.Contains(t, out, "ARR-5")
	assert.Contains(t, out, "ACCOUNTING SUMMARY")
	assert.Contains(t, out, "No sales recorded yet.")
	assert.Contains(t, out, "Recorded 2024-05.")
	assert.Contains(t, out, "12.5")
	assert.Contains(t, out, ai.MessageUnavailable)
	assert.Contains(t, out, "Unknown command: /bogus")
	assert.Contains(t, out, "Commands start with '/'")
}

func TestRun_ErrorsAreReported(t *testing.T) {
	svc := newService(t)

	out := runScript(svc, "/doc missing", "/docs quotes", "/new invoice 00000000")
	assert.Contains(t, out, "Error: ")
	assert.Contains(t, out, `unknown document type "quotes"`)
	assert.Contains(t, out, "Client not found: 00000000")
}
