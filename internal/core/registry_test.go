package core_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aluiggi96/Doc-MYPE/internal/core"
)

func TestValidateClient(t *testing.T) {
	tests := []struct {
		name   string
		in     core.ClientInput
		fields []string
	}{
		{
			name: "valid RUC",
			in:   core.ClientInput{Name: "Comercial Rímac SAC", DocType: core.DocTypeRUC, DocNumber: "20512345678"},
		},
		{
			name: "valid DNI lower case type",
			in:   core.ClientInput{Name: "Rosa Quispe", DocType: "dni", DocNumber: "45678912", Email: "rosa@example.pe"},
		},
		{
			name:   "missing name and number",
			in:     core.ClientInput{DocType: core.DocTypeRUC},
			fields: []string{"name", "doc_number"},
		},
		{
			name:   "RUC with 8 digits",
			in:     core.ClientInput{Name: "X", DocType: core.DocTypeRUC, DocNumber: "45678912"},
			fields: []string{"doc_number"},
		},
		{
			name:   "letters in number",
			in:     core.ClientInput{Name: "X", DocType: core.DocTypeDNI, DocNumber: "4567891A"},
			fields: []string{"doc_number"},
		},
		{
			name:   "bad email and type",
			in:     core.ClientInput{Name: "X", DocType: "CE", DocNumber: "123", Email: "nope"},
			fields: []string{"doc_type", "email"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := tt.in
			err := core.ValidateClient(&in)
			if len(tt.fields) == 0 {
				require.NoError(t, err)
				return
			}
			var ve *core.ValidationError
			require.True(t, errors.As(err, &ve), "expected *core.ValidationError, got %v", err)
			for _, f := range tt.fields {
				assert.True(t, ve.Has(f), "expected failing field %q in %v", f, ve.Fields)
			}
		})
	}
}

func TestClientService_CRUD(t *testing.T) {
	ctx := context.Background()
	st, _ := newTestStore(t)
	docs := core.NewDocumentService(st)
	svc := core.NewClientService(st, docs)

	c, err := svc.Create(ctx, core.ClientInput{Name: " Ferretería Sur ", DocNumber: "20600011122"})
	require.NoError(t, err)
	assert.Equal(t, "Ferretería Sur", c.Name)
	assert.Equal(t, core.DocTypeRUC, c.DocType)

	_, err = svc.Create(ctx, core.ClientInput{Name: "Otra", DocType: core.DocTypeRUC, DocNumber: "20600011122"})
	assert.ErrorIs(t, err, core.ErrConflict)

	updated, err := svc.Update(ctx, c.ID, core.ClientInput{Name: "Ferretería Sur EIRL", DocType: core.DocTypeRUC, DocNumber: "20600011122", Address: "Jr. Junín 220"})
	require.NoError(t, err)
	assert.Equal(t, c.ID, updated.ID)

	got, err := svc.Get(c.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, got)

	_, err = svc.Update(ctx, "missing", core.ClientInput{Name: "X", DocNumber: "20600011199"})
	assert.ErrorIs(t, err, core.ErrNotFound)

	require.NoError(t, svc.Delete(ctx, c.ID))
	assert.Empty(t, svc.List())
	assert.ErrorIs(t, svc.Delete(ctx, c.ID), core.ErrNotFound)
}

func TestClientService_DeleteRefusedWhileReferenced(t *testing.T) {
	ctx := context.Background()
	st, _ := newTestStore(t)
	docs := core.NewDocumentService(st)
	svc := core.NewClientService(st, docs)

	c, err := svc.Create(ctx, core.ClientInput{Name: "Rosa Quispe", DocType: core.DocTypeDNI, DocNumber: "45678912"})
	require.NoError(t, err)

	in := issuedInvoiceInput()
	in.ClientID = c.ID
	_, err = docs.Create(ctx, in)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, c.ID), core.ErrConflict)
	assert.Len(t, svc.List(), 1)
}

func TestProductService_CRUD(t *testing.T) {
	ctx := context.Background()
	st, _ := newTestStore(t)
	docs := core.NewDocumentService(st)
	svc := core.NewProductService(st, docs)

	p, err := svc.Create(ctx, core.ProductInput{Code: "arr-50", Name: "Arroz 50kg", UnitPrice: dec("150"), Stock: 12})
	require.NoError(t, err)
	assert.Equal(t, "ARR-50", p.Code)
	assert.Equal(t, core.DefaultUnitOfMeasure, p.UnitOfMeasure)

	_, err = svc.Create(ctx, core.ProductInput{Code: "ARR-50", Name: "Duplicado", UnitPrice: dec("1")})
	assert.ErrorIs(t, err, core.ErrConflict)

	_, err = svc.Create(ctx, core.ProductInput{Code: "X", Name: "Negativo", UnitPrice: dec("-1"), Stock: -3})
	var ve *core.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.True(t, ve.Has("unit_price"))
	assert.True(t, ve.Has("stock"))

	updated, err := svc.Update(ctx, p.ID, core.ProductInput{Code: "ARR-50", Name: "Arroz 50kg", UnitPrice: dec("155.5"), UnitOfMeasure: "Saco", Stock: 4})
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Stock)
	assert.Equal(t, "Saco", updated.UnitOfMeasure)

	in := issuedInvoiceInput()
	in.Items[0].ProductID = p.ID
	_, err = docs.Create(ctx, in)
	require.NoError(t, err)
	assert.ErrorIs(t, svc.Delete(ctx, p.ID), core.ErrConflict)

	_, err = svc.Get("missing")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestSustainabilityService_UpsertByMonth(t *testing.T) {
	ctx := context.Background()
	st, _ := newTestStore(t)
	svc := core.NewSustainabilityService(st)

	_, err := svc.Upsert(ctx, core.SustainabilityInput{Month: "2024-02", EnergyConsumption: dec("300"), PaperUsage: dec("4"), WasteGenerated: dec("12")})
	require.NoError(t, err)
	_, err = svc.Upsert(ctx, core.SustainabilityInput{Month: "2024-01", EnergyConsumption: dec("280"), PaperUsage: dec("5"), WasteGenerated: dec("10")})
	require.NoError(t, err)
	e, err := svc.Upsert(ctx, core.SustainabilityInput{Month: "2024-02", EnergyConsumption: dec("310"), PaperUsage: dec("3"), WasteGenerated: dec("11")})
	require.NoError(t, err)
	assert.Equal(t, "2024-02", e.ID)

	list := svc.List()
	require.Len(t, list, 2)
	assert.Equal(t, "2024-01", list[0].Month)
	assert.Equal(t, "2024-02", list[1].Month)
	assertDec(t, "310", list[1].EnergyConsumption)

	totals := svc.Totals()
	assert.Equal(t, 2, totals.Months)
	assertDec(t, "590", totals.EnergyConsumption)
	assertDec(t, "8", totals.PaperUsage)
	assertDec(t, "21", totals.WasteGenerated)

	_, err = svc.Upsert(ctx, core.SustainabilityInput{Month: "2024-13"})
	var ve *core.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.True(t, ve.Has("month"))
}
