package bootstrap

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/aluiggi96/Doc-MYPE/internal/app"
	"github.com/aluiggi96/Doc-MYPE/internal/core"
	"github.com/aluiggi96/Doc-MYPE/internal/logger"
)

// SeedReport counts what Seed created.
type SeedReport struct {
	Clients        int
	Products       int
	Documents      int
	Sustainability int
}

var demoClients = []core.ClientInput{
	{Name: "Comercial Los Andes S.A.C.", DocType: core.DocTypeRUC, DocNumber: "20512345678", Address: "Av. Arequipa 1450, Lima", Email: "compras@losandes.pe"},
	{Name: "Distribuidora El Sol E.I.R.L.", DocType: core.DocTypeRUC, DocNumber: "20600123456", Address: "Jr. Puno 230, Cusco"},
	{Name: "María Quispe Huamán", DocType: core.DocTypeDNI, DocNumber: "45678912", Email: "maria.quispe@gmail.com"},
}

var demoProducts = []core.ProductInput{
	{Code: "ARR-5", Name: "Arroz extra 5kg", UnitPrice: decimal.RequireFromString("22.50"), UnitOfMeasure: "Bolsa", Stock: 120},
	{Code: "ACE-1", Name: "Aceite vegetal 1L", UnitPrice: decimal.RequireFromString("9.80"), UnitOfMeasure: "Botella", Stock: 8},
	{Code: "AZU-1", Name: "Azúcar rubia 1kg", UnitPrice: decimal.RequireFromString("4.20"), Stock: 60},
	{Code: "SRV-INST", Name: "Servicio de instalación", UnitPrice: decimal.RequireFromString("150.00"), UnitOfMeasure: "Servicio", Stock: 999},
}

var demoSustainability = []core.SustainabilityInput{
	{Month: "2024-04", EnergyConsumption: decimal.RequireFromString("340"), PaperUsage: decimal.RequireFromString("3"), WasteGenerated: decimal.RequireFromString("18.5")},
	{Month: "2024-05", EnergyConsumption: decimal.RequireFromString("322.4"), PaperUsage: decimal.RequireFromString("2.5"), WasteGenerated: decimal.RequireFromString("16")},
	{Month: "2024-06", EnergyConsumption: decimal.RequireFromString("298"), PaperUsage: decimal.RequireFromString("2"), WasteGenerated: decimal.RequireFromString("14.2")},
}

// Seed fills an empty store with demo clients, products, documents and
// sustainability months. It refuses to touch a store that already has clients
// or products.
func Seed(ctx context.Context, svc app.ApplicationService) (SeedReport, error) {
	log := logger.WithComponent("seed")
	var report SeedReport

	clients, err := svc.ListClients(ctx)
	if err != nil {
		return report, err
	}
	products, err := svc.ListProducts(ctx)
	if err != nil {
		return report, err
	}
	if len(clients.Clients) > 0 || len(products.Products) > 0 {
		return report, fmt.Errorf("store is not empty: %d clients, %d products", len(clients.Clients), len(products.Products))
	}

	clientIDs := make([]string, 0, len(demoClients))
	for _, in := range demoClients {
		res, err := svc.CreateClient(ctx, in)
		if err != nil {
			return report, fmt.Errorf("failed to seed client %s: %w", in.Name, err)
		}
		clientIDs = append(clientIDs, res.Client.ID)
		report.Clients++
	}

	productIDs := make(map[string]string, len(demoProducts))
	for _, in := range demoProducts {
		res, err := svc.CreateProduct(ctx, in)
		if err != nil {
			return report, fmt.Errorf("failed to seed product %s: %w", in.Code, err)
		}
		productIDs[in.Code] = res.Product.ID
		report.Products++
	}

	item := func(code, qty string) core.ItemInput {
		return core.ItemInput{ProductID: productIDs[code], Quantity: decimal.RequireFromString(qty)}
	}

	create := func(in core.DocumentInput) (core.Document, error) {
		res, err := svc.CreateDocument(ctx, app.DocumentRequest{DocumentInput: in})
		if err != nil {
			return nil, fmt.Errorf("failed to seed %s: %w", in.Type, err)
		}
		report.Documents++
		return res.Document, nil
	}

	invoice, err := create(core.DocumentInput{
		Type: core.KindInvoice, ClientID: clientIDs[0], IssueDate: "2024-04-12", DueDate: "2024-05-12",
		Status: core.StatusIssued, Items: []core.ItemInput{item("ARR-5", "20"), item("ACE-1", "12")},
	})
	if err != nil {
		return report, err
	}
	if _, err := create(core.DocumentInput{
		Type: core.KindInvoice, ClientID: clientIDs[1], IssueDate: "2024-05-03",
		Status: core.StatusIssued, Items: []core.ItemInput{item("SRV-INST", "2"), item("AZU-1", "30")},
	}); err != nil {
		return report, err
	}
	if _, err := create(core.DocumentInput{
		Type: core.KindReceipt, ClientID: clientIDs[2], IssueDate: "2024-05-21",
		Status: core.StatusIssued, Items: []core.ItemInput{item("ARR-5", "2"), item("AZU-1", "3")},
	}); err != nil {
		return report, err
	}
	if _, err := create(core.DocumentInput{
		Type: core.KindCreditNote, ClientID: clientIDs[0], IssueDate: "2024-06-02",
		Status: core.StatusIssued, Items: []core.ItemInput{item("ACE-1", "2")},
		ModifiedDocumentID: invoice.Base().ID, Reason: "Devolución de mercadería dañada",
	}); err != nil {
		return report, err
	}
	if _, err := create(core.DocumentInput{
		Type: core.KindDispatchGuide, ClientID: clientIDs[0], IssueDate: "2024-06-10",
		Status: core.StatusIssued, Items: []core.ItemInput{item("ARR-5", "40")},
		Transport: core.Transport{
			StartPoint: "Av. Argentina 3093, Callao", EndPoint: "Av. Arequipa 1450, Lima",
			TransportDate: "2024-06-11", CarrierRUC: "20100070970", CarrierName: "Transportes Rápidos S.A.",
			VehiclePlate: "ABC-123", DriverLicense: "Q45678912", TransferReason: "Venta",
			TotalWeight: decimal.RequireFromString("200"),
		},
	}); err != nil {
		return report, err
	}
	if _, err := create(core.DocumentInput{
		Type: core.KindInvoice, ClientID: clientIDs[1], IssueDate: "2024-06-18",
		Items: []core.ItemInput{item("ARR-5", "10")},
	}); err != nil {
		return report, err
	}

	for _, in := range demoSustainability {
		if _, err := svc.RecordSustainability(ctx, in); err != nil {
			return report, fmt.Errorf("failed to seed sustainability %s: %w", in.Month, err)
		}
		report.Sustainability++
	}

	log.Info().
		Int("clients", report.Clients).
		Int("products", report.Products).
		Int("documents", report.Documents).
		Int("sustainability", report.Sustainability).
		Msg("seed data created")
	return report, nil
}
