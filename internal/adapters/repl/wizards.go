package repl

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/aluiggi96/Doc-MYPE/internal/app"
	"github.com/aluiggi96/Doc-MYPE/internal/core"
)

// ask prints a prompt and returns the trimmed answer, or def when the answer is blank.
func (s *session) ask(prompt, def string) string {
	if def != "" {
		fmt.Fprintf(s.out, "%s [%s]: ", prompt, def)
	} else {
		fmt.Fprintf(s.out, "%s: ", prompt)
	}
	line, _ := s.in.ReadString('\n')
	line = strings.TrimSpace(line)
	if line == "" {
		return def
	}
	return line
}

// findClient matches ref against client ids and document numbers.
func (s *session) findClient(ctx context.Context, ref string) (core.Client, bool, error) {
	result, err := s.svc.ListClients(ctx)
	if err != nil {
		return core.Client{}, false, err
	}
	for _, c := range result.Clients {
		if c.ID == ref || c.DocNumber == ref {
			return c, true, nil
		}
	}
	return core.Client{}, false, nil
}

// handleNewDocument runs an interactive document creation session.
func (s *session) handleNewDocument(ctx context.Context, kind core.Kind, clientRef string) error {
	client, ok, err := s.findClient(ctx, clientRef)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintf(s.out, "Client not found: %s\n", clientRef)
		return nil
	}

	products, err := s.svc.ListProducts(ctx)
	if err != nil {
		return err
	}
	byCode := make(map[string]core.Product, len(products.Products))
	for _, p := range products.Products {
		byCode[p.Code] = p
	}

	fmt.Fprintf(s.out, "Creating %s for %s\n", kind.Label(), client.Name)
	fmt.Fprintln(s.out, "Enter items. Type 'done' when finished, 'cancel' to abort.")
	fmt.Fprintln(s.out, "Format per line: <product-code> <quantity> [unit-price]")
	fmt.Fprintln(s.out, "  Example: ARR-5 10")
	fmt.Fprintln(s.out, "  Example: ARR-5 4 21.50   (overrides the catalog price)")

	var items []core.ItemInput
	for n := 1; ; {
		fmt.Fprintf(s.out, "  Item %d: ", n)
		raw, readErr := s.in.ReadString('\n')
		raw = strings.TrimSpace(raw)
		if strings.EqualFold(raw, "cancel") || (raw == "" && readErr != nil) {
			fmt.Fprintln(s.out, "Document creation canceled.")
			return nil
		}
		if strings.EqualFold(raw, "done") {
			break
		}
		if raw == "" {
			continue
		}

		parts := strings.Fields(raw)
		if len(parts) < 2 {
			fmt.Fprintln(s.out, "  Invalid format. Use: <product-code> <quantity> [unit-price]")
			continue
		}
		product, ok := byCode[strings.ToUpper(parts[0])]
		if !ok {
			fmt.Fprintf(s.out, "  Unknown product code: %s\n", parts[0])
			continue
		}
		qty, err := decimal.NewFromString(parts[1])
		if err != nil || !qty.IsPositive() {
			fmt.Fprintln(s.out, "  Invalid quantity.")
			continue
		}
		var price decimal.Decimal
		if len(parts) >= 3 {
			price, err = decimal.NewFromString(parts[2])
			if err != nil || price.IsNegative() {
				fmt.Fprintln(s.out, "  Invalid price.")
				continue
			}
		}

		items = append(items, core.ItemInput{ProductID: product.ID, Quantity: qty, UnitPrice: price})
		n++
	}

	if len(items) == 0 {
		fmt.Fprintln(s.out, "No items entered. Document not created.")
		return nil
	}

	in := core.DocumentInput{
		Type:      kind,
		ClientID:  client.ID,
		IssueDate: s.ask("Issue date (YYYY-MM-DD)", time.Now().Format("2006-01-02")),
		Currency:  core.Currency(strings.ToUpper(s.ask("Currency (PEN/USD)", string(core.CurrencyPEN)))),
		Items:     items,
	}
	if kind == core.KindInvoice {
		in.DueDate = s.ask("Due date (optional)", "")
	}

	switch kind {
	case core.KindCreditNote, core.KindDebitNote:
		in.ModifiedDocumentID = s.ask("Modified document id", "")
		in.Reason = s.ask("Reason", "")
	case core.KindDispatchGuide:
		in.StartPoint = s.ask("Start point", "")
		in.EndPoint = s.ask("End point", "")
		in.TransportDate = s.ask("Transport date (YYYY-MM-DD)", in.IssueDate)
		in.CarrierRUC = s.ask("Carrier RUC", "")
		in.CarrierName = s.ask("Carrier name", "")
		in.VehiclePlate = s.ask("Vehicle plate", "")
		in.DriverLicense = s.ask("Driver license", "")
		in.TransferReason = s.ask("Transfer reason", "Venta")
		weight, err := decimal.NewFromString(s.ask("Total weight (kg)", "0"))
		if err != nil {
			fmt.Fprintln(s.out, "Invalid weight. Document not created.")
			return nil
		}
		in.TotalWeight = weight
	}

	in.Status = core.StatusDraft
	if ans := strings.ToLower(s.ask("Issue now? (y/N)", "")); ans == "y" || ans == "yes" {
		in.Status = core.StatusIssued
	}

	result, err := s.svc.CreateDocument(ctx, app.DocumentRequest{DocumentInput: in})
	if err != nil {
		return err
	}

	fmt.Fprintf(s.out, "\nDocument created: %s (%s)\n", result.Document.Base().Number, result.Document.Base().Status)
	printDocumentDetail(s.out, result.Document)
	return nil
}

// handleRecordMonth asks for one month of sustainability figures.
func (s *session) handleRecordMonth(ctx context.Context, month string) error {
	in := core.SustainabilityInput{Month: month}
	fields := []struct {
		prompt string
		dst    *decimal.Decimal
	}{
		{"Energy consumption (kWh)", &in.EnergyConsumption},
		{"Paper usage (reams)", &in.PaperUsage},
		{"Waste generated (kg)", &in.WasteGenerated},
	}
	for _, f := range fields {
		v, err := decimal.NewFromString(s.ask(f.prompt, "0"))
		if err != nil {
			fmt.Fprintf(s.out, "Invalid number for %s. Nothing recorded.\n", strings.ToLower(f.prompt))
			return nil
		}
		*f.dst = v
	}

	result, err := s.svc.RecordSustainability(ctx, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Recorded %s.\n", result.Entry.Month)
	return nil
}
