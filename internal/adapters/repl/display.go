package repl

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/aluiggi96/Doc-MYPE/internal/ai"
	"github.com/aluiggi96/Doc-MYPE/internal/app"
	"github.com/aluiggi96/Doc-MYPE/internal/core"
)

func rule(w io.Writer, ch string, width int) {
	fmt.Fprintln(w, strings.Repeat(ch, width))
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func printDashboard(w io.Writer, result *app.DashboardResult) {
	fmt.Fprintln(w)
	rule(w, "=", 72)
	fmt.Fprintln(w, "  DASHBOARD")
	rule(w, "=", 72)
	fmt.Fprintf(w, "  %-28s %15s\n", "Sales (total)", money(result.Sales.Total))
	fmt.Fprintf(w, "  %-28s %15d\n", "Qualifying documents", result.Sales.Count)
	fmt.Fprintf(w, "  %-28s %15d\n", "Clients", result.ClientCount)
	fmt.Fprintf(w, "  %-28s %15d\n", "Products", result.ProductCount)
	fmt.Fprintf(w, "  %-28s %15d\n", "Low stock products", result.LowStockCount)
	rule(w, "-", 72)
	fmt.Fprintln(w, "  RECENT DOCUMENTS")
	printDocumentRows(w, result.RecentDocuments)
	rule(w, "=", 72)
}

func printDocuments(w io.Writer, result *app.DocumentListResult) {
	fmt.Fprintln(w)
	rule(w, "=", 72)
	fmt.Fprintf(w, "  %s\n", strings.ToUpper(result.Label))
	rule(w, "=", 72)
	printDocumentRows(w, result.Documents)
	rule(w, "=", 72)
}

func printDocumentRows(w io.Writer, docs []core.Document) {
	if len(docs) == 0 {
		fmt.Fprintln(w, "  No documents found.")
		return
	}
	fmt.Fprintf(w, "  %-15s %-11s %-22s %-8s %12s\n", "NUMBER", "DATE", "CLIENT", "STATUS", "TOTAL")
	rule(w, "-", 72)
	for _, d := range docs {
		h := d.Base()
		fmt.Fprintf(w, "  %-15s %-11s %-22s %-8s %12s\n",
			h.Number, h.IssueDate, truncate(h.ClientName, 22), h.Status, money(h.Total))
	}
}

func printDocumentDetail(w io.Writer, doc core.Document) {
	h := doc.Base()
	fmt.Fprintln(w)
	rule(w, "-", 64)
	fmt.Fprintf(w, "  %s %s\n", h.Type.Label(), h.Number)
	fmt.Fprintf(w, "  ID:        %s\n", h.ID)
	fmt.Fprintf(w, "  Client:    %s\n", h.ClientName)
	fmt.Fprintf(w, "  Issued:    %s\n", h.IssueDate)
	if h.DueDate != "" {
		fmt.Fprintf(w, "  Due:       %s\n", h.DueDate)
	}
	fmt.Fprintf(w, "  Status:    %s\n", h.Status)
	fmt.Fprintf(w, "  Currency:  %s\n", h.Currency)

	switch d := doc.(type) {
	case *core.CreditNote:
		fmt.Fprintf(w, "  Modifies:  %s (%s)\n", d.ModifiedDocumentID, d.Reason)
	case *core.DebitNote:
		fmt.Fprintf(w, "  Modifies:  %s (%s)\n", d.ModifiedDocumentID, d.Reason)
	case *core.DispatchGuide:
		fmt.Fprintf(w, "  Route:     %s -> %s on %s\n", d.StartPoint, d.EndPoint, d.TransportDate)
		fmt.Fprintf(w, "  Carrier:   %s (RUC %s), plate %s\n", d.CarrierName, d.CarrierRUC, d.VehiclePlate)
		fmt.Fprintf(w, "  Weight:    %s kg\n", d.TotalWeight.String())
	}

	rule(w, "-", 64)
	fmt.Fprintf(w, "  %-28s %8s %12s %12s\n", "PRODUCT", "QTY", "UNIT PRICE", "TOTAL")
	rule(w, "-", 64)
	for _, it := range h.Items {
		fmt.Fprintf(w, "  %-28s %8s %12s %12s\n",
			truncate(it.ProductName, 28), it.Quantity.String(), money(it.UnitPrice), money(it.Total))
	}
	rule(w, "-", 64)
	fmt.Fprintf(w, "  %-50s %12s\n", "SUBTOTAL", money(h.Subtotal))
	fmt.Fprintf(w, "  %-50s %12s\n", "IGV", money(h.Tax))
	fmt.Fprintf(w, "  %-50s %12s\n", "TOTAL", money(h.Total))
	rule(w, "-", 64)
}

func printClients(w io.Writer, result *app.ClientListResult) {
	fmt.Fprintln(w)
	rule(w, "=", 72)
	fmt.Fprintln(w, "  CLIENTS")
	rule(w, "=", 72)
	if len(result.Clients) == 0 {
		fmt.Fprintln(w, "  No clients found.")
		rule(w, "=", 72)
		return
	}
	fmt.Fprintf(w, "  %-4s %-12s %-28s %s\n", "TYPE", "NUMBER", "NAME", "EMAIL")
	rule(w, "-", 72)
	for _, c := range result.Clients {
		fmt.Fprintf(w, "  %-4s %-12s %-28s %s\n", c.DocType, c.DocNumber, truncate(c.Name, 28), c.Email)
	}
	rule(w, "=", 72)
}

func printProducts(w io.Writer, title string, result *app.ProductListResult) {
	fmt.Fprintln(w)
	rule(w, "=", 72)
	fmt.Fprintf(w, "  %s\n", title)
	rule(w, "=", 72)
	if len(result.Products) == 0 {
		fmt.Fprintln(w, "  No products found.")
		rule(w, "=", 72)
		return
	}
	fmt.Fprintf(w, "  %-10s %-28s %-8s %12s %6s\n", "CODE", "NAME", "UNIT", "UNIT PRICE", "STOCK")
	rule(w, "-", 72)
	for _, p := range result.Products {
		marker := ""
		if p.Stock < core.LowStockThreshold {
			marker = " !"
		}
		fmt.Fprintf(w, "  %-10s %-28s %-8s %12s %6d%s\n",
			p.Code, truncate(p.Name, 28), truncate(p.UnitOfMeasure, 8), money(p.UnitPrice), p.Stock, marker)
	}
	rule(w, "-", 72)
	fmt.Fprintf(w, "  Low stock (< %d units): %d\n", core.LowStockThreshold, result.LowStockCount)
	rule(w, "=", 72)
}

func printAccounting(w io.Writer, result *app.AccountingResult) {
	fmt.Fprintln(w)
	rule(w, "=", 56)
	fmt.Fprintln(w, "  ACCOUNTING SUMMARY (estimated)")
	rule(w, "=", 56)
	fmt.Fprintf(w, "  %-36s %15s\n", "Sales (before tax)", money(result.Sales.Subtotal))
	fmt.Fprintf(w, "  %-36s %15s\n", "IGV collected", money(result.Sales.Tax))
	rule(w, "-", 56)
	is := result.IncomeStatement
	fmt.Fprintf(w, "  %-36s %15s\n", "Cost of goods sold", money(is.CostOfGoods))
	fmt.Fprintf(w, "  %-36s %15s\n", "Gross profit", money(is.GrossProfit))
	fmt.Fprintf(w, "  %-36s %15s\n", "Operating expenses", money(is.OperatingExpenses))
	fmt.Fprintf(w, "  %-36s %15s\n", "Net income", money(is.NetIncome))
	rule(w, "-", 56)
	bs := result.BalanceSheet
	fmt.Fprintf(w, "  %-36s %15s\n", "Assets", money(bs.Assets))
	fmt.Fprintf(w, "  %-36s %15s\n", "Liabilities", money(bs.Liabilities))
	fmt.Fprintf(w, "  %-36s %15s\n", "Equity", money(bs.Equity))
	rule(w, "=", 56)
}

func printCashFlow(w io.Writer, result *app.CashFlowResult) {
	fmt.Fprintln(w)
	rule(w, "=", 56)
	fmt.Fprintln(w, "  CASH FLOW")
	rule(w, "=", 56)
	if len(result.Months) == 0 {
		fmt.Fprintln(w, "  No sales recorded yet.")
		rule(w, "=", 56)
		return
	}
	fmt.Fprintf(w, "  %-10s %20s %20s\n", "MONTH", "INFLOW", "OUTFLOW")
	rule(w, "-", 56)
	for _, m := range result.Months {
		fmt.Fprintf(w, "  %-10s %20s %20s\n", m.Month, money(m.Inflow), money(m.Outflow))
	}
	rule(w, "-", 56)
	fmt.Fprintf(w, "  %-10s %20s %20s\n", "TOTAL", money(result.TotalInflow), money(result.TotalOutflow))
	fmt.Fprintf(w, "  %-31s %20s\n", "NET", money(result.NetCashFlow))
	rule(w, "=", 56)
}

func printSustainability(w io.Writer, result *app.SustainabilityResult) {
	fmt.Fprintln(w)
	rule(w, "=", 64)
	fmt.Fprintln(w, "  SUSTAINABILITY")
	rule(w, "=", 64)
	if len(result.Entries) == 0 {
		fmt.Fprintln(w, "  No months recorded.")
		rule(w, "=", 64)
		return
	}
	fmt.Fprintf(w, "  %-10s %16s %16s %16s\n", "MONTH", "ENERGY (kWh)", "PAPER (reams)", "WASTE (kg)")
	rule(w, "-", 64)
	for _, e := range result.Entries {
		fmt.Fprintf(w, "  %-10s %16s %16s %16s\n",
			e.Month, e.EnergyConsumption.String(), e.PaperUsage.String(), e.WasteGenerated.String())
	}
	rule(w, "-", 64)
	t := result.Totals
	fmt.Fprintf(w, "  %-10s %16s %16s %16s\n",
		"TOTAL", t.EnergyConsumption.String(), t.PaperUsage.String(), t.WasteGenerated.String())
	rule(w, "=", 64)
}

func printInsights(w io.Writer, result *app.InsightsResult) {
	fmt.Fprintln(w)
	switch result.Status {
	case ai.StatusSucceeded:
		fmt.Fprintln(w, result.Text)
	case ai.StatusFailed:
		fmt.Fprintf(w, "[AI] %s\n", result.Text)
	case ai.StatusRequesting:
		fmt.Fprintln(w, "[AI] A request is still running.")
	default:
		fmt.Fprintln(w, "[AI] No insights requested yet. Use /insights.")
	}
}
