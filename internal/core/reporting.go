package core

import (
	"math/rand"
	"slices"

	"github.com/shopspring/decimal"
)

// ── Fixed ratios ──────────────────────────────────────────────────────────────
//
// The income statement and balance sheet are simplified mocks driven by fixed
// ratios of total sales. They are not derived from the ledger of any real business.

var (
	CostOfGoodsRatio       = decimal.RequireFromString("0.60")
	OperatingExpensesRatio = decimal.RequireFromString("0.20")

	BaseAssets       = decimal.NewFromInt(25000)
	AssetsRatio      = decimal.RequireFromString("0.50")
	BaseLiabilities  = decimal.NewFromInt(10000)
	LiabilitiesRatio = decimal.RequireFromString("0.10")

	outflowMinRatio  = decimal.RequireFromString("0.60")
	outflowSpanRatio = decimal.RequireFromString("0.20")
)

// LowStockThreshold: products with stock strictly below it are low on stock.
const LowStockThreshold = 10

// RecentDocumentsLimit is the number of documents shown on the dashboard.
const RecentDocumentsLimit = 5

// ── Report types ──────────────────────────────────────────────────────────────

// SalesSummary sums qualifying documents.
type SalesSummary struct {
	Count    int             `json:"count"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

type IncomeStatement struct {
	Sales             decimal.Decimal `json:"sales"`
	CostOfGoods       decimal.Decimal `json:"cost_of_goods"`
	GrossProfit       decimal.Decimal `json:"gross_profit"`
	OperatingExpenses decimal.Decimal `json:"operating_expenses"`
	NetIncome         decimal.Decimal `json:"net_income"`
}

// BalanceSheet always satisfies Assets == Liabilities + Equity.
type BalanceSheet struct {
	Assets      decimal.Decimal `json:"assets"`
	Liabilities decimal.Decimal `json:"liabilities"`
	Equity      decimal.Decimal `json:"equity"`
}

type MonthFlow struct {
	Month   string          `json:"month"` // YYYY-MM
	Inflow  decimal.Decimal `json:"inflow"`
	Outflow decimal.Decimal `json:"outflow"`
}

type CashFlowSummary struct {
	Months       []MonthFlow     `json:"months"`
	TotalInflow  decimal.Decimal `json:"total_inflow"`
	TotalOutflow decimal.Decimal `json:"total_outflow"`
	NetCashFlow  decimal.Decimal `json:"net_cash_flow"`
}

type DashboardSnapshot struct {
	Sales           SalesSummary `json:"sales"`
	ClientCount     int          `json:"client_count"`
	ProductCount    int          `json:"product_count"`
	LowStockCount   int          `json:"low_stock_count"`
	RecentDocuments []Document   `json:"recent_documents"`
}

// ── Qualifying sales ──────────────────────────────────────────────────────────

// saleFilter decides per variant whether a document counts as revenue.
type saleFilter struct {
	ok bool
}

func (f *saleFilter) VisitInvoice(d *Invoice) error {
	f.ok = d.Status != StatusVoided
	return nil
}

func (f *saleFilter) VisitReceipt(d *Receipt) error {
	f.ok = d.Status != StatusVoided
	return nil
}

func (f *saleFilter) VisitCreditNote(*CreditNote) error       { f.ok = false; return nil }
func (f *saleFilter) VisitDebitNote(*DebitNote) error         { f.ok = false; return nil }
func (f *saleFilter) VisitDispatchGuide(*DispatchGuide) error { f.ok = false; return nil }

// IsQualifyingSale reports whether d is a non-voided invoice or receipt.
func IsQualifyingSale(d Document) bool {
	var f saleFilter
	_ = d.Accept(&f)
	return f.ok
}

// QualifyingSales filters docs down to qualifying sales, keeping order.
func QualifyingSales(docs []Document) []Document {
	out := make([]Document, 0, len(docs))
	for _, d := range docs {
		if IsQualifyingSale(d) {
			out = append(out, d)
		}
	}
	return out
}

// ── Aggregations ──────────────────────────────────────────────────────────────

func SalesTotals(docs []Document) SalesSummary {
	var s SalesSummary
	for _, d := range docs {
		if !IsQualifyingSale(d) {
			continue
		}
		h := d.Base()
		s.Count++
		s.Subtotal = s.Subtotal.Add(h.Subtotal)
		s.Tax = s.Tax.Add(h.Tax)
		s.Total = s.Total.Add(h.Total)
	}
	return s
}

func IncomeStatementFor(sales decimal.Decimal) IncomeStatement {
	cogs := sales.Mul(CostOfGoodsRatio)
	opex := sales.Mul(OperatingExpensesRatio)
	gross := sales.Sub(cogs)
	return IncomeStatement{
		Sales:             sales,
		CostOfGoods:       cogs,
		GrossProfit:       gross,
		OperatingExpenses: opex,
		NetIncome:         gross.Sub(opex),
	}
}

func BalanceSheetFor(sales decimal.Decimal) BalanceSheet {
	assets := BaseAssets.Add(sales.Mul(AssetsRatio))
	liabilities := BaseLiabilities.Add(sales.Mul(LiabilitiesRatio))
	return BalanceSheet{
		Assets:      assets,
		Liabilities: liabilities,
		Equity:      assets.Sub(liabilities),
	}
}

// RandSource yields factors in [0, 1).
type RandSource interface {
	Float64() float64
}

type defaultRand struct{}

func (defaultRand) Float64() float64 { return rand.Float64() }

// DefaultRand draws from the process-wide generator.
var DefaultRand RandSource = defaultRand{}

// MonthlyCashFlow groups qualifying sales by issue month. Inflow is the sum of
// totals; outflow is a mock share of inflow between 60% and 80% drawn from rnd.
// Months are returned ascending.
func MonthlyCashFlow(docs []Document, rnd RandSource) []MonthFlow {
	if rnd == nil {
		rnd = DefaultRand
	}
	inflows := make(map[string]decimal.Decimal)
	for _, d := range docs {
		if !IsQualifyingSale(d) {
			continue
		}
		h := d.Base()
		if len(h.IssueDate) < 7 {
			continue
		}
		month := h.IssueDate[:7]
		inflows[month] = inflows[month].Add(h.Total)
	}

	months := make([]string, 0, len(inflows))
	for m := range inflows {
		months = append(months, m)
	}
	slices.Sort(months)

	flows := make([]MonthFlow, 0, len(months))
	for _, m := range months {
		in := inflows[m]
		factor := outflowMinRatio.Add(outflowSpanRatio.Mul(decimal.NewFromFloat(rnd.Float64())))
		flows = append(flows, MonthFlow{Month: m, Inflow: in, Outflow: in.Mul(factor).Round(2)})
	}
	return flows
}

func SummarizeCashFlow(months []MonthFlow) CashFlowSummary {
	s := CashFlowSummary{Months: months}
	for _, m := range months {
		s.TotalInflow = s.TotalInflow.Add(m.Inflow)
		s.TotalOutflow = s.TotalOutflow.Add(m.Outflow)
	}
	s.NetCashFlow = s.TotalInflow.Sub(s.TotalOutflow)
	return s
}

func LowStock(products []Product) []Product {
	var out []Product
	for _, p := range products {
		if p.Stock < LowStockThreshold {
			out = append(out, p)
		}
	}
	return out
}

// RecentDocuments returns up to limit documents, most recently stored first.
func RecentDocuments(docs []Document, limit int) []Document {
	n := min(limit, len(docs))
	out := make([]Document, 0, n)
	for i := len(docs) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, docs[i])
	}
	return out
}

func Dashboard(docs []Document, clients []Client, products []Product) DashboardSnapshot {
	return DashboardSnapshot{
		Sales:           SalesTotals(docs),
		ClientCount:     len(clients),
		ProductCount:    len(products),
		LowStockCount:   len(LowStock(products)),
		RecentDocuments: RecentDocuments(docs, RecentDocumentsLimit),
	}
}
