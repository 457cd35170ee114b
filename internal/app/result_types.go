package app

import (
	"github.com/aluiggi96/Doc-MYPE/internal/ai"
	"github.com/aluiggi96/Doc-MYPE/internal/core"
)

// DocumentListResult is returned by ListDocuments.
type DocumentListResult struct {
	Kind      core.Kind       `json:"kind"`
	Label     string          `json:"label"`
	Documents []core.Document `json:"documents"`
}

// DocumentResult is returned by document lifecycle operations.
type DocumentResult struct {
	Document core.Document `json:"document"`
}

// VoidResult is returned by VoidDocument. Changed is false when the document
// was already voided and nothing was written.
type VoidResult struct {
	Document core.Document `json:"document"`
	Changed  bool          `json:"changed"`
}

// ClientListResult is returned by ListClients.
type ClientListResult struct {
	Clients []core.Client `json:"clients"`
}

// ClientResult is returned by client operations.
type ClientResult struct {
	Client core.Client `json:"client"`
}

// ProductListResult is returned by ListProducts and GetLowStock.
type ProductListResult struct {
	Products      []core.Product `json:"products"`
	LowStockCount int            `json:"low_stock_count"`
}

// ProductResult is returned by product operations.
type ProductResult struct {
	Product  core.Product `json:"product"`
	LowStock bool         `json:"low_stock"`
}

// DashboardResult is returned by GetDashboard.
type DashboardResult struct {
	core.DashboardSnapshot
}

// AccountingResult is returned by GetAccounting.
type AccountingResult struct {
	Sales           core.SalesSummary    `json:"sales"`
	IncomeStatement core.IncomeStatement `json:"income_statement"`
	BalanceSheet    core.BalanceSheet    `json:"balance_sheet"`
}

// CashFlowResult is returned by GetCashFlow.
type CashFlowResult struct {
	core.CashFlowSummary
}

// SustainabilityResult is returned by GetSustainability.
type SustainabilityResult struct {
	Entries []core.SustainabilityEntry `json:"entries"`
	Totals  core.SustainabilityTotals  `json:"totals"`
}

// SustainabilityEntryResult is returned by RecordSustainability.
type SustainabilityEntryResult struct {
	Entry core.SustainabilityEntry `json:"entry"`
}

// InsightsResult is returned by RequestInsights and GetInsights.
type InsightsResult struct {
	ai.Result
}
