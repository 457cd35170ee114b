package core

import (
	"sync"
)

// ── Interface ─────────────────────────────────────────────────────────────────

// ReportingService provides read-only reports over the current store contents.
type ReportingService interface {
	// SalesTotals sums qualifying sales. The result is cached until the
	// documents collection changes.
	SalesTotals() SalesSummary

	// IncomeStatement is the mocked statement over total sales (subtotal basis).
	IncomeStatement() IncomeStatement

	// BalanceSheet is the mocked balance sheet over total sales (subtotal basis).
	BalanceSheet() BalanceSheet

	// CashFlow groups sales per month with a mock outflow.
	CashFlow() CashFlowSummary

	LowStock() []Product

	Dashboard() DashboardSnapshot
}

// ── Implementation ────────────────────────────────────────────────────────────

type reportingService struct {
	store *Store
	rnd   RandSource

	mu          sync.Mutex
	cachedAt    uint64
	cached      SalesSummary
	cacheFilled bool
}

// NewReportingService returns a ReportingService. A nil rnd uses DefaultRand.
func NewReportingService(st *Store, rnd RandSource) ReportingService {
	if rnd == nil {
		rnd = DefaultRand
	}
	return &reportingService{store: st, rnd: rnd}
}

func (s *reportingService) SalesTotals() SalesSummary {
	version := s.store.Documents.Version()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cacheFilled && s.cachedAt == version {
		return s.cached
	}
	s.cached = SalesTotals(s.store.Documents.Get())
	s.cachedAt = version
	s.cacheFilled = true
	return s.cached
}

func (s *reportingService) IncomeStatement() IncomeStatement {
	return IncomeStatementFor(s.SalesTotals().Subtotal)
}

func (s *reportingService) BalanceSheet() BalanceSheet {
	return BalanceSheetFor(s.SalesTotals().Subtotal)
}

func (s *reportingService) CashFlow() CashFlowSummary {
	return SummarizeCashFlow(MonthlyCashFlow(s.store.Documents.Get(), s.rnd))
}

func (s *reportingService) LowStock() []Product {
	return LowStock(s.store.Products.Get())
}

func (s *reportingService) Dashboard() DashboardSnapshot {
	snap := Dashboard(s.store.Documents.Get(), s.store.Clients.Get(), s.store.Products.Get())
	snap.Sales = s.SalesTotals()
	return snap
}
