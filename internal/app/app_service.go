package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/aluiggi96/Doc-MYPE/internal/ai"
	"github.com/aluiggi96/Doc-MYPE/internal/core"
	"github.com/aluiggi96/Doc-MYPE/internal/logger"
)

type appService struct {
	docService            core.DocumentService
	clientService         core.ClientService
	productService        core.ProductService
	sustainabilityService core.SustainabilityService
	reportingService      core.ReportingService
	advisor               *ai.Advisor
	log                   zerolog.Logger
}

// NewAppService constructs an appService that satisfies ApplicationService.
func NewAppService(
	docService core.DocumentService,
	clientService core.ClientService,
	productService core.ProductService,
	sustainabilityService core.SustainabilityService,
	reportingService core.ReportingService,
	advisor *ai.Advisor,
) ApplicationService {
	return &appService{
		docService:            docService,
		clientService:         clientService,
		productService:        productService,
		sustainabilityService: sustainabilityService,
		reportingService:      reportingService,
		advisor:               advisor,
		log:                   logger.WithComponent("app"),
	}
}

// NewFromStore wires every service over st. A nil generator disables AI insights.
func NewFromStore(st *core.Store, gen ai.Generator, advisorCfg ai.AdvisorConfig, rnd core.RandSource) ApplicationService {
	docs := core.NewDocumentService(st)
	return NewAppService(
		docs,
		core.NewClientService(st, docs),
		core.NewProductService(st, docs),
		core.NewSustainabilityService(st),
		core.NewReportingService(st, rnd),
		ai.NewAdvisor(gen, advisorCfg),
	)
}

// ── Documents ─────────────────────────────────────────────────────────────────

func (s *appService) ListDocuments(ctx context.Context, kind core.Kind) (*DocumentListResult, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("unknown document type %q: %w", kind, core.ErrNotFound)
	}
	return &DocumentListResult{Kind: kind, Label: kind.Label(), Documents: s.docService.List(kind)}, nil
}

func (s *appService) GetDocument(ctx context.Context, id string) (*DocumentResult, error) {
	doc, err := s.docService.Get(id)
	if err != nil {
		return nil, err
	}
	return &DocumentResult{Document: doc}, nil
}

func (s *appService) CreateDocument(ctx context.Context, req DocumentRequest) (*DocumentResult, error) {
	in, err := s.resolveReferences(req.DocumentInput)
	if err != nil {
		return nil, err
	}
	doc, err := s.docService.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	return &DocumentResult{Document: doc}, nil
}

func (s *appService) EditDocument(ctx context.Context, id string, req DocumentRequest) (*DocumentResult, error) {
	in, err := s.resolveReferences(req.DocumentInput)
	if err != nil {
		return nil, err
	}
	doc, err := s.docService.Edit(ctx, id, in)
	if err != nil {
		return nil, err
	}
	return &DocumentResult{Document: doc}, nil
}

func (s *appService) VoidDocument(ctx context.Context, req VoidDocumentRequest) (*VoidResult, error) {
	if !req.Confirmed {
		return nil, ErrConfirmationRequired
	}
	doc, changed, err := s.docService.Void(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	return &VoidResult{Document: doc, Changed: changed}, nil
}

// resolveReferences copies client and product names from the registries into in.
// Unknown ids are reported as one validation error listing every bad field.
func (s *appService) resolveReferences(in core.DocumentInput) (core.DocumentInput, error) {
	ve := &core.ValidationError{Entity: "document"}

	if in.ClientID != "" {
		c, err := s.clientService.Get(in.ClientID)
		switch {
		case errors.Is(err, core.ErrNotFound):
			ve.Add("client_id", "exists", "does not match any client")
		case err != nil:
			return in, err
		default:
			in.ClientName = c.Name
		}
	}

	items := make([]core.ItemInput, len(in.Items))
	copy(items, in.Items)
	for i, it := range items {
		if it.ProductID == "" {
			continue
		}
		p, err := s.productService.Get(it.ProductID)
		switch {
		case errors.Is(err, core.ErrNotFound):
			ve.Add(fmt.Sprintf("items[%d].product_id", i), "exists", "does not match any product")
			continue
		case err != nil:
			return in, err
		}
		items[i].ProductName = p.Name
		if it.UnitPrice.IsZero() {
			items[i].UnitPrice = p.UnitPrice
		}
	}
	in.Items = items

	if err := ve.OrNil(); err != nil {
		return in, err
	}
	return in, nil
}

// ── Clients ───────────────────────────────────────────────────────────────────

func (s *appService) ListClients(ctx context.Context) (*ClientListResult, error) {
	return &ClientListResult{Clients: s.clientService.List()}, nil
}

func (s *appService) GetClient(ctx context.Context, id string) (*ClientResult, error) {
	c, err := s.clientService.Get(id)
	if err != nil {
		return nil, err
	}
	return &ClientResult{Client: c}, nil
}

func (s *appService) CreateClient(ctx context.Context, in core.ClientInput) (*ClientResult, error) {
	c, err := s.clientService.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	return &ClientResult{Client: c}, nil
}

func (s *appService) UpdateClient(ctx context.Context, id string, in core.ClientInput) (*ClientResult, error) {
	c, err := s.clientService.Update(ctx, id, in)
	if err != nil {
		return nil, err
	}
	return &ClientResult{Client: c}, nil
}

func (s *appService) DeleteClient(ctx context.Context, req DeleteRequest) error {
	if !req.Confirmed {
		return ErrConfirmationRequired
	}
	return s.clientService.Delete(ctx, req.ID)
}

// ── Products ──────────────────────────────────────────────────────────────────

func (s *appService) ListProducts(ctx context.Context) (*ProductListResult, error) {
	products := s.productService.List()
	return &ProductListResult{Products: products, LowStockCount: len(core.LowStock(products))}, nil
}

func (s *appService) GetProduct(ctx context.Context, id string) (*ProductResult, error) {
	p, err := s.productService.Get(id)
	if err != nil {
		return nil, err
	}
	return productResult(p), nil
}

func (s *appService) CreateProduct(ctx context.Context, in core.ProductInput) (*ProductResult, error) {
	p, err := s.productService.Create(ctx, in)
	if err != nil {
		return nil, err
	}
	return productResult(p), nil
}

func (s *appService) UpdateProduct(ctx context.Context, id string, in core.ProductInput) (*ProductResult, error) {
	p, err := s.productService.Update(ctx, id, in)
	if err != nil {
		return nil, err
	}
	return productResult(p), nil
}

func (s *appService) DeleteProduct(ctx context.Context, req DeleteRequest) error {
	if !req.Confirmed {
		return ErrConfirmationRequired
	}
	return s.productService.Delete(ctx, req.ID)
}

func productResult(p core.Product) *ProductResult {
	return &ProductResult{Product: p, LowStock: p.Stock < core.LowStockThreshold}
}

// ── Reports ───────────────────────────────────────────────────────────────────

func (s *appService) GetDashboard(ctx context.Context) (*DashboardResult, error) {
	return &DashboardResult{DashboardSnapshot: s.reportingService.Dashboard()}, nil
}

func (s *appService) GetAccounting(ctx context.Context) (*AccountingResult, error) {
	return &AccountingResult{
		Sales:           s.reportingService.SalesTotals(),
		IncomeStatement: s.reportingService.IncomeStatement(),
		BalanceSheet:    s.reportingService.BalanceSheet(),
	}, nil
}

func (s *appService) GetCashFlow(ctx context.Context) (*CashFlowResult, error) {
	return &CashFlowResult{CashFlowSummary: s.reportingService.CashFlow()}, nil
}

func (s *appService) GetLowStock(ctx context.Context) (*ProductListResult, error) {
	low := s.reportingService.LowStock()
	return &ProductListResult{Products: low, LowStockCount: len(low)}, nil
}

// ── Sustainability ────────────────────────────────────────────────────────────

func (s *appService) GetSustainability(ctx context.Context) (*SustainabilityResult, error) {
	return &SustainabilityResult{
		Entries: s.sustainabilityService.List(),
		Totals:  s.sustainabilityService.Totals(),
	}, nil
}

func (s *appService) RecordSustainability(ctx context.Context, in core.SustainabilityInput) (*SustainabilityEntryResult, error) {
	e, err := s.sustainabilityService.Upsert(ctx, in)
	if err != nil {
		return nil, err
	}
	return &SustainabilityEntryResult{Entry: e}, nil
}

// ── AI insights ───────────────────────────────────────────────────────────────

func (s *appService) RequestInsights(ctx context.Context) (*InsightsResult, error) {
	res := s.advisor.RequestInsights(ctx, s.docService.All())
	if res.Err != nil {
		s.log.Warn().Err(res.Err).Str("reason", string(res.Reason)).Msg("insight request failed")
	}
	return &InsightsResult{Result: res}, nil
}

func (s *appService) GetInsights(ctx context.Context) (*InsightsResult, error) {
	return &InsightsResult{Result: s.advisor.State()}, nil
}
