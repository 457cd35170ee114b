package app

import (
	"context"
	"errors"

	"github.com/aluiggi96/Doc-MYPE/internal/core"
)

// ErrConfirmationRequired is returned by destructive operations called without
// explicit user confirmation. State is left untouched.
var ErrConfirmationRequired = errors.New("confirmation required")

// ApplicationService is the single interface all UI adapters (CLI, Web) call.
// It decouples presentation from business logic. Implementations must contain
// no fmt.Println, no ANSI codes, and no display logic of any kind.
type ApplicationService interface {
	// ── Documents ────────────────────────────────────────────────────────────

	// ListDocuments returns the documents of one kind in storage order.
	ListDocuments(ctx context.Context, kind core.Kind) (*DocumentListResult, error)

	// GetDocument returns a single document by id.
	GetDocument(ctx context.Context, id string) (*DocumentResult, error)

	// CreateDocument validates the input, resolves client and product names from
	// the registries and stores the new document with the next series number.
	CreateDocument(ctx context.Context, req DocumentRequest) (*DocumentResult, error)

	// EditDocument replaces a draft document.
	EditDocument(ctx context.Context, id string, req DocumentRequest) (*DocumentResult, error)

	// VoidDocument marks a document as voided. Requires req.Confirmed.
	VoidDocument(ctx context.Context, req VoidDocumentRequest) (*VoidResult, error)

	// ── Clients ──────────────────────────────────────────────────────────────

	ListClients(ctx context.Context) (*ClientListResult, error)
	GetClient(ctx context.Context, id string) (*ClientResult, error)
	CreateClient(ctx context.Context, in core.ClientInput) (*ClientResult, error)
	UpdateClient(ctx context.Context, id string, in core.ClientInput) (*ClientResult, error)

	// DeleteClient removes an unreferenced client. Requires req.Confirmed.
	DeleteClient(ctx context.Context, req DeleteRequest) error

	// ── Products ─────────────────────────────────────────────────────────────

	ListProducts(ctx context.Context) (*ProductListResult, error)
	GetProduct(ctx context.Context, id string) (*ProductResult, error)
	CreateProduct(ctx context.Context, in core.ProductInput) (*ProductResult, error)
	UpdateProduct(ctx context.Context, id string, in core.ProductInput) (*ProductResult, error)

	// DeleteProduct removes an unreferenced product. Requires req.Confirmed.
	DeleteProduct(ctx context.Context, req DeleteRequest) error

	// ── Reports ──────────────────────────────────────────────────────────────

	// GetDashboard returns the headline figures and the most recent documents.
	GetDashboard(ctx context.Context) (*DashboardResult, error)

	// GetAccounting returns sales totals with the mocked income statement and balance sheet.
	GetAccounting(ctx context.Context) (*AccountingResult, error)

	// GetCashFlow returns monthly inflow and mock outflow.
	GetCashFlow(ctx context.Context) (*CashFlowResult, error)

	// GetLowStock returns products below the stock threshold.
	GetLowStock(ctx context.Context) (*ProductListResult, error)

	// ── Sustainability ───────────────────────────────────────────────────────

	GetSustainability(ctx context.Context) (*SustainabilityResult, error)
	RecordSustainability(ctx context.Context, in core.SustainabilityInput) (*SustainabilityEntryResult, error)

	// ── AI insights ──────────────────────────────────────────────────────────

	// RequestInsights asks the AI service for a narrative summary of current sales.
	// Failures are reported in the result, never as an error.
	RequestInsights(ctx context.Context) (*InsightsResult, error)

	// GetInsights returns the state of the latest insight request.
	GetInsights(ctx context.Context) (*InsightsResult, error)
}
