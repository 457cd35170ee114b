package core

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind tags the variant of a Document.
type Kind string

const (
	KindInvoice       Kind = "invoice"
	KindReceipt       Kind = "receipt"
	KindCreditNote    Kind = "credit_note"
	KindDebitNote     Kind = "debit_note"
	KindDispatchGuide Kind = "dispatch_guide"
)

// Kinds lists every document kind in display order.
var Kinds = []Kind{KindInvoice, KindReceipt, KindCreditNote, KindDebitNote, KindDispatchGuide}

var kindLabels = map[Kind]string{
	KindInvoice:       "Factura Electrónica",
	KindReceipt:       "Boleta de Venta Electrónica",
	KindCreditNote:    "Nota de Crédito Electrónica",
	KindDebitNote:     "Nota de Débito Electrónica",
	KindDispatchGuide: "Guía de Remisión Electrónica",
}

// kindSeries is the number series prefix of each kind (e.g. F001-00000012).
var kindSeries = map[Kind]string{
	KindInvoice:       "F001",
	KindReceipt:       "B001",
	KindCreditNote:    "FC01",
	KindDebitNote:     "FD01",
	KindDispatchGuide: "T001",
}

func (k Kind) Valid() bool {
	_, ok := kindLabels[k]
	return ok
}

// Label is the legal document name shown to users.
func (k Kind) Label() string {
	if l, ok := kindLabels[k]; ok {
		return l
	}
	return string(k)
}

// Series is the numbering prefix of the kind.
func (k Kind) Series() string {
	return kindSeries[k]
}

// ParseKind accepts a kind tag, its plural route form ("invoices") or its label.
func ParseKind(s string) (Kind, error) {
	s = strings.TrimSpace(s)
	for _, k := range Kinds {
		if strings.EqualFold(s, string(k)) || strings.EqualFold(s, string(k)+"s") || strings.EqualFold(s, k.Label()) {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown document type %q", s)
}

type Status string

const (
	StatusDraft  Status = "draft"
	StatusIssued Status = "issued"
	StatusVoided Status = "voided"
)

type Currency string

const (
	CurrencyPEN Currency = "PEN"
	CurrencyUSD Currency = "USD"
)

// LineItem is one product line. Total is always Quantity × UnitPrice.
type LineItem struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Total       decimal.Decimal `json:"total"`
}

// Header is the shape shared by every document kind.
// Total is Subtotal + Tax, with Tax a fixed share of Subtotal (see TaxRate).
type Header struct {
	ID         string          `json:"id"`
	Type       Kind            `json:"type"`
	Number     string          `json:"number"`
	ClientID   string          `json:"client_id"`
	ClientName string          `json:"client_name"`
	IssueDate  string          `json:"issue_date"` // YYYY-MM-DD
	DueDate    string          `json:"due_date,omitempty"`
	Currency   Currency        `json:"currency"`
	Items      []LineItem      `json:"items"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	Tax        decimal.Decimal `json:"tax"`
	Total      decimal.Decimal `json:"total"`
	Status     Status          `json:"status"`
}

// Base gives access to the common header of any variant.
func (h *Header) Base() *Header { return h }

// NoteRef is carried by credit and debit notes.
type NoteRef struct {
	ModifiedDocumentID string `json:"modified_document_id"`
	Reason             string `json:"reason"`
}

// Transport is the dispatch guide's shipping metadata.
type Transport struct {
	StartPoint     string          `json:"start_point"`
	EndPoint       string          `json:"end_point"`
	TransportDate  string          `json:"transport_date"`
	CarrierRUC     string          `json:"carrier_ruc"`
	CarrierName    string          `json:"carrier_name"`
	VehiclePlate   string          `json:"vehicle_plate"`
	DriverLicense  string          `json:"driver_license"`
	TransferReason string          `json:"transfer_reason"`
	TotalWeight    decimal.Decimal `json:"total_weight"` // kg
}

// Document is the sum type over document kinds. The variants are
// *Invoice, *Receipt, *CreditNote, *DebitNote and *DispatchGuide.
type Document interface {
	Base() *Header
	// Accept dispatches to the Visitor method of the concrete variant.
	Accept(v Visitor) error
	// Clone returns a deep copy that can be mutated without touching the original.
	Clone() Document
	isDocument()
}

// Visitor has one method per document variant. Kind-specific logic is written
// as a Visitor so that adding a variant fails to compile until every such path
// handles it.
type Visitor interface {
	VisitInvoice(*Invoice) error
	VisitReceipt(*Receipt) error
	VisitCreditNote(*CreditNote) error
	VisitDebitNote(*DebitNote) error
	VisitDispatchGuide(*DispatchGuide) error
}

type Invoice struct {
	Header
}

type Receipt struct {
	Header
}

type CreditNote struct {
	Header
	NoteRef
}

type DebitNote struct {
	Header
	NoteRef
}

type DispatchGuide struct {
	Header
	Transport
}

func (d *Invoice) Accept(v Visitor) error       { return v.VisitInvoice(d) }
func (d *Receipt) Accept(v Visitor) error       { return v.VisitReceipt(d) }
func (d *CreditNote) Accept(v Visitor) error    { return v.VisitCreditNote(d) }
func (d *DebitNote) Accept(v Visitor) error     { return v.VisitDebitNote(d) }
func (d *DispatchGuide) Accept(v Visitor) error { return v.VisitDispatchGuide(d) }

func (d *Invoice) Clone() Document {
	c := *d
	c.Items = slices.Clone(d.Items)
	return &c
}

func (d *Receipt) Clone() Document {
	c := *d
	c.Items = slices.Clone(d.Items)
	return &c
}

func (d *CreditNote) Clone() Document {
	c := *d
	c.Items = slices.Clone(d.Items)
	return &c
}

func (d *DebitNote) Clone() Document {
	c := *d
	c.Items = slices.Clone(d.Items)
	return &c
}

func (d *DispatchGuide) Clone() Document {
	c := *d
	c.Items = slices.Clone(d.Items)
	return &c
}

func (*Invoice) isDocument()       {}
func (*Receipt) isDocument()       {}
func (*CreditNote) isDocument()    {}
func (*DebitNote) isDocument()     {}
func (*DispatchGuide) isDocument() {}

// newDocument returns an empty variant for kind.
func newDocument(kind Kind) (Document, error) {
	switch kind {
	case KindInvoice:
		return &Invoice{Header: Header{Type: kind}}, nil
	case KindReceipt:
		return &Receipt{Header: Header{Type: kind}}, nil
	case KindCreditNote:
		return &CreditNote{Header: Header{Type: kind}}, nil
	case KindDebitNote:
		return &DebitNote{Header: Header{Type: kind}}, nil
	case KindDispatchGuide:
		return &DispatchGuide{Header: Header{Type: kind}}, nil
	}
	return nil, fmt.Errorf("unknown document type %q", kind)
}

type DocType string

const (
	DocTypeRUC DocType = "RUC"
	DocTypeDNI DocType = "DNI"
)

type Client struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	DocType   DocType `json:"doc_type"`
	DocNumber string  `json:"doc_number"`
	Address   string  `json:"address"`
	Email     string  `json:"email"`
}

type Product struct {
	ID            string          `json:"id"`
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	UnitOfMeasure string          `json:"unit_of_measure"`
	Stock         int             `json:"stock"`
}

// SustainabilityEntry holds one month of resource usage. ID equals Month.
type SustainabilityEntry struct {
	ID                string          `json:"id"`
	Month             string          `json:"month"`              // YYYY-MM
	EnergyConsumption decimal.Decimal `json:"energy_consumption"` // kWh
	PaperUsage        decimal.Decimal `json:"paper_usage"`        // reams
	WasteGenerated    decimal.Decimal `json:"waste_generated"`    // kg
}

// NewID returns a time-ordered identifier for a new entity.
func NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}
