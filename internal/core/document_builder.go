package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

// TaxRate is the IGV share of the subtotal charged on every document.
var TaxRate = decimal.RequireFromString("0.18")

// ItemInput is a line as entered by the user. The line total is always computed.
type ItemInput struct {
	ProductID   string          `json:"product_id" validate:"required" jsonschema:"required"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity" validate:"gt=0" jsonschema:"required"`
	UnitPrice   decimal.Decimal `json:"unit_price" validate:"gte=0"`
}

// DocumentInput is the partial document submitted for creation or edit.
// Kind-specific fields are ignored by the kinds that do not carry them.
type DocumentInput struct {
	Type       Kind        `json:"type" validate:"required,oneof=invoice receipt credit_note debit_note dispatch_guide" jsonschema:"required,enum=invoice,enum=receipt,enum=credit_note,enum=debit_note,enum=dispatch_guide"`
	Number     string      `json:"number,omitempty"`
	ClientID   string      `json:"client_id" validate:"required" jsonschema:"required"`
	ClientName string      `json:"client_name,omitempty"`
	IssueDate  string      `json:"issue_date" validate:"required,isodate" jsonschema:"required"`
	DueDate    string      `json:"due_date,omitempty" validate:"omitempty,isodate"`
	Currency   Currency    `json:"currency,omitempty" validate:"oneof=PEN USD" jsonschema:"enum=PEN,enum=USD"`
	Status     Status      `json:"status,omitempty" validate:"oneof=draft issued" jsonschema:"enum=draft,enum=issued"`
	Items      []ItemInput `json:"items" validate:"dive"`

	// Credit and debit notes.
	ModifiedDocumentID string `json:"modified_document_id,omitempty"`
	Reason             string `json:"reason,omitempty"`

	// Dispatch guides.
	Transport
}

// normalize trims text fields and fills defaults (draft status, PEN).
func (in *DocumentInput) normalize() {
	in.Number = strings.TrimSpace(in.Number)
	in.ClientID = strings.TrimSpace(in.ClientID)
	in.ClientName = strings.TrimSpace(in.ClientName)
	in.IssueDate = strings.TrimSpace(in.IssueDate)
	in.DueDate = strings.TrimSpace(in.DueDate)
	in.ModifiedDocumentID = strings.TrimSpace(in.ModifiedDocumentID)
	in.Reason = strings.TrimSpace(in.Reason)
	in.Currency = Currency(strings.ToUpper(strings.TrimSpace(string(in.Currency))))
	if in.Currency == "" {
		in.Currency = CurrencyPEN
	}
	if in.Status == "" {
		in.Status = StatusDraft
	}
}

// BuildDocument turns input into a validated document with the given id.
// It is pure: references to clients, products and other documents are checked
// by the callers that own those collections.
//
// Line totals, subtotal, tax and total are computed here and never taken from
// input, so Total == Subtotal + Tax holds for every built document. On failure
// the returned error is a *ValidationError listing every failing field.
func BuildDocument(in DocumentInput, id string) (Document, error) {
	in.normalize()
	ve := validateStruct("document", in)

	if in.Status == StatusIssued && len(in.Items) == 0 && !ve.Has("items") {
		ve.Add("items", "min", "an issued document needs at least one item")
	}
	if in.DueDate != "" && in.IssueDate != "" && in.DueDate < in.IssueDate && !ve.Has("due_date") && !ve.Has("issue_date") {
		ve.Add("due_date", "gtefield", "must not be before issue_date")
	}

	doc, err := newDocument(in.Type)
	if err != nil {
		return nil, ve.OrNil()
	}

	h := doc.Base()
	h.ID = id
	h.Number = in.Number
	h.ClientID = in.ClientID
	h.ClientName = in.ClientName
	h.IssueDate = in.IssueDate
	h.DueDate = in.DueDate
	h.Currency = in.Currency
	h.Status = in.Status
	h.Items = make([]LineItem, 0, len(in.Items))
	for _, it := range in.Items {
		h.Items = append(h.Items, LineItem{
			ProductID:   strings.TrimSpace(it.ProductID),
			ProductName: strings.TrimSpace(it.ProductName),
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			Total:       it.Quantity.Mul(it.UnitPrice).Round(2),
		})
	}
	h.Subtotal, h.Tax, h.Total = computeAmounts(h.Items)

	_ = doc.Accept(&detailBuilder{in: in, ve: ve})

	if err := ve.OrNil(); err != nil {
		return nil, err
	}
	return doc, nil
}

// computeAmounts sums line totals and applies TaxRate rounded to cents.
func computeAmounts(items []LineItem) (subtotal, tax, total decimal.Decimal) {
	for _, it := range items {
		subtotal = subtotal.Add(it.Total)
	}
	tax = subtotal.Mul(TaxRate).Round(2)
	return subtotal, tax, subtotal.Add(tax)
}

// detailBuilder copies and validates the kind-specific part of the input.
type detailBuilder struct {
	in DocumentInput
	ve *ValidationError
}

func (b *detailBuilder) VisitInvoice(*Invoice) error { return nil }
func (b *detailBuilder) VisitReceipt(*Receipt) error { return nil }

func (b *detailBuilder) VisitCreditNote(d *CreditNote) error {
	d.NoteRef = b.noteRef()
	return nil
}

func (b *detailBuilder) VisitDebitNote(d *DebitNote) error {
	d.NoteRef = b.noteRef()
	return nil
}

func (b *detailBuilder) noteRef() NoteRef {
	if b.in.ModifiedDocumentID == "" {
		b.ve.Add("modified_document_id", "required", "is required")
	}
	if b.in.Reason == "" {
		b.ve.Add("reason", "required", "is required")
	}
	return NoteRef{ModifiedDocumentID: b.in.ModifiedDocumentID, Reason: b.in.Reason}
}

func (b *detailBuilder) VisitDispatchGuide(d *DispatchGuide) error {
	t := b.in.Transport
	t.StartPoint = strings.TrimSpace(t.StartPoint)
	t.EndPoint = strings.TrimSpace(t.EndPoint)
	t.TransportDate = strings.TrimSpace(t.TransportDate)
	t.CarrierRUC = strings.TrimSpace(t.CarrierRUC)
	t.CarrierName = strings.TrimSpace(t.CarrierName)
	t.VehiclePlate = strings.ToUpper(strings.TrimSpace(t.VehiclePlate))
	t.DriverLicense = strings.TrimSpace(t.DriverLicense)
	t.TransferReason = strings.TrimSpace(t.TransferReason)

	required := []struct{ field, value string }{
		{"start_point", t.StartPoint},
		{"end_point", t.EndPoint},
		{"transport_date", t.TransportDate},
		{"carrier_ruc", t.CarrierRUC},
		{"carrier_name", t.CarrierName},
		{"transfer_reason", t.TransferReason},
	}
	for _, r := range required {
		if r.value == "" {
			b.ve.Add(r.field, "required", "is required")
		}
	}
	if t.TransportDate != "" && !isDate(t.TransportDate, "2006-01-02") {
		b.ve.Add("transport_date", "isodate", "must be a date formatted YYYY-MM-DD")
	}
	if t.CarrierRUC != "" && !isDigits(t.CarrierRUC, 11) {
		b.ve.Add("carrier_ruc", "ruc", "must be 11 digits")
	}
	if !t.TotalWeight.IsPositive() {
		b.ve.Add("total_weight", "gt", "must be greater than 0")
	}
	d.Transport = t
	return nil
}

func isDigits(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
