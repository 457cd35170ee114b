package core

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/aluiggi96/Doc-MYPE/internal/logger"
)

type DocumentService interface {
	// List returns the documents of kind in storage (insertion) order.
	List(kind Kind) []Document
	// All returns every document in storage order.
	All() []Document
	Get(id string) (Document, error)
	// Void marks a document as voided. Voiding an already voided document
	// changes nothing and performs no write; changed reports which case happened.
	Void(ctx context.Context, id string) (doc Document, changed bool, err error)
	// Create validates input through BuildDocument and appends the document.
	// Client and product names must already be resolved by the caller.
	Create(ctx context.Context, in DocumentInput) (Document, error)
	// Edit replaces a draft document. Issued and voided documents are immutable.
	Edit(ctx context.Context, id string, in DocumentInput) (Document, error)
	// CountReferences counts documents pointing at a client or product id.
	CountReferences(clientID, productID string) int
}

type documentService struct {
	store *Store
	log   zerolog.Logger
}

func NewDocumentService(st *Store) DocumentService {
	return &documentService{store: st, log: logger.WithComponent("documents")}
}

func (s *documentService) List(kind Kind) []Document {
	return s.store.Documents.Get().OfKind(kind)
}

func (s *documentService) All() []Document {
	return slices.Clone([]Document(s.store.Documents.Get()))
}

func (s *documentService) Get(id string) (Document, error) {
	docs := s.store.Documents.Get()
	if i := docs.Index(id); i >= 0 {
		return docs[i], nil
	}
	return nil, fmt.Errorf("document %s: %w", id, ErrNotFound)
}

func (s *documentService) Void(ctx context.Context, id string) (Document, bool, error) {
	var result Document
	changed := false
	_, err := s.store.Documents.Update(ctx, func(cur DocumentList) (DocumentList, bool, error) {
		i := cur.Index(id)
		if i < 0 {
			return nil, false, fmt.Errorf("document %s: %w", id, ErrNotFound)
		}
		if cur[i].Base().Status == StatusVoided {
			result = cur[i]
			return cur, false, nil
		}
		voided := cur[i].Clone()
		voided.Base().Status = StatusVoided

		next := slices.Clone(cur)
		next[i] = voided
		result, changed = voided, true
		return next, true, nil
	})
	if err != nil {
		return nil, false, err
	}
	if changed {
		s.log.Info().Str("id", id).Str("number", result.Base().Number).Msg("document voided")
	}
	return result, changed, nil
}

func (s *documentService) Create(ctx context.Context, in DocumentInput) (Document, error) {
	doc, err := BuildDocument(in, NewID())
	if err != nil {
		return nil, err
	}

	_, err = s.store.Documents.Update(ctx, func(cur DocumentList) (DocumentList, bool, error) {
		if err := checkNoteTarget(cur, doc); err != nil {
			return nil, false, err
		}
		h := doc.Base()
		if h.Number == "" {
			h.Number = nextNumber(cur, h.Type)
		} else if numberTaken(cur, h.Type, h.Number, "") {
			return nil, false, fmt.Errorf("%s number %s already exists: %w", h.Type, h.Number, ErrConflict)
		}
		next := make(DocumentList, 0, len(cur)+1)
		next = append(next, cur...)
		return append(next, doc), true, nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("id", doc.Base().ID).Str("type", string(doc.Base().Type)).
		Str("number", doc.Base().Number).Str("total", doc.Base().Total.StringFixed(2)).
		Msg("document created")
	return doc, nil
}

func (s *documentService) Edit(ctx context.Context, id string, in DocumentInput) (Document, error) {
	var edited Document
	_, err := s.store.Documents.Update(ctx, func(cur DocumentList) (DocumentList, bool, error) {
		i := cur.Index(id)
		if i < 0 {
			return nil, false, fmt.Errorf("document %s: %w", id, ErrNotFound)
		}
		existing := cur[i].Base()
		if existing.Status != StatusDraft {
			return nil, false, fmt.Errorf("document %s is %s: %w", existing.Number, existing.Status, ErrNotEditable)
		}
		if in.Type == "" {
			in.Type = existing.Type
		}
		if in.Type != existing.Type {
			return nil, false, fmt.Errorf("document %s cannot change type from %s to %s: %w", existing.Number, existing.Type, in.Type, ErrConflict)
		}

		doc, err := BuildDocument(in, id)
		if err != nil {
			return nil, false, err
		}
		if err := checkNoteTarget(cur, doc); err != nil {
			return nil, false, err
		}
		h := doc.Base()
		if h.Number == "" {
			h.Number = existing.Number
		} else if numberTaken(cur, h.Type, h.Number, id) {
			return nil, false, fmt.Errorf("%s number %s already exists: %w", h.Type, h.Number, ErrConflict)
		}

		next := slices.Clone(cur)
		next[i] = doc
		edited = doc
		return next, true, nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("id", id).Msg("document edited")
	return edited, nil
}

func (s *documentService) CountReferences(clientID, productID string) int {
	n := 0
	for _, d := range s.store.Documents.Get() {
		h := d.Base()
		if clientID != "" && h.ClientID == clientID {
			n++
			continue
		}
		if productID != "" && slices.ContainsFunc(h.Items, func(it LineItem) bool { return it.ProductID == productID }) {
			n++
		}
	}
	return n
}

// noteTarget extracts the modified document id of credit and debit notes.
type noteTarget struct {
	id string
}

func (n *noteTarget) VisitInvoice(*Invoice) error             { return nil }
func (n *noteTarget) VisitReceipt(*Receipt) error             { return nil }
func (n *noteTarget) VisitCreditNote(d *CreditNote) error     { n.id = d.ModifiedDocumentID; return nil }
func (n *noteTarget) VisitDebitNote(d *DebitNote) error       { n.id = d.ModifiedDocumentID; return nil }
func (n *noteTarget) VisitDispatchGuide(*DispatchGuide) error { return nil }

// checkNoteTarget requires notes to modify an existing, non-voided sale document.
func checkNoteTarget(docs DocumentList, doc Document) error {
	var t noteTarget
	_ = doc.Accept(&t)
	if t.id == "" {
		return nil
	}
	i := docs.Index(t.id)
	if i < 0 {
		return fmt.Errorf("modified document %s does not exist: %w", t.id, ErrInvalidReference)
	}
	target := docs[i]
	if !IsQualifyingSale(target) {
		return fmt.Errorf("modified document %s must be an active invoice or receipt: %w", t.id, ErrInvalidReference)
	}
	if target.Base().Currency != doc.Base().Currency {
		return fmt.Errorf("note currency %s differs from modified document currency %s: %w",
			doc.Base().Currency, target.Base().Currency, ErrInvalidReference)
	}
	return nil
}

// nextNumber returns the next number of the kind's series, e.g. F001-00000003.
func nextNumber(docs DocumentList, kind Kind) string {
	prefix := kind.Series() + "-"
	last := 0
	for _, d := range docs {
		h := d.Base()
		if h.Type != kind || !strings.HasPrefix(h.Number, prefix) {
			continue
		}
		if n, err := strconv.Atoi(strings.TrimPrefix(h.Number, prefix)); err == nil && n > last {
			last = n
		}
	}
	return fmt.Sprintf("%s%08d", prefix, last+1)
}

func numberTaken(docs DocumentList, kind Kind, number, exceptID string) bool {
	return slices.ContainsFunc(docs, func(d Document) bool {
		h := d.Base()
		return h.Type == kind && h.Number == number && h.ID != exceptID
	})
}
