package core

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/aluiggi96/Doc-MYPE/internal/logger"
)

// ClientInput is the editable part of a Client.
type ClientInput struct {
	Name      string  `json:"name" validate:"required" jsonschema:"required"`
	DocType   DocType `json:"doc_type" validate:"oneof=RUC DNI" jsonschema:"enum=RUC,enum=DNI"`
	DocNumber string  `json:"doc_number" validate:"required,numeric" jsonschema:"required"`
	Address   string  `json:"address,omitempty"`
	Email     string  `json:"email,omitempty" validate:"omitempty,email"`
}

func (in *ClientInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.DocType = DocType(strings.ToUpper(strings.TrimSpace(string(in.DocType))))
	if in.DocType == "" {
		in.DocType = DocTypeRUC
	}
	in.DocNumber = strings.TrimSpace(in.DocNumber)
	in.Address = strings.TrimSpace(in.Address)
	in.Email = strings.TrimSpace(in.Email)
}

// ValidateClient normalizes in and checks it. RUC numbers have 11 digits, DNI numbers 8.
func ValidateClient(in *ClientInput) error {
	in.normalize()
	ve := validateStruct("client", in)
	if !ve.Has("doc_number") && !ve.Has("doc_type") {
		want := 11
		if in.DocType == DocTypeDNI {
			want = 8
		}
		if !isDigits(in.DocNumber, want) {
			ve.Add("doc_number", "len", fmt.Sprintf("must have %d digits for %s", want, in.DocType))
		}
	}
	return ve.OrNil()
}

type ClientService interface {
	List() []Client
	Get(id string) (Client, error)
	Create(ctx context.Context, in ClientInput) (Client, error)
	Update(ctx context.Context, id string, in ClientInput) (Client, error)
	// Delete removes a client that no document references.
	Delete(ctx context.Context, id string) error
}

type clientService struct {
	store *Store
	docs  DocumentService
	log   zerolog.Logger
}

func NewClientService(st *Store, docs DocumentService) ClientService {
	return &clientService{store: st, docs: docs, log: logger.WithComponent("clients")}
}

func (s *clientService) List() []Client {
	return slices.Clone(s.store.Clients.Get())
}

func (s *clientService) Get(id string) (Client, error) {
	for _, c := range s.store.Clients.Get() {
		if c.ID == id {
			return c, nil
		}
	}
	return Client{}, fmt.Errorf("client %s: %w", id, ErrNotFound)
}

func (s *clientService) Create(ctx context.Context, in ClientInput) (Client, error) {
	if err := ValidateClient(&in); err != nil {
		return Client{}, err
	}
	c := clientFromInput(NewID(), in)

	_, err := s.store.Clients.Update(ctx, func(cur []Client) ([]Client, bool, error) {
		if err := checkClientUnique(cur, c); err != nil {
			return nil, false, err
		}
		next := make([]Client, 0, len(cur)+1)
		next = append(next, cur...)
		return append(next, c), true, nil
	})
	if err != nil {
		return Client{}, err
	}
	s.log.Info().Str("id", c.ID).Str("doc", string(c.DocType)+" "+c.DocNumber).Msg("client created")
	return c, nil
}

func (s *clientService) Update(ctx context.Context, id string, in ClientInput) (Client, error) {
	if err := ValidateClient(&in); err != nil {
		return Client{}, err
	}
	c := clientFromInput(id, in)

	_, err := s.store.Clients.Update(ctx, func(cur []Client) ([]Client, bool, error) {
		i := slices.IndexFunc(cur, func(x Client) bool { return x.ID == id })
		if i < 0 {
			return nil, false, fmt.Errorf("client %s: %w", id, ErrNotFound)
		}
		if cur[i] == c {
			return cur, false, nil
		}
		if err := checkClientUnique(cur, c); err != nil {
			return nil, false, err
		}
		next := slices.Clone(cur)
		next[i] = c
		return next, true, nil
	})
	if err != nil {
		return Client{}, err
	}
	return c, nil
}

func (s *clientService) Delete(ctx context.Context, id string) error {
	if n := s.docs.CountReferences(id, ""); n > 0 {
		return fmt.Errorf("client %s is referenced by %d documents: %w", id, n, ErrConflict)
	}
	_, err := s.store.Clients.Update(ctx, func(cur []Client) ([]Client, bool, error) {
		i := slices.IndexFunc(cur, func(x Client) bool { return x.ID == id })
		if i < 0 {
			return nil, false, fmt.Errorf("client %s: %w", id, ErrNotFound)
		}
		return slices.Delete(slices.Clone(cur), i, i+1), true, nil
	})
	if err != nil {
		return err
	}
	s.log.Info().Str("id", id).Msg("client deleted")
	return nil
}

func clientFromInput(id string, in ClientInput) Client {
	return Client{
		ID:        id,
		Name:      in.Name,
		DocType:   in.DocType,
		DocNumber: in.DocNumber,
		Address:   in.Address,
		Email:     in.Email,
	}
}

// checkClientUnique enforces one client per (doc type, doc number).
func checkClientUnique(clients []Client, c Client) error {
	for _, x := range clients {
		if x.ID != c.ID && x.DocType == c.DocType && x.DocNumber == c.DocNumber {
			return fmt.Errorf("client with %s %s already exists: %w", c.DocType, c.DocNumber, ErrConflict)
		}
	}
	return nil
}
