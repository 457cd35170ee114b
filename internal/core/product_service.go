package core

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/aluiggi96/Doc-MYPE/internal/logger"
)

// DefaultUnitOfMeasure is used when a product is saved without a unit.
const DefaultUnitOfMeasure = "Unidad"

type ProductInput struct {
	Code          string          `json:"code" validate:"required" jsonschema:"required"`
	Name          string          `json:"name" validate:"required" jsonschema:"required"`
	UnitPrice     decimal.Decimal `json:"unit_price" validate:"gte=0" jsonschema:"required"`
	UnitOfMeasure string          `json:"unit_of_measure,omitempty"`
	Stock         int             `json:"stock" validate:"gte=0"`
}

func (in *ProductInput) normalize() {
	in.Code = strings.ToUpper(strings.TrimSpace(in.Code))
	in.Name = strings.TrimSpace(in.Name)
	in.UnitOfMeasure = strings.TrimSpace(in.UnitOfMeasure)
	if in.UnitOfMeasure == "" {
		in.UnitOfMeasure = DefaultUnitOfMeasure
	}
}

func ValidateProduct(in *ProductInput) error {
	in.normalize()
	return validateStruct("product", in).OrNil()
}

type ProductService interface {
	List() []Product
	Get(id string) (Product, error)
	Create(ctx context.Context, in ProductInput) (Product, error)
	Update(ctx context.Context, id string, in ProductInput) (Product, error)
	// Delete removes a product that no document line references.
	Delete(ctx context.Context, id string) error
}

type productService struct {
	store *Store
	docs  DocumentService
	log   zerolog.Logger
}

func NewProductService(st *Store, docs DocumentService) ProductService {
	return &productService{store: st, docs: docs, log: logger.WithComponent("products")}
}

func (s *productService) List() []Product {
	return slices.Clone(s.store.Products.Get())
}

func (s *productService) Get(id string) (Product, error) {
	for _, p := range s.store.Products.Get() {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, fmt.Errorf("product %s: %w", id, ErrNotFound)
}

func (s *productService) Create(ctx context.Context, in ProductInput) (Product, error) {
	if err := ValidateProduct(&in); err != nil {
		return Product{}, err
	}
	p := productFromInput(NewID(), in)

	_, err := s.store.Products.Update(ctx, func(cur []Product) ([]Product, bool, error) {
		if err := checkProductCodeUnique(cur, p); err != nil {
			return nil, false, err
		}
		next := make([]Product, 0, len(cur)+1)
		next = append(next, cur...)
		return append(next, p), true, nil
	})
	if err != nil {
		return Product{}, err
	}
	s.log.Info().Str("id", p.ID).Str("code", p.Code).Int("stock", p.Stock).Msg("product created")
	return p, nil
}

func (s *productService) Update(ctx context.Context, id string, in ProductInput) (Product, error) {
	if err := ValidateProduct(&in); err != nil {
		return Product{}, err
	}
	p := productFromInput(id, in)

	_, err := s.store.Products.Update(ctx, func(cur []Product) ([]Product, bool, error) {
		i := slices.IndexFunc(cur, func(x Product) bool { return x.ID == id })
		if i < 0 {
			return nil, false, fmt.Errorf("product %s: %w", id, ErrNotFound)
		}
		if err := checkProductCodeUnique(cur, p); err != nil {
			return nil, false, err
		}
		next := slices.Clone(cur)
		next[i] = p
		return next, true, nil
	})
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

func (s *productService) Delete(ctx context.Context, id string) error {
	if n := s.docs.CountReferences("", id); n > 0 {
		return fmt.Errorf("product %s is referenced by %d documents: %w", id, n, ErrConflict)
	}
	_, err := s.store.Products.Update(ctx, func(cur []Product) ([]Product, bool, error) {
		i := slices.IndexFunc(cur, func(x Product) bool { return x.ID == id })
		if i < 0 {
			return nil, false, fmt.Errorf("product %s: %w", id, ErrNotFound)
		}
		return slices.Delete(slices.Clone(cur), i, i+1), true, nil
	})
	if err != nil {
		return err
	}
	s.log.Info().Str("id", id).Msg("product deleted")
	return nil
}

func productFromInput(id string, in ProductInput) Product {
	return Product{
		ID:            id,
		Code:          in.Code,
		Name:          in.Name,
		UnitPrice:     in.UnitPrice.Round(2),
		UnitOfMeasure: in.UnitOfMeasure,
		Stock:         in.Stock,
	}
}

func checkProductCodeUnique(products []Product, p Product) error {
	for _, x := range products {
		if x.ID != p.ID && x.Code == p.Code {
			return fmt.Errorf("product code %s already exists: %w", p.Code, ErrConflict)
		}
	}
	return nil
}
