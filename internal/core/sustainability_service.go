package core

import (
	"cmp"
	"context"
	"slices"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/aluiggi96/Doc-MYPE/internal/logger"
)

type SustainabilityInput struct {
	Month             string          `json:"month" validate:"required,yearmonth" jsonschema:"required,pattern=^[0-9]{4}-[0-9]{2}$"`
	EnergyConsumption decimal.Decimal `json:"energy_consumption" validate:"gte=0"`
	PaperUsage        decimal.Decimal `json:"paper_usage" validate:"gte=0"`
	WasteGenerated    decimal.Decimal `json:"waste_generated" validate:"gte=0"`
}

// SustainabilityTotals sums every recorded month.
type SustainabilityTotals struct {
	Months            int             `json:"months"`
	EnergyConsumption decimal.Decimal `json:"energy_consumption"`
	PaperUsage        decimal.Decimal `json:"paper_usage"`
	WasteGenerated    decimal.Decimal `json:"waste_generated"`
}

type SustainabilityService interface {
	// List returns entries sorted by month ascending.
	List() []SustainabilityEntry
	// Upsert records a month, replacing any entry already stored for it.
	Upsert(ctx context.Context, in SustainabilityInput) (SustainabilityEntry, error)
	Totals() SustainabilityTotals
}

type sustainabilityService struct {
	store *Store
	log   zerolog.Logger
}

func NewSustainabilityService(st *Store) SustainabilityService {
	return &sustainabilityService{store: st, log: logger.WithComponent("sustainability")}
}

func (s *sustainabilityService) List() []SustainabilityEntry {
	entries := slices.Clone(s.store.Sustainability.Get())
	slices.SortStableFunc(entries, func(a, b SustainabilityEntry) int { return cmp.Compare(a.Month, b.Month) })
	return entries
}

func (s *sustainabilityService) Upsert(ctx context.Context, in SustainabilityInput) (SustainabilityEntry, error) {
	in.Month = strings.TrimSpace(in.Month)
	if err := validateStruct("sustainability", in).OrNil(); err != nil {
		return SustainabilityEntry{}, err
	}
	e := SustainabilityEntry{
		ID:                in.Month,
		Month:             in.Month,
		EnergyConsumption: in.EnergyConsumption,
		PaperUsage:        in.PaperUsage,
		WasteGenerated:    in.WasteGenerated,
	}

	_, err := s.store.Sustainability.Update(ctx, func(cur []SustainabilityEntry) ([]SustainabilityEntry, bool, error) {
		next := slices.Clone(cur)
		if i := slices.IndexFunc(next, func(x SustainabilityEntry) bool { return x.Month == e.Month }); i >= 0 {
			next[i] = e
		} else {
			next = append(next, e)
		}
		return next, true, nil
	})
	if err != nil {
		return SustainabilityEntry{}, err
	}
	s.log.Info().Str("month", e.Month).Msg("sustainability entry saved")
	return e, nil
}

func (s *sustainabilityService) Totals() SustainabilityTotals {
	var t SustainabilityTotals
	for _, e := range s.store.Sustainability.Get() {
		t.Months++
		t.EnergyConsumption = t.EnergyConsumption.Add(e.EnergyConsumption)
		t.PaperUsage = t.PaperUsage.Add(e.PaperUsage)
		t.WasteGenerated = t.WasteGenerated.Add(e.WasteGenerated)
	}
	return t
}
