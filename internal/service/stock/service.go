package stock

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/wonny/mandacaru-broker/internal/domain/stock"
)

// Service orchestrates stock record operations
type Service struct {
	repo      stock.Repository
	validator *stock.Validator
}

// NewService creates a new stock service
func NewService(repo stock.Repository, validator *stock.Validator) *Service {
	return &Service{
		repo:      repo,
		validator: validator,
	}
}

// List returns all stocks
func (s *Service) List(ctx context.Context) ([]stock.Stock, error) {
	stocks, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list stocks: %w", err)
	}
	return stocks, nil
}

// Get returns a stock by id
func (s *Service) Get(ctx context.Context, id string) (*stock.Stock, error) {
	return s.repo.FindByID(ctx, id)
}

// Create validates req and persists a new stock
func (s *Service) Create(ctx context.Context, req stock.Request) (*stock.Stock, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	created, err := s.repo.Save(ctx, stock.NewStock(req))
	if err != nil {
		return nil, fmt.Errorf("failed to save stock: %w", err)
	}

	log.Info().
		Str("stock_id", created.ID).
		Str("symbol", created.Symbol).
		Float64("price", created.Price).
		Msg("Stock created")

	return created, nil
}

// Update replaces symbol, company name and price of an existing stock.
// The incoming fields go through the same rules as creation.
func (s *Service) Update(ctx context.Context, id string, req stock.Request) (*stock.Stock, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	oldPrice := existing.Price
	if err := existing.Apply(req); err != nil {
		return nil, err
	}

	updated, err := s.repo.Save(ctx, existing)
	if err != nil {
		return nil, fmt.Errorf("failed to save stock: %w", err)
	}

	log.Info().
		Str("stock_id", updated.ID).
		Float64("old_price", oldPrice).
		Float64("new_price", updated.Price).
		Msg("Stock updated")

	return updated, nil
}

// AdjustPrice moves the price of an existing stock by changePct percent
func (s *Service) AdjustPrice(ctx context.Context, id string, changePct float64) (*stock.Stock, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldPrice := existing.Price
	newPrice, err := stock.ChangePrice(existing.Price, changePct, false)
	if err != nil {
		return nil, err
	}
	existing.Price = newPrice

	updated, err := s.repo.Save(ctx, existing)
	if err != nil {
		return nil, fmt.Errorf("failed to save stock: %w", err)
	}

	log.Info().
		Str("stock_id", updated.ID).
		Float64("change_pct", changePct).
		Float64("old_price", oldPrice).
		Float64("new_price", updated.Price).
		Msg("Stock price adjusted")

	return updated, nil
}

// Delete removes a stock by id
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return err
	}

	log.Info().Str("stock_id", id).Msg("Stock deleted")
	return nil
}
