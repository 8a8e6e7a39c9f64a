// Package memory provides in-process repositories for development and tests.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/wonny/mandacaru-broker/internal/domain/stock"
)

var _ stock.Repository = (*StockRepository)(nil)

// StockRepository keeps stocks in a map guarded by a RWMutex
type StockRepository struct {
	mu     sync.RWMutex
	stocks map[string]stock.Stock
	now    func() time.Time
}

// NewStockRepository creates an empty in-memory repository
func NewStockRepository() *StockRepository {
	return &StockRepository{
		stocks: make(map[string]stock.Stock),
		now:    time.Now,
	}
}

func (r *StockRepository) FindByID(ctx context.Context, id string) (*stock.Stock, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.stocks[id]
	if !ok {
		return nil, stock.ErrStockNotFound
	}
	return &s, nil
}

func (r *StockRepository) FindAll(ctx context.Context) ([]stock.Stock, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stocks := make([]stock.Stock, 0, len(r.stocks))
	for _, s := range r.stocks {
		stocks = append(stocks, s)
	}
	return stocks, nil
}

func (r *StockRepository) Save(ctx context.Context, s *stock.Stock) (*stock.Stock, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	saved := *s
	now := r.now()
	if saved.ID == "" {
		saved.ID = uuid.NewString()
	}
	if existing, ok := r.stocks[saved.ID]; ok {
		saved.CreatedTS = existing.CreatedTS
	} else {
		saved.CreatedTS = now
	}
	saved.UpdatedTS = now

	r.stocks[saved.ID] = saved
	return &saved, nil
}

func (r *StockRepository) DeleteByID(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.stocks[id]; !ok {
		return stock.ErrStockNotFound
	}
	delete(r.stocks, id)
	return nil
}
