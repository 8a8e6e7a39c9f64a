package stock

import "context"

// Repository defines the interface for stock data access
type Repository interface {
	// FindByID returns a stock by id, or ErrStockNotFound
	FindByID(ctx context.Context, id string) (*Stock, error)

	// FindAll returns every stored stock (order not guaranteed)
	FindAll(ctx context.Context) ([]Stock, error)

	// Save inserts or updates a stock. A new UUID is assigned when ID is empty.
	Save(ctx context.Context, s *Stock) (*Stock, error)

	// DeleteByID removes a stock, or returns ErrStockNotFound
	DeleteByID(ctx context.Context, id string) error
}
