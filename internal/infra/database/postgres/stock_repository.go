package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/wonny/mandacaru-broker/internal/domain/stock"
)

var _ stock.Repository = (*StockRepository)(nil)

const stockColumns = `id, symbol, company_name, price, created_ts, updated_ts`

// StockRepository implements stock.Repository using PostgreSQL
type StockRepository struct {
	pool *Pool
}

// NewStockRepository creates a new StockRepository
func NewStockRepository(pool *Pool) *StockRepository {
	return &StockRepository{pool: pool}
}

// FindByID returns a stock by id
func (r *StockRepository) FindByID(ctx context.Context, id string) (*stock.Stock, error) {
	query := `SELECT ` + stockColumns + ` FROM market.stocks WHERE id = $1`

	s, err := scanStock(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, stock.ErrStockNotFound
		}
		return nil, fmt.Errorf("failed to get stock: %w", err)
	}

	return s, nil
}

// FindAll returns every stock, oldest first
func (r *StockRepository) FindAll(ctx context.Context) ([]stock.Stock, error) {
	query := `SELECT ` + stockColumns + ` FROM market.stocks ORDER BY created_ts, id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query stocks: %w", err)
	}
	defer rows.Close()

	stocks := []stock.Stock{}
	for rows.Next() {
		s, err := scanStock(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan stock: %w", err)
		}
		stocks = append(stocks, *s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stocks: %w", err)
	}

	return stocks, nil
}

// Save inserts a new stock or updates the existing row with the same id
func (r *StockRepository) Save(ctx context.Context, s *stock.Stock) (*stock.Stock, error) {
	id := s.ID
	if id == "" {
		id = uuid.NewString()
	}

	query := `
		INSERT INTO market.stocks (id, symbol, company_name, price, created_ts, updated_ts)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		ON CONFLICT (id) DO UPDATE SET
			symbol       = EXCLUDED.symbol,
			company_name = EXCLUDED.company_name,
			price        = EXCLUDED.price,
			updated_ts   = NOW()
		RETURNING ` + stockColumns

	saved, err := scanStock(r.pool.QueryRow(ctx, query, id, s.Symbol, s.CompanyName, s.Price))
	if err != nil {
		return nil, fmt.Errorf("failed to save stock: %w", err)
	}

	return saved, nil
}

// DeleteByID removes a stock by id
func (r *StockRepository) DeleteByID(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM market.stocks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete stock: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return stock.ErrStockNotFound
	}

	return nil
}

func scanStock(row pgx.Row) (*stock.Stock, error) {
	var s stock.Stock
	if err := row.Scan(&s.ID, &s.Symbol, &s.CompanyName, &s.Price, &s.CreatedTS, &s.UpdatedTS); err != nil {
		return nil, err
	}
	return &s, nil
}
