package postgres_test

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wonny/mandacaru-broker/internal/domain/stock"
	"github.com/wonny/mandacaru-broker/internal/infra/database/postgres"
	"github.com/wonny/mandacaru-broker/internal/pkg/config"
)

// newTestPool connects to TEST_DATABASE_URL and applies migrations
func newTestPool(t *testing.T) *postgres.Pool {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("Integration test - requires PostgreSQL (set TEST_DATABASE_URL)")
	}

	cfg := &config.Config{Database: config.DatabaseConfig{URL: url, MaxConns: 4, MinConns: 1}}

	pool, err := postgres.NewPool(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	mg, err := postgres.NewMigrator(url)
	require.NoError(t, err)
	require.NoError(t, mg.Up())
	require.NoError(t, mg.Close())

	_, err = pool.Exec(context.Background(), "TRUNCATE market.stocks")
	require.NoError(t, err)

	return pool
}

func TestPool_Health(t *testing.T) {
	pool := newTestPool(t)

	health := pool.Health(context.Background())
	assert.NotNil(t, health)
	assert.NotEqual(t, postgres.StatusUnhealthy, health.Status)
	assert.Greater(t, health.MaxConns, int32(0))
}

func TestStockRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := postgres.NewStockRepository(newTestPool(t))

	saved, err := repo.Save(ctx, &stock.Stock{Symbol: "ABC0", CompanyName: "Test Company", Price: 99.99})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, 99.99, saved.Price)

	saved.Price = 15
	updated, err := repo.Save(ctx, saved)
	require.NoError(t, err)
	assert.Equal(t, saved.ID, updated.ID)
	assert.Equal(t, 15.0, updated.Price)

	got, err := repo.FindByID(ctx, saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Test Company", got.CompanyName)

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, repo.DeleteByID(ctx, saved.ID))
	assert.ErrorIs(t, repo.DeleteByID(ctx, saved.ID), stock.ErrStockNotFound)

	_, err = repo.FindByID(ctx, saved.ID)
	assert.ErrorIs(t, err, stock.ErrStockNotFound)
}

func TestStockRepository_StoresPriceExactly(t *testing.T) {
	ctx := context.Background()
	repo := postgres.NewStockRepository(newTestPool(t))

	for _, price := range []float64{99.99999, 0.123456789, 1e16, 1e300} {
		saved, err := repo.Save(ctx, &stock.Stock{Symbol: "ABC0", CompanyName: "Test Company", Price: price})
		require.NoError(t, err, "price %v", price)
		assert.Equal(t, price, saved.Price)

		got, err := repo.FindByID(ctx, saved.ID)
		require.NoError(t, err)
		assert.Equal(t, price, got.Price)
	}
}
