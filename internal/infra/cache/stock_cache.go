// Package cache holds Redis-backed caching decorators.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/wonny/mandacaru-broker/internal/domain/stock"
	"github.com/wonny/mandacaru-broker/internal/pkg/config"
)

const keyPrefix = "stock:"

// Compile-time check to ensure StockCache implements stock.Repository
var _ stock.Repository = (*StockCache)(nil)

// NewClient creates a Redis client and verifies the connection
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	log.Info().Str("addr", cfg.Addr).Msg("✅ Redis connected successfully")
	return client, nil
}

// StockCache is a read-through cache in front of another stock.Repository.
// Writes go to the inner repository first; Redis failures degrade to the
// inner repository and are logged.
type StockCache struct {
	inner  stock.Repository
	client *redis.Client
	ttl    time.Duration
}

// NewStockCache wraps inner with a Redis cache whose entries expire after ttl
func NewStockCache(inner stock.Repository, client *redis.Client, ttl time.Duration) *StockCache {
	return &StockCache{inner: inner, client: client, ttl: ttl}
}

func (c *StockCache) FindByID(ctx context.Context, id string) (*stock.Stock, error) {
	payload, err := c.client.Get(ctx, keyPrefix+id).Bytes()
	switch {
	case err == nil:
		var s stock.Stock
		if jsonErr := json.Unmarshal(payload, &s); jsonErr == nil {
			return &s, nil
		}
		log.Warn().Str("stock_id", id).Msg("Discarding undecodable cache entry")
	case !errors.Is(err, redis.Nil):
		log.Warn().Err(err).Str("stock_id", id).Msg("Cache read failed, falling back to storage")
	}

	s, err := c.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// A DeleteByID landing between the read above and this store can leave the
	// deleted record cached until the entry expires.
	c.store(ctx, s)
	return s, nil
}

// FindAll is not cached
func (c *StockCache) FindAll(ctx context.Context) ([]stock.Stock, error) {
	return c.inner.FindAll(ctx)
}

func (c *StockCache) Save(ctx context.Context, s *stock.Stock) (*stock.Stock, error) {
	saved, err := c.inner.Save(ctx, s)
	if err != nil {
		return nil, err
	}
	c.store(ctx, saved)
	return saved, nil
}

func (c *StockCache) DeleteByID(ctx context.Context, id string) error {
	if err := c.inner.DeleteByID(ctx, id); err != nil {
		return err
	}
	if err := c.client.Del(ctx, keyPrefix+id).Err(); err != nil {
		log.Warn().Err(err).Str("stock_id", id).Msg("Cache invalidation failed")
	}
	return nil
}

func (c *StockCache) store(ctx context.Context, s *stock.Stock) {
	payload, err := json.Marshal(s)
	if err != nil {
		log.Warn().Err(err).Str("stock_id", s.ID).Msg("Failed to encode stock for cache")
		return
	}
	if err := c.client.Set(ctx, keyPrefix+s.ID, payload, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Str("stock_id", s.ID).Msg("Cache write failed")
	}
}
