package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"stock_valuation/internal/feature/candles/domain/entity"
	"stock_valuation/internal/feature/candles/usecase"
	"stock_valuation/internal/shared/marketdata"
)

// CachingCandleRepository decorates a candles MarketRepository with Redis caching.
// It implements the decorator pattern, transparently adding caching without
// modifying the underlying repository.
type CachingCandleRepository struct {
	inner usecase.MarketRepository
	store
}

var _ usecase.MarketRepository = (*CachingCandleRepository)(nil)

// NewCachingCandleRepository decorates a MarketRepository with Redis caching.
// If namespace is empty, it uses "candles".
func NewCachingCandleRepository(rdb *redis.Client, ttl time.Duration, inner usecase.MarketRepository, namespace string) *CachingCandleRepository {
	return &CachingCandleRepository{inner: inner, store: newStore(rdb, ttl, namespace, "candles")}
}

// GetCandles retrieves candles, checking cache first then falling back to the provider.
func (c *CachingCandleRepository) GetCandles(ctx context.Context, symbol string, rng marketdata.Range, interval marketdata.Interval) ([]entity.Candle, error) {
	return getOrLoad(ctx, c.store, c.key(symbol, string(rng), string(interval)), c.expiryFor(interval),
		func(ctx context.Context) ([]entity.Candle, error) {
			return c.inner.GetCandles(ctx, symbol, rng, interval)
		},
		func(cs []entity.Candle) bool { return len(cs) > 0 },
	)
}
