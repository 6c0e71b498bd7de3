package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"stock_valuation/internal/feature/valuation/domain/entity"
	"stock_valuation/internal/feature/valuation/usecase"
	"stock_valuation/internal/shared/marketdata"
)

// CachingPriceSeriesRepository decorates a PriceSeriesRepository with Redis caching.
type CachingPriceSeriesRepository struct {
	inner usecase.PriceSeriesRepository
	store
}

var _ usecase.PriceSeriesRepository = (*CachingPriceSeriesRepository)(nil)

// NewCachingPriceSeriesRepository は namespace が空の場合 "prices" を使います。
func NewCachingPriceSeriesRepository(rdb *redis.Client, ttl time.Duration, inner usecase.PriceSeriesRepository, namespace string) *CachingPriceSeriesRepository {
	return &CachingPriceSeriesRepository{inner: inner, store: newStore(rdb, ttl, namespace, "prices")}
}

// GetPriceSeries は空でない結果のみキャッシュします。
func (c *CachingPriceSeriesRepository) GetPriceSeries(ctx context.Context, symbol string, rng marketdata.Range, interval marketdata.Interval) (entity.PriceSeries, error) {
	return getOrLoad(ctx, c.store, c.key(symbol, string(rng), string(interval)), c.expiryFor(interval),
		func(ctx context.Context) (entity.PriceSeries, error) {
			return c.inner.GetPriceSeries(ctx, symbol, rng, interval)
		},
		func(s entity.PriceSeries) bool { return s.Len() > 0 },
	)
}

// CachingFundamentalsRepository decorates a FundamentalsRepository with Redis caching.
// Scraping quote pages is slow and rate limited, so this is the most valuable cache.
type CachingFundamentalsRepository struct {
	inner usecase.FundamentalsRepository
	store
}

var _ usecase.FundamentalsRepository = (*CachingFundamentalsRepository)(nil)

// NewCachingFundamentalsRepository は namespace が空の場合 "fundamentals" を使います。
func NewCachingFundamentalsRepository(rdb *redis.Client, ttl time.Duration, inner usecase.FundamentalsRepository, namespace string) *CachingFundamentalsRepository {
	return &CachingFundamentalsRepository{inner: inner, store: newStore(rdb, ttl, namespace, "fundamentals")}
}

// GetFundamentals はEPSとPERが揃っている場合のみキャッシュします。
func (c *CachingFundamentalsRepository) GetFundamentals(ctx context.Context, symbol string) (entity.FundamentalsSnapshot, error) {
	return getOrLoad(ctx, c.store, c.key(symbol), c.expiry(),
		func(ctx context.Context) (entity.FundamentalsSnapshot, error) {
			return c.inner.GetFundamentals(ctx, symbol)
		},
		func(f entity.FundamentalsSnapshot) bool {
			_, _, ok := f.Values()
			return ok
		},
	)
}
