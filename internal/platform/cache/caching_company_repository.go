package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"stock_valuation/internal/feature/company/domain/entity"
	"stock_valuation/internal/feature/company/usecase"
)

// CachingProfileRepository decorates a ProfileRepository with Redis caching.
type CachingProfileRepository struct {
	inner usecase.ProfileRepository
	store
}

var _ usecase.ProfileRepository = (*CachingProfileRepository)(nil)

// NewCachingProfileRepository は namespace が空の場合 "profile" を使います。
// 取得元ごとにキーが衝突しないよう、複数の取得元をラップする場合は namespace を分けてください。
func NewCachingProfileRepository(rdb *redis.Client, ttl time.Duration, inner usecase.ProfileRepository, namespace string) *CachingProfileRepository {
	return &CachingProfileRepository{inner: inner, store: newStore(rdb, ttl, namespace, "profile")}
}

// GetProfile は何か1項目でも取得できた結果のみキャッシュします。
func (c *CachingProfileRepository) GetProfile(ctx context.Context, symbol string) (entity.CompanyProfile, error) {
	return getOrLoad(ctx, c.store, c.key(symbol), c.expiry(),
		func(ctx context.Context) (entity.CompanyProfile, error) {
			return c.inner.GetProfile(ctx, symbol)
		},
		func(p entity.CompanyProfile) bool { return !p.Empty() },
	)
}

// CachingFinancialsRepository decorates a FinancialsRepository with Redis caching.
type CachingFinancialsRepository struct {
	inner usecase.FinancialsRepository
	store
}

var _ usecase.FinancialsRepository = (*CachingFinancialsRepository)(nil)

// NewCachingFinancialsRepository は namespace が空の場合 "financials" を使います。
func NewCachingFinancialsRepository(rdb *redis.Client, ttl time.Duration, inner usecase.FinancialsRepository, namespace string) *CachingFinancialsRepository {
	return &CachingFinancialsRepository{inner: inner, store: newStore(rdb, ttl, namespace, "financials")}
}

// GetFinancials は行のある結果のみキャッシュします。
func (c *CachingFinancialsRepository) GetFinancials(ctx context.Context, symbol string) (entity.FinancialStatement, error) {
	return getOrLoad(ctx, c.store, c.key(symbol), c.expiry(),
		func(ctx context.Context) (entity.FinancialStatement, error) {
			return c.inner.GetFinancials(ctx, symbol)
		},
		func(s entity.FinancialStatement) bool { return !s.Empty() },
	)
}
