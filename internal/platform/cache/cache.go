// Package cache provides Redis caching decorators for market data repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"stock_valuation/internal/shared/marketdata"
)

// store はデコレータ共通のRedisアクセスです。
type store struct {
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// newStore は namespace が空の場合に fallback を使います。
// ttl が0以下の場合は次の米国市場クローズまでをTTLとします。
func newStore(rdb *redis.Client, ttl time.Duration, namespace, fallback string) store {
	if namespace == "" {
		namespace = fallback
	}
	return store{rdb: rdb, ttl: ttl, namespace: namespace}
}

// IntradayTTL は分足・時間足の上限TTLです。取引時間中もバーが増え続けるため短くします。
const IntradayTTL = 5 * time.Minute

func (s store) expiry() time.Duration {
	if s.ttl > 0 {
		return s.ttl
	}
	return TimeUntilNextMarketClose(time.Now())
}

// expiryFor は時間足に応じたTTLを返します。日足以上は expiry と同じです。
func (s store) expiryFor(iv marketdata.Interval) time.Duration {
	if !iv.Intraday() {
		return s.expiry()
	}
	if s.ttl > 0 && s.ttl < IntradayTTL {
		return s.ttl
	}
	return IntradayTTL
}

func (s store) key(parts ...string) string {
	escaped := make([]string, 0, len(parts)+1)
	escaped = append(escaped, s.namespace)
	for _, p := range parts {
		escaped = append(escaped, safe(p))
	}
	return strings.Join(escaped, ":")
}

// getOrLoad はキャッシュを確認し、なければ load の結果を保存して返します。
// keep が false を返した値（空の結果など）は保存しません。保存時のTTLは ttl です。
func getOrLoad[T any](ctx context.Context, s store, key string, ttl time.Duration, load func(context.Context) (T, error), keep func(T) bool) (T, error) {
	// Bypass cache if Redis is not configured
	if s.rdb == nil {
		return load(ctx)
	}

	// 1) Check cache
	if b, err := s.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out T
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = s.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to the upstream provider
	out, err := load(ctx)
	if err != nil {
		return out, err
	}
	if !keep(out) {
		return out, nil
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		if err := s.rdb.Set(ctx, key, b, ttl).Err(); err != nil {
			slog.Warn("cache store failed", "key", key, "error", err)
		}
	}
	return out, nil
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
