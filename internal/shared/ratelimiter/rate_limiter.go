// Package ratelimiter は外部サイトへのリクエスト間隔を制御します。
package ratelimiter

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"
)

// Limiter は呼び出し前に待機する操作の抽象です。
type Limiter interface {
	Wait(ctx context.Context) error
}

// RateLimiter は golang.org/x/time/rate のトークンバケットをラップします。
// 複数のgoroutineから安全に利用できます。
type RateLimiter struct {
	name    string
	limiter *rate.Limiter
}

var _ Limiter = (*RateLimiter)(nil)

// NewRateLimiter は perSecond 回/秒、バースト burst のRateLimiterを生成します。
// perSecond が0以下の場合は制限なしになります。
func NewRateLimiter(name string, perSecond float64, burst int) *RateLimiter {
	limit := rate.Limit(perSecond)
	if perSecond <= 0 {
		limit = rate.Inf
	}
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{name: name, limiter: rate.NewLimiter(limit, burst)}
}

// Wait はトークンが得られるまで待機します。ctx がキャンセルされた場合はエラーを返します。
func (rl *RateLimiter) Wait(ctx context.Context) error {
	r := rl.limiter.Reserve()
	if !r.OK() {
		return rl.limiter.Wait(ctx)
	}
	delay := r.Delay()
	if delay == 0 {
		return nil
	}
	slog.Debug("rate limit: waiting", "limiter", rl.name, "delay", delay)

	t := time.NewTimer(delay)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		r.Cancel()
		return ctx.Err()
	}
}
