// Package handler はプラットフォームレベルのエンドポイント用HTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// checkTimeout は依存先1件あたりの疎通確認の上限時間です。
const checkTimeout = 2 * time.Second

// Check は依存先（DB、Redisなど）の疎通確認です。
type Check struct {
	Name string
	Ping func(ctx context.Context) error
}

// NewHealth はサービスヘルスチェック用の /healthz ハンドラーを返します。
// GET では各依存先を確認し、1件でも失敗すれば 503 と "degraded" を返します。
// HEAD/OPTIONS は依存先を確認せずに応答します。
func NewHealth(checks ...Check) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 明示的にキャッシュを防止
		c.Header("Cache-Control", "no-store")

		switch c.Request.Method {
		case http.MethodHead:
			c.Status(http.StatusOK)
			return
		case http.MethodOptions:
			c.Status(http.StatusNoContent)
			return
		}

		status, code := "ok", http.StatusOK
		results := make(map[string]string, len(checks))
		for _, chk := range checks {
			ctx, cancel := context.WithTimeout(c.Request.Context(), checkTimeout)
			err := chk.Ping(ctx)
			cancel()
			if err != nil {
				slog.Warn("health check failed", "check", chk.Name, "error", err)
				results[chk.Name] = "unavailable"
				status, code = "degraded", http.StatusServiceUnavailable
				continue
			}
			results[chk.Name] = "ok"
		}

		body := gin.H{"status": status}
		if len(results) > 0 {
			body["checks"] = results
		}
		c.JSON(code, body)
	}
}
