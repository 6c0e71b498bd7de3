// Package router はHTTPルーティングを定義します。
package router

import (
	"time"

	authhandler "stock_valuation/internal/feature/auth/transport/handler"
	candleshandler "stock_valuation/internal/feature/candles/transport/handler"
	companyhandler "stock_valuation/internal/feature/company/transport/handler"
	symbollisthandler "stock_valuation/internal/feature/symbollist/transport/handler"
	technicalhandler "stock_valuation/internal/feature/technical/transport/handler"
	valuationhandler "stock_valuation/internal/feature/valuation/transport/handler"
	"stock_valuation/internal/platform/http/handler"
	jwtmw "stock_valuation/internal/platform/jwt"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handlers はルーターに登録するフィーチャーごとのハンドラーです。
type Handlers struct {
	Auth      *authhandler.AuthHandler
	Symbol    *symbollisthandler.SymbolHandler
	Valuation *valuationhandler.ValuationHandler
	Candles   *candleshandler.CandlesHandler
	Technical *technicalhandler.TechnicalHandler
	Company   *companyhandler.CompanyHandler
}

// Config はルーターの設定です。
type Config struct {
	JWTSecret    string          // 書き込み系エンドポイントの署名鍵
	HealthChecks []handler.Check // /healthz で確認する依存先
	CORSOrigins  []string        // 空の場合はCORSヘッダーを付与しない
}

// NewRouter は全エンドポイントを登録したGinエンジンを返します。
func NewRouter(h Handlers, cfg Config) *gin.Engine {
	r := gin.Default()

	// ブラウザのダッシュボードから呼ぶ場合のみ許可
	if len(cfg.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:  cfg.CORSOrigins,
			AllowMethods:  []string{"GET", "HEAD", "POST", "OPTIONS"},
			AllowHeaders:  []string{"Authorization", "Content-Type"},
			ExposeHeaders: []string{"Content-Length"},
			MaxAge:        12 * time.Hour,
		}))
	}

	// 認証不要
	// 導通確認用
	health := handler.NewHealth(cfg.HealthChecks...)
	r.GET("/healthz", health)
	r.HEAD("/healthz", health)
	// ログイン（管理者JWT 発行）
	r.POST("/login", h.Auth.Login)

	r.GET("/symbols", h.Symbol.List)
	r.GET("/symbols/valuations", h.Valuation.Screen)
	r.GET("/valuations/:code", h.Valuation.Valuate)
	r.GET("/candles/:code", h.Candles.GetCandlesHandler)
	r.GET("/technical/:code", h.Technical.GetSnapshot)
	r.GET("/profile/:code", h.Company.GetProfile)
	r.GET("/financials/:code", h.Company.GetFinancials)

	// 認証必須のルート
	// → リクエストヘッダーに admin ロールの JWT が必要になる
	admin := r.Group("/")
	admin.Use(jwtmw.AuthRequired(cfg.JWTSecret, jwtmw.RoleAdmin))
	{
		admin.POST("/symbols", h.Symbol.Register)
	}

	return r
}
