// Package di provides dependency injection factories for creating application components.
package di

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	candlesusecase "stock_valuation/internal/feature/candles/usecase"
	companyusecase "stock_valuation/internal/feature/company/usecase"
	valuationusecase "stock_valuation/internal/feature/valuation/usecase"
	"stock_valuation/internal/platform/cache"
	"stock_valuation/internal/platform/externalapi/twelvedata"
	"stock_valuation/internal/platform/externalapi/yahoo"
	infrahttp "stock_valuation/internal/platform/http"
	"stock_valuation/internal/shared/ratelimiter"
)

const (
	ProviderYahoo      = "yahoo"
	ProviderTwelveData = "twelvedata"
)

// financialsTTL は年次決算のキャッシュ期間です。決算は年1回しか変わりません。
const financialsTTL = 24 * time.Hour

// Market はユースケースが必要とする市場データの取得元一式です。
type Market struct {
	Candles      candlesusecase.MarketRepository
	Prices       valuationusecase.PriceSeriesRepository
	Quotes       valuationusecase.QuoteRepository
	Fundamentals valuationusecase.FundamentalsRepository
	// Profiles は優先度順です（チャートの meta、銘柄ページ）
	Profiles   []companyusecase.ProfileRepository
	Financials companyusecase.FinancialsRepository
}

// priceProvider は価格系（ローソク足・終値・現在値）を提供するクライアントです。
type priceProvider interface {
	candlesusecase.MarketRepository
	valuationusecase.PriceSeriesRepository
	valuationusecase.QuoteRepository
}

var (
	_ priceProvider = (*yahoo.ChartClient)(nil)
	_ priceProvider = (*twelvedata.TwelveDataMarket)(nil)
)

// ProviderFromEnv は MARKET_DATA_PROVIDER を返します。未設定時は yahoo。
func ProviderFromEnv() string {
	p := strings.ToLower(strings.TrimSpace(os.Getenv("MARKET_DATA_PROVIDER")))
	if p == "" {
		return ProviderYahoo
	}
	return p
}

// NewMarket は provider に応じた価格クライアントと Yahoo の P/E スクレイパーを組み立てます。
// 企業情報と財務諸表は provider に関係なく Yahoo から取得します。
// rdb が nil でない場合は市場クローズまでをTTLとするキャッシュでラップします（分足・時間足は短いTTL）。
func NewMarket(provider string, rdb *redis.Client) (Market, error) {
	ycfg := yahoo.LoadConfig()
	yclient := infrahttp.NewHTTPClient(ycfg.Timeout)

	chart := yahoo.NewChartClient(ycfg, yclient)

	var prices priceProvider
	switch provider {
	case ProviderYahoo:
		prices = chart
	case ProviderTwelveData:
		tcfg := twelvedata.LoadConfig()
		if tcfg.TwelveDataAPIKey == "" {
			slog.Warn("TWELVE_DATA_API_KEY is not set; requests will be rejected")
		}
		prices = twelvedata.NewTwelveDataMarket(tcfg, infrahttp.NewHTTPClient(tcfg.Timeout))
	default:
		return Market{}, fmt.Errorf("unsupported MARKET_DATA_PROVIDER %q", provider)
	}

	limiter := ratelimiter.NewRateLimiter("yahoo-quote", ycfg.RequestsPerSecond, 1)
	scraper := yahoo.NewQuoteScraper(ycfg, yclient, limiter)

	m := Market{
		Candles:      prices,
		Prices:       prices,
		Quotes:       prices,
		Fundamentals: scraper,
		Profiles:     []companyusecase.ProfileRepository{chart, scraper},
		Financials:   chart,
	}
	if rdb != nil {
		// TTL 0 は次の米国市場クローズまで
		m.Candles = cache.NewCachingCandleRepository(rdb, 0, prices, "")
		m.Prices = cache.NewCachingPriceSeriesRepository(rdb, 0, prices, "")
		m.Fundamentals = cache.NewCachingFundamentalsRepository(rdb, 0, scraper, "")
		m.Profiles = []companyusecase.ProfileRepository{
			cache.NewCachingProfileRepository(rdb, 0, chart, "profile-chart"),
			cache.NewCachingProfileRepository(rdb, 0, scraper, "profile-quote"),
		}
		m.Financials = cache.NewCachingFinancialsRepository(rdb, financialsTTL, chart, "")
	}
	slog.Info("market data configured", "provider", provider, "cache", rdb != nil)
	return m, nil
}
