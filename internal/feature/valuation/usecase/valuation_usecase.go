// Package usecase はPEG調整済みの適正株価算出ロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"stock_valuation/internal/feature/valuation/domain"
	"stock_valuation/internal/feature/valuation/domain/entity"
	"stock_valuation/internal/shared/marketdata"
)

// FundamentalsRepository はEPS・PERの取得元を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type FundamentalsRepository interface {
	GetFundamentals(ctx context.Context, symbol string) (entity.FundamentalsSnapshot, error)
}

// PriceSeriesRepository は終値の時系列の取得元を抽象化します。
type PriceSeriesRepository interface {
	GetPriceSeries(ctx context.Context, symbol string, rng marketdata.Range, interval marketdata.Interval) (entity.PriceSeries, error)
}

// QuoteRepository は現在株価の取得元を抽象化します。
type QuoteRepository interface {
	GetCurrentPrice(ctx context.Context, symbol string) (float64, error)
}

// ValuationUsecase は外部データを集めて適正株価を算出するユースケースです。
type ValuationUsecase struct {
	fundamentals FundamentalsRepository
	prices       PriceSeriesRepository
	quotes       QuoteRepository
}

// NewValuationUsecase は新しい ValuationUsecase を作成します。
func NewValuationUsecase(fundamentals FundamentalsRepository, prices PriceSeriesRepository, quotes QuoteRepository) *ValuationUsecase {
	return &ValuationUsecase{fundamentals: fundamentals, prices: prices, quotes: quotes}
}

// Valuate は指定銘柄の適正株価を算出します。
// industryPER が0以下の場合、業種平均PERとの比較は行いません。
// 取得失敗はすべて domain.ErrDataUnavailable としてラップされます。
func (u *ValuationUsecase) Valuate(ctx context.Context, symbol string, industryPER float64) (entity.ValuationResult, error) {
	f, err := u.fundamentals.GetFundamentals(ctx, symbol)
	if err != nil {
		return entity.ValuationResult{}, unavailable("fundamentals", err)
	}
	if _, _, ok := f.Values(); !ok {
		return entity.ValuationResult{}, fmt.Errorf("fundamentals for %s incomplete: %w", symbol, domain.ErrDataUnavailable)
	}

	price, err := u.quotes.GetCurrentPrice(ctx, symbol)
	if err != nil {
		return entity.ValuationResult{}, unavailable("current price", err)
	}

	growth, err := u.growthRate(ctx, symbol)
	if err != nil {
		return entity.ValuationResult{}, err
	}

	res, err := Estimate(f, price, growth, industryPER)
	if err != nil {
		return entity.ValuationResult{}, err
	}

	slog.Info("valuation computed",
		"symbol", symbol,
		"suitable_price", res.SuitablePrice,
		"current_price", res.CurrentPrice,
		"verdict", res.Verdict,
	)
	return res, nil
}

// growthRate は1年分の日足から成長率を算出します。
// 1年分が取得できない、または空の場合は3ヶ月分の日足にフォールバックします。
func (u *ValuationUsecase) growthRate(ctx context.Context, symbol string) (float64, error) {
	yearly, err := u.prices.GetPriceSeries(ctx, symbol, marketdata.Range1Year, marketdata.Interval1Day)
	if err == nil {
		g, gerr := CalculateGrowthRate(yearly)
		if gerr == nil {
			return g, nil
		}
		if !errors.Is(gerr, domain.ErrInsufficientData) {
			return 0, unavailable("growth rate", gerr)
		}
		err = gerr
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return 0, unavailable("price history", ctxErr)
	}

	slog.Warn("yearly price history unusable, falling back to 3mo window", "symbol", symbol, "error", err)

	short, err := u.prices.GetPriceSeries(ctx, symbol, marketdata.Range3Months, marketdata.Interval1Day)
	if err != nil {
		return 0, unavailable("price history", err)
	}
	g, err := CalculateGrowthRate(short)
	if err != nil {
		return 0, unavailable("growth rate", err)
	}
	return g, nil
}

// unavailable はエラーを domain.ErrDataUnavailable でラップします（元のエラーも保持します）。
func unavailable(what string, err error) error {
	if errors.Is(err, domain.ErrDataUnavailable) {
		return fmt.Errorf("%s: %w", what, err)
	}
	return fmt.Errorf("%s: %w: %w", what, domain.ErrDataUnavailable, err)
}
