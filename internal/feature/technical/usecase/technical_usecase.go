// Package usecase はテクニカル指標のスナップショット算出を実装します。
package usecase

import (
	"context"
	"fmt"

	candleentity "stock_valuation/internal/feature/candles/domain/entity"
	"stock_valuation/internal/feature/technical/domain"
	"stock_valuation/internal/feature/technical/domain/entity"
	"stock_valuation/internal/shared/marketdata"
)

// CandleRepository は日足の取得元を抽象化します。
type CandleRepository interface {
	GetCandles(ctx context.Context, symbol string, rng marketdata.Range, interval marketdata.Interval) ([]candleentity.Candle, error)
}

// TechnicalUsecase は1年分の日足から各指標の最新値を算出します。
type TechnicalUsecase struct {
	candles CandleRepository
}

// NewTechnicalUsecase は新しい TechnicalUsecase を作成します。
func NewTechnicalUsecase(candles CandleRepository) *TechnicalUsecase {
	return &TechnicalUsecase{candles: candles}
}

// GetSnapshot は RSI(14)、MACD(12,26,9)、ボリンジャーバンド(20,2σ)、MA20/50/200 を返します。
// 履歴が足りない指標は nil になります。
func (u *TechnicalUsecase) GetSnapshot(ctx context.Context, symbol string) (entity.Snapshot, error) {
	cs, err := u.candles.GetCandles(ctx, symbol, marketdata.Range1Year, marketdata.Interval1Day)
	if err != nil {
		return entity.Snapshot{}, err
	}
	if len(cs) == 0 {
		return entity.Snapshot{}, fmt.Errorf("%s: %w", symbol, domain.ErrNoData)
	}

	closes := make([]float64, len(cs))
	for i, c := range cs {
		closes[i] = c.Close
	}
	last := cs[len(cs)-1]

	snap := entity.Snapshot{Symbol: symbol, AsOf: last.Time, Close: last.Close}

	if v, ok := RSI(closes, rsiPeriod); ok {
		snap.RSI = &v
		snap.RSISignal = ClassifyRSI(v)
	}
	if m, s, ok := MACDLatest(closes, macdFast, macdSlow, macdSignal); ok {
		snap.MACD = &entity.MACD{Value: m, Signal: s}
		snap.MACDSignal = entity.MACDSell
		if m > s {
			snap.MACDSignal = entity.MACDBuy
		}
	}
	if mid, up, lo, ok := Bollinger(closes, bollingerWindow, bollingerWidth); ok {
		snap.Bollinger = &entity.BollingerBands{Middle: mid, Upper: up, Lower: lo}
	}
	snap.MA20 = smaPtr(closes, 20)
	snap.MA50 = smaPtr(closes, 50)
	snap.MA200 = smaPtr(closes, 200)

	return snap, nil
}

// ClassifyRSI は70超を買われすぎ、30未満を売られすぎと判定します。
func ClassifyRSI(v float64) entity.RSISignal {
	switch {
	case v > 70:
		return entity.RSIOverbought
	case v < 30:
		return entity.RSIOversold
	default:
		return entity.RSINeutral
	}
}

func smaPtr(values []float64, window int) *float64 {
	v, ok := SMA(values, window)
	if !ok {
		return nil
	}
	return &v
}
