// Package usecase はチャート用ローソク足データのビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"

	"stock_valuation/internal/feature/candles/domain"
	"stock_valuation/internal/feature/candles/domain/entity"
	"stock_valuation/internal/shared/marketdata"
)

// DefaultPeriod はperiod未指定時のチャート期間です。
const DefaultPeriod = marketdata.Range6Months

// MarketRepository はローソク足データの取得元を抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type MarketRepository interface {
	GetCandles(ctx context.Context, symbol string, rng marketdata.Range, interval marketdata.Interval) ([]entity.Candle, error)
}

// chartPeriods は期間ごとの時間足と移動平均の窓幅です。
// 短期（1mo, 3mo）はMA5/MA10、それ以外はMA20/MA50を重ねます。
var chartPeriods = map[marketdata.Range]struct {
	interval marketdata.Interval
	windows  []int
}{
	marketdata.Range1Month:  {marketdata.Interval15Min, []int{5, 10}},
	marketdata.Range3Months: {marketdata.Interval1Hour, []int{5, 10}},
	marketdata.Range6Months: {marketdata.Interval1Day, []int{20, 50}},
	marketdata.Range1Year:   {marketdata.Interval1Day, []int{20, 50}},
	marketdata.Range5Years:  {marketdata.Interval1Week, []int{20, 50}},
}

// candlesUsecase はチャートデータ取得のユースケースです。
type candlesUsecase struct {
	market MarketRepository
}

// NewCandlesUsecase はcandlesUsecaseの新しいインスタンスを生成します。
func NewCandlesUsecase(market MarketRepository) *candlesUsecase {
	return &candlesUsecase{market: market}
}

// GetChart は期間に応じた時間足のローソク足と移動平均を返します。
func (cu *candlesUsecase) GetChart(ctx context.Context, symbol string, period marketdata.Range) (entity.Chart, error) {
	if period == "" {
		period = DefaultPeriod
	}
	p, ok := chartPeriods[period]
	if !ok {
		return entity.Chart{}, fmt.Errorf("%w: %q", domain.ErrInvalidPeriod, period)
	}

	cs, err := cu.market.GetCandles(ctx, symbol, period, p.interval)
	if err != nil {
		return entity.Chart{}, err
	}
	if len(cs) == 0 {
		return entity.Chart{}, fmt.Errorf("%s %s: %w", symbol, period, domain.ErrNoData)
	}

	closes := make([]float64, len(cs))
	for i, c := range cs {
		closes[i] = c.Close
	}
	overlays := make([]entity.MovingAverage, 0, len(p.windows))
	for _, w := range p.windows {
		overlays = append(overlays, entity.MovingAverage{Window: w, Values: RollingMean(closes, w)})
	}

	return entity.Chart{
		Symbol:   symbol,
		Period:   period,
		Interval: p.interval,
		Candles:  cs,
		Overlays: overlays,
	}, nil
}

// RollingMean は窓幅 window の単純移動平均を返します。
// 先頭の window-1 本は利用可能な本数だけで平均します（min_periods=1 相当）。
func RollingMean(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	if window < 1 {
		window = 1
	}
	var sum float64
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		out[i] = sum / float64(min(i+1, window))
	}
	return out
}
