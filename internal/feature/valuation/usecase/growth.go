package usecase

import (
	"stock_valuation/internal/feature/valuation/domain"
	"stock_valuation/internal/feature/valuation/domain/entity"
)

const (
	// quarterLength は1四半期あたりの営業日数です。
	quarterLength = 63
	// quartersPerYear は1年の四半期数です。
	quartersPerYear = 4
	// growthRateCap は成長率（%）の上下限です。外れ値の四半期が評価を支配しないよう切り詰めます。
	growthRateCap = 30.0
)

// CalculateGrowthRate は価格系列から平均成長率（%）を算出します。
//
// 系列を63本ずつの四半期（最大4つ）に区切り、各四半期の始値→終値の変化率を平均します。
// 完全な四半期が1つもない場合は、系列全体の変化率を使用します。
// 結果は[-30, 30]に切り詰められます。
//
// エラー:
//   - 空の系列: domain.ErrInsufficientData
//   - 始点の終値が0: domain.ErrDivision
func CalculateGrowthRate(series entity.PriceSeries) (float64, error) {
	closes := series.Closes()
	if len(closes) == 0 {
		return 0, domain.ErrInsufficientData
	}

	var rates []float64
	for i := 0; i < quartersPerYear; i++ {
		end := (i + 1) * quarterLength
		if len(closes) < end {
			break
		}
		r, err := percentChange(closes[i*quarterLength], closes[end-1])
		if err != nil {
			return 0, err
		}
		rates = append(rates, r)
	}

	if len(rates) == 0 {
		r, err := percentChange(closes[0], closes[len(closes)-1])
		if err != nil {
			return 0, err
		}
		return clampGrowthRate(r), nil
	}

	var sum float64
	for _, r := range rates {
		sum += r
	}
	return clampGrowthRate(sum / float64(len(rates))), nil
}

// percentChange は始点から終点への変化率（%）を返します。
func percentChange(start, end float64) (float64, error) {
	if start == 0 {
		return 0, domain.ErrDivision
	}
	return (end - start) / start * 100, nil
}

func clampGrowthRate(g float64) float64 {
	return min(max(g, -growthRateCap), growthRateCap)
}
