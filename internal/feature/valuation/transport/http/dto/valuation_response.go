// Package dto defines data transfer objects for the valuation HTTP API.
package dto

import (
	"github.com/shopspring/decimal"

	"stock_valuation/internal/feature/valuation/domain/entity"
	"stock_valuation/internal/feature/valuation/usecase"
)

// IndustryComparisonResponse は業種平均PERとの比較結果です。ratio は倍率です。
type IndustryComparisonResponse struct {
	IndustryPER float64 `json:"industry_per"`
	Ratio       float64 `json:"ratio"`
	Level       string  `json:"level"`
	Summary     string  `json:"summary"`
}

// ValuationResponse は GET /valuations/:code のレスポンスです。
type ValuationResponse struct {
	Symbol             string                      `json:"symbol"`
	EPS                float64                     `json:"eps"`
	PER                float64                     `json:"per"`
	AdjustedPER        float64                     `json:"adjusted_per"`
	GrowthRatePct      float64                     `json:"growth_rate_pct"`
	CurrentPrice       float64                     `json:"current_price"`
	SuitablePrice      float64                     `json:"suitable_price"`
	PEGRatio           *float64                    `json:"peg_ratio"`
	PriceDiffRatioPct  float64                     `json:"price_diff_ratio_pct"`
	Verdict            string                      `json:"verdict"`
	Summary            string                      `json:"summary"`
	IndustryComparison *IndustryComparisonResponse `json:"industry_comparison,omitempty"`
}

// ScreenItemResponse はウォッチリスト1銘柄分の結果です。valuation と error のどちらか一方が入ります。
type ScreenItemResponse struct {
	Code      string             `json:"code"`
	Name      string             `json:"name"`
	Valuation *ValuationResponse `json:"valuation,omitempty"`
	Error     string             `json:"error,omitempty"`
}

// NewValuationResponse は価格を小数点以下2桁（セント単位）に丸めて変換します。
// summary には判定文を入れます。
func NewValuationResponse(r entity.ValuationResult, summary, industrySummary string) ValuationResponse {
	out := ValuationResponse{
		Symbol:            r.Symbol,
		EPS:               round(r.EPS, 2),
		PER:               round(r.PER, 2),
		AdjustedPER:       round(r.AdjustedPER, 2),
		GrowthRatePct:     round(r.GrowthRatePct, 2),
		CurrentPrice:      round(r.CurrentPrice, 2),
		SuitablePrice:     round(r.SuitablePrice, 2),
		PriceDiffRatioPct: round(r.PriceDiffRatioPct, 2),
		Verdict:           string(r.Verdict),
		Summary:           summary,
	}
	if r.PEGRatio != nil {
		p := round(*r.PEGRatio, 2)
		out.PEGRatio = &p
	}
	if c := r.IndustryComparison; c != nil {
		out.IndustryComparison = &IndustryComparisonResponse{
			IndustryPER: round(c.IndustryPER, 2),
			Ratio:       round(c.Ratio, 2),
			Level:       string(c.Level),
			Summary:     industrySummary,
		}
	}
	return out
}

// NewScreenItemResponse は失敗した銘柄に errMessage を設定します。
func NewScreenItemResponse(item usecase.ScreenItem, valuation *ValuationResponse, errMessage string) ScreenItemResponse {
	return ScreenItemResponse{
		Code:      item.Symbol.Code,
		Name:      item.Symbol.Name,
		Valuation: valuation,
		Error:     errMessage,
	}
}

// round は2進浮動小数点の誤差を避けるため decimal で四捨五入します（1.005 -> 1.01）。
func round(v float64, places int32) float64 {
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}
