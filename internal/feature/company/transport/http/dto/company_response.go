// Package dto defines data transfer objects for the company HTTP API.
package dto

import (
	"github.com/shopspring/decimal"

	"stock_valuation/internal/feature/company/domain/entity"
)

// ProfileResponse は GET /profile/:code のレスポンスです。取得できなかった項目は null です。
type ProfileResponse struct {
	Symbol           string   `json:"symbol"`
	Name             *string  `json:"name"`
	Sector           *string  `json:"sector"`
	Industry         *string  `json:"industry"`
	Currency         *string  `json:"currency"`
	MarketCap        *float64 `json:"market_cap"`
	FiftyTwoWeekHigh *float64 `json:"fifty_two_week_high"`
	FiftyTwoWeekLow  *float64 `json:"fifty_two_week_low"`
	Beta             *float64 `json:"beta"`
	DividendYieldPct *float64 `json:"dividend_yield_pct"`
}

// FinancialRowResponse は損益計算書の1行です。values は periods と同じ順で、欠損は null です。
type FinancialRowResponse struct {
	Item   string     `json:"item"`
	Values []*float64 `json:"values"`
}

// FinancialsResponse は GET /financials/:code のレスポンスです。
type FinancialsResponse struct {
	Symbol   string                 `json:"symbol"`
	Currency string                 `json:"currency"`
	Periods  []string               `json:"periods"`
	Rows     []FinancialRowResponse `json:"rows"`
}

// NewProfileResponse は価格を小数点以下2桁に、配当利回りをパーセントに変換します。
func NewProfileResponse(p entity.CompanyProfile) ProfileResponse {
	out := ProfileResponse{
		Symbol:           p.Symbol,
		Name:             optional(p.Name),
		Sector:           optional(p.Sector),
		Industry:         optional(p.Industry),
		Currency:         optional(p.Currency),
		MarketCap:        roundPtr(p.MarketCap, 0),
		FiftyTwoWeekHigh: roundPtr(p.FiftyTwoWeekHigh, 2),
		FiftyTwoWeekLow:  roundPtr(p.FiftyTwoWeekLow, 2),
		Beta:             roundPtr(p.Beta, 2),
	}
	if p.DividendYield != nil {
		v := decimal.NewFromFloat(*p.DividendYield).Shift(2).Round(2).InexactFloat64()
		out.DividendYieldPct = &v
	}
	return out
}

// NewFinancialsResponse は決算期を YYYY-MM-DD 形式に変換します。
func NewFinancialsResponse(s entity.FinancialStatement) FinancialsResponse {
	periods := make([]string, len(s.Periods))
	for i, p := range s.Periods {
		periods[i] = p.Format("2006-01-02")
	}
	rows := make([]FinancialRowResponse, 0, len(s.Rows))
	for _, r := range s.Rows {
		rows = append(rows, FinancialRowResponse{Item: r.Item, Values: r.Values})
	}
	return FinancialsResponse{Symbol: s.Symbol, Currency: s.Currency, Periods: periods, Rows: rows}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func roundPtr(v *float64, places int32) *float64 {
	if v == nil {
		return nil
	}
	r := decimal.NewFromFloat(*v).Round(places).InexactFloat64()
	return &r
}
