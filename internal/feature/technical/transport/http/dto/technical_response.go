// Package dto defines data transfer objects for the technical HTTP API.
package dto

import (
	"github.com/shopspring/decimal"

	"stock_valuation/internal/feature/technical/domain/entity"
)

// MACDResponse はMACD線とシグナル線です。
type MACDResponse struct {
	Value  float64 `json:"value"`
	Signal float64 `json:"signal"`
	Trend  string  `json:"trend"`
}

// BollingerResponse はボリンジャーバンド(20, 2σ)です。
type BollingerResponse struct {
	Middle float64 `json:"middle"`
	Upper  float64 `json:"upper"`
	Lower  float64 `json:"lower"`
}

// RSIResponse はRSI(14)とその判定です。
type RSIResponse struct {
	Value  float64 `json:"value"`
	Signal string  `json:"signal"`
}

// TechnicalResponse は GET /technical/:code のレスポンスです。算出できない指標は null になります。
type TechnicalResponse struct {
	Symbol    string             `json:"symbol"`
	AsOf      string             `json:"as_of"`
	Close     float64            `json:"close"`
	RSI       *RSIResponse       `json:"rsi"`
	MACD      *MACDResponse      `json:"macd"`
	Bollinger *BollingerResponse `json:"bollinger"`
	MA20      *float64           `json:"ma20"`
	MA50      *float64           `json:"ma50"`
	MA200     *float64           `json:"ma200"`
}

// NewTechnicalResponse は値を小数点以下2桁に丸めて変換します。
func NewTechnicalResponse(s entity.Snapshot) TechnicalResponse {
	out := TechnicalResponse{
		Symbol: s.Symbol,
		AsOf:   s.AsOf.UTC().Format("2006-01-02"),
		Close:  round(s.Close),
		MA20:   roundPtr(s.MA20),
		MA50:   roundPtr(s.MA50),
		MA200:  roundPtr(s.MA200),
	}
	if s.RSI != nil {
		out.RSI = &RSIResponse{Value: round(*s.RSI), Signal: string(s.RSISignal)}
	}
	if s.MACD != nil {
		out.MACD = &MACDResponse{Value: round(s.MACD.Value), Signal: round(s.MACD.Signal), Trend: string(s.MACDSignal)}
	}
	if b := s.Bollinger; b != nil {
		out.Bollinger = &BollingerResponse{Middle: round(b.Middle), Upper: round(b.Upper), Lower: round(b.Lower)}
	}
	return out
}

func round(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

func roundPtr(v *float64) *float64 {
	if v == nil {
		return nil
	}
	r := round(*v)
	return &r
}
