// Package dto defines data transfer objects for the candles HTTP API.
package dto

// CandleResponse はロウソク足データのレスポンスDTOです。
type CandleResponse struct {
	Time   string  `json:"time"`   // 日付（日中足はRFC3339）
	Open   float64 `json:"open"`   // 始値
	High   float64 `json:"high"`   // 高値
	Low    float64 `json:"low"`    // 安値
	Close  float64 `json:"close"`  // 終値
	Volume int64   `json:"volume"` // 出来高
}

// OverlayResponse は移動平均線1本分です。
type OverlayResponse struct {
	Name   string    `json:"name"` // "MA20" など
	Values []float64 `json:"values"`
}

// ChartResponse は GET /candles/:code のレスポンスです。
type ChartResponse struct {
	Symbol   string            `json:"symbol"`
	Period   string            `json:"period"`
	Interval string            `json:"interval"`
	Candles  []CandleResponse  `json:"candles"`
	Overlays []OverlayResponse `json:"overlays"`
}
