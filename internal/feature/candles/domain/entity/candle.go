// Package entity defines the domain models for the candles feature.
package entity

import (
	"time"

	"stock_valuation/internal/shared/marketdata"
)

// Candle represents OHLCV (Open, High, Low, Close, Volume) candlestick data
// for a stock symbol at a specific time interval.
type Candle struct {
	Symbol   string              `json:"symbol"`   // Stock ticker symbol (e.g., "AAPL", "7203.T")
	Interval marketdata.Interval `json:"interval"` // Bar width (e.g., "1d", "1wk")
	Time     time.Time           `json:"time"`     // Timestamp for the start of this candle period
	Open     float64             `json:"open"`
	High     float64             `json:"high"`
	Low      float64             `json:"low"`
	Close    float64             `json:"close"`
	Volume   int64               `json:"volume"`
}
