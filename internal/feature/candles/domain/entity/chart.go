package entity

import "stock_valuation/internal/shared/marketdata"

// MovingAverage is a rolling mean of closes aligned index-by-index with the chart candles.
type MovingAverage struct {
	Window int
	Values []float64
}

// Chart is the data behind a price chart for one period.
type Chart struct {
	Symbol   string
	Period   marketdata.Range
	Interval marketdata.Interval
	Candles  []Candle
	Overlays []MovingAverage
}
