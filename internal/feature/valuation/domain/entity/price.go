package entity

import (
	"sort"
	"time"
)

// PricePoint is a single close observation.
type PricePoint struct {
	Time  time.Time `json:"time"`
	Close float64   `json:"close"`
}

// PriceSeries is a chronologically ascending close-price history for one symbol.
type PriceSeries struct {
	Symbol string       `json:"symbol"`
	Points []PricePoint `json:"points"`
}

// NewPriceSeries builds a series and sorts its points by time ascending.
// Providers such as Twelve Data return newest first.
func NewPriceSeries(symbol string, points []PricePoint) PriceSeries {
	ps := make([]PricePoint, len(points))
	copy(ps, points)
	sort.SliceStable(ps, func(i, j int) bool { return ps[i].Time.Before(ps[j].Time) })
	return PriceSeries{Symbol: symbol, Points: ps}
}

// Len returns the number of observations.
func (s PriceSeries) Len() int { return len(s.Points) }

// Closes returns the close prices in order.
func (s PriceSeries) Closes() []float64 {
	out := make([]float64, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Close
	}
	return out
}
