// Package entity defines the domain models for the valuation feature.
package entity

import "math"

// FundamentalsSnapshot holds the per-share fundamentals a valuation needs.
// A nil field means the provider could not supply the value.
type FundamentalsSnapshot struct {
	Symbol     string   `json:"symbol"`
	EPS        *float64 `json:"eps,omitempty"`         // trailing twelve-month EPS, may be negative
	TrailingPE *float64 `json:"trailing_pe,omitempty"` // trailing P/E, always > 0 when set
}

// NewFundamentalsSnapshot normalizes raw provider values.
// Non-finite EPS and non-positive or non-finite P/E are recorded as unavailable.
func NewFundamentalsSnapshot(symbol string, eps, trailingPE *float64) FundamentalsSnapshot {
	f := FundamentalsSnapshot{Symbol: symbol}
	if eps != nil && isFinite(*eps) {
		v := *eps
		f.EPS = &v
	}
	if trailingPE != nil && isFinite(*trailingPE) && *trailingPE > 0 {
		v := *trailingPE
		f.TrailingPE = &v
	}
	return f
}

// Values returns EPS and trailing P/E. ok is false when either is missing.
func (f FundamentalsSnapshot) Values() (eps, per float64, ok bool) {
	if f.EPS == nil || f.TrailingPE == nil {
		return 0, 0, false
	}
	return *f.EPS, *f.TrailingPE, true
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
