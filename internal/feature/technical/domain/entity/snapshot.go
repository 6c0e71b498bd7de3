// Package entity defines the domain models for the technical feature.
package entity

import "time"

// RSISignal classifies an RSI reading.
type RSISignal string

const (
	RSIOverbought RSISignal = "overbought" // RSI > 70
	RSIOversold   RSISignal = "oversold"   // RSI < 30
	RSINeutral    RSISignal = "neutral"
)

// MACDSignal is the crossover direction of the MACD line against its signal line.
type MACDSignal string

const (
	MACDBuy  MACDSignal = "buy"
	MACDSell MACDSignal = "sell"
)

// MACD holds the latest MACD line and signal line values.
type MACD struct {
	Value  float64
	Signal float64
}

// BollingerBands holds the latest middle band and the bands two standard deviations away.
type BollingerBands struct {
	Middle float64
	Upper  float64
	Lower  float64
}

// Snapshot is the latest reading of each indicator for one symbol.
// A nil indicator means the history was too short to compute it; its signal is then empty.
type Snapshot struct {
	Symbol     string
	AsOf       time.Time // time of the latest bar
	Close      float64   // latest close
	RSI        *float64
	RSISignal  RSISignal
	MACD       *MACD
	MACDSignal MACDSignal
	Bollinger  *BollingerBands
	MA20       *float64
	MA50       *float64
	MA200      *float64
}
