package usecase

import "errors"

var (
	// ErrSymbolNotFound is returned when no watchlist entry exists for a code.
	ErrSymbolNotFound = errors.New("symbol not found")

	// ErrInvalidSymbol is returned when a watchlist entry fails validation.
	ErrInvalidSymbol = errors.New("invalid symbol")
)
