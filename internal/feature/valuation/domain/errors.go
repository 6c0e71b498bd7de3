// Package domain defines domain-level errors for the valuation feature.
package domain

import "errors"

// Domain errors for valuation operations.
// Upper layers map these to a single user-facing message per request.
var (
	// ErrDataUnavailable indicates that fundamentals, quotes or price history could not be obtained.
	// No valuation is computed when this is returned.
	ErrDataUnavailable = errors.New("data unavailable")

	// ErrInsufficientData indicates that a price series is too short to compute any growth window.
	// The usecase reacts to it by falling back to a shorter window instead of failing.
	ErrInsufficientData = errors.New("insufficient data")

	// ErrDivision indicates a zero-valued denominator in growth or valuation math.
	// It is never coerced into zero, NaN or Inf.
	ErrDivision = errors.New("division by zero")
)
