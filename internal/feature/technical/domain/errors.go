// Package domain defines domain-level errors for the technical feature.
package domain

import "errors"

// ErrNoData indicates that no price history was returned for the symbol.
var ErrNoData = errors.New("no price history")
