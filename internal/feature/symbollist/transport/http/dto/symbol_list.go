// Package dto defines data transfer objects for the symbollist HTTP API.
package dto

// SymbolItem represents a symbol in the API response.
// It contains only the public-facing fields needed by clients.
type SymbolItem struct {
	Code        string  `json:"code"`
	Name        string  `json:"name"`
	Market      string  `json:"market"`
	Sector      string  `json:"sector,omitempty"`
	IndustryPER float64 `json:"industry_per,omitempty"`
}

// RegisterSymbolRequest is the body of POST /symbols.
type RegisterSymbolRequest struct {
	Code        string  `json:"code" binding:"required"`
	Name        string  `json:"name" binding:"required"`
	Market      string  `json:"market" binding:"required"`
	Sector      string  `json:"sector"`
	IndustryPER float64 `json:"industry_per" binding:"gte=0"`
	SortKey     int     `json:"sort_key"`
	Active      *bool   `json:"active"` //省略時は有効
}
