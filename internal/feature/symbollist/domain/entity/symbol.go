// Package entity defines the domain models for the symbollist feature.
package entity

import "time"

// Symbol represents a stock ticker on the watchlist.
// IndustryPER is the industry-average P/E used as a valuation benchmark; 0 means none.
type Symbol struct {
	ID          uint      `gorm:"primaryKey"`
	Code        string    `gorm:"size:20;not null;uniqueIndex"`
	Name        string    `gorm:"size:255;not null"`
	Market      string    `gorm:"size:100;not null"`
	Sector      string    `gorm:"size:100;not null;default:''"`
	IndustryPER float64   `gorm:"column:industry_per;not null;default:0"`
	IsActive    bool      `gorm:"not null"`
	SortKey     int       `gorm:"not null;default:0"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime"`
}
