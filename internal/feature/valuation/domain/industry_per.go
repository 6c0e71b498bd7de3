package domain

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidIndustryPER indicates an industry P/E that is not a finite non-negative number.
var ErrInvalidIndustryPER = errors.New("industry_per must be a non-negative number")

// ParseIndustryPER parses a user-supplied industry-average P/E.
// An empty value and 0 both mean "not supplied" and yield 0.
func ParseIndustryPER(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrInvalidIndustryPER
	}
	return v, nil
}
