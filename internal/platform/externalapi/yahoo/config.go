// Package yahoo provides clients for the Yahoo Finance chart API and quote pages.
package yahoo

import (
	"os"
	"strconv"
	"time"
)

const (
	defaultChartBaseURL = "https://query1.finance.yahoo.com"
	defaultQuoteBaseURL = "https://finance.yahoo.com"
	defaultUserAgent    = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
)

// Config holds configuration for the Yahoo Finance clients.
type Config struct {
	ChartBaseURL      string        // Base URL of the v8 chart API
	QuoteBaseURL      string        // Base URL of the HTML quote pages
	RequestsPerSecond float64       // Pacing for quote page downloads; 0 disables pacing
	UserAgent         string        // Yahoo rejects requests without a browser-like agent
	Timeout           time.Duration // HTTP request timeout
}

// LoadConfig loads Yahoo Finance configuration from environment variables.
func LoadConfig() Config {
	cfg := Config{
		ChartBaseURL:      os.Getenv("YAHOO_CHART_BASE_URL"),
		QuoteBaseURL:      os.Getenv("YAHOO_QUOTE_BASE_URL"),
		RequestsPerSecond: 1,
		UserAgent:         defaultUserAgent,
		Timeout:           10 * time.Second,
	}
	if cfg.ChartBaseURL == "" {
		cfg.ChartBaseURL = defaultChartBaseURL
	}
	if cfg.QuoteBaseURL == "" {
		cfg.QuoteBaseURL = defaultQuoteBaseURL
	}
	if v, err := strconv.ParseFloat(os.Getenv("YAHOO_REQUESTS_PER_SECOND"), 64); err == nil && v >= 0 {
		cfg.RequestsPerSecond = v
	}
	return cfg
}
