// Package dto defines data transfer objects for the Yahoo Finance chart API responses.
package dto

// ChartResponse represents the JSON response from the v8 finance/chart endpoint.
// Price arrays contain null for bars without trades, hence the pointer elements.
type ChartResponse struct {
	Chart struct {
		Result []ChartResult `json:"result"`
		Error  *ChartError   `json:"error"`
	} `json:"chart"`
}

// ChartResult is one symbol's chart.
type ChartResult struct {
	Meta struct {
		Symbol             string   `json:"symbol"`
		Currency           string   `json:"currency"`
		LongName           string   `json:"longName"`
		ShortName          string   `json:"shortName"`
		RegularMarketPrice float64  `json:"regularMarketPrice"`
		FiftyTwoWeekHigh   *float64 `json:"fiftyTwoWeekHigh"`
		FiftyTwoWeekLow    *float64 `json:"fiftyTwoWeekLow"`
	} `json:"meta"`
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Open   []*float64 `json:"open"`
			High   []*float64 `json:"high"`
			Low    []*float64 `json:"low"`
			Close  []*float64 `json:"close"`
			Volume []*int64   `json:"volume"`
		} `json:"quote"`
	} `json:"indicators"`
}

// ChartError is the error object Yahoo returns alongside a null result.
type ChartError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}
