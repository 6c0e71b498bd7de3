package dto

import "encoding/json"

// TimeseriesResponse represents the fundamentals-timeseries endpoint.
// Each result carries its values under a key equal to its type (e.g. "annualTotalRevenue"),
// so results are kept raw and decoded per type.
type TimeseriesResponse struct {
	Timeseries struct {
		Result []map[string]json.RawMessage `json:"result"`
		Error  *ChartError                  `json:"error"`
	} `json:"timeseries"`
}

// TimeseriesMeta identifies the series of one result.
type TimeseriesMeta struct {
	Symbol []string `json:"symbol"`
	Type   []string `json:"type"`
}

// TimeseriesPoint is one reported value; fiscal years without a filing are null.
type TimeseriesPoint struct {
	AsOfDate      string `json:"asOfDate"`
	PeriodType    string `json:"periodType"`
	CurrencyCode  string `json:"currencyCode"`
	ReportedValue struct {
		Raw float64 `json:"raw"`
		Fmt string  `json:"fmt"`
	} `json:"reportedValue"`
}
