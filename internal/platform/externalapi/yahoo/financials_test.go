package yahoo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const timeseriesJSON = `{
	"timeseries": {
		"result": [
			{
				"meta": {"symbol": ["AAPL"], "type": ["annualTotalRevenue"]},
				"timestamp": [1664496000, 1696032000],
				"annualTotalRevenue": [
					{"asOfDate": "2022-09-30", "periodType": "12M", "currencyCode": "USD", "reportedValue": {"raw": 394328000000, "fmt": "394.33B"}},
					{"asOfDate": "2023-09-30", "periodType": "12M", "currencyCode": "USD", "reportedValue": {"raw": 383285000000, "fmt": "383.29B"}}
				]
			},
			{
				"meta": {"symbol": ["AAPL"], "type": ["annualNetIncome"]},
				"timestamp": [1664496000, 1696032000],
				"annualNetIncome": [
					null,
					{"asOfDate": "2023-09-30", "periodType": "12M", "currencyCode": "USD", "reportedValue": {"raw": 96995000000, "fmt": "97.00B"}}
				]
			},
			{
				"meta": {"symbol": ["AAPL"], "type": ["annualEBITDA"]}
			}
		],
		"error": null
	}
}`

func TestChartClient_GetFinancials(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ws/fundamentals-timeseries/v1/finance/timeseries/AAPL" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		q := r.URL.Query()
		if !strings.Contains(q.Get("type"), "annualTotalRevenue") || !strings.Contains(q.Get("type"), "annualDilutedEPS") {
			t.Errorf("unexpected type parameter %q", q.Get("type"))
		}
		if q.Get("period2") != "1718150400" {
			t.Errorf("expected period2 from the client clock, got %q", q.Get("period2"))
		}
		_, _ = w.Write([]byte(timeseriesJSON))
	}))
	defer server.Close()

	c := NewChartClient(testConfig(server.URL), server.Client())
	c.now = func() time.Time { return time.Date(2024, 6, 12, 0, 0, 0, 0, time.UTC) }

	s, err := c.GetFinancials(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if s.Currency != "USD" {
		t.Errorf("expected USD, got %q", s.Currency)
	}
	if len(s.Periods) != 2 || s.Periods[0].Year() != 2023 || s.Periods[1].Year() != 2022 {
		t.Fatalf("expected periods newest first, got %v", s.Periods)
	}
	if len(s.Rows) != 2 {
		t.Fatalf("expected 2 rows (EBITDA has no values), got %d", len(s.Rows))
	}
	if s.Rows[0].Item != "Total Revenue" || s.Rows[1].Item != "Net Income" {
		t.Errorf("unexpected row order %q, %q", s.Rows[0].Item, s.Rows[1].Item)
	}
	assertFloatPtr(t, "revenue 2023", ptr(383285000000), s.Rows[0].Values[0])
	assertFloatPtr(t, "net income 2023", ptr(96995000000), s.Rows[1].Values[0])
	assertFloatPtr(t, "net income 2022", nil, s.Rows[1].Values[1])
}

func TestChartClient_GetFinancials_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "api error object", status: http.StatusBadRequest, body: `{"timeseries": {"result": null, "error": {"code": "Bad Request", "description": "Invalid symbol"}}}`},
		{name: "http error", status: http.StatusUnauthorized, body: `Unauthorized`},
		{name: "malformed values", status: http.StatusOK, body: `{"timeseries": {"result": [{"meta": {"type": ["annualNetIncome"]}, "annualNetIncome": "oops"}], "error": null}}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			c := NewChartClient(testConfig(server.URL), server.Client())
			if _, err := c.GetFinancials(context.Background(), "AAPL"); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

func TestChartClient_GetFinancials_NoResults(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"timeseries": {"result": [], "error": null}}`))
	}))
	defer server.Close()

	s, err := NewChartClient(testConfig(server.URL), server.Client()).GetFinancials(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !s.Empty() {
		t.Errorf("expected empty statement, got %+v", s)
	}
}
