package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fy(year int) time.Time { return time.Date(year, 9, 30, 0, 0, 0, 0, time.UTC) }

func TestNewFinancialStatement(t *testing.T) {
	t.Parallel()

	items := []string{"Total Revenue", "Gross Profit", "Net Income"}
	cells := []FinancialCell{
		{Item: "Net Income", Period: fy(2023), Value: 97},
		{Item: "Total Revenue", Period: fy(2022), Value: 394},
		{Item: "Total Revenue", Period: fy(2023), Value: 383},
		{Item: "Net Income", Period: fy(2022), Value: 99},
		{Item: "Unknown Item", Period: fy(2021), Value: 1},
	}

	s := NewFinancialStatement("AAPL", "USD", items, cells)

	assert.Equal(t, []time.Time{fy(2023), fy(2022)}, s.Periods)
	require.Len(t, s.Rows, 2)
	assert.Equal(t, "Total Revenue", s.Rows[0].Item)
	assert.Equal(t, 383.0, *s.Rows[0].Values[0])
	assert.Equal(t, 394.0, *s.Rows[0].Values[1])
	assert.Equal(t, "Net Income", s.Rows[1].Item)
	assert.False(t, s.Empty())
}

func TestNewFinancialStatement_MissingCellsAreNil(t *testing.T) {
	t.Parallel()

	s := NewFinancialStatement("AAPL", "USD", []string{"Total Revenue", "EBITDA"}, []FinancialCell{
		{Item: "Total Revenue", Period: fy(2023), Value: 383},
		{Item: "Total Revenue", Period: fy(2022), Value: 394},
		{Item: "EBITDA", Period: fy(2023), Value: 125},
	})

	require.Len(t, s.Rows, 2)
	ebitda := s.Rows[1]
	require.Len(t, ebitda.Values, 2)
	assert.Equal(t, 125.0, *ebitda.Values[0])
	assert.Nil(t, ebitda.Values[1])
}

func TestNewFinancialStatement_Empty(t *testing.T) {
	t.Parallel()

	s := NewFinancialStatement("AAPL", "", []string{"Total Revenue"}, nil)

	assert.True(t, s.Empty())
	assert.Empty(t, s.Periods)
}

func TestCompanyProfile_Merge(t *testing.T) {
	t.Parallel()

	high, low, beta := 199.6, 164.1, 1.29
	chart := CompanyProfile{Symbol: "AAPL", Name: "Apple Inc.", Currency: "USD", FiftyTwoWeekHigh: &high, FiftyTwoWeekLow: &low}
	quote := CompanyProfile{Symbol: "AAPL", Name: "Apple", Sector: "Technology", Beta: &beta}

	got := chart.Merge(quote)

	assert.Equal(t, "Apple Inc.", got.Name)
	assert.Equal(t, "Technology", got.Sector)
	assert.Equal(t, &beta, got.Beta)
	assert.Equal(t, &high, got.FiftyTwoWeekHigh)
	assert.Nil(t, got.MarketCap)
	assert.False(t, got.Empty())
	assert.True(t, CompanyProfile{Symbol: "AAPL"}.Empty())
}
