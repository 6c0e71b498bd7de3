package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"

	"stock_valuation/internal/feature/valuation/domain/entity"
	"stock_valuation/internal/shared/marketdata"
)

type mockPriceSeriesRepository struct {
	series entity.PriceSeries
	err    error
	calls  int
}

func (m *mockPriceSeriesRepository) GetPriceSeries(ctx context.Context, symbol string, rng marketdata.Range, interval marketdata.Interval) (entity.PriceSeries, error) {
	m.calls++
	return m.series, m.err
}

type mockFundamentalsRepository struct {
	snapshot entity.FundamentalsSnapshot
	calls    int
}

func (m *mockFundamentalsRepository) GetFundamentals(ctx context.Context, symbol string) (entity.FundamentalsSnapshot, error) {
	m.calls++
	return m.snapshot, nil
}

func f64(v float64) *float64 { return &v }

func TestCachingPriceSeriesRepository_CacheMissThenStore(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	series := entity.NewPriceSeries("AAPL", []entity.PricePoint{
		{Time: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Close: 100},
	})
	b, _ := json.Marshal(series)

	mock.ExpectGet("prices:AAPL:1y:1d").RedisNil()
	mock.ExpectSet("prices:AAPL:1y:1d", b, time.Hour).SetVal("OK")

	inner := &mockPriceSeriesRepository{series: series}
	repo := NewCachingPriceSeriesRepository(rdb, time.Hour, inner, "")

	got, err := repo.GetPriceSeries(context.Background(), "AAPL", marketdata.Range1Year, marketdata.Interval1Day)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Len() != 1 || inner.calls != 1 {
		t.Errorf("unexpected result %+v (calls %d)", got, inner.calls)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

func TestCachingPriceSeriesRepository_CacheHit(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectGet("prices:AAPL:3mo:1d").SetVal(`{"symbol":"AAPL","points":[{"time":"2024-01-02T00:00:00Z","close":99.5}]}`)

	inner := &mockPriceSeriesRepository{}
	repo := NewCachingPriceSeriesRepository(rdb, time.Hour, inner, "prices")

	got, err := repo.GetPriceSeries(context.Background(), "AAPL", marketdata.Range3Months, marketdata.Interval1Day)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.calls != 0 {
		t.Error("inner repository should not be called on cache hit")
	}
	if closes := got.Closes(); len(closes) != 1 || closes[0] != 99.5 {
		t.Errorf("unexpected closes %v", closes)
	}
}

func TestCachingFundamentalsRepository_StoresCompleteSnapshot(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	snap := entity.NewFundamentalsSnapshot("AAPL", f64(6.4), f64(29.6))
	b, _ := json.Marshal(snap)

	mock.ExpectGet("fundamentals:AAPL").RedisNil()
	mock.ExpectSet("fundamentals:AAPL", b, time.Hour).SetVal("OK")

	repo := NewCachingFundamentalsRepository(rdb, time.Hour, &mockFundamentalsRepository{snapshot: snap}, "")

	got, err := repo.GetFundamentals(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if eps, per, ok := got.Values(); !ok || eps != 6.4 || per != 29.6 {
		t.Errorf("unexpected snapshot %+v", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

func TestCachingFundamentalsRepository_SkipsIncompleteSnapshot(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectGet("fundamentals:AAPL").RedisNil()

	inner := &mockFundamentalsRepository{snapshot: entity.NewFundamentalsSnapshot("AAPL", f64(6.4), nil)}
	repo := NewCachingFundamentalsRepository(rdb, time.Hour, inner, "")

	if _, err := repo.GetFundamentals(context.Background(), "AAPL"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

func TestCachingFundamentalsRepository_CacheHitRoundTrip(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectGet("fundamentals:BRK-B").SetVal(`{"symbol":"BRK-B","eps":45.2,"trailing_pe":9.1}`)

	inner := &mockFundamentalsRepository{}
	repo := NewCachingFundamentalsRepository(rdb, time.Hour, inner, "")

	got, err := repo.GetFundamentals(context.Background(), "BRK-B")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.calls != 0 {
		t.Error("inner repository should not be called on cache hit")
	}
	if eps, per, ok := got.Values(); !ok || eps != 45.2 || per != 9.1 {
		t.Errorf("unexpected snapshot %+v", got)
	}
}
