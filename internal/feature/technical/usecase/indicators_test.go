package usecase_test

import (
	"testing"

	"stock_valuation/internal/feature/technical/domain/entity"
	"stock_valuation/internal/feature/technical/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ramp は start から1ずつ増える n 本の終値を返します。
func ramp(start float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)
	}
	return out
}

func fall(start float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start - float64(i)
	}
	return out
}

func flat(v float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestEMA(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []float64{1, 1.5, 2.25}, usecase.EMA([]float64{1, 2, 3}, 3))
	assert.Empty(t, usecase.EMA(nil, 3))
}

func TestSMA(t *testing.T) {
	t.Parallel()

	v, ok := usecase.SMA(ramp(1, 60), 20)
	require.True(t, ok)
	assert.InDelta(t, 50.5, v, 1e-12)

	_, ok = usecase.SMA(ramp(1, 19), 20)
	assert.False(t, ok)
}

func TestRSI(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		closes []float64
		period int
		want   float64
		wantOK bool
	}{
		// up: 1,0,1 / down: 0,1,0 を alpha=0.5 で平滑化 -> 0.75 / 0.25
		{name: "wilder smoothing", closes: []float64{1, 2, 1, 2}, period: 2, want: 75, wantOK: true},
		{name: "only gains", closes: ramp(1, 30), period: 14, want: 100, wantOK: true},
		{name: "only losses", closes: fall(100, 30), period: 14, want: 0, wantOK: true},
		{name: "no movement", closes: flat(10, 30), period: 14, want: 50, wantOK: true},
		{name: "too short", closes: ramp(1, 14), period: 14, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := usecase.RSI(tt.closes, tt.period)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

func TestMACDLatest(t *testing.T) {
	t.Parallel()

	m, s, ok := usecase.MACDLatest(ramp(1, 60), 12, 26, 9)
	require.True(t, ok)
	assert.InDelta(t, 6.8669642870, m, 1e-9)
	assert.InDelta(t, 6.8053137565, s, 1e-9)
	assert.Greater(t, m, s)

	_, _, ok = usecase.MACDLatest(ramp(1, 33), 12, 26, 9)
	assert.False(t, ok)
	_, _, ok = usecase.MACDLatest(ramp(1, 34), 12, 26, 9)
	assert.True(t, ok)
}

func TestBollinger(t *testing.T) {
	t.Parallel()

	mid, up, lo, ok := usecase.Bollinger(ramp(1, 60), 20, 2)
	require.True(t, ok)
	assert.InDelta(t, 50.5, mid, 1e-12)
	assert.InDelta(t, 50.5+2*5.766281297335398, up, 1e-9)
	assert.InDelta(t, 50.5-2*5.766281297335398, lo, 1e-9)

	mid, up, lo, ok = usecase.Bollinger(flat(7, 20), 20, 2)
	require.True(t, ok)
	assert.Equal(t, []float64{7, 7, 7}, []float64{mid, up, lo})

	_, _, _, ok = usecase.Bollinger(ramp(1, 19), 20, 2)
	assert.False(t, ok)
}

func TestClassifyRSI(t *testing.T) {
	t.Parallel()

	assert.Equal(t, entity.RSIOverbought, usecase.ClassifyRSI(70.01))
	assert.Equal(t, entity.RSINeutral, usecase.ClassifyRSI(70))
	assert.Equal(t, entity.RSINeutral, usecase.ClassifyRSI(30))
	assert.Equal(t, entity.RSIOversold, usecase.ClassifyRSI(29.99))
}
