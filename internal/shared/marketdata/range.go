// Package marketdata defines the lookback ranges and bar intervals shared by market data adapters.
package marketdata

// Range is a lookback window such as "1y".
type Range string

const (
	Range1Day    Range = "1d"
	Range1Month  Range = "1mo"
	Range3Months Range = "3mo"
	Range6Months Range = "6mo"
	Range1Year   Range = "1y"
	Range5Years  Range = "5y"
)

// Interval is a bar width such as "1d".
type Interval string

const (
	Interval15Min Interval = "15m"
	Interval1Hour Interval = "1h"
	Interval1Day  Interval = "1d"
	Interval1Week Interval = "1wk"
)

// Intraday reports whether bars are shorter than one trading day.
func (iv Interval) Intraday() bool {
	return iv == Interval15Min || iv == Interval1Hour
}

// MaxBars is the largest number of bars an adapter requests at once.
const MaxBars = 5000

// tradingDays は各期間のおおよその営業日数です。
var tradingDays = map[Range]int{
	Range1Day:    1,
	Range1Month:  21,
	Range3Months: 63,
	Range6Months: 126,
	Range1Year:   252,
	Range5Years:  1260,
}

// ParseRange は文字列をRangeに変換します。未知の値の場合はfalseを返します。
func ParseRange(s string) (Range, bool) {
	r := Range(s)
	_, ok := tradingDays[r]
	return r, ok
}

// Bars は指定期間・時間足で必要になるおおよそのバー数を返します。
// 件数指定でしか取得できないAPI（Twelve Dataなど）で使用します。
func Bars(r Range, iv Interval) int {
	days, ok := tradingDays[r]
	if !ok {
		days = tradingDays[Range1Year]
	}

	var n int
	switch iv {
	case Interval15Min:
		n = days * 26 // 6.5時間 = 26本
	case Interval1Hour:
		n = days * 7
	case Interval1Week:
		n = (days + 4) / 5
	default:
		n = days
	}

	if n < 1 {
		n = 1
	}
	if n > MaxBars {
		n = MaxBars
	}
	return n
}
