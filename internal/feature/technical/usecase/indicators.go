package usecase

import "math"

const (
	rsiPeriod       = 14
	macdFast        = 12
	macdSlow        = 26
	macdSignal      = 9
	bollingerWindow = 20
	bollingerWidth  = 2.0
)

// EMA は span 期間の指数移動平均を返します。先頭の値を初期値とします（adjust=False 相当）。
func EMA(values []float64, span int) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}
	alpha := 2 / float64(span+1)
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}
	return out
}

// SMA は直近 window 本の単純平均を返します。本数が足りない場合は false を返します。
func SMA(values []float64, window int) (float64, bool) {
	if window < 1 || len(values) < window {
		return 0, false
	}
	var sum float64
	for _, v := range values[len(values)-window:] {
		sum += v
	}
	return sum / float64(window), true
}

// RSI は Wilder の平滑化（alpha = 1/period）による最新のRSIを返します。
// 値動きが全くない場合は50を返します。
func RSI(closes []float64, period int) (float64, bool) {
	if period < 1 || len(closes) < period+1 {
		return 0, false
	}
	alpha := 1 / float64(period)

	var avgUp, avgDown float64
	for i := 1; i < len(closes); i++ {
		d := closes[i] - closes[i-1]
		up, down := math.Max(d, 0), math.Max(-d, 0)
		if i == 1 {
			avgUp, avgDown = up, down
			continue
		}
		avgUp = alpha*up + (1-alpha)*avgUp
		avgDown = alpha*down + (1-alpha)*avgDown
	}

	if avgUp+avgDown == 0 {
		return 50, true
	}
	return 100 * avgUp / (avgUp + avgDown), true
}

// MACDLatest は MACD(fast, slow) とシグナル線の最新値を返します。
// シグナル線はMACDが揃った slow 本目以降で計算するため、slow+signal-1 本必要です。
func MACDLatest(closes []float64, fast, slow, signal int) (macd, sig float64, ok bool) {
	if len(closes) < slow+signal-1 {
		return 0, 0, false
	}
	emaFast := EMA(closes, fast)
	emaSlow := EMA(closes, slow)

	line := make([]float64, 0, len(closes)-slow+1)
	for i := slow - 1; i < len(closes); i++ {
		line = append(line, emaFast[i]-emaSlow[i])
	}
	signalLine := EMA(line, signal)
	return line[len(line)-1], signalLine[len(signalLine)-1], true
}

// Bollinger は直近 window 本の平均と母標準偏差から求めたバンドを返します。
func Bollinger(closes []float64, window int, width float64) (middle, upper, lower float64, ok bool) {
	middle, ok = SMA(closes, window)
	if !ok {
		return 0, 0, 0, false
	}
	var sq float64
	for _, v := range closes[len(closes)-window:] {
		sq += (v - middle) * (v - middle)
	}
	std := math.Sqrt(sq / float64(window))
	return middle, middle + width*std, middle - width*std, true
}
