package cache

import (
	"time"
)

var newYork = mustLoadLocation("America/New_York")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		// tzdataがない環境では EST 固定で代替
		return time.FixedZone("EST", -5*60*60)
	}
	return loc
}

// TimeUntilNextMarketClose は now から次の米国市場クローズ（平日16:00 ニューヨーク時間）までの期間を返します。
// 土日は翌月曜のクローズまで延長します。
func TimeUntilNextMarketClose(now time.Time) time.Duration {
	local := now.In(newYork)
	next := time.Date(local.Year(), local.Month(), local.Day(), 16, 0, 0, 0, newYork)

	// 今日のクローズが既に過ぎている場合は翌日
	if !local.Before(next) {
		next = next.AddDate(0, 0, 1)
	}
	for next.Weekday() == time.Saturday || next.Weekday() == time.Sunday {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(now)
}
