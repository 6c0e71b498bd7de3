// Package entity は企業の基本情報と財務諸表を表すエンティティを定義します。
package entity

// CompanyProfile は銘柄の基本情報です。
// 取得できなかった項目は空文字または nil のままにします。
type CompanyProfile struct {
	Symbol           string
	Name             string
	Sector           string
	Industry         string
	Currency         string
	MarketCap        *float64
	FiftyTwoWeekHigh *float64
	FiftyTwoWeekLow  *float64
	Beta             *float64
	DividendYield    *float64 // 0.0042 = 0.42%
}

// Merge は p で未設定の項目を other の値で埋めた結果を返します。p の値が優先されます。
func (p CompanyProfile) Merge(other CompanyProfile) CompanyProfile {
	out := p
	out.Name = firstString(p.Name, other.Name)
	out.Sector = firstString(p.Sector, other.Sector)
	out.Industry = firstString(p.Industry, other.Industry)
	out.Currency = firstString(p.Currency, other.Currency)
	out.MarketCap = firstFloat(p.MarketCap, other.MarketCap)
	out.FiftyTwoWeekHigh = firstFloat(p.FiftyTwoWeekHigh, other.FiftyTwoWeekHigh)
	out.FiftyTwoWeekLow = firstFloat(p.FiftyTwoWeekLow, other.FiftyTwoWeekLow)
	out.Beta = firstFloat(p.Beta, other.Beta)
	out.DividendYield = firstFloat(p.DividendYield, other.DividendYield)
	return out
}

// Empty は銘柄コード以外に何も取得できていない場合 true を返します。
func (p CompanyProfile) Empty() bool {
	return p.Name == "" && p.Sector == "" && p.Industry == "" &&
		p.MarketCap == nil && p.FiftyTwoWeekHigh == nil && p.FiftyTwoWeekLow == nil &&
		p.Beta == nil && p.DividendYield == nil
}

func firstString(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

func firstFloat(a, b *float64) *float64 {
	if a != nil {
		return a
	}
	return b
}
