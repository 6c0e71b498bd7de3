package entity

import (
	"sort"
	"time"
)

// FinancialCell は1項目・1決算期の値です。
type FinancialCell struct {
	Item   string
	Period time.Time
	Value  float64
}

// FinancialRow は1項目分の行です。Values は FinancialStatement.Periods と同じ順で、欠損は nil です。
type FinancialRow struct {
	Item   string
	Values []*float64
}

// FinancialStatement は年次損益計算書を項目×決算期の表で表します。
// Periods は新しい決算期から順に並びます。
type FinancialStatement struct {
	Symbol   string
	Currency string
	Periods  []time.Time
	Rows     []FinancialRow
}

// NewFinancialStatement は cells を items の順に行へ並べた表を作成します。
// 値が1つもない項目は行に含めず、items にない項目は無視します。
func NewFinancialStatement(symbol, currency string, items []string, cells []FinancialCell) FinancialStatement {
	known := make(map[string]bool, len(items))
	for _, it := range items {
		known[it] = true
	}

	seen := map[int64]bool{}
	var periods []time.Time
	byItem := map[string]map[int64]float64{}
	for _, c := range cells {
		if !known[c.Item] {
			continue
		}
		key := c.Period.Unix()
		if !seen[key] {
			seen[key] = true
			periods = append(periods, c.Period)
		}
		if byItem[c.Item] == nil {
			byItem[c.Item] = map[int64]float64{}
		}
		byItem[c.Item][key] = c.Value
	}
	sort.Slice(periods, func(i, j int) bool { return periods[i].After(periods[j]) })

	rows := make([]FinancialRow, 0, len(items))
	for _, it := range items {
		vals, ok := byItem[it]
		if !ok {
			continue
		}
		row := FinancialRow{Item: it, Values: make([]*float64, len(periods))}
		for i, p := range periods {
			if v, ok := vals[p.Unix()]; ok {
				row.Values[i] = &v
			}
		}
		rows = append(rows, row)
	}

	return FinancialStatement{Symbol: symbol, Currency: currency, Periods: periods, Rows: rows}
}

// Empty は行が1つもない場合 true を返します。
func (s FinancialStatement) Empty() bool { return len(s.Rows) == 0 }
