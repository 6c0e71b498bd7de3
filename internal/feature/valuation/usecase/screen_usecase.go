package usecase

import (
	"context"
	"log/slog"

	symbolentity "stock_valuation/internal/feature/symbollist/domain/entity"
	"stock_valuation/internal/feature/valuation/domain/entity"
)

// SymbolLister はウォッチリストの有効銘柄を返します。
type SymbolLister interface {
	ListActiveSymbols(ctx context.Context) ([]symbolentity.Symbol, error)
}

// Valuator は1銘柄の評価を行います。ValuationUsecase が実装します。
type Valuator interface {
	Valuate(ctx context.Context, symbol string, industryPER float64) (entity.ValuationResult, error)
}

// ScreenItem はウォッチリスト1銘柄分の評価結果です。Result と Err のどちらか一方が設定されます。
type ScreenItem struct {
	Symbol symbolentity.Symbol
	Result *entity.ValuationResult
	Err    error
}

// ScreenUsecase はウォッチリスト全体を順番に評価します。
type ScreenUsecase struct {
	symbols  SymbolLister
	valuator Valuator
}

// NewScreenUsecase は新しい ScreenUsecase を作成します。
func NewScreenUsecase(symbols SymbolLister, valuator Valuator) *ScreenUsecase {
	return &ScreenUsecase{symbols: symbols, valuator: valuator}
}

// ScreenAll は有効な全銘柄を1件ずつ評価します。
// 銘柄に登録された業種平均PERを比較基準として使用します。
// 1銘柄の失敗で処理を止めず、結果にエラーとして記録します。
func (u *ScreenUsecase) ScreenAll(ctx context.Context) ([]ScreenItem, error) {
	symbols, err := u.symbols.ListActiveSymbols(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]ScreenItem, 0, len(symbols))
	for _, s := range symbols {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		res, err := u.valuator.Valuate(ctx, s.Code, s.IndustryPER)
		if err != nil {
			slog.Error("failed to valuate symbol", "symbol", s.Code, "error", err)
			out = append(out, ScreenItem{Symbol: s, Err: err})
			continue
		}
		out = append(out, ScreenItem{Symbol: s, Result: &res})
	}
	return out, nil
}
