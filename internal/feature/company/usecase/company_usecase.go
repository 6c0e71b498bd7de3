// Package usecase は企業の基本情報と財務諸表の取得ロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"stock_valuation/internal/feature/company/domain"
	"stock_valuation/internal/feature/company/domain/entity"
)

// ProfileRepository は基本情報の取得元を抽象化します。
// 取得元ごとに埋められる項目が異なるため、複数を組み合わせて使います。
type ProfileRepository interface {
	GetProfile(ctx context.Context, symbol string) (entity.CompanyProfile, error)
}

// FinancialsRepository は年次損益計算書の取得元を抽象化します。
type FinancialsRepository interface {
	GetFinancials(ctx context.Context, symbol string) (entity.FinancialStatement, error)
}

// CompanyUsecase は基本情報と財務諸表を返すユースケースです。
type CompanyUsecase struct {
	profiles   []ProfileRepository
	financials FinancialsRepository
}

// NewCompanyUsecase は新しい CompanyUsecase を作成します。
// profiles は優先度の高い順に渡します。同じ項目は先の取得元の値が使われます。
func NewCompanyUsecase(financials FinancialsRepository, profiles ...ProfileRepository) *CompanyUsecase {
	return &CompanyUsecase{profiles: profiles, financials: financials}
}

// GetProfile は全取得元の結果をまとめた基本情報を返します。
// 一部の取得元が失敗しても、他の取得元で何か埋まっていれば成功とします。
func (u *CompanyUsecase) GetProfile(ctx context.Context, symbol string) (entity.CompanyProfile, error) {
	out := entity.CompanyProfile{Symbol: symbol}
	var errs []error
	for _, src := range u.profiles {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		p, err := src.GetProfile(ctx, symbol)
		if err != nil {
			slog.Warn("profile source failed", "symbol", symbol, "error", err)
			errs = append(errs, err)
			continue
		}
		out = out.Merge(p)
	}

	if out.Empty() {
		if len(errs) == 0 {
			return entity.CompanyProfile{}, fmt.Errorf("%s: %w", symbol, domain.ErrDataUnavailable)
		}
		return entity.CompanyProfile{}, fmt.Errorf("%s: %w: %w", symbol, domain.ErrDataUnavailable, errors.Join(errs...))
	}
	return out, nil
}

// GetFinancials は年次損益計算書を返します。行が1つもない場合は domain.ErrNoFinancials です。
func (u *CompanyUsecase) GetFinancials(ctx context.Context, symbol string) (entity.FinancialStatement, error) {
	s, err := u.financials.GetFinancials(ctx, symbol)
	if err != nil {
		return entity.FinancialStatement{}, fmt.Errorf("financials %s: %w: %w", symbol, domain.ErrDataUnavailable, err)
	}
	if s.Empty() {
		return entity.FinancialStatement{}, fmt.Errorf("%s: %w", symbol, domain.ErrNoFinancials)
	}
	return s, nil
}
