// Package usecase implements the business logic for watchlist operations.
package usecase

import (
	"context"
	"fmt"
	"strings"

	"stock_valuation/internal/feature/symbollist/domain/entity"
	"stock_valuation/internal/shared/ticker"
)

// SymbolRepository abstracts the persistence layer for watchlist symbols.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type SymbolRepository interface {
	ListActive(ctx context.Context) ([]entity.Symbol, error)
	FindByCode(ctx context.Context, code string) (entity.Symbol, error)
	Upsert(ctx context.Context, s *entity.Symbol) error
}

// SymbolUsecase provides business logic for watchlist operations.
type SymbolUsecase struct {
	repo SymbolRepository
}

// NewSymbolUsecase creates a new SymbolUsecase with the given repository.
func NewSymbolUsecase(r SymbolRepository) *SymbolUsecase {
	return &SymbolUsecase{repo: r}
}

// ListActiveSymbols returns all active symbols ordered by sort key.
func (u *SymbolUsecase) ListActiveSymbols(ctx context.Context) ([]entity.Symbol, error) {
	return u.repo.ListActive(ctx)
}

// RegisterSymbol validates and upserts a watchlist entry, returning the stored row.
func (u *SymbolUsecase) RegisterSymbol(ctx context.Context, s entity.Symbol) (entity.Symbol, error) {
	code, err := ticker.Normalize(s.Code)
	if err != nil {
		return entity.Symbol{}, fmt.Errorf("%w: %w", ErrInvalidSymbol, err)
	}
	s.Code = code
	s.Name = strings.TrimSpace(s.Name)
	s.Market = strings.TrimSpace(s.Market)
	s.Sector = strings.TrimSpace(s.Sector)

	if s.Name == "" || s.Market == "" {
		return entity.Symbol{}, fmt.Errorf("%w: name and market are required", ErrInvalidSymbol)
	}
	if s.IndustryPER < 0 {
		return entity.Symbol{}, fmt.Errorf("%w: industry P/E must not be negative", ErrInvalidSymbol)
	}

	if err := u.repo.Upsert(ctx, &s); err != nil {
		return entity.Symbol{}, err
	}
	return u.repo.FindByCode(ctx, s.Code)
}
