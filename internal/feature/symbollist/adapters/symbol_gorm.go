// Package adapters はsymbollistフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"stock_valuation/internal/feature/symbollist/domain/entity"
	"stock_valuation/internal/feature/symbollist/usecase"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// symbolGorm はSymbolRepositoryインターフェースのGORM実装です（PostgreSQL/SQLite共通）。
type symbolGorm struct {
	db *gorm.DB
}

var _ usecase.SymbolRepository = (*symbolGorm)(nil)

// NewSymbolRepository は指定されたDB接続でsymbolGormリポジトリの新しいインスタンスを生成します。
func NewSymbolRepository(db *gorm.DB) *symbolGorm {
	return &symbolGorm{db: db}
}

// ListActive はsort_key順にすべてのアクティブな銘柄を返します。
func (r *symbolGorm) ListActive(ctx context.Context) ([]entity.Symbol, error) {
	var symbols []entity.Symbol
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("sort_key ASC").
		Find(&symbols).Error; err != nil {
		return nil, err
	}
	return symbols, nil
}

// FindByCode は銘柄コードで1件検索します。見つからない場合は usecase.ErrSymbolNotFound を返します。
func (r *symbolGorm) FindByCode(ctx context.Context, code string) (entity.Symbol, error) {
	var s entity.Symbol
	err := r.db.WithContext(ctx).Where("code = ?", code).Take(&s).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entity.Symbol{}, usecase.ErrSymbolNotFound
	}
	if err != nil {
		return entity.Symbol{}, err
	}
	return s, nil
}

// Upsert は銘柄コードをキーに登録または更新します。
func (r *symbolGorm) Upsert(ctx context.Context, s *entity.Symbol) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "code"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "market", "sector", "industry_per", "is_active", "sort_key", "updated_at",
		}),
	}).Create(s).Error
}
