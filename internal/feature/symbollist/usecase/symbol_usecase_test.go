package usecase_test

import (
	"context"
	"errors"
	"testing"

	"stock_valuation/internal/feature/symbollist/domain/entity"
	"stock_valuation/internal/feature/symbollist/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockSymbolRepository はSymbolRepositoryインターフェースのモック実装です。
type mockSymbolRepository struct {
	ListActiveFunc func(ctx context.Context) ([]entity.Symbol, error)
	FindByCodeFunc func(ctx context.Context, code string) (entity.Symbol, error)
	UpsertFunc     func(ctx context.Context, s *entity.Symbol) error

	upserted []entity.Symbol
}

func (m *mockSymbolRepository) ListActive(ctx context.Context) ([]entity.Symbol, error) {
	if m.ListActiveFunc != nil {
		return m.ListActiveFunc(ctx)
	}
	return nil, nil
}

func (m *mockSymbolRepository) FindByCode(ctx context.Context, code string) (entity.Symbol, error) {
	if m.FindByCodeFunc != nil {
		return m.FindByCodeFunc(ctx, code)
	}
	for _, s := range m.upserted {
		if s.Code == code {
			return s, nil
		}
	}
	return entity.Symbol{}, usecase.ErrSymbolNotFound
}

func (m *mockSymbolRepository) Upsert(ctx context.Context, s *entity.Symbol) error {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, s)
	}
	m.upserted = append(m.upserted, *s)
	return nil
}

// TestSymbolUsecase_ListActiveSymbols はListActiveSymbolsメソッドの各種シナリオをテーブル駆動テストで検証します。
func TestSymbolUsecase_ListActiveSymbols(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		mockListActive  func(ctx context.Context) ([]entity.Symbol, error)
		expectedSymbols []entity.Symbol
		errMsg          string
	}{
		{
			name: "success: returns list of active symbols",
			mockListActive: func(ctx context.Context) ([]entity.Symbol, error) {
				return []entity.Symbol{
					{ID: 1, Code: "AAPL", Name: "Apple", Market: "NASDAQ", IndustryPER: 28, IsActive: true, SortKey: 1},
					{ID: 2, Code: "7203.T", Name: "Toyota Motor", Market: "TSE", IsActive: true, SortKey: 2},
				}, nil
			},
			expectedSymbols: []entity.Symbol{
				{ID: 1, Code: "AAPL", Name: "Apple", Market: "NASDAQ", IndustryPER: 28, IsActive: true, SortKey: 1},
				{ID: 2, Code: "7203.T", Name: "Toyota Motor", Market: "TSE", IsActive: true, SortKey: 2},
			},
		},
		{
			name: "success: returns empty list when no active symbols",
			mockListActive: func(ctx context.Context) ([]entity.Symbol, error) {
				return []entity.Symbol{}, nil
			},
			expectedSymbols: []entity.Symbol{},
		},
		{
			name: "failure: repository returns error",
			mockListActive: func(ctx context.Context) ([]entity.Symbol, error) {
				return nil, errors.New("database connection failed")
			},
			errMsg: "database connection failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			uc := usecase.NewSymbolUsecase(&mockSymbolRepository{ListActiveFunc: tt.mockListActive})

			symbols, err := uc.ListActiveSymbols(context.Background())

			if tt.errMsg != "" {
				assert.EqualError(t, err, tt.errMsg)
				assert.Nil(t, symbols)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedSymbols, symbols)
		})
	}
}

// TestSymbolUsecase_RegisterSymbol は登録時の正規化と検証を確認します。
func TestSymbolUsecase_RegisterSymbol(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   entity.Symbol
		want    entity.Symbol
		wantErr error
	}{
		{
			name:  "success: code is upper-cased and fields trimmed",
			input: entity.Symbol{Code: " brk-b ", Name: " Berkshire Hathaway ", Market: "NYSE", Sector: " Financials", IndustryPER: 15, IsActive: true},
			want:  entity.Symbol{Code: "BRK-B", Name: "Berkshire Hathaway", Market: "NYSE", Sector: "Financials", IndustryPER: 15, IsActive: true},
		},
		{
			name:    "failure: malformed code",
			input:   entity.Symbol{Code: "AA PL", Name: "Apple", Market: "NASDAQ"},
			wantErr: usecase.ErrInvalidSymbol,
		},
		{
			name:    "failure: missing name",
			input:   entity.Symbol{Code: "AAPL", Name: "  ", Market: "NASDAQ"},
			wantErr: usecase.ErrInvalidSymbol,
		},
		{
			name:    "failure: negative industry P/E",
			input:   entity.Symbol{Code: "AAPL", Name: "Apple", Market: "NASDAQ", IndustryPER: -1},
			wantErr: usecase.ErrInvalidSymbol,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := &mockSymbolRepository{}
			uc := usecase.NewSymbolUsecase(repo)

			got, err := uc.RegisterSymbol(context.Background(), tt.input)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, repo.upserted, "invalid symbols must not reach the repository")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Len(t, repo.upserted, 1)
		})
	}
}

// TestSymbolUsecase_RegisterSymbol_RepositoryError は保存失敗がそのまま返されることを検証します。
func TestSymbolUsecase_RegisterSymbol_RepositoryError(t *testing.T) {
	t.Parallel()

	dbErr := errors.New("unique violation")
	uc := usecase.NewSymbolUsecase(&mockSymbolRepository{
		UpsertFunc: func(ctx context.Context, s *entity.Symbol) error { return dbErr },
	})

	_, err := uc.RegisterSymbol(context.Background(), entity.Symbol{Code: "MSFT", Name: "Microsoft", Market: "NASDAQ"})

	assert.ErrorIs(t, err, dbErr)
	assert.NotErrorIs(t, err, usecase.ErrInvalidSymbol)
}
