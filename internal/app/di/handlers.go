package di

import (
	"time"

	"gorm.io/gorm"

	"stock_valuation/internal/app/router"
	authhandler "stock_valuation/internal/feature/auth/transport/handler"
	authusecase "stock_valuation/internal/feature/auth/usecase"
	candleshandler "stock_valuation/internal/feature/candles/transport/handler"
	candlesusecase "stock_valuation/internal/feature/candles/usecase"
	companyhandler "stock_valuation/internal/feature/company/transport/handler"
	companyusecase "stock_valuation/internal/feature/company/usecase"
	symbollistadapters "stock_valuation/internal/feature/symbollist/adapters"
	symbollisthandler "stock_valuation/internal/feature/symbollist/transport/handler"
	symbollistusecase "stock_valuation/internal/feature/symbollist/usecase"
	technicalhandler "stock_valuation/internal/feature/technical/transport/handler"
	technicalusecase "stock_valuation/internal/feature/technical/usecase"
	valuationhandler "stock_valuation/internal/feature/valuation/transport/handler"
	valuationusecase "stock_valuation/internal/feature/valuation/usecase"
	jwtmw "stock_valuation/internal/platform/jwt"
)

// tokenTTL は /login で発行するトークンの有効期間です。
const tokenTTL = 12 * time.Hour

// NewValuationUsecase は市場データ一式から評価ユースケースを作成します。cmd/valuate からも使用します。
func NewValuationUsecase(m Market) *valuationusecase.ValuationUsecase {
	return valuationusecase.NewValuationUsecase(m.Fundamentals, m.Prices, m.Quotes)
}

// NewHandlers はリポジトリ、ユースケース、ハンドラーを組み立てます。
func NewHandlers(db *gorm.DB, m Market, jwtSecret string) router.Handlers {
	// Repository
	symbolRepo := symbollistadapters.NewSymbolRepository(db)

	// Usecase
	authUC := authusecase.NewAuthUsecase(authusecase.LoadCredentials(), jwtmw.RoleAdmin, jwtmw.NewGenerator(jwtSecret, tokenTTL))
	symbolUC := symbollistusecase.NewSymbolUsecase(symbolRepo)
	valuationUC := NewValuationUsecase(m)
	screenUC := valuationusecase.NewScreenUsecase(symbolUC, valuationUC)
	candlesUC := candlesusecase.NewCandlesUsecase(m.Candles)
	technicalUC := technicalusecase.NewTechnicalUsecase(m.Candles)
	companyUC := companyusecase.NewCompanyUsecase(m.Financials, m.Profiles...)

	// Handler
	return router.Handlers{
		Auth:      authhandler.NewAuthHandler(authUC),
		Symbol:    symbollisthandler.NewSymbolHandler(symbolUC),
		Valuation: valuationhandler.NewValuationHandler(valuationUC, screenUC),
		Candles:   candleshandler.NewCandlesHandler(candlesUC),
		Technical: technicalhandler.NewTechnicalHandler(technicalUC),
		Company:   companyhandler.NewCompanyHandler(companyUC),
	}
}
