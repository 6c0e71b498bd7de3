package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	symbolentity "stock_valuation/internal/feature/symbollist/domain/entity"
	"stock_valuation/internal/feature/valuation/domain"
	"stock_valuation/internal/feature/valuation/domain/entity"
	"stock_valuation/internal/feature/valuation/transport/handler"
	"stock_valuation/internal/feature/valuation/transport/http/dto"
	"stock_valuation/internal/feature/valuation/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockValuationUsecase struct {
	ValuateFunc     func(ctx context.Context, symbol string, industryPER float64) (entity.ValuationResult, error)
	LastSymbol      string
	LastIndustryPER float64
	Calls           int
}

func (m *mockValuationUsecase) Valuate(ctx context.Context, symbol string, industryPER float64) (entity.ValuationResult, error) {
	m.Calls++
	m.LastSymbol = symbol
	m.LastIndustryPER = industryPER
	if m.ValuateFunc != nil {
		return m.ValuateFunc(ctx, symbol, industryPER)
	}
	return sampleResult(symbol), nil
}

type mockScreenUsecase struct {
	ScreenAllFunc func(ctx context.Context) ([]usecase.ScreenItem, error)
}

func (m *mockScreenUsecase) ScreenAll(ctx context.Context) ([]usecase.ScreenItem, error) {
	return m.ScreenAllFunc(ctx)
}

func sampleResult(symbol string) entity.ValuationResult {
	peg := 2.0
	return entity.ValuationResult{
		Symbol:            symbol,
		EPS:               5,
		PER:               20,
		AdjustedPER:       20,
		GrowthRatePct:     10,
		CurrentPrice:      120,
		SuitablePrice:     125.004999,
		PEGRatio:          &peg,
		PriceDiffRatioPct: 4.0039999,
		Verdict:           entity.VerdictFair,
	}
}

func newRouter(h *handler.ValuationHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/valuations/:code", h.Valuate)
	r.GET("/symbols/valuations", h.Screen)
	return r
}

func get(r *gin.Engine, url string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestValuationHandler_Valuate_JSON(t *testing.T) {
	t.Parallel()

	uc := &mockValuationUsecase{}
	r := newRouter(handler.NewValuationHandler(uc, nil))

	w := get(r, "/valuations/aapl")

	require.Equal(t, http.StatusOK, w.Code)
	var body dto.ValuationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "AAPL", uc.LastSymbol)
	assert.Equal(t, 0.0, uc.LastIndustryPER)
	assert.Equal(t, 125.0, body.SuitablePrice)
	assert.Equal(t, 4.0, body.PriceDiffRatioPct)
	assert.Equal(t, "fair", body.Verdict)
	require.NotNil(t, body.PEGRatio)
	assert.Equal(t, 2.0, *body.PEGRatio)
	assert.Nil(t, body.IndustryComparison)
}

func TestValuationHandler_Valuate_Text(t *testing.T) {
	t.Parallel()

	r := newRouter(handler.NewValuationHandler(&mockValuationUsecase{}, nil))

	w := get(r, "/valuations/AAPL?format=text")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
	assert.Contains(t, w.Body.String(), "Valuation for AAPL")
	assert.Contains(t, w.Body.String(), "Fair value:     $125.00")
}

func TestValuationHandler_Valuate_IndustryPER(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantPER    float64
		wantCalled bool
	}{
		{name: "empty means not supplied", query: "industry_per=", wantStatus: http.StatusOK, wantPER: 0, wantCalled: true},
		{name: "zero means not supplied", query: "industry_per=0", wantStatus: http.StatusOK, wantPER: 0, wantCalled: true},
		{name: "numeric", query: "industry_per=25.5", wantStatus: http.StatusOK, wantPER: 25.5, wantCalled: true},
		{name: "non-numeric", query: "industry_per=abc", wantStatus: http.StatusBadRequest},
		{name: "negative", query: "industry_per=-3", wantStatus: http.StatusBadRequest},
		{name: "nan", query: "industry_per=NaN", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			uc := &mockValuationUsecase{}
			r := newRouter(handler.NewValuationHandler(uc, nil))

			w := get(r, "/valuations/AAPL?"+tt.query)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, tt.wantCalled, uc.Calls == 1)
			if tt.wantCalled {
				assert.Equal(t, tt.wantPER, uc.LastIndustryPER)
			}
		})
	}
}

func TestValuationHandler_Valuate_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		url        string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "invalid ticker",
			url:        "/valuations/AA$PL",
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"invalid ticker symbol"}`,
		},
		{
			name:       "data unavailable",
			url:        "/valuations/AAPL",
			err:        fmt.Errorf("fundamentals: %w: %w", domain.ErrDataUnavailable, errors.New("yahoo quote http 404")),
			wantStatus: http.StatusBadGateway,
			wantBody:   `{"error":"data unavailable"}`,
		},
		{
			name:       "division",
			url:        "/valuations/AAPL",
			err:        domain.ErrDivision,
			wantStatus: http.StatusUnprocessableEntity,
			wantBody:   `{"error":"cannot compute valuation"}`,
		},
		{
			name:       "unexpected",
			url:        "/valuations/AAPL",
			err:        errors.New("boom"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"valuation failed"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			uc := &mockValuationUsecase{
				ValuateFunc: func(ctx context.Context, symbol string, industryPER float64) (entity.ValuationResult, error) {
					return entity.ValuationResult{}, tt.err
				},
			}
			r := newRouter(handler.NewValuationHandler(uc, nil))

			w := get(r, tt.url)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.JSONEq(t, tt.wantBody, w.Body.String())
		})
	}
}

func TestValuationHandler_Valuate_TextError(t *testing.T) {
	t.Parallel()

	uc := &mockValuationUsecase{
		ValuateFunc: func(ctx context.Context, symbol string, industryPER float64) (entity.ValuationResult, error) {
			return entity.ValuationResult{}, domain.ErrDataUnavailable
		},
	}
	r := newRouter(handler.NewValuationHandler(uc, nil))

	w := get(r, "/valuations/AAPL?format=text")

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "data unavailable\n", w.Body.String())
}

func TestValuationHandler_Screen(t *testing.T) {
	t.Parallel()

	res := sampleResult("AAPL")
	res.IndustryComparison = &entity.IndustryComparison{IndustryPER: 25, Ratio: 0.8, Level: entity.IndustryUndervalued}

	sc := &mockScreenUsecase{
		ScreenAllFunc: func(ctx context.Context) ([]usecase.ScreenItem, error) {
			return []usecase.ScreenItem{
				{Symbol: symbolentity.Symbol{Code: "AAPL", Name: "Apple"}, Result: &res},
				{Symbol: symbolentity.Symbol{Code: "ZZZZ", Name: "Unknown"}, Err: domain.ErrDataUnavailable},
			}, nil
		},
	}
	r := newRouter(handler.NewValuationHandler(nil, sc))

	w := get(r, "/symbols/valuations")

	require.Equal(t, http.StatusOK, w.Code)
	var body []dto.ScreenItemResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body, 2)

	assert.Equal(t, "AAPL", body[0].Code)
	require.NotNil(t, body[0].Valuation)
	require.NotNil(t, body[0].Valuation.IndustryComparison)
	assert.Equal(t, "undervalued", body[0].Valuation.IndustryComparison.Level)
	assert.Empty(t, body[0].Error)

	assert.Equal(t, "ZZZZ", body[1].Code)
	assert.Nil(t, body[1].Valuation)
	assert.Equal(t, "data unavailable", body[1].Error)
}

func TestValuationHandler_Screen_ListError(t *testing.T) {
	t.Parallel()

	sc := &mockScreenUsecase{
		ScreenAllFunc: func(ctx context.Context) ([]usecase.ScreenItem, error) {
			return nil, errors.New("db down")
		},
	}
	r := newRouter(handler.NewValuationHandler(nil, sc))

	w := get(r, "/symbols/valuations")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"failed to load watchlist"}`, w.Body.String())
}
