// Package handler はvaluationフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"stock_valuation/internal/api"
	"stock_valuation/internal/feature/valuation/domain"
	"stock_valuation/internal/feature/valuation/domain/entity"
	"stock_valuation/internal/feature/valuation/transport/http/dto"
	"stock_valuation/internal/feature/valuation/transport/report"
	"stock_valuation/internal/feature/valuation/usecase"
	"stock_valuation/internal/shared/ticker"

	"github.com/gin-gonic/gin"
)

// ValuationUsecase は1銘柄の適正株価算出を行うユースケースです。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type ValuationUsecase interface {
	Valuate(ctx context.Context, symbol string, industryPER float64) (entity.ValuationResult, error)
}

// ScreenUsecase はウォッチリスト全体を評価するユースケースです。
type ScreenUsecase interface {
	ScreenAll(ctx context.Context) ([]usecase.ScreenItem, error)
}

// ValuationHandler は適正株価に関するHTTPリクエストを処理します。
type ValuationHandler struct {
	valuation ValuationUsecase
	screen    ScreenUsecase
}

// NewValuationHandler は新しい ValuationHandler を作成します。
func NewValuationHandler(valuation ValuationUsecase, screen ScreenUsecase) *ValuationHandler {
	return &ValuationHandler{valuation: valuation, screen: screen}
}

// Valuate は1銘柄の適正株価を返します。
//
// エンドポイント例:
// GET /valuations/:code?industry_per=25&format=text
//
// - industry_per は空または0で「指定なし」、数値でなければ400
// - データ取得失敗は502、計算不能は422
func (h *ValuationHandler) Valuate(c *gin.Context) {
	text := c.Query("format") == "text"

	code, err := ticker.Normalize(c.Param("code"))
	if err != nil {
		respondError(c, text, http.StatusBadRequest, err.Error())
		return
	}
	industryPER, err := domain.ParseIndustryPER(c.Query("industry_per"))
	if err != nil {
		respondError(c, text, http.StatusBadRequest, err.Error())
		return
	}

	res, err := h.valuation.Valuate(c.Request.Context(), code, industryPER)
	if err != nil {
		slog.Error("valuation failed", "symbol", code, "error", err)
		respondError(c, text, statusFor(err), report.Unavailable(err))
		return
	}

	if text {
		c.String(http.StatusOK, report.Render(res))
		return
	}
	c.JSON(http.StatusOK, toResponse(res))
}

// Screen はウォッチリストの全銘柄を評価して返します。
// 個別銘柄の失敗は各要素の error に入り、全体のステータスは200です。
//
// エンドポイント例:
// GET /symbols/valuations
func (h *ValuationHandler) Screen(c *gin.Context) {
	items, err := h.screen.ScreenAll(c.Request.Context())
	if err != nil {
		slog.Error("screening failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to load watchlist"})
		return
	}

	out := make([]dto.ScreenItemResponse, 0, len(items))
	for _, it := range items {
		if it.Err != nil || it.Result == nil {
			out = append(out, dto.NewScreenItemResponse(it, nil, report.Unavailable(it.Err)))
			continue
		}
		v := toResponse(*it.Result)
		out = append(out, dto.NewScreenItemResponse(it, &v, ""))
	}
	c.JSON(http.StatusOK, out)
}

func toResponse(res entity.ValuationResult) dto.ValuationResponse {
	var industry string
	if res.IndustryComparison != nil {
		industry = report.IndustrySentence(*res.IndustryComparison)
	}
	return dto.NewValuationResponse(res, report.VerdictSentence(res.Verdict), industry)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrDataUnavailable):
		return http.StatusBadGateway
	case errors.Is(err, domain.ErrDivision):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, text bool, status int, msg string) {
	if text {
		c.String(status, msg+"\n")
		return
	}
	c.JSON(status, api.ErrorResponse{Error: msg})
}
