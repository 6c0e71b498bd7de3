// Package handler はcompanyフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"stock_valuation/internal/api"
	"stock_valuation/internal/feature/company/domain"
	"stock_valuation/internal/feature/company/domain/entity"
	"stock_valuation/internal/feature/company/transport/http/dto"
	"stock_valuation/internal/feature/company/transport/report"
	"stock_valuation/internal/shared/ticker"

	"github.com/gin-gonic/gin"
)

// CompanyUsecase は企業情報取得のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type CompanyUsecase interface {
	GetProfile(ctx context.Context, symbol string) (entity.CompanyProfile, error)
	GetFinancials(ctx context.Context, symbol string) (entity.FinancialStatement, error)
}

// CompanyHandler は基本情報と財務諸表のHTTPリクエストを処理します。
type CompanyHandler struct {
	uc CompanyUsecase
}

// NewCompanyHandler は新しい CompanyHandler を作成します。
func NewCompanyHandler(uc CompanyUsecase) *CompanyHandler {
	return &CompanyHandler{uc: uc}
}

// GetProfile は会社名・セクター・時価総額などの基本情報を返します。
//
// エンドポイント例:
// GET /profile/:code?format=text
func (h *CompanyHandler) GetProfile(c *gin.Context) {
	text := c.Query("format") == "text"

	code, err := ticker.Normalize(c.Param("code"))
	if err != nil {
		respondError(c, text, http.StatusBadRequest, err.Error())
		return
	}

	p, err := h.uc.GetProfile(c.Request.Context(), code)
	if err != nil {
		slog.Error("failed to load profile", "symbol", code, "error", err)
		respondError(c, text, statusFor(err), report.Unavailable(err))
		return
	}

	if text {
		c.String(http.StatusOK, report.RenderProfile(p))
		return
	}
	c.JSON(http.StatusOK, dto.NewProfileResponse(p))
}

// GetFinancials は年次損益計算書を項目×決算期の表で返します。
//
// エンドポイント例:
// GET /financials/:code?format=text
func (h *CompanyHandler) GetFinancials(c *gin.Context) {
	text := c.Query("format") == "text"

	code, err := ticker.Normalize(c.Param("code"))
	if err != nil {
		respondError(c, text, http.StatusBadRequest, err.Error())
		return
	}

	s, err := h.uc.GetFinancials(c.Request.Context(), code)
	if err != nil {
		slog.Error("failed to load financials", "symbol", code, "error", err)
		respondError(c, text, statusFor(err), report.Unavailable(err))
		return
	}

	if text {
		c.String(http.StatusOK, report.RenderFinancials(s))
		return
	}
	c.JSON(http.StatusOK, dto.NewFinancialsResponse(s))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNoFinancials):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDataUnavailable):
		return http.StatusBadGateway
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
