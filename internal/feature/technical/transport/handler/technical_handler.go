// Package handler はtechnicalフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"stock_valuation/internal/api"
	"stock_valuation/internal/feature/technical/domain"
	"stock_valuation/internal/feature/technical/domain/entity"
	"stock_valuation/internal/feature/technical/transport/http/dto"
	"stock_valuation/internal/shared/ticker"

	"github.com/gin-gonic/gin"
)

// TechnicalUsecase はテクニカル指標算出のユースケースインターフェースです。
type TechnicalUsecase interface {
	GetSnapshot(ctx context.Context, symbol string) (entity.Snapshot, error)
}

// TechnicalHandler はテクニカル指標のHTTPリクエストを処理します。
type TechnicalHandler struct {
	uc TechnicalUsecase
}

// NewTechnicalHandler は新しい TechnicalHandler を作成します。
func NewTechnicalHandler(uc TechnicalUsecase) *TechnicalHandler {
	return &TechnicalHandler{uc: uc}
}

// GetSnapshot は銘柄の最新テクニカル指標をJSONで返します。
//
// エンドポイント例:
// GET /technical/:code
func (h *TechnicalHandler) GetSnapshot(c *gin.Context) {
	code, err := ticker.Normalize(c.Param("code"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	snap, err := h.uc.GetSnapshot(c.Request.Context(), code)
	switch {
	case errors.Is(err, domain.ErrNoData):
		c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
		return
	case err != nil:
		slog.Error("failed to compute technical snapshot", "symbol", code, "error", err)
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: "data unavailable"})
		return
	}

	c.JSON(http.StatusOK, dto.NewTechnicalResponse(snap))
}
