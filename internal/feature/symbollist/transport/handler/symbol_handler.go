// Package handler はsymbollistフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"stock_valuation/internal/api"
	"stock_valuation/internal/feature/symbollist/domain/entity"
	"stock_valuation/internal/feature/symbollist/transport/http/dto"
	"stock_valuation/internal/feature/symbollist/usecase"

	"github.com/gin-gonic/gin"
)

// SymbolUsecase は銘柄情報に関するユースケースのインターフェースです。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type SymbolUsecase interface {
	ListActiveSymbols(ctx context.Context) ([]entity.Symbol, error)
	RegisterSymbol(ctx context.Context, s entity.Symbol) (entity.Symbol, error)
}

// SymbolHandler は銘柄情報に関するHTTPリクエストを処理します。
type SymbolHandler struct {
	uc SymbolUsecase
}

// NewSymbolHandler は新しい SymbolHandler を作成します。
func NewSymbolHandler(uc SymbolUsecase) *SymbolHandler {
	return &SymbolHandler{uc: uc}
}

// List は有効な銘柄の一覧を取得するAPIです。
// Usecaseでエラーが発生した場合は500 Internal Server Errorを返します。
func (h *SymbolHandler) List(c *gin.Context) {
	symbols, err := h.uc.ListActiveSymbols(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
		return
	}
	out := make([]dto.SymbolItem, 0, len(symbols))
	for _, s := range symbols {
		out = append(out, toItem(s))
	}
	c.JSON(http.StatusOK, out)
}

// Register はウォッチリストに銘柄を登録（または更新）するAPIです。
// - リクエストJSONのバインド失敗・検証エラー時は400を返却
// - 保存失敗時は500を返却
// - 成功時は201を返却
func (h *SymbolHandler) Register(c *gin.Context) {
	var req dto.RegisterSymbolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("register symbol validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	s, err := h.uc.RegisterSymbol(c.Request.Context(), entity.Symbol{
		Code:        req.Code,
		Name:        req.Name,
		Market:      req.Market,
		Sector:      req.Sector,
		IndustryPER: req.IndustryPER,
		SortKey:     req.SortKey,
		IsActive:    active,
	})
	if errors.Is(err, usecase.ErrInvalidSymbol) {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}
	if err != nil {
		slog.Error("register symbol failed", "error", err, "code", req.Code)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to register symbol"})
		return
	}

	slog.Info("symbol registered", "code", s.Code)
	c.JSON(http.StatusCreated, toItem(s))
}

func toItem(s entity.Symbol) dto.SymbolItem {
	return dto.SymbolItem{
		Code:        s.Code,
		Name:        s.Name,
		Market:      s.Market,
		Sector:      s.Sector,
		IndustryPER: s.IndustryPER,
	}
}
