// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"stock_valuation/internal/api"
	"stock_valuation/internal/feature/auth/domain"
	"stock_valuation/internal/feature/auth/transport/http/dto"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Login は管理者を認証し、成功時にJWTトークンを返します。
	Login(ctx context.Context, username, password string) (string, error)
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login は管理者ログインAPIエンドポイントを処理します。
// - リクエストJSONのバインド失敗時は400を返却
// - 認証失敗時は401を返却
// - 認証成功時はJWTトークン付きで200を返却
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}
	token, err := h.auth.Login(c.Request.Context(), req.Username, req.Password)
	if errors.Is(err, domain.ErrInvalidCredentials) {
		slog.Warn("login failed", "username", req.Username, "remote_addr", c.ClientIP())
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: err.Error()})
		return
	}
	if err != nil {
		slog.Error("login failed", "error", err, "username", req.Username)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "login failed"})
		return
	}
	slog.Info("admin login successful", "username", req.Username, "remote_addr", c.ClientIP())
	c.JSON(http.StatusOK, api.TokenResponse{Token: token})
}
