package jwtmw

import (
	"errors"
	"net/http"
	"os"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"stock_valuation/internal/api"
)

// EnvKeyJWTSecret は署名鍵を保持する環境変数名です。
const EnvKeyJWTSecret = "JWT_SECRET"

const (
	ContextSubject = "subject"
	ContextRole    = "role"
)

// ErrMissingSecret は署名鍵が設定されていないことを示します。
var ErrMissingSecret = errors.New("jwt secret is not set")

// SecretFromEnv は JWT_SECRET を返します。
func SecretFromEnv() string {
	return os.Getenv(EnvKeyJWTSecret)
}

// AuthRequired returns a Gin middleware that validates HS256 bearer tokens
// and, when roles are given, requires the "role" claim to be one of them.
func AuthRequired(secret string, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Authorizationヘッダーを取得
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "missing bearer token"})
			return
		}
		tokenStr := strings.TrimPrefix(auth, "Bearer ")

		// 2. 署名鍵未設定はサーバー側の設定ミス
		if secret == "" {
			c.AbortWithStatusJSON(http.StatusInternalServerError, api.ErrorResponse{Error: "server misconfigured"})
			return
		}

		// 3. 署名を検証（HMACのみ許可）
		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "invalid token"})
			return
		}

		// 4. クレームを取り出す
		claims, _ := token.Claims.(jwt.MapClaims)
		sub, _ := claims["sub"].(string)
		role, _ := claims["role"].(string)
		if len(roles) > 0 && !slices.Contains(roles, role) {
			c.AbortWithStatusJSON(http.StatusForbidden, api.ErrorResponse{Error: "insufficient role"})
			return
		}
		c.Set(ContextSubject, sub)
		c.Set(ContextRole, role)

		c.Next()
	}
}
