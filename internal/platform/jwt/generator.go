// Package jwtmw はJWTの発行と検証ミドルウェアを提供します。
package jwtmw

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// RoleAdmin は書き込み系エンドポイントに必要なロールです。
const RoleAdmin = "admin"

// Generator defines the interface for JWT token generation.
type Generator interface {
	// GenerateToken creates a signed JWT token for the given subject and role.
	GenerateToken(subject, role string) (string, error)
}

// generator implements the Generator interface.
type generator struct {
	secret     []byte
	expiration time.Duration
	now        func() time.Time
}

// NewGenerator creates a new JWT generator with the provided secret and expiration duration.
func NewGenerator(secret string, expiration time.Duration) *generator {
	return &generator{
		secret:     []byte(secret),
		expiration: expiration,
		now:        time.Now,
	}
}

var _ Generator = (*generator)(nil)

// GenerateToken creates a signed HS256 token with standard claims plus "role".
func (g *generator) GenerateToken(subject, role string) (string, error) {
	if len(g.secret) == 0 {
		return "", fmt.Errorf("failed to sign token: %w", ErrMissingSecret)
	}
	now := g.now()
	claims := jwt.MapClaims{
		"sub":  subject,
		"role": role,
		"exp":  now.Add(g.expiration).Unix(),
		"iat":  now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}
