// Package usecase はauthフィーチャーのビジネスロジックを実装します。
// ウォッチリストの更新に使う管理者トークンを、環境変数のbcryptハッシュと照合して発行します。
package usecase

import (
	"context"
	"fmt"
	"os"

	"stock_valuation/internal/feature/auth/domain"

	"golang.org/x/crypto/bcrypt"
)

// dummyHash はユーザー名不一致・ハッシュ未設定時にも比較を行うためのハッシュです。
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Credentials は管理者の認証情報です。PasswordHash はbcryptハッシュです。
type Credentials struct {
	Username     string
	PasswordHash string
}

// LoadCredentials は ADMIN_USERNAME（既定 "admin"）と ADMIN_PASSWORD_HASH を読み込みます。
// ハッシュが未設定の場合、ログインは常に失敗します。
func LoadCredentials() Credentials {
	c := Credentials{
		Username:     os.Getenv("ADMIN_USERNAME"),
		PasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
	}
	if c.Username == "" {
		c.Username = "admin"
	}
	return c
}

// JWTGenerator はJWTトークン生成のインターフェースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（platform/jwt）ではなくコンシューマー（usecase）が定義します。
type JWTGenerator interface {
	GenerateToken(subject, role string) (string, error)
}

// authUsecase は管理者ログインを実装します。
type authUsecase struct {
	creds        Credentials
	role         string
	jwtGenerator JWTGenerator
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。発行するトークンには role を付与します。
func NewAuthUsecase(creds Credentials, role string, jwtGenerator JWTGenerator) *authUsecase {
	return &authUsecase{creds: creds, role: role, jwtGenerator: jwtGenerator}
}

// HashPassword はパスワードのbcryptハッシュを返します（ADMIN_PASSWORD_HASH の作成用）。
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Login は認証情報を検証し、成功時に署名済みJWTトークンを返します。
// タイミング攻撃を防止するため、ユーザー名が一致しない場合でもbcrypt比較を実行します。
func (u *authUsecase) Login(ctx context.Context, username, password string) (string, error) {
	hash := dummyHash
	userOK := username == u.creds.Username && u.creds.PasswordHash != ""
	if userOK {
		hash = u.creds.PasswordHash
	}

	// 第1引数はハッシュ化パスワード、第2引数は平文パスワード
	compareErr := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if !userOK || compareErr != nil {
		return "", domain.ErrInvalidCredentials
	}

	token, err := u.jwtGenerator.GenerateToken(username, u.role)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}
