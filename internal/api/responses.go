// Package api はHTTP APIで共通に使用するレスポンス型を定義します。
package api

// ErrorResponse はエラー時のレスポンスボディです。
type ErrorResponse struct {
	Error string `json:"error"`
}

// TokenResponse はトークン発行時のレスポンスです。
type TokenResponse struct {
	Token string `json:"token"`
}
