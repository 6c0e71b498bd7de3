// Package domain はcompanyフィーチャーのドメインエラーを定義します。
package domain

import "errors"

var (
	// ErrDataUnavailable はすべての取得元から企業情報を取得できなかった場合のエラーです。
	ErrDataUnavailable = errors.New("data unavailable")

	// ErrNoFinancials は財務諸表が1件も返らなかった場合のエラーです。
	ErrNoFinancials = errors.New("no financial statements")
)
