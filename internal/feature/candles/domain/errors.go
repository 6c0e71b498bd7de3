// Package domain はcandlesフィーチャーのドメインエラーを定義します。
package domain

import "errors"

var (
	// ErrInvalidPeriod はチャート期間として対応していない値が指定された場合のエラーです。
	ErrInvalidPeriod = errors.New("invalid period")

	// ErrNoData は取得結果が空だった場合のエラーです。
	ErrNoData = errors.New("no price data")
)
