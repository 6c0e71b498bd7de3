// Package http は外部API・スクレイピング用の共通HTTPクライアントを提供します。
package http

import (
	"net"
	"net/http"
	"time"
)

// NewHTTPClient は外部API呼び出し用に設定されたHTTPクライアントを作成します。
// http.DefaultClient にはタイムアウトがないため、外部呼び出しには必ずこれを使います。
//
// 接続先はYahoo FinanceとTwelve Dataの数ホストに限られるため、ホストあたりのアイドル接続を多めに保持します。
// timeout はリクエスト全体（レスポンスボディの読み込みを含む）の上限です。
func NewHTTPClient(timeout time.Duration) *http.Client {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:          100,
		MaxIdleConnsPerHost:   10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ResponseHeaderTimeout: timeout,
	}
	return &http.Client{Timeout: timeout, Transport: t}
}
