// Package redis はキャッシュ用のRedisクライアントを提供します。
package redis

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config はRedis接続設定です。
type Config struct {
	Host     string
	Port     string
	Password string
}

// LoadConfig は環境変数から設定を読み込みます。Port 未指定時は6379。
func LoadConfig() Config {
	cfg := Config{
		Host:     os.Getenv("REDIS_HOST"),
		Port:     os.Getenv("REDIS_PORT"),
		Password: os.Getenv("REDIS_PASSWORD"),
	}
	if cfg.Port == "" {
		cfg.Port = "6379"
	}
	return cfg
}

// Enabled はHostが設定されているかを返します。未設定ならキャッシュなしで動作します。
func (c Config) Enabled() bool { return c.Host != "" }

// Addr は host:port 形式のアドレスを返します。
func (c Config) Addr() string { return c.Host + ":" + c.Port }

// NewRedisClient は接続確認（Ping）を行ったうえでクライアントを返します。
func NewRedisClient(ctx context.Context, cfg Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       0,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	// 接続確認
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		slog.Error("Redis connection failed", "address", cfg.Addr(), "error", err)
		_ = rdb.Close()
		return nil, err
	}

	slog.Info("Redis connection successful", "address", cfg.Addr())
	return rdb, nil
}
