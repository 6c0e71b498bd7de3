package main

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"stock_valuation/internal/app/di"
	"stock_valuation/internal/app/router"
	infradb "stock_valuation/internal/platform/db"
	"stock_valuation/internal/platform/http/handler"
	jwtmw "stock_valuation/internal/platform/jwt"
	infraredis "stock_valuation/internal/platform/redis"
)

func main() {
	// .envを読み込む
	if err := godotenv.Load(); err != nil {
		slog.Info(".env not found; using system environment variables")
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel(os.Getenv("LOG_LEVEL"))})))

	ctx := context.Background()

	// db
	db, err := infradb.Open(infradb.LoadConfigFromEnv())
	if err != nil {
		slog.Error("failed to open database", "error", err)
		os.Exit(1)
	}

	// Redis（未設定・接続失敗時はキャッシュなしで起動）
	var rdb *redisv9.Client
	if rcfg := infraredis.LoadConfig(); rcfg.Enabled() {
		if tmp, err := infraredis.NewRedisClient(ctx, rcfg); err != nil {
			slog.Warn("Redis unavailable. Running without cache.")
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					slog.Error("failed to close Redis client", "error", err)
				}
			}()
		}
	}

	market, err := di.NewMarket(di.ProviderFromEnv(), rdb)
	if err != nil {
		slog.Error("failed to configure market data", "error", err)
		os.Exit(1)
	}

	checks := []handler.Check{{Name: "db", Ping: func(ctx context.Context) error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}}}
	if rdb != nil {
		checks = append(checks, handler.Check{Name: "redis", Ping: func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}})
	}

	// JWT_SECRETチェック（開発中の注意喚起）
	secret := jwtmw.SecretFromEnv()
	if secret == "" {
		slog.Warn("JWT_SECRET is not set. POST /symbols will fail until a secret is configured.")
	}

	r := router.NewRouter(di.NewHandlers(db, market, secret), router.Config{
		JWTSecret:    secret,
		HealthChecks: checks,
		CORSOrigins:  splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	slog.Info("server starting", "port", port)
	if err := r.Run(":" + port); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// logLevel は LOG_LEVEL（debug/info/warn/error）を slog.Level に変換します。未知の値は info。
func logLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// splitList はカンマ区切りの値を分割し、空要素を除きます。
func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
