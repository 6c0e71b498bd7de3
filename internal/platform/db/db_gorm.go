// Package db はGORMによるデータベース接続（PostgreSQL / SQLite）を提供します。
package db

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	symbolentity "stock_valuation/internal/feature/symbollist/domain/entity"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	retryInterval = 3 * time.Second
)

// Config はデータベース接続設定です。
type Config struct {
	Driver       string
	User         string
	Password     string
	Name         string
	Host         string
	Port         string
	SSLMode      string
	InstanceName string // Cloud SQL のインスタンス接続名（設定時はUnixソケット接続）
	SQLitePath   string
	Migrate      bool
}

// LoadConfigFromEnv は環境変数から設定を読み込みます。
// DB_DRIVER 未設定時はローカル開発向けに SQLite を使用します。
func LoadConfigFromEnv() Config {
	cfg := Config{
		Driver:       strings.ToLower(strings.TrimSpace(os.Getenv("DB_DRIVER"))),
		User:         os.Getenv("DB_USER"),
		Password:     os.Getenv("DB_PASSWORD"),
		Name:         os.Getenv("DB_NAME"),
		Host:         os.Getenv("DB_HOST"),
		Port:         os.Getenv("DB_PORT"),
		SSLMode:      os.Getenv("DB_SSLMODE"),
		InstanceName: os.Getenv("INSTANCE_CONNECTION_NAME"),
		SQLitePath:   os.Getenv("SQLITE_PATH"),
		Migrate:      os.Getenv("RUN_MIGRATIONS") == "true",
	}
	if cfg.Driver == "" {
		cfg.Driver = DriverSQLite
	}
	if cfg.SQLitePath == "" {
		cfg.SQLitePath = "stock_valuation.db"
	}
	if cfg.SSLMode == "" {
		cfg.SSLMode = "disable"
	}
	return cfg
}

// BuildDSN はPostgreSQL用のDSN文字列を組み立てます。
// InstanceName が設定されている場合は Host/Port より優先されます。
func BuildDSN(cfg Config) string {
	host := cfg.Host
	if cfg.InstanceName != "" {
		host = "/cloudsql/" + cfg.InstanceName
	}
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		host, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)
	if cfg.InstanceName == "" && cfg.Port != "" {
		dsn += " port=" + cfg.Port
	}
	return dsn
}

// Opener はDSNからDB接続を開く関数です（テストで差し替え可能）。
type Opener func(dsn string) (*gorm.DB, error)

// ConnectWithRetry は timeout に達するまで retryInterval 間隔で接続を再試行します。
func ConnectWithRetry(dsn string, timeout time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().Add(retryInterval).After(deadline) {
			return nil, fmt.Errorf("db connect failed after %s: %w", timeout, err)
		}
		slog.Warn("DB connect failed, retrying", "error", err, "retry_in", retryInterval)
		time.Sleep(retryInterval)
	}
}

// Open は設定に応じたドライバーで接続し、必要であればマイグレーションを実行します。
func Open(cfg Config) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)
	switch cfg.Driver {
	case DriverPostgres:
		db, err = ConnectWithRetry(BuildDSN(cfg), 60*time.Second, func(dsn string) (*gorm.DB, error) {
			return gorm.Open(postgres.Open(dsn), &gorm.Config{})
		})
	case DriverSQLite:
		db, err = gorm.Open(sqlite.Open(cfg.SQLitePath), &gorm.Config{})
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	if cfg.Migrate {
		if err := Migrate(db); err != nil {
			return nil, err
		}
	}
	slog.Info("database connected", "driver", cfg.Driver, "migrated", cfg.Migrate)
	return db, nil
}

// Migrate はウォッチリストのテーブルを作成・更新します。
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&symbolentity.Symbol{}); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}
