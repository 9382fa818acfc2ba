// Package config はアプリケーション全体の設定を環境変数から読み込みます。
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// DBConfig はリレーショナルデータベース接続の設定です。
type DBConfig struct {
	// Driver is either "postgres" or "sqlite".
	Driver string
	Host   string
	Port   string
	User   string
	Password string
	Name   string
	// SQLitePath is used when Driver is "sqlite".
	SQLitePath string
	// RunMigrations controls whether AutoMigrate runs at startup.
	RunMigrations bool
}

// RedisConfig はRedis接続の設定です。未設定の場合レートリミットは無効になります。
type RedisConfig struct {
	Host     string
	Port     string
	Password string
}

// Config はプロセス全体の設定を保持します。
// グローバル変数ではなく、コンストラクタへ明示的に注入します（テスト分離のため）。
type Config struct {
	AppEnv string
	Addr   string

	DB    DBConfig
	Redis RedisConfig

	// JWTSecret signs session tokens. Rotating it invalidates all
	// outstanding tokens because no session table exists.
	JWTSecret string
	TokenTTL  time.Duration

	OTPLength int
	OTPTTL    time.Duration

	// CipherKey is the base64 AES key for field-level encryption.
	// Empty means a fresh key is generated at startup (see crypto package).
	CipherKey string

	// Requests per window for the auth endpoints, per client.
	RateLimit       int
	RateLimitWindow time.Duration
}

// Load は.env（存在すれば）と環境変数からConfigを構築します。
func Load() *Config {
	if err := godotenv.Load(".env"); err != nil {
		slog.Info(".env not found; using system environment variables")
	}

	return &Config{
		AppEnv: getEnv("APP_ENV", "local"),
		Addr:   ":" + getEnv("PORT", "8080"),
		DB: DBConfig{
			Driver:        getEnv("DB_DRIVER", "sqlite"),
			Host:          getEnv("DB_HOST", "localhost"),
			Port:          getEnv("DB_PORT", "5432"),
			User:          getEnv("DB_USER", ""),
			Password:      getEnv("DB_PASSWORD", ""),
			Name:          getEnv("DB_NAME", "health"),
			SQLitePath:    getEnv("SQLITE_PATH", "./health.db"),
			RunMigrations: getEnv("RUN_MIGRATIONS", "true") == "true",
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", ""),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		JWTSecret:       getEnv("JWT_SECRET", ""),
		TokenTTL:        time.Duration(getEnvInt("ACCESS_TOKEN_EXPIRE_MINUTES", 30)) * time.Minute,
		OTPLength:       getEnvInt("OTP_LENGTH", 6),
		OTPTTL:          time.Duration(getEnvInt("OTP_EXPIRY_MINUTES", 10)) * time.Minute,
		CipherKey:       getEnv("CIPHER_KEY", ""),
		RateLimit:       getEnvInt("AUTH_RATE_LIMIT", 10),
		RateLimitWindow: time.Duration(getEnvInt("AUTH_RATE_WINDOW_SECONDS", 60)) * time.Second,
	}
}

// PostgresDSN はpostgresドライバ用のDSNを組み立てます。
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DB.Host, c.DB.Port, c.DB.User, c.DB.Password, c.DB.Name)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("invalid integer environment variable; using fallback", "key", key, "value", v)
		return fallback
	}
	return n
}
