package redis

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"health_backend/internal/app/config"
)

// NewClient はRedisクライアントを生成し、接続確認を行います。
// REDIS_HOSTが未設定の場合は(nil, nil)を返し、呼び出し側は
// レートリミットなしで動作します。
func NewClient(cfg config.RedisConfig) (*redis.Client, error) {
	if cfg.Host == "" {
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Host + ":" + cfg.Port,
		Password: cfg.Password,
		DB:       0,
	})

	// 接続確認
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		slog.Error("Redis connection failed", "address", rdb.Options().Addr, "error", err)
		return nil, err
	}

	slog.Info("Redis connection successful", "address", rdb.Options().Addr)
	return rdb, nil
}
