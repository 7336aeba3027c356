package cache

import (
	"context"

	"nutrition-tracker/internal/infrastructure/config"
	"nutrition-tracker/internal/pkg/common"

	"go.uber.org/zap"
)

// Store 估算快取後端
// Get 未命中時回傳非 nil 錯誤；值一律為估算回應的 JSON 字串
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// New 依設定選擇快取後端：停用時回傳 nil，
// 有 redis_addr 時使用 Redis，否則使用行程內快取
func New(cfg *config.Config) (Store, error) {
	if !cfg.Cache.Enabled {
		common.LogInfo("估算快取已停用")
		return nil, nil
	}

	if cfg.Cache.RedisAddr != "" {
		svc, err := NewRedisStore(cfg)
		if err != nil {
			return nil, err
		}
		common.LogInfo("使用 Redis 估算快取",
			zap.String("addr", cfg.Cache.RedisAddr),
		)
		return svc, nil
	}

	return NewManager(cfg), nil
}
