package cache

import (
	"context"
	"fmt"

	"smarty-chef/internal/infrastructure/config"
)

// Store 外部 API 回應的快取介面
type Store interface {
	// Get 取得快取值，未命中或過期時 ok 為 false
	Get(ctx context.Context, key string) (value []byte, ok bool)

	// Set 寫入快取值
	Set(ctx context.Context, key string, value []byte) error

	// Close 釋放資源
	Close() error
}

// Pinger 可檢查連線狀態的快取
type Pinger interface {
	Ping(ctx context.Context) error
}

// NewStore 依設定建立快取；停用時回傳 nil
func NewStore(cfg config.CacheConfig) (Store, error) {
	if !cfg.Enabled {
		return nil, nil
	}

	switch cfg.Backend {
	case config.CacheBackendMemory:
		return NewMemoryStore(cfg), nil
	case config.CacheBackendRedis:
		store, err := NewRedisStore(cfg)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}
