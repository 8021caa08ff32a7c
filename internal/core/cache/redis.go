package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"smarty-chef/internal/infrastructure/config"
	"smarty-chef/internal/pkg/common"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const redisKeyPrefix = "smarty-chef:"

// RedisStore 以 Redis 保存的共享快取
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore 創建 Redis 快取並測試連線
func NewRedisStore(cfg config.CacheConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	// 測試連接
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	common.LogInfo("快取管理員已初始化",
		zap.String("backend", config.CacheBackendRedis),
		zap.String("addr", cfg.RedisAddr),
		zap.Duration("存活時間", cfg.TTL),
	)

	return &RedisStore{client: client, ttl: cfg.TTL}, nil
}

// Get 獲取緩存
func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool) {
	data, err := s.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			common.LogWarn("Redis 讀取失敗", zap.String("鍵", key), zap.Error(err))
		}
		common.LogCacheMiss(config.CacheBackendRedis, key)
		return nil, false
	}
	common.LogCacheHit(config.CacheBackendRedis, key)
	return data, true
}

// Set 設置緩存
func (s *RedisStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, redisKeyPrefix+key, value, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}
	return nil
}

// Ping 檢查 Redis 連線
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close 關閉連線
func (s *RedisStore) Close() error {
	return s.client.Close()
}
