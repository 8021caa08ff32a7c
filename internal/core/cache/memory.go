package cache

import (
	"context"
	"sync"
	"time"

	"smarty-chef/internal/infrastructure/config"
	"smarty-chef/internal/pkg/common"

	"go.uber.org/zap"
)

// MemoryStore 程序內快取，超過容量時先清理過期項目再淘汰最少使用者
type MemoryStore struct {
	maxSize int
	ttl     time.Duration
	now     func() time.Time

	mu    sync.Mutex
	store map[string]cacheEntry
	stats cacheStats

	done      chan struct{}
	closeOnce sync.Once
}

// cacheEntry 緩存條目
type cacheEntry struct {
	value       []byte
	expiresAt   time.Time
	lastAccess  time.Time
	accessCount int
}

// cacheStats 緩存統計
type cacheStats struct {
	hits      int64
	misses    int64
	evictions int64
}

// Stats 快取統計快照
type Stats struct {
	Size      int   `json:"size"`
	MaxSize   int   `json:"max_size"`
	Hits      int64 `json:"hits"`
	Misses    int64 `json:"misses"`
	Evictions int64 `json:"evictions"`
}

// NewMemoryStore 創建新的記憶體快取並啟動背景清理
func NewMemoryStore(cfg config.CacheConfig) *MemoryStore {
	m := &MemoryStore{
		maxSize: cfg.MaxSize,
		ttl:     cfg.TTL,
		now:     time.Now,
		store:   make(map[string]cacheEntry),
		done:    make(chan struct{}),
	}

	if cfg.CleanupInterval > 0 {
		go m.startCleanup(cfg.CleanupInterval)
	}

	common.LogInfo("快取管理員已初始化",
		zap.String("backend", config.CacheBackendMemory),
		zap.Int("最大容量", cfg.MaxSize),
		zap.Duration("存活時間", cfg.TTL),
		zap.Duration("清理間隔", cfg.CleanupInterval),
	)

	return m
}

// Get 獲取緩存值
func (m *MemoryStore) Get(ctx context.Context, key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.store[key]
	if !exists {
		m.stats.misses++
		common.LogCacheMiss(config.CacheBackendMemory, key)
		return nil, false
	}

	now := m.now()
	if now.After(entry.expiresAt) {
		delete(m.store, key)
		m.stats.evictions++
		m.stats.misses++
		common.LogCacheMiss(config.CacheBackendMemory, key)
		return nil, false
	}

	entry.lastAccess = now
	entry.accessCount++
	m.store[key] = entry
	m.stats.hits++
	common.LogCacheHit(config.CacheBackendMemory, key)

	return entry.value, true
}

// Set 設置緩存值
func (m *MemoryStore) Set(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.store[key]; !exists && len(m.store) >= m.maxSize {
		// 先清理過期項目，仍然滿載則淘汰最少使用的項目
		if m.cleanup() == 0 {
			m.evictLRU()
		}
	}

	now := m.now()
	m.store[key] = cacheEntry{
		value:      value,
		expiresAt:  now.Add(m.ttl),
		lastAccess: now,
	}
	return nil
}

// startCleanup 啟動清理過期緩存的協程
func (m *MemoryStore) startCleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.mu.Lock()
			m.cleanup()
			m.mu.Unlock()
		case <-m.done:
			return
		}
	}
}

// cleanup 清理過期的緩存，呼叫者需持有鎖
func (m *MemoryStore) cleanup() int {
	now := m.now()
	count := 0

	for key, entry := range m.store {
		if now.After(entry.expiresAt) {
			delete(m.store, key)
			count++
		}
	}
	m.stats.evictions += int64(count)

	if count > 0 {
		common.LogDebug("Cleaned up expired cache entries",
			zap.Int("count", count),
			zap.Int("remaining_size", len(m.store)),
		)
	}

	return count
}

// evictLRU 淘汰訪問次數最少、最久未使用的項目，呼叫者需持有鎖
func (m *MemoryStore) evictLRU() {
	var oldestKey string
	var oldestAccess time.Time
	lowestAccessCount := -1

	for key, entry := range m.store {
		if lowestAccessCount < 0 ||
			entry.accessCount < lowestAccessCount ||
			(entry.accessCount == lowestAccessCount && entry.lastAccess.Before(oldestAccess)) {
			oldestKey = key
			oldestAccess = entry.lastAccess
			lowestAccessCount = entry.accessCount
		}
	}

	if lowestAccessCount >= 0 {
		delete(m.store, oldestKey)
		m.stats.evictions++
		common.LogDebug("快取已淘汰(LRU)", zap.String("鍵", oldestKey))
	}
}

// Stats 獲取緩存統計信息
func (m *MemoryStore) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()

	return Stats{
		Size:      len(m.store),
		MaxSize:   m.maxSize,
		Hits:      m.stats.hits,
		Misses:    m.stats.misses,
		Evictions: m.stats.evictions,
	}
}

// Close 關閉緩存管理器
func (m *MemoryStore) Close() error {
	m.closeOnce.Do(func() {
		close(m.done)

		m.mu.Lock()
		defer m.mu.Unlock()
		m.store = make(map[string]cacheEntry)
		common.LogInfo("快取管理員已關閉",
			zap.Int64("命中次數", m.stats.hits),
			zap.Int64("未命中次數", m.stats.misses),
			zap.Int64("淘汰次數", m.stats.evictions),
		)
	})
	return nil
}
