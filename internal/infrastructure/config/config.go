package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 應用配置
type Config struct {
	App         AppConfig         `mapstructure:"app"`
	Server      ServerConfig      `mapstructure:"server"`
	Spoonacular SpoonacularConfig `mapstructure:"spoonacular"`
	Cache       CacheConfig       `mapstructure:"cache"`
	RateLimit   RateLimitConfig   `mapstructure:"rate_limit"`
	Log         LogConfig         `mapstructure:"log"`
	Metrics     MetricsConfig     `mapstructure:"metrics"`
	DedupWindow time.Duration     `mapstructure:"dedup_window"`
}

// AppConfig 應用程式設定
type AppConfig struct {
	Env     string `mapstructure:"env"`
	Debug   bool   `mapstructure:"debug"`
	Version string `mapstructure:"version"`
	Name    string `mapstructure:"name"`
}

// ServerConfig 服務器配置
type ServerConfig struct {
	Port           int           `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	IdleTimeout    time.Duration `mapstructure:"idle_timeout"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	MaxBodyBytes   int64         `mapstructure:"max_body_bytes"`
}

// SpoonacularConfig 外部食譜 API 設定
type SpoonacularConfig struct {
	APIKey       string        `mapstructure:"api_key"`
	BaseURL      string        `mapstructure:"base_url"`
	Timeout      time.Duration `mapstructure:"timeout"`
	SearchNumber int           `mapstructure:"search_number"`
	DetailLimit  int           `mapstructure:"detail_limit"`
	Ranking      int           `mapstructure:"ranking"`
	IgnorePantry bool          `mapstructure:"ignore_pantry"`
}

// CacheConfig 食譜詳情快取設定
type CacheConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Backend         string        `mapstructure:"backend"`
	MaxSize         int           `mapstructure:"max_size"`
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
	RedisAddr       string        `mapstructure:"redis_addr"`
	RedisPassword   string        `mapstructure:"redis_password"`
	RedisDB         int           `mapstructure:"redis_db"`
}

// RateLimitConfig 速率限制配置
type RateLimitConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// LogConfig 日誌設定
type LogConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// MetricsConfig 監控指標設定
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

// LoadConfig 載入設定
func LoadConfig() (*Config, error) {
	// .env 不存在時僅使用環境變數與預設值
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()

	// 設定預設值
	setDefaults(v)

	// 設定環境變數前綴
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// 綁定環境變量
	bindings := map[string]string{
		"server.port":              "PORT",
		"server.request_timeout":   "REQUEST_TIMEOUT",
		"spoonacular.api_key":      "SPOONACULAR_API_KEY",
		"spoonacular.base_url":     "SPOONACULAR_BASE_URL",
		"spoonacular.timeout":      "SPOONACULAR_TIMEOUT",
		"spoonacular.detail_limit": "SPOONACULAR_DETAIL_LIMIT",
		"log.level":                "LOG_LEVEL",
		"log.file":                 "LOG_FILE",
		"cache.enabled":            "CACHE_ENABLED",
		"cache.backend":            "CACHE_BACKEND",
		"cache.redis_addr":         "REDIS_ADDR",
		"cache.redis_password":     "REDIS_PASSWORD",
		"rate_limit.enabled":       "RATE_LIMIT_ENABLED",
		"rate_limit.requests":      "RATE_LIMIT_REQUESTS",
		"rate_limit.window":        "RATE_LIMIT_WINDOW",
		"dedup_window":             "DEDUP_WINDOW",
		"metrics.enabled":          "METRICS_ENABLED",
	}
	for key, env := range bindings {
		if err := v.BindEnv(key, "APP_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return nil, fmt.Errorf("failed to bind env %s: %w", env, err)
		}
	}

	// 解析設定
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 驗證必要設定
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// MaskAPIKey 遮罩 API Key，只顯示前後各 4 個字符
func MaskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

// setDefaults 設定預設值
func setDefaults(v *viper.Viper) {
	// 應用程式設定
	v.SetDefault("app.env", "development")
	v.SetDefault("app.debug", true)
	v.SetDefault("app.version", "2.0.0")
	v.SetDefault("app.name", "smarty-chef")

	// 伺服器設定
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.request_timeout", "60s")
	v.SetDefault("server.max_body_bytes", 1<<20)

	// Spoonacular 設定
	v.SetDefault("spoonacular.api_key", "")
	v.SetDefault("spoonacular.base_url", "https://api.spoonacular.com")
	v.SetDefault("spoonacular.timeout", "10s")
	v.SetDefault("spoonacular.search_number", 8)
	v.SetDefault("spoonacular.detail_limit", 5)
	v.SetDefault("spoonacular.ranking", 2)
	v.SetDefault("spoonacular.ignore_pantry", true)

	// 快取設定（預設關閉，每次請求都直接呼叫外部 API）
	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.backend", CacheBackendMemory)
	v.SetDefault("cache.max_size", 500)
	v.SetDefault("cache.ttl", "6h")
	v.SetDefault("cache.cleanup_interval", "10m")
	v.SetDefault("cache.redis_addr", "localhost:6379")
	v.SetDefault("cache.redis_password", "")
	v.SetDefault("cache.redis_db", 0)

	// 限流設定
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests", 60)
	v.SetDefault("rate_limit.window", "1m")

	// 日誌設定
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")

	// 監控設定
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")

	v.SetDefault("dedup_window", "1s")
}

// validateConfig 驗證設定
func validateConfig(config *Config) error {
	// 驗證伺服器設定
	if config.Server.Port <= 0 {
		return fmt.Errorf("server port is required")
	}
	if config.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("invalid max body bytes")
	}

	// 驗證 Spoonacular 設定
	if config.Spoonacular.BaseURL == "" {
		return fmt.Errorf("spoonacular base url is required")
	}
	if config.Spoonacular.Timeout <= 0 {
		return fmt.Errorf("invalid spoonacular timeout")
	}
	if config.Spoonacular.SearchNumber <= 0 {
		return fmt.Errorf("invalid spoonacular search number")
	}
	if config.Spoonacular.DetailLimit <= 0 || config.Spoonacular.DetailLimit > config.Spoonacular.SearchNumber {
		return fmt.Errorf("spoonacular detail limit must be between 1 and %d", config.Spoonacular.SearchNumber)
	}

	// 驗證快取設定
	if config.Cache.Enabled {
		switch config.Cache.Backend {
		case CacheBackendMemory:
			if config.Cache.MaxSize <= 0 {
				return fmt.Errorf("invalid cache max size")
			}
			if config.Cache.CleanupInterval <= 0 {
				return fmt.Errorf("invalid cache cleanup interval")
			}
		case CacheBackendRedis:
			if config.Cache.RedisAddr == "" {
				return fmt.Errorf("redis address is required for redis cache")
			}
		default:
			return fmt.Errorf("unknown cache backend %q", config.Cache.Backend)
		}
		if config.Cache.TTL <= 0 {
			return fmt.Errorf("invalid cache ttl")
		}
	}

	// 驗證限流設定
	if config.RateLimit.Enabled {
		if config.RateLimit.Requests <= 0 {
			return fmt.Errorf("invalid rate limit requests")
		}
		if config.RateLimit.Window <= 0 {
			return fmt.Errorf("invalid rate limit window")
		}
	}

	return nil
}
