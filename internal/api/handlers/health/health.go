package health

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"smarty-chef/internal/core/cache"
	"smarty-chef/internal/core/spoonacular"
	"smarty-chef/internal/infrastructure/config"
	"smarty-chef/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const probeTimeout = 5 * time.Second

// HealthResponse 健康檢查響應
type HealthResponse struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	APIKey    string                 `json:"apiKey"`
	Cache     string                 `json:"cache"`
	Features  []string               `json:"features"`
	Runtime   map[string]interface{} `json:"runtime"`
}

// APIStatusResponse 外部 API 連線狀態
type APIStatusResponse struct {
	SpoonacularAPI string    `json:"spoonacularAPI"`
	StatusCode     int       `json:"statusCode,omitempty"`
	DailyLimit     string    `json:"dailyLimit,omitempty"`
	Error          string    `json:"error,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

// StatusProber 檢查外部 API 連線
type StatusProber interface {
	Status(ctx context.Context) spoonacular.Status
	HasAPIKey() bool
}

// Handler 健康檢查處理器
type Handler struct {
	cfg    *config.Config
	prober StatusProber
	cache  cache.Store
	now    func() time.Time
}

// NewHandler 創建健康檢查處理器；store 可為 nil
func NewHandler(cfg *config.Config, prober StatusProber, store cache.Store) *Handler {
	return &Handler{
		cfg:    cfg,
		prober: prober,
		cache:  store,
		now:    time.Now,
	}
}

var features = []string{
	"Spoonacular Recipe API Integration",
	"Dietary Preference Filtering",
	"Allergy Awareness",
	"Offline Fallback Recipes",
}

// HealthCheck 健康檢查處理器
func (h *Handler) HealthCheck(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	apiKey := "missing"
	if h.prober.HasAPIKey() {
		apiKey = "configured"
	}

	cacheState := "disabled"
	if h.cfg.Cache.Enabled {
		cacheState = h.cfg.Cache.Backend
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: h.now().UTC(),
		Version:   h.cfg.App.Version,
		APIKey:    apiKey,
		Cache:     cacheState,
		Features:  features,
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":       m.Alloc,
				"total_alloc": m.TotalAlloc,
				"sys":         m.Sys,
				"num_gc":      m.NumGC,
			},
		},
	})
}

// ReadinessCheck 就緒檢查，快取可連線時才算就緒
func (h *Handler) ReadinessCheck(c *gin.Context) {
	if p, ok := h.cache.(cache.Pinger); ok {
		ctx, cancel := context.WithTimeout(c.Request.Context(), probeTimeout)
		defer cancel()
		if err := p.Ping(ctx); err != nil {
			common.LogWarn("快取連線失敗", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}

// LivenessCheck 存活檢查處理器
func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
	})
}

// APIStatus 檢查 Spoonacular 連線與剩餘額度，一律回應 200
func (h *Handler) APIStatus(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), probeTimeout)
	defer cancel()

	status := h.prober.Status(ctx)
	resp := APIStatusResponse{
		StatusCode: status.StatusCode,
		DailyLimit: status.DailyLimit,
		Error:      status.Error,
		Timestamp:  h.now().UTC(),
	}
	switch {
	case status.Error != "":
		resp.SpoonacularAPI = "Connection Failed"
	case status.Connected:
		resp.SpoonacularAPI = "Connected"
	default:
		resp.SpoonacularAPI = "Failed"
	}

	c.JSON(http.StatusOK, resp)
}
