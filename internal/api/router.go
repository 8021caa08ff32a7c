package api

import (
	"net/http"
	"time"

	"smarty-chef/internal/api/handlers/health"
	recipeHandler "smarty-chef/internal/api/handlers/recipe"
	"smarty-chef/internal/api/middleware"
	"smarty-chef/internal/core/cache"
	"smarty-chef/internal/infrastructure/config"
	"smarty-chef/internal/infrastructure/metrics"
	"smarty-chef/internal/pkg/common"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Dependencies 路由所需的服務
type Dependencies struct {
	Resolver recipeHandler.Resolver
	Prober   health.StatusProber
	Cache    cache.Store      // 可為 nil
	Metrics  *metrics.Metrics // 可為 nil
}

var availableEndpoints = []string{
	"POST /generate-recipe - Generate recipes",
	"POST /api/v1/recipes/generate - Generate recipes",
	"GET /health - Server health check",
	"GET /ready - Readiness probe",
	"GET /live - Liveness probe",
	"GET /api-status - API connection status",
}

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, deps Dependencies) *gin.Engine {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(requestid.New())
	router.Use(middleware.Logger())

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}))

	if cfg.Metrics.Enabled && deps.Metrics != nil {
		router.Use(middleware.Metrics(deps.Metrics))
		router.GET(cfg.Metrics.Path, gin.WrapH(deps.Metrics.Handler()))
	}

	// 健康檢查路由
	healthHandler := health.NewHandler(cfg, deps.Prober, deps.Cache)
	router.GET("/health", healthHandler.HealthCheck)
	router.GET("/ready", healthHandler.ReadinessCheck)
	router.GET("/live", healthHandler.LivenessCheck)
	router.GET("/api-status", healthHandler.APIStatus)

	// 食譜路由
	generate := []gin.HandlerFunc{
		middleware.BodySizeLimit(cfg.Server.MaxBodyBytes),
	}
	if cfg.RateLimit.Enabled {
		generate = append(generate, middleware.NewRateLimiter(cfg.RateLimit.Requests, cfg.RateLimit.Window).Middleware())
	}
	generate = append(generate,
		middleware.NewDeduplicator(cfg.DedupWindow).Middleware(),
		middleware.Timeout(cfg.Server.RequestTimeout),
		recipeHandler.NewHandler(deps.Resolver).HandleGenerateRecipe,
	)

	router.POST("/generate-recipe", generate...)
	v1 := router.Group("/api/v1")
	{
		v1.POST("/recipes/generate", generate...)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":              common.ErrNotFound.Message,
			"availableEndpoints": availableEndpoints,
		})
	})

	common.LogInfo("Router setup completed successfully",
		zap.Bool("metrics_enabled", cfg.Metrics.Enabled),
		zap.Bool("rate_limit_enabled", cfg.RateLimit.Enabled),
		zap.Bool("cache_enabled", deps.Cache != nil),
		zap.Duration("request_timeout", cfg.Server.RequestTimeout),
		zap.Int64("max_body_size", cfg.Server.MaxBodyBytes),
	)

	return router
}
