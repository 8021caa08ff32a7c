package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"smarty-chef/internal/api"
	"smarty-chef/internal/core/cache"
	"smarty-chef/internal/core/recipe"
	"smarty-chef/internal/core/spoonacular"
	"smarty-chef/internal/infrastructure/config"
	"smarty-chef/internal/infrastructure/metrics"
	"smarty-chef/internal/pkg/common"

	"go.uber.org/zap"
)

func main() {
	// 載入設定（含 .env）
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化 logger（需在載入 config 後）
	if err := common.InitLogger(cfg.Log.Level, cfg.Log.File); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	common.LogInfo("載入設定",
		zap.String("spoonacular_key", config.MaskAPIKey(cfg.Spoonacular.APIKey)),
		zap.String("spoonacular_base_url", cfg.Spoonacular.BaseURL),
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
	)
	if cfg.Spoonacular.APIKey == "" {
		common.LogWarn("SPOONACULAR_API_KEY 未設定，所有請求將使用備用食譜")
	}

	// 初始化快取（預設關閉）
	store, err := cache.NewStore(cfg.Cache)
	if err != nil {
		common.LogFatal("Failed to initialize cache", zap.Error(err))
	}
	if store != nil {
		defer store.Close()
	}

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
	}

	client := spoonacular.NewClient(cfg.Spoonacular, store, m)
	defer client.Close()

	router := api.SetupRouter(cfg, api.Dependencies{
		Resolver: recipe.NewService(client, cfg.Spoonacular.DetailLimit, m),
		Prober:   client,
		Cache:    store,
		Metrics:  m,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	// 啟動服務器
	go func() {
		common.LogInfo("啟動應用",
			zap.String("version", cfg.App.Version),
			zap.String("env", cfg.App.Env),
			zap.Int("port", cfg.Server.Port),
		)

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			common.LogFatal("Failed to start server", zap.Error(err))
		}
	}()

	// 等待中斷信號
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	common.LogInfo("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		common.LogError("Server forced to shutdown", zap.Error(err))
		return
	}

	common.LogInfo("Server exited")
}
