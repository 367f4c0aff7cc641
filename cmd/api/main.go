package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fridge-recommender/internal/api"
	"fridge-recommender/internal/core/catalog"
	"fridge-recommender/internal/core/recommend"
	"fridge-recommender/internal/infrastructure/config"
	"fridge-recommender/internal/pkg/common"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// 載入 .env
	if err := godotenv.Load(); err != nil {
		fmt.Println("Warning: .env file not found")
	}

	// 載入設定
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// 初始化 logger（需在載入 config 後）
	if err := common.InitLogger(cfg.LogLevel); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer common.Sync()

	// 使用 logger 記錄啟動信息
	common.LogInfo("載入設定",
		zap.Int("recommend_limit", cfg.Recommend.Limit),
		zap.Int("urgency_threshold_days", cfg.Recommend.UrgencyThresholdDays),
		zap.Float64("urgency_boost_weight", cfg.Recommend.UrgencyBoostWeight),
	)

	// 初始化結果快取：Redis 優先，其次記憶體
	var cache recommend.ResultCache
	if cfg.Redis.Enabled {
		redisCache, err := recommend.NewRedisCache(cfg)
		if err != nil {
			common.LogFatal("Failed to initialize Redis cache", zap.Error(err))
		}
		cache = redisCache
	} else if manager := recommend.NewCacheManager(cfg); manager != nil {
		cache = manager
	}
	if cache != nil {
		defer cache.Close()
	}

	// 同步食材主檔（啟用時）；同步失敗不擋服務啟動，替代食材展開會停用
	var cat *catalog.Catalog
	if cfg.Catalog.Enabled {
		syncCtx, cancel := context.WithTimeout(context.Background(), cfg.Catalog.Timeout)
		cat, err = catalog.NewSyncClient(&cfg.Catalog).FetchSnapshot(syncCtx)
		cancel()
		if err != nil {
			common.LogWarn("主檔同步失敗，以無主檔模式啟動", zap.Error(err))
			cat = nil
		}
	}

	// 設置路由
	router, err := api.SetupRouter(cfg, cache, cat)
	if err != nil {
		common.LogError("Failed to setup router", zap.Error(err))
		os.Exit(1)
	}

	// 設置 HTTP 服務器
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
			zap.Bool("debug", cfg.App.Debug),
		)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			common.LogError("Failed to start server",
				zap.Error(err),
			)
			os.Exit(1)
		}
	}()

	// 等待中斷信號
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	common.LogInfo("Shutting down server...")

	// 設置關閉超時
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		common.LogError("Server forced to shutdown",
			zap.Error(err),
		)
		os.Exit(1)
	}

	common.LogInfo("Server exited")
}
