package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"nutrition-tracker/internal/api/handlers/health"
	logHandler "nutrition-tracker/internal/api/handlers/log"
	"nutrition-tracker/internal/api/middleware"
	"nutrition-tracker/internal/core/estimate"
	"nutrition-tracker/internal/core/estimate/cache"
	"nutrition-tracker/internal/core/food"
	"nutrition-tracker/internal/core/nutrition"
	"nutrition-tracker/internal/infrastructure/config"
	"nutrition-tracker/internal/pkg/common"
	"nutrition-tracker/internal/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// 超時設置
	timeoutDuration = 60 * time.Second
	// 請求體大小限制 (1MB)；純文字 API 不需要更大
	maxBodySize = 1 << 20
)

// SetupRouter 設置路由
func SetupRouter(cfg *config.Config, store *storage.SQLiteStore, cacheStore cache.Store) (*gin.Engine, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	// 設置 gin 模式
	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// 創建路由引擎
	router := gin.New()

	// 註冊基礎中間件
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New()) // 自動生成請求 ID

	// CORS 設置
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 請求體大小限制
	router.Use(middleware.BodySizeLimit(maxBodySize))

	// 限流與去重
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}
	router.Use(middleware.Deduplication(cfg))

	// 載入參考資料表與標準份量表；兩者載入後唯讀
	referenceTable, err := nutrition.LoadTable(cfg.Reference.Path)
	if err != nil {
		common.LogError("Failed to load reference table", zap.Error(err))
		return nil, fmt.Errorf("failed to load reference table: %w", err)
	}

	servingTable, err := food.LoadServingTable(cfg.Reference.ServingPath)
	if err != nil {
		common.LogError("Failed to load serving table", zap.Error(err))
		return nil, fmt.Errorf("failed to load serving table: %w", err)
	}

	// 初始化估算服務與解析管線
	estimator := estimate.NewOpenRouterService(cfg, cacheStore)
	pipeline := nutrition.NewPipeline(referenceTable, servingTable, estimator, cfg.Reference.MatchThreshold)

	common.LogInfo("Services initialized",
		zap.Int("reference_entries", len(referenceTable)),
		zap.Int("serving_entries", len(servingTable)),
		zap.Float64("match_threshold", cfg.Reference.MatchThreshold),
		zap.Bool("cache_enabled", cacheStore != nil),
		zap.String("model", cfg.OpenRouter.Model),
	)

	// 全局中間件：設置超時和配置
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Set("config", cfg)

		c.Next()

		// 檢查是否超時
		if ctx.Err() == context.DeadlineExceeded {
			common.LogError("Request timeout",
				zap.String("path", c.Request.URL.Path),
				zap.String("request_id", c.GetHeader("X-Request-ID")),
				zap.Duration("timeout", timeoutDuration),
			)
			c.JSON(http.StatusGatewayTimeout, gin.H{
				"error": "Request timeout",
				"code":  "REQUEST_TIMEOUT",
				"details": gin.H{
					"timeout": timeoutDuration.String(),
				},
			})
			c.Abort()
			return
		}
	})

	// 健康檢查路由
	router.GET("/health", health.HealthCheck)
	router.GET("/ready", health.ReadinessCheck)
	router.GET("/live", health.LivenessCheck)

	// API 路由組
	api := router.Group("/api/v1")
	{
		handler := logHandler.NewHandler(pipeline, store)

		// 註冊營養日誌相關路由
		logGroup := api.Group("/log")
		{
			// 自由文字記錄
			logGroup.POST("/text", handler.HandleTextLog)

			// 單一食物記錄（名稱 + 克數）
			logGroup.POST("/food", handler.HandleFoodLog)

			// 今日彙總
			logGroup.GET("/today", handler.HandleTodaySummary)
		}

		// BMR 計算
		api.POST("/bmr", logHandler.HandleBMR)
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
		zap.Duration("timeout", timeoutDuration),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router, nil
}
