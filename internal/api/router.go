package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"fridge-assistant/internal/api/handlers/fridge"
	"fridge-assistant/internal/api/handlers/health"
	"fridge-assistant/internal/api/middleware"
	"fridge-assistant/internal/core/ai/cache"
	"fridge-assistant/internal/core/ai/service"
	"fridge-assistant/internal/core/barcode"
	recipeService "fridge-assistant/internal/core/recipe"
	"fridge-assistant/internal/infrastructure/config"
	"fridge-assistant/internal/infrastructure/persistence"
	"fridge-assistant/internal/pkg/common"
)

const (
	// AI 推薦可能要等模型，整體請求放寬到 120 秒
	timeoutDuration = 120 * time.Second
	// 請求體大小限制 (1MB)，這個服務沒有檔案上傳
	maxBodySize = 1 << 20
)

// SetupRouter 設置路由並組裝所有服務
func SetupRouter(cfg *config.Config, db *gorm.DB, cacheManager *cache.CacheManager) (*gin.Engine, error) {
	common.LogInfo("Starting router setup",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Env),
	)

	if !cfg.App.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// 基礎中間件
	router.Use(middleware.Recovery())
	router.Use(middleware.Logger())
	router.Use(requestid.New())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.Use(middleware.BodySizeLimit(maxBodySize))

	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}

	// 請求超時
	router.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeoutDuration)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		if ctx.Err() == context.DeadlineExceeded && !c.Writer.Written() {
			c.AbortWithStatusJSON(http.StatusGatewayTimeout, gin.H{
				"error": "Request timeout",
				"code":  "REQUEST_TIMEOUT",
			})
		}
	})

	// 組裝服務
	ingredientRepo := persistence.NewIngredientRepository(db)
	recipeRepo := persistence.NewRecipeRepository(db)
	aiService := service.NewService(cfg, cacheManager)
	suggestionSvc := recipeService.NewSuggestionService(cfg, aiService)
	usageSvc := recipeService.NewUsageService(db, ingredientRepo, recipeRepo)
	barcodeClient := barcode.NewClient(cfg)

	ingredientHandler := fridge.NewIngredientHandler(ingredientRepo, barcodeClient)
	recipeHandler := fridge.NewRecipeHandler(suggestionSvc, usageSvc, recipeRepo, ingredientRepo)
	healthHandler := health.NewHandler(cfg, db, cacheManager)

	// 重複提交防護，主要保護「使用食譜」不被連按兩次
	dedup := middleware.NewDeduplicator(cfg.DedupWindow)

	router.GET("/health", healthHandler.Check)

	api := router.Group("/api/v1")
	api.Use(dedup.Handler())
	{
		ingredients := api.Group("/ingredients")
		{
			ingredients.GET("", ingredientHandler.List)
			ingredients.POST("", ingredientHandler.Create)
			ingredients.PATCH("/:id", ingredientHandler.UpdateAmounts)
			ingredients.DELETE("/:id", ingredientHandler.Delete)
		}

		api.GET("/barcode/:code", ingredientHandler.LookupBarcode)

		recipes := api.Group("/recipes")
		{
			recipes.POST("/suggest", recipeHandler.Suggest)
			recipes.POST("", recipeHandler.Save)
			recipes.GET("", recipeHandler.ListSaved)
			recipes.GET("/completed", recipeHandler.ListCompleted)
			recipes.GET("/:id", recipeHandler.Get)
			recipes.DELETE("/:id", recipeHandler.Unsave)
			recipes.POST("/:id/use", recipeHandler.Use)
		}
	}

	common.LogInfo("Router setup completed successfully",
		zap.Bool("debug_mode", cfg.App.Debug),
		zap.String("version", cfg.App.Version),
		zap.String("model", cfg.OpenRouter.Model),
		zap.Bool("cache_enabled", cfg.Cache.Enabled),
		zap.Int64("max_body_size", maxBodySize),
	)

	return router, nil
}
