package health

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"fridge-assistant/internal/core/ai/cache"
	"fridge-assistant/internal/infrastructure/config"
)

// Response 健康檢查響應
type Response struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Database  string                 `json:"database"`
	Runtime   map[string]interface{} `json:"runtime"`
	Cache     map[string]interface{} `json:"cache,omitempty"`
}

// Handler 健康檢查處理器
type Handler struct {
	cfg          *config.Config
	db           *gorm.DB
	cacheManager *cache.CacheManager
}

// NewHandler 創建健康檢查處理器
func NewHandler(cfg *config.Config, db *gorm.DB, cacheManager *cache.CacheManager) *Handler {
	return &Handler{
		cfg:          cfg,
		db:           db,
		cacheManager: cacheManager,
	}
}

// Check 回報服務狀態，資料庫連不上時整體狀態降為 degraded
func (h *Handler) Check(c *gin.Context) {
	status := "ok"
	dbStatus := "ok"
	if sqlDB, err := h.db.DB(); err != nil {
		status, dbStatus = "degraded", err.Error()
	} else if err := sqlDB.PingContext(c.Request.Context()); err != nil {
		status, dbStatus = "degraded", err.Error()
	}

	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	resp := Response{
		Status:    status,
		Timestamp: time.Now(),
		Version:   h.cfg.App.Version,
		Database:  dbStatus,
		Runtime: map[string]interface{}{
			"goroutines": runtime.NumGoroutine(),
			"memory": map[string]interface{}{
				"alloc":  m.Alloc,
				"sys":    m.Sys,
				"num_gc": m.NumGC,
			},
		},
	}
	if h.cacheManager != nil {
		resp.Cache = h.cacheManager.GetStats()
	}

	code := http.StatusOK
	if status != "ok" {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, resp)
}
