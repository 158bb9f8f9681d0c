package persistence

import (
	"fmt"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"fridge-assistant/internal/infrastructure/config"
	"fridge-assistant/internal/pkg/common"
)

// Open 開啟 SQLite 資料庫並執行自動遷移
func Open(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(cfg.Database.Path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.AutoMigrate(&Ingredient{}, &Recipe{}, &CompletedRecipe{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	common.LogInfo("資料庫已就緒",
		zap.String("path", cfg.Database.Path),
	)

	return db, nil
}
