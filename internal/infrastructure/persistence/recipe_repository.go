package persistence

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"fridge-assistant/internal/pkg/common"
)

// RecipeRepository 食譜持久層
type RecipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository 創建食譜持久層
func NewRecipeRepository(db *gorm.DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

// Get 依 ID 取得食譜
func (r *RecipeRepository) Get(id uint) (*Recipe, error) {
	var recipe Recipe
	if err := r.db.First(&recipe, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrRecipeNotFound
		}
		return nil, fmt.Errorf("failed to get recipe %d: %w", id, err)
	}
	return &recipe, nil
}

// Save 儲存食譜。同標題同食材內容的食譜只存一份，重複儲存回傳既有那筆
func (r *RecipeRepository) Save(title, ingredientsText, instructions, source string) (*Recipe, bool, error) {
	var existing Recipe
	err := r.db.Where("title = ? AND ingredients_text = ?", title, ingredientsText).
		First(&existing).Error
	if err == nil {
		if existing.Saved {
			return &existing, false, nil
		}
		if err := r.db.Model(&existing).Update("saved", true).Error; err != nil {
			return nil, false, fmt.Errorf("failed to re-save recipe %d: %w", existing.ID, err)
		}
		existing.Saved = true
		return &existing, true, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("failed to look up recipe: %w", err)
	}

	recipe := Recipe{
		Title:           title,
		IngredientsText: ingredientsText,
		Instructions:    instructions,
		Source:          source,
		Saved:           true,
	}
	if err := r.db.Create(&recipe).Error; err != nil {
		return nil, false, fmt.Errorf("failed to create recipe: %w", err)
	}
	return &recipe, true, nil
}

// ListSaved 依標題排序列出已儲存的食譜
func (r *RecipeRepository) ListSaved() ([]Recipe, error) {
	var recipes []Recipe
	if err := r.db.Where("saved = ?", true).Order("title").Find(&recipes).Error; err != nil {
		return nil, fmt.Errorf("failed to list saved recipes: %w", err)
	}
	return recipes, nil
}

// Unsave 從儲存清單移除（不刪除食譜本身）
func (r *RecipeRepository) Unsave(id uint) error {
	return r.unsave(r.db, id)
}

func (r *RecipeRepository) unsave(tx *gorm.DB, id uint) error {
	result := tx.Model(&Recipe{}).Where("id = ? AND saved = ?", id, true).
		Update("saved", false)
	if result.Error != nil {
		return fmt.Errorf("failed to unsave recipe %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return common.ErrRecipeNotFound
	}
	return nil
}

// CompleteInTx 在指定交易內把食譜標記為已完成並移出儲存清單，
// 與食材扣減共用同一筆交易（整組成功或整組失敗）
func (r *RecipeRepository) CompleteInTx(tx *gorm.DB, id uint) error {
	// 不在儲存清單也允許完成，僅略過 unsave
	if err := r.unsave(tx, id); err != nil && !errors.Is(err, common.ErrRecipeNotFound) {
		return err
	}
	completed := CompletedRecipe{
		RecipeID:    id,
		CompletedAt: time.Now(),
	}
	if err := tx.Create(&completed).Error; err != nil {
		return fmt.Errorf("failed to record completion of recipe %d: %w", id, err)
	}
	return nil
}

// ListCompleted 依完成時間倒序列出完成紀錄（含食譜本體）
func (r *RecipeRepository) ListCompleted() ([]CompletedRecipe, error) {
	var completed []CompletedRecipe
	if err := r.db.Preload("Recipe").Order("completed_at DESC").Find(&completed).Error; err != nil {
		return nil, fmt.Errorf("failed to list completed recipes: %w", err)
	}
	return completed, nil
}
