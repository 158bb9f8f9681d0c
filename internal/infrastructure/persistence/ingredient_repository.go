package persistence

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"fridge-assistant/internal/core/inventory"
	"fridge-assistant/internal/pkg/common"
)

// IngredientRepository 食材持久層
type IngredientRepository struct {
	db *gorm.DB
}

// NewIngredientRepository 創建食材持久層
func NewIngredientRepository(db *gorm.DB) *IngredientRepository {
	return &IngredientRepository{db: db}
}

// List 依名稱排序列出所有食材
func (r *IngredientRepository) List() ([]Ingredient, error) {
	var ingredients []Ingredient
	if err := r.db.Order("name").Find(&ingredients).Error; err != nil {
		return nil, fmt.Errorf("failed to list ingredients: %w", err)
	}
	return ingredients, nil
}

// Get 依 ID 取得食材
func (r *IngredientRepository) Get(id uint) (*Ingredient, error) {
	var ingredient Ingredient
	if err := r.db.First(&ingredient, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.ErrIngredientNotFound
		}
		return nil, fmt.Errorf("failed to get ingredient %d: %w", id, err)
	}
	return &ingredient, nil
}

// Create 新增食材
func (r *IngredientRepository) Create(ingredient *Ingredient) error {
	if err := r.db.Create(ingredient).Error; err != nil {
		return fmt.Errorf("failed to create ingredient: %w", err)
	}
	return nil
}

// UpdateAmounts 更新數量或重量，nil 表示不動該欄位（允許設為 0）
func (r *IngredientRepository) UpdateAmounts(id uint, quantity, weight *float64) (*Ingredient, error) {
	ingredient, err := r.Get(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if quantity != nil {
		updates["quantity"] = *quantity
	}
	if weight != nil {
		updates["weight"] = *weight
	}
	if len(updates) == 0 {
		return ingredient, nil
	}

	if err := r.db.Model(ingredient).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update ingredient %d: %w", id, err)
	}
	return ingredient, nil
}

// Delete 刪除食材
func (r *IngredientRepository) Delete(id uint) error {
	result := r.db.Delete(&Ingredient{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete ingredient %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return common.ErrIngredientNotFound
	}
	return nil
}

// Snapshot 取得整份庫存的記憶體快照，供比對與扣減使用
func (r *IngredientRepository) Snapshot() ([]*inventory.Record, error) {
	ingredients, err := r.List()
	if err != nil {
		return nil, err
	}
	records := make([]*inventory.Record, 0, len(ingredients))
	for i := range ingredients {
		records = append(records, ingredients[i].ToRecord())
	}
	return records, nil
}

// ApplyDeductions 在指定交易內落盤扣減結果：
// 更新的欄位寫回、耗盡的整筆刪除
func (r *IngredientRepository) ApplyDeductions(tx *gorm.DB, result *inventory.Result) error {
	for _, change := range result.Updated {
		var column string
		var value float64
		switch change.Field {
		case inventory.FieldQuantity:
			column, value = "quantity", *change.Record.Quantity
		case inventory.FieldWeight:
			column, value = "weight", *change.Record.Weight
		default:
			continue
		}
		if err := tx.Model(&Ingredient{}).Where("id = ?", change.Record.ID).
			Update(column, value).Error; err != nil {
			return fmt.Errorf("failed to update ingredient %d: %w", change.Record.ID, err)
		}
	}

	for _, rec := range result.Deleted {
		if err := tx.Delete(&Ingredient{}, rec.ID).Error; err != nil {
			return fmt.Errorf("failed to delete depleted ingredient %d: %w", rec.ID, err)
		}
	}

	return nil
}
