package persistence

import (
	"fmt"
	"strings"
	"time"

	"fridge-assistant/internal/core/inventory"
)

// Ingredient 冰箱裡的一筆食材。
// quantity/unit 與 weight/weight_unit 是兩組獨立的量，
// 建檔時至少要有 quantity 或 weight 其中之一
type Ingredient struct {
	ID         uint     `gorm:"primaryKey" json:"id"`
	Name       string   `gorm:"size:100;not null;index" json:"name"`
	Quantity   *float64 `json:"quantity,omitempty"`
	Unit       string   `gorm:"size:20" json:"unit,omitempty"`
	Weight     *float64 `json:"weight,omitempty"`
	WeightUnit string   `gorm:"size:20" json:"weight_unit,omitempty"`
	ExpiryDate *time.Time `json:"expiry_date,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// ToRecord 轉成核心比對用的庫存快照
func (i *Ingredient) ToRecord() *inventory.Record {
	rec := &inventory.Record{
		ID:         i.ID,
		Name:       i.Name,
		Unit:       i.Unit,
		WeightUnit: i.WeightUnit,
	}
	// 複製數值，讓核心扣減時動的是快照而不是 gorm 模型
	if i.Quantity != nil {
		q := *i.Quantity
		rec.Quantity = &q
	}
	if i.Weight != nil {
		w := *i.Weight
		rec.Weight = &w
	}
	return rec
}

// DisplayLine 組出給 AI 看的庫存描述，例如 "flour (500 g)"、
// "egg (3 pcs / 180 g)"，沒有任何量時只回名稱
func (i *Ingredient) DisplayLine() string {
	var parts []string
	if i.Quantity != nil && i.Unit != "" {
		parts = append(parts, fmt.Sprintf("%g %s", *i.Quantity, i.Unit))
	}
	if i.Weight != nil && i.WeightUnit != "" {
		parts = append(parts, fmt.Sprintf("%g %s", *i.Weight, i.WeightUnit))
	}
	if len(parts) == 0 {
		return i.Name
	}
	return fmt.Sprintf("%s (%s)", i.Name, strings.Join(parts, " / "))
}

// Recipe 儲存的食譜，ingredients_text 是逐行的食材區塊
type Recipe struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Title           string    `gorm:"size:200;not null" json:"title"`
	IngredientsText string    `gorm:"type:text;not null" json:"ingredients_text"`
	Instructions    string    `gorm:"type:text;not null" json:"instructions"`
	Source          string    `gorm:"size:100" json:"source"`
	Saved           bool      `gorm:"index" json:"saved"`
	CreatedAt       time.Time `json:"created_at"`
}

// CompletedRecipe 食譜完成紀錄
type CompletedRecipe struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	RecipeID    uint      `gorm:"index;not null" json:"recipe_id"`
	Recipe      Recipe    `json:"recipe"`
	CompletedAt time.Time `json:"completed_at"`
}
