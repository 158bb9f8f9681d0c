package recipe

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"fridge-assistant/internal/core/inventory"
	"fridge-assistant/internal/core/quantity"
	"fridge-assistant/internal/infrastructure/persistence"
	"fridge-assistant/internal/pkg/common"
)

// UsageService 「使用食譜」服務：解析食譜食材區塊、比對庫存、
// 套用扣減，並把扣減與完成紀錄放進同一筆交易
type UsageService struct {
	db          *gorm.DB
	ingredients *persistence.IngredientRepository
	recipes     *persistence.RecipeRepository
}

// NewUsageService 創建使用食譜服務
func NewUsageService(db *gorm.DB, ingredients *persistence.IngredientRepository, recipes *persistence.RecipeRepository) *UsageService {
	return &UsageService{
		db:          db,
		ingredients: ingredients,
		recipes:     recipes,
	}
}

// UseOutcome 使用食譜的結果。Applied 為 false 時庫存完全未動，
// 各清單說明失敗原因；Applied 為 true 時 Updated / Deleted 是異動摘要
type UseOutcome struct {
	RecipeTitle    string   `json:"recipe_title"`
	Applied        bool     `json:"applied"`
	ParseErrors    []string `json:"parse_errors,omitempty"`
	Missing        []string `json:"missing,omitempty"`
	UnitMismatches []string `json:"unit_mismatches,omitempty"`
	Updated        []string `json:"updated,omitempty"`
	Deleted        []string `json:"deleted,omitempty"`
}

// UseRecipe 使用一份食譜並扣減庫存。
//
// 全有或全無：任何一行解析不出名稱、缺食材或單位衝突，
// 整個操作中止且庫存不動。扣減成功時同一筆交易內
// 一併把食譜移出儲存清單並寫入完成紀錄
func (s *UsageService) UseRecipe(ctx context.Context, recipeID uint) (*UseOutcome, error) {
	rec, err := s.recipes.Get(recipeID)
	if err != nil {
		return nil, err
	}
	outcome := &UseOutcome{RecipeTitle: rec.Title}

	// 1. 逐行解析食材區塊，解析不出名稱的行讓整個操作失敗（fail-closed）
	required, parseErrors := parseIngredientBlock(rec.IngredientsText)
	if len(parseErrors) > 0 {
		common.LogWarn("食譜食材行解析失敗，略過扣減",
			zap.Uint("recipe_id", recipeID),
			zap.Strings("lines", parseErrors),
		)
		outcome.ParseErrors = parseErrors
		return outcome, nil
	}
	if len(required) == 0 {
		return nil, common.NewValidationError("no ingredients found in recipe")
	}

	// 2. 比對庫存快照
	records, err := s.ingredients.Snapshot()
	if err != nil {
		return nil, err
	}
	plan := inventory.Match(required, records)
	if !plan.Executable() {
		outcome.Missing = plan.Missing
		outcome.UnitMismatches = plan.UnitMismatches
		return outcome, nil
	}

	// 3. 套用扣減並與完成紀錄一起落盤
	result := inventory.Apply(plan.Entries)
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.ingredients.ApplyDeductions(tx, result); err != nil {
			return err
		}
		return s.recipes.CompleteInTx(tx, recipeID)
	})
	if err != nil {
		return nil, err
	}

	outcome.Applied = true
	outcome.Updated = result.UpdatedSummaries()
	outcome.Deleted = result.DeletedNames()

	common.LogInfo("食譜使用完成，庫存已扣減",
		zap.Uint("recipe_id", recipeID),
		zap.Int("updated", len(outcome.Updated)),
		zap.Int("deleted", len(outcome.Deleted)),
	)
	return outcome, nil
}

// parseIngredientBlock 把食譜的食材區塊逐行轉成需求項目。
// 解析不出名稱的非空行收進第二個回傳值
func parseIngredientBlock(text string) ([]inventory.RequiredItem, []string) {
	var required []inventory.RequiredItem
	var parseErrors []string

	for _, line := range strings.Split(text, "\n") {
		parsed := quantity.ParseLine(line)
		if parsed == nil {
			continue // 空白行
		}
		if parsed.Name == "" {
			parseErrors = append(parseErrors, line)
			continue
		}
		required = append(required, inventory.RequiredItem{
			Name:         parsed.Name,
			Quantity:     parsed.Quantity,
			Unit:         parsed.Unit,
			OriginalLine: line,
		})
	}

	return required, parseErrors
}
