package recipe

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"fridge-assistant/internal/core/ai/service"
	"fridge-assistant/internal/infrastructure/config"
	"fridge-assistant/internal/pkg/common"
)

// SuggestionService 食譜推薦服務：把庫存組成嚴格的 prompt、
// 呼叫 AI、再用 ParseMarkdownRecipes 解析回候選食譜
type SuggestionService struct {
	config    *config.Config
	aiService *service.Service
}

// NewSuggestionService 創建食譜推薦服務
func NewSuggestionService(cfg *config.Config, aiService *service.Service) *SuggestionService {
	return &SuggestionService{
		config:    cfg,
		aiService: aiService,
	}
}

// SuggestRecipes 根據庫存清單推薦食譜，最多回傳設定的上限數。
// servings 非正數時退回預設份量
func (s *SuggestionService) SuggestRecipes(ctx context.Context, inventoryLines []string, servings int) ([]ParsedRecipe, error) {
	if len(inventoryLines) == 0 {
		return nil, common.NewValidationError("no ingredients in fridge")
	}
	if servings <= 0 {
		servings = s.config.Suggestion.DefaultServings
	}

	prompt := buildSuggestionPrompt(inventoryLines, servings)
	common.LogDebug("組裝推薦 prompt",
		zap.Int("ingredients", len(inventoryLines)),
		zap.Int("servings", servings),
	)

	resp, err := s.aiService.ProcessRequest(ctx, suggestionSystemMessage, prompt)
	if err != nil {
		return nil, fmt.Errorf("AI service error: %w", err)
	}
	if resp == nil || resp.Content == "" {
		return nil, fmt.Errorf("empty AI response")
	}

	recipes := ParseMarkdownRecipes(resp.Content)
	if len(recipes) == 0 {
		common.LogWarn("AI 回應中解析不出任何食譜",
			zap.Int("response_length", len(resp.Content)),
		)
		return nil, fmt.Errorf("failed to parse any recipes from AI response")
	}

	if max := s.config.Suggestion.MaxRecipes; len(recipes) > max {
		recipes = recipes[:max]
	}
	return recipes, nil
}

// suggestionSystemMessage 要求模型嚴格遵守輸出格式與食材限制
const suggestionSystemMessage = "You are a recipe assistant that strictly follows user constraints. " +
	"You ONLY use ingredients listed in the user prompt's 'Available Ingredients' section. " +
	"You format EACH recipe precisely using Markdown: Title starts with '## ', " +
	"ingredients section with '### Ingredients' and bullets (* or -), " +
	"instructions section with '### Instructions' and numbers (1., 2.)."

// buildSuggestionPrompt 組出使用者 prompt。
// 格式約束必須跟 ParseMarkdownRecipes 接受的文法一字不差
func buildSuggestionPrompt(inventoryLines []string, servings int) string {
	return fmt.Sprintf(
		"You are a recipe generator. Your task is to generate up to 3 recipes based *ONLY* on the provided ingredients list and serving size.\n\n"+
			"**CRITICAL CONSTRAINTS:**\n"+
			"1. **INGREDIENT LIST IS EXHAUSTIVE:** You ABSOLUTELY MUST NOT use any ingredients, spices, oils, liquids (even water), or pantry staples NOT explicitly listed in 'Available Ingredients'. If a common recipe needs an unlisted item, DO NOT suggest that recipe. Suggest something else that uses *only* the provided items.\n"+
			"2. **SERVINGS:** Target recipes suitable for %d servings. Estimate ingredient amounts appropriately.\n"+
			"3. **OUTPUT FORMAT (Strict Markdown):**\n"+
			"   * Start EACH recipe's title with exactly `## ` (e.g., `## Simple Omelette`).\n"+
			"   * Follow the title immediately with the ingredients list, starting exactly with `### Ingredients`. Use markdown bullets (`*` or `-`) for each ingredient.\n"+
			"   * Follow the ingredients immediately with the instructions, starting exactly with `### Instructions`. Use a numbered markdown list (`1.`, `2.`) for steps.\n\n"+
			"**Available Ingredients:**\n%s\n\n"+
			"**REMINDER:** Do NOT use any ingredient not on the list above.",
		servings,
		strings.Join(inventoryLines, "\n"),
	)
}
