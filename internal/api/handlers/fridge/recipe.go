package fridge

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"fridge-assistant/internal/core/recipe"
	"fridge-assistant/internal/infrastructure/persistence"
	"fridge-assistant/internal/pkg/common"
)

// RecipeHandler 食譜處理程序：推薦、儲存與使用
type RecipeHandler struct {
	suggestions *recipe.SuggestionService
	usage       *recipe.UsageService
	recipes     *persistence.RecipeRepository
	ingredients *persistence.IngredientRepository
}

// NewRecipeHandler 創建食譜處理程序
func NewRecipeHandler(
	suggestions *recipe.SuggestionService,
	usage *recipe.UsageService,
	recipes *persistence.RecipeRepository,
	ingredients *persistence.IngredientRepository,
) *RecipeHandler {
	return &RecipeHandler{
		suggestions: suggestions,
		usage:       usage,
		recipes:     recipes,
		ingredients: ingredients,
	}
}

// SuggestRequest 食譜推薦請求
type SuggestRequest struct {
	Servings int `json:"servings,omitempty"`
}

// SaveRecipeRequest 儲存一份推薦食譜
type SaveRecipeRequest struct {
	Title        string   `json:"title" binding:"required"`
	Ingredients  []string `json:"ingredients" binding:"required"`
	Instructions string   `json:"instructions" binding:"required"`
	Source       string   `json:"source,omitempty"`
}

// Suggest 依目前冰箱內容請 AI 推薦食譜
func (h *RecipeHandler) Suggest(c *gin.Context) {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.New().String()
		c.Header("X-Request-ID", requestID)
	}

	var req SuggestRequest
	// 請求體可以整個省略，份量用預設值
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}
	}

	items, err := h.ingredients.List()
	if err != nil {
		respondError(c, err)
		return
	}
	lines := make([]string, 0, len(items))
	for i := range items {
		lines = append(lines, items[i].DisplayLine())
	}

	recipes, err := h.suggestions.SuggestRecipes(c.Request.Context(), lines, req.Servings)
	if err != nil {
		respondError(c, err)
		return
	}

	common.LogInfo("食譜推薦完成",
		zap.String("request_id", requestID),
		zap.Int("inventory_items", len(lines)),
		zap.Int("recipes", len(recipes)),
	)
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

// Save 把推薦的食譜存起來，同一份食譜重複儲存不會新增第二筆
func (h *RecipeHandler) Save(c *gin.Context) {
	var req SaveRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	if len(req.Ingredients) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Ingredients must not be empty"})
		return
	}

	source := req.Source
	if source == "" {
		source = "ai"
	}
	ingredientsText := strings.Join(req.Ingredients, "\n")

	saved, created, err := h.recipes.Save(req.Title, ingredientsText, req.Instructions, source)
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"recipe": saved, "created": created})
}

// ListSaved 列出儲存中的食譜
func (h *RecipeHandler) ListSaved(c *gin.Context) {
	recipes, err := h.recipes.ListSaved()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

// Get 取得單份食譜
func (h *RecipeHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	rec, err := h.recipes.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// Unsave 把食譜移出儲存清單
func (h *RecipeHandler) Unsave(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.recipes.Unsave(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unsaved": id})
}

// Use 使用食譜並扣減庫存。庫存不足或單位衝突時回 409，
// 庫存完全不動
func (h *RecipeHandler) Use(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	outcome, err := h.usage.UseRecipe(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	if !outcome.Applied {
		c.JSON(http.StatusConflict, outcome)
		return
	}
	c.JSON(http.StatusOK, outcome)
}

// ListCompleted 列出完成紀錄，新的在前
func (h *RecipeHandler) ListCompleted(c *gin.Context) {
	completed, err := h.recipes.ListCompleted()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"completed": completed})
}
