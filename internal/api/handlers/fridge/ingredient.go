package fridge

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"fridge-assistant/internal/core/barcode"
	"fridge-assistant/internal/core/quantity"
	"fridge-assistant/internal/infrastructure/persistence"
	"fridge-assistant/internal/pkg/common"
)

// IngredientHandler 冰箱食材處理程序
type IngredientHandler struct {
	ingredients   *persistence.IngredientRepository
	barcodeClient *barcode.Client
}

// NewIngredientHandler 創建食材處理程序
func NewIngredientHandler(ingredients *persistence.IngredientRepository, barcodeClient *barcode.Client) *IngredientHandler {
	return &IngredientHandler{
		ingredients:   ingredients,
		barcodeClient: barcodeClient,
	}
}

// CreateIngredientRequest 新增食材。quantity/unit 與 weight/weight_unit
// 是兩組獨立的量，至少要提供其中一組
type CreateIngredientRequest struct {
	Name       string   `json:"name" binding:"required"`
	Quantity   *float64 `json:"quantity,omitempty"`
	Unit       string   `json:"unit,omitempty"`
	Weight     *float64 `json:"weight,omitempty"`
	WeightUnit string   `json:"weight_unit,omitempty"`
	ExpiryDate *string  `json:"expiry_date,omitempty"` // YYYY-MM-DD
}

// UpdateAmountsRequest 調整食材的數量或重量
type UpdateAmountsRequest struct {
	Quantity *float64 `json:"quantity,omitempty"`
	Weight   *float64 `json:"weight,omitempty"`
}

// List 列出冰箱內容
func (h *IngredientHandler) List(c *gin.Context) {
	items, err := h.ingredients.List()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ingredients": items})
}

// Create 新增一筆食材
func (h *IngredientHandler) Create(c *gin.Context) {
	var req CreateIngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
		return
	}
	if req.Quantity == nil && req.Weight == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Provide quantity or weight"})
		return
	}
	if (req.Quantity != nil && *req.Quantity < 0) || (req.Weight != nil && *req.Weight < 0) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Amounts must not be negative"})
		return
	}

	ingredient := &persistence.Ingredient{
		Name:       name,
		Quantity:   req.Quantity,
		Unit:       quantity.NormalizeUnit(req.Unit),
		Weight:     req.Weight,
		WeightUnit: quantity.NormalizeUnit(req.WeightUnit),
	}
	if req.ExpiryDate != nil && *req.ExpiryDate != "" {
		t, err := time.Parse("2006-01-02", *req.ExpiryDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid expiry_date, expected YYYY-MM-DD"})
			return
		}
		ingredient.ExpiryDate = &t
	}

	if err := h.ingredients.Create(ingredient); err != nil {
		respondError(c, err)
		return
	}

	common.LogInfo("食材已入庫",
		zap.Uint("id", ingredient.ID),
		zap.String("name", ingredient.Name),
	)
	c.JSON(http.StatusCreated, ingredient)
}

// UpdateAmounts 調整數量或重量，兩個欄位都沒給就拒絕
func (h *IngredientHandler) UpdateAmounts(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateAmountsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	if req.Quantity == nil && req.Weight == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Provide quantity or weight"})
		return
	}
	if (req.Quantity != nil && *req.Quantity < 0) || (req.Weight != nil && *req.Weight < 0) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Amounts must not be negative"})
		return
	}

	ingredient, err := h.ingredients.UpdateAmounts(id, req.Quantity, req.Weight)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ingredient)
}

// Delete 丟掉一筆食材
func (h *IngredientHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.ingredients.Delete(id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

// LookupBarcode 掃條碼帶出商品資訊供入庫預填
func (h *IngredientHandler) LookupBarcode(c *gin.Context) {
	code := strings.TrimSpace(c.Param("code"))
	if !isDigits(code) {
		respondError(c, common.ErrInvalidBarcode)
		return
	}

	product, err := h.barcodeClient.Lookup(c.Request.Context(), code)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
