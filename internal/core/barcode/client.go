package barcode

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"fridge-assistant/internal/core/quantity"
	"fridge-assistant/internal/infrastructure/config"
	"fridge-assistant/internal/pkg/common"
)

// Product 條碼查詢結果，ParsedQuantity / ParsedUnit 是從
// quantity 欄位文字（如 "500 g"）解析出來的，供新增食材表單預填
type Product struct {
	Barcode        string   `json:"barcode"`
	Name           string   `json:"name,omitempty"`
	Quantity       string   `json:"quantity,omitempty"`
	Brands         string   `json:"brands,omitempty"`
	Categories     string   `json:"categories,omitempty"`
	ImageURL       string   `json:"image_url,omitempty"`
	ParsedQuantity *float64 `json:"parsed_quantity,omitempty"`
	ParsedUnit     string   `json:"parsed_unit,omitempty"`
}

// offProduct Open Food Facts 回應中會用到的欄位
type offProduct struct {
	ProductName   string `json:"product_name"`
	GenericName   string `json:"generic_name"`
	Quantity      string `json:"quantity"`
	Brands        string `json:"brands"`
	Categories    string `json:"categories"`
	ImageFrontURL string `json:"image_front_url"`
	ImageURL      string `json:"image_url"`
}

// offResponse Open Food Facts 單品查詢回應
type offResponse struct {
	Status  int        `json:"status"`
	Product offProduct `json:"product"`
}

// Client Open Food Facts 條碼查詢客戶端
type Client struct {
	client *resty.Client
}

// NewClient 創建條碼查詢客戶端
func NewClient(cfg *config.Config) *Client {
	client := resty.New().
		SetBaseURL(cfg.Barcode.BaseURL).
		SetTimeout(cfg.Barcode.Timeout).
		SetHeader("User-Agent", cfg.Barcode.UserAgent)

	return &Client{client: client}
}

// Lookup 依條碼查詢商品，查無商品時回傳 common.ErrProductNotFound
func (c *Client) Lookup(ctx context.Context, barcode string) (*Product, error) {
	resp, err := c.client.R().
		SetContext(ctx).
		Get(fmt.Sprintf("/api/v2/product/%s.json", barcode))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch barcode %s: %w", barcode, err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return nil, common.ErrProductNotFound
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("barcode API returned status %d", resp.StatusCode())
	}

	var result offResponse
	if err := common.ParseJSONBytes(resp.Body(), &result); err != nil {
		return nil, fmt.Errorf("failed to parse barcode response: %w", err)
	}
	if result.Status != 1 {
		common.LogInfo("查無此條碼的商品",
			zap.String("barcode", barcode),
			zap.Int("status", result.Status),
		)
		return nil, common.ErrProductNotFound
	}

	product := &Product{
		Barcode:    barcode,
		Name:       firstNonEmpty(result.Product.ProductName, result.Product.GenericName),
		Quantity:   result.Product.Quantity,
		Brands:     result.Product.Brands,
		Categories: result.Product.Categories,
		ImageURL:   firstNonEmpty(result.Product.ImageFrontURL, result.Product.ImageURL),
	}

	// 嘗試把 "500 g" 這類字串解析成數量與單位
	if amount, unit := quantity.ParseQuantity(product.Quantity); amount != nil {
		parsed := amount.InexactFloat64()
		product.ParsedQuantity = &parsed
		product.ParsedUnit = quantity.NormalizeUnit(unit)
	}

	return product, nil
}

// firstNonEmpty 回傳第一個非空字串
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
