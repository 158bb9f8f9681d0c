package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"fridge-assistant/internal/core/ai/cache"
	"fridge-assistant/internal/core/ai/openrouter"
	"fridge-assistant/internal/infrastructure/config"
)

// Response AI 回應內容
type Response struct {
	Content  string
	CacheHit bool
}

// generator 對 OpenRouter 客戶端的最小依賴，測試時替換
type generator interface {
	Generate(ctx context.Context, systemMessage, prompt string) (string, error)
}

// Service AI 服務：快取查詢、頻率管制、轉送 OpenRouter
type Service struct {
	config       *config.Config
	client       generator
	cacheManager *cache.CacheManager
	mu           sync.Mutex
	lastRequest  time.Time
}

// NewService 創建 AI 服務
func NewService(cfg *config.Config, cacheManager *cache.CacheManager) *Service {
	return &Service{
		config:       cfg,
		client:       openrouter.NewClient(cfg),
		cacheManager: cacheManager,
	}
}

// ProcessRequest 統一對外方法。快取鍵用壓掉空白後的 prompt，
// 送給模型的仍是原始 prompt（markdown 換行對輸出格式有意義）
func (s *Service) ProcessRequest(ctx context.Context, systemMessage, prompt string) (*Response, error) {
	if err := s.checkRequestRate(); err != nil {
		return nil, err
	}

	cacheKey := normalizeForCache(systemMessage + "|" + prompt)

	if s.cacheManager != nil {
		if value, err := s.cacheManager.Get(ctx, cacheKey); err == nil && value != "" {
			return &Response{Content: value, CacheHit: true}, nil
		}
	}

	content, err := s.client.Generate(ctx, systemMessage, prompt)
	if err != nil {
		return nil, err
	}

	if s.cacheManager != nil {
		_ = s.cacheManager.Set(ctx, cacheKey, content)
	}

	return &Response{Content: content}, nil
}

// normalizeForCache 統一 prompt 格式，去除空白差異，確保快取鍵一致
func normalizeForCache(prompt string) string {
	prompt = strings.TrimSpace(prompt)
	prompt = strings.ReplaceAll(prompt, "\t", "")
	prompt = strings.ReplaceAll(prompt, "\n", "")
	return strings.Join(strings.Fields(prompt), "")
}

// checkRequestRate 檢查請求頻率
func (s *Service) checkRequestRate() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if s.config.RateLimit.Enabled && now.Sub(s.lastRequest) < s.config.RateLimit.Window {
		return errors.New("request rate limit exceeded")
	}

	s.lastRequest = now
	return nil
}
