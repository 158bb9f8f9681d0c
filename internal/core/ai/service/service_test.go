package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fridge-assistant/internal/core/ai/cache"
	"fridge-assistant/internal/infrastructure/config"
)

type fakeGenerator struct {
	calls    int
	response string
	err      error
}

func (f *fakeGenerator) Generate(ctx context.Context, systemMessage, prompt string) (string, error) {
	f.calls++
	return f.response, f.err
}

func serviceWithFake(cfg *config.Config, gen *fakeGenerator, cm *cache.CacheManager) *Service {
	return &Service{
		config:       cfg,
		client:       gen,
		cacheManager: cm,
	}
}

func TestProcessRequestPassesThrough(t *testing.T) {
	gen := &fakeGenerator{response: "## Omelette"}
	svc := serviceWithFake(&config.Config{}, gen, nil)

	resp, err := svc.ProcessRequest(context.Background(), "system", "prompt")
	require.NoError(t, err)
	assert.Equal(t, "## Omelette", resp.Content)
	assert.False(t, resp.CacheHit)
	assert.Equal(t, 1, gen.calls)
}

func TestProcessRequestUsesCache(t *testing.T) {
	cfg := &config.Config{
		Cache: config.CacheConfig{
			Enabled:         true,
			MaxSize:         10,
			TTL:             time.Minute,
			CleanupInterval: time.Minute,
		},
	}
	cm := cache.NewManager(cfg)
	require.NotNil(t, cm)
	defer cm.Close()

	gen := &fakeGenerator{response: "cached content"}
	svc := serviceWithFake(cfg, gen, cm)

	first, err := svc.ProcessRequest(context.Background(), "system", "prompt")
	require.NoError(t, err)
	assert.False(t, first.CacheHit)

	second, err := svc.ProcessRequest(context.Background(), "system", "prompt")
	require.NoError(t, err)
	assert.True(t, second.CacheHit)
	assert.Equal(t, "cached content", second.Content)
	assert.Equal(t, 1, gen.calls, "第二次應命中快取而不呼叫模型")
}

func TestProcessRequestCacheKeyIgnoresWhitespace(t *testing.T) {
	cfg := &config.Config{
		Cache: config.CacheConfig{
			Enabled:         true,
			MaxSize:         10,
			TTL:             time.Minute,
			CleanupInterval: time.Minute,
		},
	}
	cm := cache.NewManager(cfg)
	require.NotNil(t, cm)
	defer cm.Close()

	gen := &fakeGenerator{response: "same"}
	svc := serviceWithFake(cfg, gen, cm)

	_, err := svc.ProcessRequest(context.Background(), "system", "list:\n* a\n* b")
	require.NoError(t, err)

	resp, err := svc.ProcessRequest(context.Background(), "system", "list: * a * b")
	require.NoError(t, err)
	assert.True(t, resp.CacheHit)
	assert.Equal(t, 1, gen.calls)
}

func TestProcessRequestRateLimit(t *testing.T) {
	cfg := &config.Config{
		RateLimit: config.RateLimitConfig{Enabled: true, Window: time.Minute},
	}
	gen := &fakeGenerator{response: "ok"}
	svc := serviceWithFake(cfg, gen, nil)

	_, err := svc.ProcessRequest(context.Background(), "system", "prompt")
	require.NoError(t, err)

	_, err = svc.ProcessRequest(context.Background(), "system", "prompt")
	assert.Error(t, err)
}

func TestProcessRequestGeneratorError(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("upstream down")}
	svc := serviceWithFake(&config.Config{}, gen, nil)

	_, err := svc.ProcessRequest(context.Background(), "system", "prompt")
	assert.Error(t, err)
}
