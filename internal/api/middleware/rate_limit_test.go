package middleware

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiterExhaustsTokens(t *testing.T) {
	limiter := NewRateLimiter(3, time.Minute)

	for i := 0; i < 3; i++ {
		assert.True(t, limiter.Allow(), "request %d should pass", i)
	}
	assert.False(t, limiter.Allow())
}

func TestRateLimiterRefills(t *testing.T) {
	limiter := NewRateLimiter(100, 100*time.Millisecond)

	for i := 0; i < 100; i++ {
		limiter.Allow()
	}
	assert.False(t, limiter.Allow())

	time.Sleep(50 * time.Millisecond)
	assert.True(t, limiter.Allow())
}
