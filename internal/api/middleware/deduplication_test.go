package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func dedupRouter(window time.Duration) (*gin.Engine, *Deduplicator) {
	gin.SetMode(gin.TestMode)
	d := NewDeduplicator(window)
	r := gin.New()
	r.Use(d.Handler())
	r.POST("/use", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })
	r.GET("/list", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) })
	return r, d
}

func TestDeduplicationBlocksRepeatedPost(t *testing.T) {
	r, d := dedupRouter(time.Minute)
	defer d.Close()

	first := httptest.NewRecorder()
	r.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/use", strings.NewReader(`{"id":1}`)))
	assert.Equal(t, http.StatusOK, first.Code)

	// 同路徑同請求體在視窗內重送要被擋下
	second := httptest.NewRecorder()
	r.ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/use", strings.NewReader(`{"id":1}`)))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}

func TestDeduplicationAllowsDifferentBody(t *testing.T) {
	r, d := dedupRouter(time.Minute)
	defer d.Close()

	first := httptest.NewRecorder()
	r.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/use", strings.NewReader(`{"id":1}`)))
	assert.Equal(t, http.StatusOK, first.Code)

	second := httptest.NewRecorder()
	r.ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/use", strings.NewReader(`{"id":2}`)))
	assert.Equal(t, http.StatusOK, second.Code)
}

func TestDeduplicationIgnoresGet(t *testing.T) {
	r, d := dedupRouter(time.Minute)
	defer d.Close()

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/list", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestDeduplicationWindowExpires(t *testing.T) {
	r, d := dedupRouter(20 * time.Millisecond)
	defer d.Close()

	first := httptest.NewRecorder()
	r.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/use", strings.NewReader(`{"id":1}`)))
	assert.Equal(t, http.StatusOK, first.Code)

	time.Sleep(40 * time.Millisecond)

	second := httptest.NewRecorder()
	r.ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/use", strings.NewReader(`{"id":1}`)))
	assert.Equal(t, http.StatusOK, second.Code)
}
