package security

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mathtatag_backend/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestLimiterStoreBurst(t *testing.T) {
	store := newLimiterStore(2, time.Minute)
	now := time.Now()

	assert.True(t, store.allow("a", now))
	assert.True(t, store.allow("a", now))
	assert.False(t, store.allow("a", now))
	// 不同 IP 独立计数
	assert.True(t, store.allow("b", now))
}

func TestLimiterStoreSweep(t *testing.T) {
	store := newLimiterStore(5, time.Minute)
	now := time.Now()
	store.allow("old", now.Add(-10*time.Minute))
	store.allow("fresh", now)

	store.sweep(now, 3*time.Minute)

	assert.NotContains(t, store.visitors, "old")
	assert.Contains(t, store.visitors, "fresh")
}

func TestCORS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS(config.CORSConfig{AllowedOrigins: []string{"http://localhost:5173"}}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/x", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestRateLimiterRejects(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RateLimiter(config.RateLimitConfig{MaxRequests: 1, WindowMinutes: 1}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}
