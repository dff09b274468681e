package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"

	redisAdapter "yatube/internal/adapters/redis"
	pagecacheapp "yatube/internal/core/pagecache/service"
)

func init() { gin.SetMode(gin.TestMode) }

func cachedEngine(t *testing.T, ttl time.Duration, handler gin.HandlerFunc) (*gin.Engine, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cache := pagecacheapp.NewPageCacheService(redisAdapter.NewPageStoreRedis(client), "main_page", ttl)
	r := gin.New()
	r.GET("/", CachePage(cache), handler)
	return r, mr
}

func get(r http.Handler, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestCachePageServesStaleCopyUntilExpiry(t *testing.T) {
	version := "v1"
	calls := 0
	r, mr := cachedEngine(t, 20*time.Second, func(c *gin.Context) {
		calls++
		c.String(http.StatusOK, "page %s %s", c.Query("page"), version)
	})

	w := get(r, "/")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "MISS", w.Header().Get("X-Cache"))
	assert.Equal(t, "page  v1", w.Body.String())

	version = "v2"
	w = get(r, "/")
	assert.Equal(t, "HIT", w.Header().Get("X-Cache"))
	assert.Equal(t, "page  v1", w.Body.String())
	assert.Equal(t, 1, calls)

	w = get(r, "/?page=1")
	assert.Equal(t, "HIT", w.Header().Get("X-Cache"), "missing page means page 1")

	mr.FastForward(21 * time.Second)
	w = get(r, "/")
	assert.Equal(t, "MISS", w.Header().Get("X-Cache"))
	assert.Equal(t, "page  v2", w.Body.String())
}

func TestCachePageKeysByPage(t *testing.T) {
	r, mr := cachedEngine(t, time.Minute, func(c *gin.Context) {
		c.String(http.StatusOK, "page %s", c.Query("page"))
	})

	assert.Equal(t, "page 2", get(r, "/?page=2").Body.String())
	assert.Equal(t, "MISS", get(r, "/?page=3").Header().Get("X-Cache"))
	assert.Equal(t, "HIT", get(r, "/?page=2").Header().Get("X-Cache"))
	assert.True(t, mr.Exists("main_page:page=2"))
}

func TestCachePageSkipsErrorResponses(t *testing.T) {
	r, mr := cachedEngine(t, time.Minute, func(c *gin.Context) {
		c.String(http.StatusInternalServerError, "boom")
	})

	w := get(r, "/")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "boom", w.Body.String())
	assert.False(t, mr.Exists("main_page:page=1"))
}
