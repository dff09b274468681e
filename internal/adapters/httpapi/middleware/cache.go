package middleware

import (
	"bytes"
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"yatube/internal/core/pagination"
)

var errNotCacheable = errors.New("response not cacheable")

// PageCache returns a cached body for a page number or computes it.
type PageCache interface {
	GetOrCompute(ctx context.Context, page int, compute func(ctx context.Context) ([]byte, error)) ([]byte, bool, error)
}

type bodyWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *bodyWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// CachePage serves the route from cache keyed only by ?page=. The wrapped
// handler must render the same bytes for every viewer. Only 200 responses
// are stored.
func CachePage(cache PageCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		page := pagination.ParseNumber(c.Query("page"))

		body, hit, _ := cache.GetOrCompute(c.Request.Context(), page, func(ctx context.Context) ([]byte, error) {
			c.Header("X-Cache", "MISS")
			w := &bodyWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
			c.Writer = w
			c.Next()
			c.Writer = w.ResponseWriter
			if c.Writer.Status() != http.StatusOK || len(c.Errors) > 0 {
				return nil, errNotCacheable
			}
			return w.body.Bytes(), nil
		})
		if hit {
			pageCacheResults.WithLabelValues("hit").Inc()
			c.Header("X-Cache", "HIT")
			c.Data(http.StatusOK, "text/html; charset=utf-8", body)
			c.Abort()
			return
		}
		pageCacheResults.WithLabelValues("miss").Inc()
	}
}
