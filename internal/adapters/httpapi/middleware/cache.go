package middleware

import (
	"bytes"
	"net/http"
	"time"

	"inkwell/internal/config"
	"inkwell/internal/core/pagination"
	"inkwell/internal/metrics"
	"inkwell/internal/ports/pagecache"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const cachedContentType = "application/json; charset=utf-8"

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

// CachePage serves the first page of view from cache and stores a fresh 200
// response for ttl. Writes elsewhere never touch the entry; it simply expires.
func CachePage(cache pagecache.PageCache, view string, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if pagination.ParseNumber(c.Query("page")) != 1 {
			c.Next()
			return
		}
		key := pagecache.Key(view, 1)
		ctx := c.Request.Context()

		body, ok, err := cache.Get(ctx, key)
		if err != nil {
			config.Logger.Warn("Page cache read failed", zap.String("key", key), zap.Error(err))
		}
		metrics.ObserveCacheLookup(view, ok)
		if ok {
			c.Data(http.StatusOK, cachedContentType, body)
			c.Abort()
			return
		}

		w := &bodyWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = w
		c.Next()

		if w.Status() != http.StatusOK {
			return
		}
		if err := cache.Set(ctx, key, w.body.Bytes(), ttl); err != nil {
			config.Logger.Warn("Page cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
}
