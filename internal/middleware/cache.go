package middleware

import (
	"bytes"
	"net/http"
	"time"

	"quill/internal/cache"

	"github.com/gin-gonic/gin"
)

type captureWriter struct {
	gin.ResponseWriter
	body bytes.Buffer
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *captureWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// CachePage serves the stored rendering of a page while it is fresh and
// captures a new rendering when it is not. Staleness within the TTL is
// deliberate: edits do not show up on the cached page until the TTL elapses
// or the store is cleared explicitly.
func CachePage(store *cache.PageCache, key string, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Single fixed key: requests carrying a query string (page numbers
		// and the like) are never cached rather than keyed separately.
		if c.Request.URL.RawQuery != "" {
			c.Next()
			return
		}

		if body, ok := store.Get(key); ok {
			c.Data(http.StatusOK, "text/html; charset=utf-8", body)
			c.Abort()
			return
		}

		writer := &captureWriter{ResponseWriter: c.Writer}
		c.Writer = writer
		c.Next()

		if writer.Status() == http.StatusOK {
			store.Set(key, writer.body.Bytes(), ttl)
		}
	}
}
