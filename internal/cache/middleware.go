package cache

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// cachedPage is the stored form of a rendered response.
type cachedPage struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

type bodyRecorder struct {
	gin.ResponseWriter
	buf *bytes.Buffer
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *bodyRecorder) WriteString(s string) (int, error) {
	w.buf.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// PageCache serves GET responses from the cache for the configured TTL.
// The key is the full request URI, so different query strings (e.g. other
// page numbers) never share an entry. Within the TTL window repeated
// requests to the same key get the identical stored payload, regardless of
// writes in between.
func PageCache(c *Cache, ttl time.Duration) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if ctx.Request.Method != http.MethodGet {
			ctx.Next()
			return
		}

		key := "page:" + ctx.Request.URL.RequestURI()

		if data, err := c.Get(ctx.Request.Context(), key); err == nil {
			var page cachedPage
			if err := json.Unmarshal(data, &page); err == nil {
				ctx.Data(page.Status, page.ContentType, page.Body)
				ctx.Abort()
				return
			}
		}

		recorder := &bodyRecorder{ResponseWriter: ctx.Writer, buf: &bytes.Buffer{}}
		ctx.Writer = recorder

		ctx.Next()

		if recorder.Status() != http.StatusOK {
			return
		}

		page := cachedPage{
			Status:      recorder.Status(),
			ContentType: recorder.Header().Get("Content-Type"),
			Body:        recorder.buf.Bytes(),
		}
		if data, err := json.Marshal(page); err == nil {
			_ = c.Set(ctx.Request.Context(), key, data, ttl)
		}
	}
}
