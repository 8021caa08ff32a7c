package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"net/http"
	"sync"
	"time"

	"smarty-chef/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Deduplicator 拒絕窗口時間內重複送出的相同 POST 請求
type Deduplicator struct {
	window time.Duration
	now    func() time.Time

	mu        sync.Mutex
	requests  map[string]time.Time
	lastSweep time.Time
}

// NewDeduplicator 創建去重器；window <= 0 時使用 1 秒
func NewDeduplicator(window time.Duration) *Deduplicator {
	if window <= 0 {
		window = time.Second
	}
	return &Deduplicator{
		window:   window,
		now:      time.Now,
		requests: make(map[string]time.Time),
	}
}

// seen 記錄指紋並回傳是否在窗口內出現過
func (d *Deduplicator) seen(fingerprint string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	if now.Sub(d.lastSweep) > 10*d.window {
		for k, t := range d.requests {
			if now.Sub(t) > d.window {
				delete(d.requests, k)
			}
		}
		d.lastSweep = now
	}

	if last, ok := d.requests[fingerprint]; ok && now.Sub(last) <= d.window {
		return true
	}
	d.requests[fingerprint] = now
	return false
}

// Middleware 請求去重中間件，只處理 POST
func (d *Deduplicator) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost || c.Request.Body == nil {
			c.Next()
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			common.LogWarn("Failed to read request body", zap.Error(err))
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				abortWithError(c, common.ErrPayloadTooLarge)
				return
			}
			abortWithError(c, common.ErrInvalidRequest)
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		hash := sha256.Sum256(body)
		fingerprint := c.ClientIP() + ":" + c.Request.URL.Path + ":" + hex.EncodeToString(hash[:])

		if d.seen(fingerprint) {
			common.LogInfo("Duplicate request rejected",
				zap.String("ip", c.ClientIP()),
				zap.String("path", c.Request.URL.Path),
			)
			abortWithError(c, common.ErrDuplicateRequest)
			return
		}

		c.Next()
	}
}
