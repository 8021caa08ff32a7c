package middleware

import (
	"strconv"
	"time"

	"smarty-chef/internal/infrastructure/metrics"

	"github.com/gin-gonic/gin"
)

// Metrics 記錄 HTTP 請求指標；未匹配路由統一標記為 unmatched
func Metrics(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.ObserveHTTP(c.Request.Method, path, strconv.Itoa(c.Writer.Status()), time.Since(start))
	}
}
