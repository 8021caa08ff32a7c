package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"smarty-chef/internal/infrastructure/metrics"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRecoveryReturnsInternalError(t *testing.T) {
	r := gin.New()
	r.Use(Recovery())
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal server error","code":"INTERNAL_ERROR"}`, w.Body.String())
}

func TestLoggerPassesThrough(t *testing.T) {
	r := gin.New()
	r.Use(requestid.New(), Logger())
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestRateLimiterPerClient(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return clock }

	assert.True(t, rl.Allow("a"))
	assert.True(t, rl.Allow("a"))
	assert.False(t, rl.Allow("a"))
	assert.True(t, rl.Allow("b"))

	clock = clock.Add(30 * time.Second)
	assert.True(t, rl.Allow("a"))
	assert.False(t, rl.Allow("a"))
}

func TestRateLimiterSweepsIdleClients(t *testing.T) {
	rl := NewRateLimiter(1, time.Second)
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return clock }

	rl.Allow("a")
	rl.Allow("b")
	clock = clock.Add(5 * time.Second)
	rl.Allow("c")

	assert.Len(t, rl.clients, 1)
}

func TestDeduplicator(t *testing.T) {
	d := NewDeduplicator(time.Second)
	clock := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	d.now = func() time.Time { return clock }

	r := gin.New()
	r.Use(d.Middleware())
	r.POST("/echo", func(c *gin.Context) {
		body, err := c.GetRawData()
		require.NoError(t, err)
		c.String(http.StatusOK, string(body))
	})
	r.GET("/echo", func(c *gin.Context) { c.Status(http.StatusOK) })

	send := func(method, body string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(method, "/echo", strings.NewReader(body)))
		return w
	}

	first := send(http.MethodPost, `{"a":1}`)
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, `{"a":1}`, first.Body.String())

	assert.Equal(t, http.StatusTooManyRequests, send(http.MethodPost, `{"a":1}`).Code)
	assert.Equal(t, http.StatusOK, send(http.MethodPost, `{"a":2}`).Code)
	assert.Equal(t, http.StatusOK, send(http.MethodGet, "").Code)
	assert.Equal(t, http.StatusOK, send(http.MethodGet, "").Code)

	clock = clock.Add(2 * time.Second)
	assert.Equal(t, http.StatusOK, send(http.MethodPost, `{"a":1}`).Code)
}

func TestBodySizeLimitUnknownLength(t *testing.T) {
	r := gin.New()
	r.Use(BodySizeLimit(4))
	r.POST("/", func(c *gin.Context) {
		_, err := c.GetRawData()
		if err != nil {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("0123456789"))
	req.ContentLength = -1
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestTimeout(t *testing.T) {
	r := gin.New()
	r.Use(Timeout(10 * time.Millisecond))
	r.GET("/slow", func(c *gin.Context) {
		<-c.Request.Context().Done()
	})
	r.GET("/fast", func(c *gin.Context) {
		_, ok := c.Request.Context().Deadline()
		assert.True(t, ok)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/slow", nil))
	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
	assert.Contains(t, w.Body.String(), "GATEWAY_TIMEOUT")

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/fast", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTimeoutDisabled(t *testing.T) {
	r := gin.New()
	r.Use(Timeout(0))
	r.GET("/", func(c *gin.Context) {
		_, ok := c.Request.Context().Deadline()
		assert.False(t, ok)
		assert.NoError(t, context.Cause(c.Request.Context()))
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMetricsMiddleware(t *testing.T) {
	m := metrics.New()
	r := gin.New()
	r.Use(Metrics(m))
	r.GET("/things/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	for _, path := range []string{"/things/1", "/things/2", "/missing"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := w.Body.String()
	assert.Contains(t, body, `smarty_chef_http_requests_total{method="GET",path="/things/:id",status_code="200"} 2`)
	assert.Contains(t, body, `smarty_chef_http_requests_total{method="GET",path="unmatched",status_code="404"} 1`)
}

func TestMetricsMiddlewareNilMetrics(t *testing.T) {
	r := gin.New()
	r.Use(Metrics(nil))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
