package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "smarty_chef"

// Metrics Prometheus 指標集合；nil 接收者的方法皆為 no-op
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	upstreamRequestsTotal   *prometheus.CounterVec
	upstreamRequestDuration *prometheus.HistogramVec

	resolutionsTotal *prometheus.CounterVec
	recipesReturned  prometheus.Histogram
	detailFailures   prometheus.Counter

	cacheOperations *prometheus.CounterVec
}

// New 建立獨立 registry 的指標集合
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		upstreamRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "upstream_requests_total",
				Help:      "Total number of recipe source API calls",
			},
			[]string{"endpoint", "outcome"},
		),
		upstreamRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "upstream_request_duration_seconds",
				Help:      "Recipe source API call duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"endpoint"},
		),
		resolutionsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "resolutions_total",
				Help:      "Recipe resolutions by api source and fallback reason",
			},
			[]string{"api_source", "reason"},
		),
		recipesReturned: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "recipes_returned",
				Help:      "Number of recipes returned per resolution",
				Buckets:   []float64{1, 2, 3, 4, 5, 8},
			},
		),
		detailFailures: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "detail_fetch_failures_total",
				Help:      "Candidates dropped because their detail fetch failed",
			},
		),
		cacheOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "cache_operations_total",
				Help:      "Detail cache lookups by result",
			},
			[]string{"result"},
		),
	}
}

// Registry 回傳底層 registry
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler 回傳 /metrics 處理器
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveHTTP 記錄 HTTP 請求
func (m *Metrics) ObserveHTTP(method, path, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// ObserveUpstream 記錄外部 API 調用，outcome 為 ok、error 或 status_<code>
func (m *Metrics) ObserveUpstream(endpoint, outcome string, duration time.Duration) {
	if m == nil {
		return
	}
	m.upstreamRequestsTotal.WithLabelValues(endpoint, outcome).Inc()
	m.upstreamRequestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

// ObserveResolution 記錄一次食譜解析結果
func (m *Metrics) ObserveResolution(apiSource, reason string, recipes int) {
	if m == nil {
		return
	}
	if reason == "" {
		reason = "none"
	}
	m.resolutionsTotal.WithLabelValues(apiSource, reason).Inc()
	m.recipesReturned.Observe(float64(recipes))
}

// IncDetailFailures 記錄被丟棄的候選食譜數
func (m *Metrics) IncDetailFailures(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.detailFailures.Add(float64(n))
}

// ObserveCache 記錄快取查詢，result 為 hit 或 miss
func (m *Metrics) ObserveCache(result string) {
	if m == nil {
		return
	}
	m.cacheOperations.WithLabelValues(result).Inc()
}
