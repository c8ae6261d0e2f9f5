package metrics

import (
	"strconv"
	"time"

	obscontext "github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/observability/context"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// HTTPMetrics holds Prometheus collectors for the report API.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewHTTPMetrics registers the HTTP collectors with the default registerer.
func NewHTTPMetrics() (*HTTPMetrics, error) {
	return NewHTTPMetricsWith(prometheus.DefaultRegisterer)
}

// NewHTTPMetricsWith registers the HTTP collectors with reg.
func NewHTTPMetricsWith(reg prometheus.Registerer) (*HTTPMetrics, error) {
	m := &HTTPMetrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "nestogy_http_requests_total",
			Help: "HTTP requests served by the ledger report API.",
		}, []string{"route", "report", "status_code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "nestogy_http_request_duration_seconds",
			Help:    "Latency of ledger report API requests.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "report"}),
	}
	for _, c := range []prometheus.Collector{m.requests, m.duration} {
		if err := reg.Register(c); err != nil {
			if already, ok := err.(prometheus.AlreadyRegisteredError); ok {
				switch existing := already.ExistingCollector.(type) {
				case *prometheus.CounterVec:
					m.requests = existing
				case *prometheus.HistogramVec:
					m.duration = existing
				}
				continue
			}
			return nil, err
		}
	}
	return m, nil
}

// GinMiddleware records request counts and latency per route and ledger report.
// Entity ids stay out of the labels.
func GinMiddleware(m *HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		ctx, scope := obscontext.WithScope(c.Request.Context())
		c.Request = c.Request.WithContext(ctx)
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}
		report := scope.Report
		if report == "" {
			report = "none"
		}
		m.requests.WithLabelValues(route, report, strconv.Itoa(c.Writer.Status())).Inc()
		m.duration.WithLabelValues(route, report).Observe(time.Since(start).Seconds())
	}
}
