package metrics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	obscontext "github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/observability/context"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
)

func TestFilterAttributesDropsForbiddenLabels(t *testing.T) {
	attrs := FilterAttributes(
		attribute.String("report", "ageing"),
		attribute.String("client_id", "456"),
		attribute.String("reason", "singular_matrix"),
	)
	require.Len(t, attrs, 2)
	assert.Equal(t, attribute.Key("report"), attrs[0].Key)
	assert.Equal(t, attribute.Key("reason"), attrs[1].Key)
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	m.RecordReport(context.Background(), "tax")
	m.RecordForecastFallback(context.Background(), "singular_matrix")

	NewNoop().RecordReport(context.Background(), "tax")
}

func TestHTTPMetricsCountsRequestsByRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reg := prometheus.NewRegistry()
	m, err := NewHTTPMetricsWith(reg)
	require.NoError(t, err)

	r := gin.New()
	r.Use(GinMiddleware(m))
	r.GET("/v1/invoices/:id/total", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/v1/reports/tax", func(c *gin.Context) {
		obscontext.ScopeFromContext(c.Request.Context()).SetReport("tax")
		c.Status(http.StatusOK)
	})

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/invoices/42/total", nil))
	}
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/reports/tax?year=2024", nil))

	families, err := reg.Gather()
	require.NoError(t, err)

	var counter *dto.MetricFamily
	for _, family := range families {
		if family.GetName() == "nestogy_http_requests_total" {
			counter = family
		}
	}
	require.NotNil(t, counter)
	require.Len(t, counter.GetMetric(), 2)

	byReport := map[string]*dto.Metric{}
	for _, m := range counter.GetMetric() {
		labels := map[string]string{}
		for _, pair := range m.GetLabel() {
			labels[pair.GetName()] = pair.GetValue()
		}
		assert.Equal(t, "200", labels["status_code"])
		byReport[labels["report"]+" "+labels["route"]] = m
	}
	require.Contains(t, byReport, "none /v1/invoices/:id/total")
	require.Contains(t, byReport, "tax /v1/reports/tax")
	assert.Equal(t, 3.0, byReport["none /v1/invoices/:id/total"].GetCounter().GetValue())
	assert.Equal(t, 1.0, byReport["tax /v1/reports/tax"].GetCounter().GetValue())
}

func TestHTTPMetricsReRegistrationReusesCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewHTTPMetricsWith(reg)
	require.NoError(t, err)
	second, err := NewHTTPMetricsWith(reg)
	require.NoError(t, err)
	assert.Same(t, first.requests, second.requests)
}
