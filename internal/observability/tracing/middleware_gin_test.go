package tracing

import (
	"net/http"
	"net/http/httptest"
	"testing"

	obscontext "github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/observability/context"
	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func recordSpans(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	previous := otel.GetTracerProvider()
	otel.SetTracerProvider(provider)
	t.Cleanup(func() { otel.SetTracerProvider(previous) })
	return recorder
}

func spanAttributes(span sdktrace.ReadOnlySpan) map[attribute.Key]attribute.Value {
	out := map[attribute.Key]attribute.Value{}
	for _, kv := range span.Attributes() {
		out[kv.Key] = kv.Value
	}
	return out
}

func TestGinMiddlewareTagsSpanWithLedgerScope(t *testing.T) {
	gin.SetMode(gin.TestMode)
	recorder := recordSpans(t)

	r := gin.New()
	r.Use(GinMiddleware())
	r.GET("/v1/clients/:id/ageing", func(c *gin.Context) {
		scope := obscontext.ScopeFromContext(c.Request.Context())
		scope.SetReport("ageing")
		scope.SetEntity(obscontext.EntityClient, snowflake.ID(42))
		scope.CountQuery()
		c.Status(http.StatusOK)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/clients/42/ageing", nil))

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "ledger.ageing", spans[0].Name())

	attrs := spanAttributes(spans[0])
	assert.Equal(t, "ageing", attrs["ledger.report"].AsString())
	assert.Equal(t, "client", attrs["ledger.entity"].AsString())
	assert.Equal(t, "42", attrs["ledger.client_id"].AsString())
	assert.Equal(t, int64(1), attrs["ledger.queries"].AsInt64())
	assert.Equal(t, "/v1/clients/:id/ageing", attrs["http.route"].AsString())
}

func TestGinMiddlewareKeepsRouteNameWithoutReport(t *testing.T) {
	gin.SetMode(gin.TestMode)
	recorder := recordSpans(t)

	r := gin.New()
	r.Use(GinMiddleware())
	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "HTTP GET /health", spans[0].Name())
	_, tagged := spanAttributes(spans[0])["ledger.report"]
	assert.False(t, tagged)
}

func TestScopeAttributesWithPeriod(t *testing.T) {
	month := 2
	scope := &obscontext.Scope{}
	scope.SetReport("tax")
	scope.SetPeriod(2024, &month)

	attrs := ScopeAttributes(scope)
	require.Len(t, attrs, 2)
	assert.Equal(t, attribute.String("ledger.period", "2024-02"), attrs[1])
	assert.Nil(t, ScopeAttributes(nil))
}
