package tracing

import (
	"net/http"
	"strings"
	"time"

	obscontext "github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/observability/context"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/baggage"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "nestogy-ledger/http"

// GinMiddleware opens a server span per request. Once the handler has run, the span
// is renamed after the ledger report it computed and tagged with the entity and
// period from the request scope.
func GinMiddleware() gin.HandlerFunc {
	tracer := otel.Tracer(tracerName)
	return func(c *gin.Context) {
		ctx := ExtractContext(c.Request.Context(), propagation.HeaderCarrier(c.Request.Header))
		ctx, scope := obscontext.WithScope(ctx)
		ctx, span := tracer.Start(ctx, "HTTP "+strings.ToUpper(c.Request.Method), trace.WithSpanKind(trace.SpanKindServer))

		if requestID := obscontext.RequestIDFromContext(ctx); requestID != "" {
			if member, err := baggage.NewMember("request_id", requestID); err == nil {
				if bag, err := baggage.New(member); err == nil {
					ctx = baggage.ContextWithBaggage(ctx, bag)
				}
			}
			span.SetAttributes(attribute.String("request_id", requestID))
		}

		c.Request = c.Request.WithContext(ctx)
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unknown"
		}
		span.SetName(SpanName(c.Request.Method, route, scope))
		attrs := []attribute.KeyValue{
			attribute.String("http.method", c.Request.Method),
			attribute.String("http.route", route),
			attribute.Int("http.status_code", c.Writer.Status()),
			attribute.Int64("http.server_duration_ms", time.Since(start).Milliseconds()),
		}
		span.SetAttributes(SafeAttributes(append(attrs, ScopeAttributes(scope)...)...)...)

		if status := c.Writer.Status(); status >= http.StatusInternalServerError {
			if lastErr := c.Errors.Last(); lastErr != nil {
				if safeErr := SafeError(lastErr.Err); safeErr != nil {
					span.RecordError(safeErr)
				}
			}
			span.SetStatus(codes.Error, "request error")
		}
		span.End()
	}
}

// SpanName prefers the report name so traces group by ledger figure rather than URL.
func SpanName(method, route string, scope *obscontext.Scope) string {
	if scope != nil && scope.Report != "" {
		return "ledger." + scope.Report
	}
	return "HTTP " + strings.ToUpper(method) + " " + route
}

// ScopeAttributes renders the ledger scope as span attributes.
func ScopeAttributes(scope *obscontext.Scope) []attribute.KeyValue {
	if scope.Empty() {
		return nil
	}
	var attrs []attribute.KeyValue
	if scope.Report != "" {
		attrs = append(attrs, attribute.String("ledger.report", scope.Report))
	}
	if scope.EntityID != "" {
		attrs = append(attrs,
			attribute.String("ledger.entity", scope.Entity),
			attribute.String("ledger."+scope.Entity+"_id", scope.EntityID),
		)
	}
	if period := scope.Period(); period != "" {
		attrs = append(attrs, attribute.String("ledger.period", period))
	}
	if queries := scope.Queries(); queries > 0 {
		attrs = append(attrs, attribute.Int64("ledger.queries", queries))
	}
	return attrs
}
