package observability

import (
	"strings"

	"github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/config"
	"github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/observability/logger"
	"github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/observability/metrics"
	"github.com/FoleyBridge-Solutions/Nestogy-sub047/internal/observability/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/fx"
)

var Module = fx.Module("observability",
	fx.Provide(
		NewResource,
		provideLoggerConfig,
		logger.New,
		provideTracingConfig,
		tracing.NewProvider,
		provideMetricsConfig,
		metrics.NewProvider,
		metrics.New,
		metrics.NewHTTPMetrics,
	),
	fx.Invoke(ensureTracingProvider),
)

func ensureTracingProvider(_ *sdktrace.TracerProvider) {}

// NewResource describes the ledger instance behind every exported span and metric:
// the service identity plus the currency, store and forecast policy it reports with.
func NewResource(cfg config.Config, accounting *config.AccountingConfigHolder) *resource.Resource {
	attrs := []attribute.KeyValue{
		attribute.String("service.name", serviceName(cfg)),
		attribute.String("service.version", strings.TrimSpace(cfg.AppVersion)),
		attribute.String("deployment.environment", strings.TrimSpace(cfg.Environment)),
		attribute.String("ledger.store.dialect", cfg.DBType),
	}
	acct := config.DefaultAccountingConfig()
	if accounting != nil {
		acct = accounting.Get()
	}
	attrs = append(attrs,
		attribute.String("ledger.currency", acct.Currency),
		attribute.Int("ledger.ageing.buckets", len(acct.AgeingBuckets)),
		attribute.Int("ledger.forecast.degree", acct.Forecast.Degree),
		attribute.Int("ledger.forecast.history_months", acct.Forecast.HistoryMonths),
		attribute.String("ledger.forecast.missing_months", acct.Forecast.MissingMonths),
	)
	return resource.NewSchemaless(attrs...)
}

func serviceName(cfg config.Config) string {
	if name := strings.TrimSpace(cfg.AppName); name != "" {
		return name
	}
	return "nestogy-ledger"
}

// The accounting holder logs its reloads, so the logger cannot depend on it.
func provideLoggerConfig(cfg config.Config) logger.Config {
	return logger.Config{
		ServiceName:         serviceName(cfg),
		Environment:         cfg.Environment,
		Version:             cfg.AppVersion,
		Level:               cfg.Telemetry.LogLevel,
		Format:              cfg.Telemetry.LogFormat,
		Debug:               cfg.Debug(),
		Dialect:             cfg.DBType,
		IncludeCaller:       true,
		IncludeStackOnError: cfg.Debug(),
	}
}

func provideTracingConfig(cfg config.Config, res *resource.Resource) tracing.Config {
	return tracing.Config{
		Enabled:          cfg.Telemetry.OtelEnabled,
		Resource:         res,
		ExporterEndpoint: cfg.OTLPEndpoint,
		ExporterProtocol: cfg.Telemetry.OtelProtocol,
		SamplingRatio:    cfg.Telemetry.OtelSamplingRatio,
	}
}

func provideMetricsConfig(cfg config.Config, res *resource.Resource) metrics.Config {
	return metrics.Config{
		Enabled:          cfg.Telemetry.OtelEnabled,
		Resource:         res,
		ExporterEndpoint: cfg.OTLPEndpoint,
		ExporterProtocol: cfg.Telemetry.OtelProtocol,
		ServiceName:      serviceName(cfg),
	}
}
