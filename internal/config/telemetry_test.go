package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadReadsTelemetryFromEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("LOG_LEVEL", " DEBUG ")
	t.Setenv("OTEL_ENABLED", "yes")
	t.Setenv("OTEL_EXPORTER_OTLP_PROTOCOL", "grpc")
	t.Setenv("OTEL_EXPORTER_OTLP_TRACES_PROTOCOL", "HTTP")
	t.Setenv("OTEL_SAMPLING_RATIO", "0.5")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "collector:4318")

	cfg := Load()
	assert.Equal(t, "debug", cfg.Telemetry.LogLevel)
	assert.True(t, cfg.Telemetry.OtelEnabled)
	assert.Equal(t, "http", cfg.Telemetry.OtelProtocol)
	assert.Equal(t, 0.5, cfg.Telemetry.OtelSamplingRatio)
	assert.Equal(t, "collector:4318", cfg.OTLPEndpoint)
	assert.True(t, cfg.Debug())
}

func TestTelemetryDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("OTEL_ENABLED", "maybe")
	t.Setenv("OTEL_SAMPLING_RATIO", "lots")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_FORMAT", "")

	cfg := Load()
	assert.False(t, cfg.Telemetry.OtelEnabled)
	assert.Equal(t, 0.1, cfg.Telemetry.OtelSamplingRatio)
	assert.Equal(t, "json", cfg.Telemetry.LogFormat)
	assert.False(t, cfg.Debug())
}
