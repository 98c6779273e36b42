package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"github.com/jsamuelsen11/taskdialog/internal/platform/config"
)

// restoreGlobals puts back the global OTel providers Setup replaces.
func restoreGlobals(t *testing.T) {
	t.Helper()
	tp, mp, prop := otel.GetTracerProvider(), otel.GetMeterProvider(), otel.GetTextMapPropagator()
	t.Cleanup(func() {
		otel.SetTracerProvider(tp)
		otel.SetMeterProvider(mp)
		otel.SetTextMapPropagator(prop)
	})
}

func TestSetup_Disabled(t *testing.T) {
	t.Parallel()

	p, err := Setup(context.Background(), config.TelemetryConfig{Enabled: false, Exporter: "bogus"})
	require.NoError(t, err)
	assert.Nil(t, p.Metrics)
	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestSetup_Stdout(t *testing.T) {
	restoreGlobals(t)
	ctx := context.Background()

	p, err := Setup(ctx, config.TelemetryConfig{Enabled: true, Exporter: ExporterStdout, ServiceName: "taskdialog-test"})
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Shutdown(ctx) })

	require.NotNil(t, p.Metrics)
	assert.Same(t, p.tracer, otel.GetTracerProvider())
	assert.ElementsMatch(t, []string{"traceparent", "tracestate", "baggage"}, otel.GetTextMapPropagator().Fields())
}

func TestSetup_OTLP(t *testing.T) {
	restoreGlobals(t)
	ctx := context.Background()

	p, err := Setup(ctx, config.TelemetryConfig{
		Enabled:     true,
		Exporter:    ExporterOTLP,
		Endpoint:    "http://localhost:4318",
		ServiceName: "taskdialog-test",
	})
	require.NoError(t, err)
	// No collector is listening; the flush on shutdown may fail.
	t.Cleanup(func() { _ = p.Shutdown(ctx) })

	assert.NotNil(t, p.Metrics)
}

func TestSetup_BadExporter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		cfg     config.TelemetryConfig
		wantErr error
	}{
		{name: "unsupported", cfg: config.TelemetryConfig{Enabled: true, Exporter: "zipkin"}, wantErr: errUnsupportedExporter},
		{name: "otlp without endpoint", cfg: config.TelemetryConfig{Enabled: true, Exporter: ExporterOTLP}, wantErr: errMissingEndpoint},
	}

	for _, tt := range tests {
		_, err := Setup(context.Background(), tt.cfg)
		assert.True(t, errors.Is(err, tt.wantErr), "%s: got %v", tt.name, err)
	}
}

func TestCollector(t *testing.T) {
	t.Parallel()

	tests := []struct {
		endpoint   string
		wantHost   string
		wantSecure bool
	}{
		{endpoint: "http://otel-collector:4318", wantHost: "otel-collector:4318"},
		{endpoint: "https://collector.example.com", wantHost: "collector.example.com", wantSecure: true},
		{endpoint: "otel-collector:4318", wantHost: "otel-collector:4318"},
	}

	for _, tt := range tests {
		host, secure := collector(tt.endpoint)
		assert.Equal(t, tt.wantHost, host, tt.endpoint)
		assert.Equal(t, tt.wantSecure, secure, tt.endpoint)
	}
}
