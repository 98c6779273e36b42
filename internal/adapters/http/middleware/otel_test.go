package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/jsamuelsen11/taskdialog/internal/adapters/http/middleware"
	"github.com/jsamuelsen11/taskdialog/internal/platform/telemetry"
)

// These tests swap the global TracerProvider and are not parallel.

func setupTracer(t *testing.T) *tracetest.InMemoryExporter {
	t.Helper()

	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	prevTP, prevProp := otel.GetTracerProvider(), otel.GetTextMapPropagator()
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		otel.SetTracerProvider(prevTP)
		otel.SetTextMapPropagator(prevProp)
	})
	return exporter
}

// dialogRouter mounts h on the dialog submit route behind the middleware.
func dialogRouter(metrics *telemetry.Metrics, status int) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID(), middleware.OpenTelemetry(metrics))
	r.Post("/api/v1/dialogs/{id}/submit", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
	})
	r.Get("/health/ready", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
	})
	return r
}

func spanAttrs(s sdktrace.ReadOnlySpan) map[attribute.Key]attribute.Value {
	m := make(map[attribute.Key]attribute.Value)
	for _, kv := range s.Attributes() {
		m[kv.Key] = kv.Value
	}
	return m
}

func TestOpenTelemetry_SpanNamedAfterRoute(t *testing.T) {
	exporter := setupTracer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/dialogs/3f2a/submit", http.NoBody)
	req.Header.Set("X-Request-ID", "req-7")
	dialogRouter(nil, http.StatusOK).ServeHTTP(httptest.NewRecorder(), req)

	spans := exporter.GetSpans().Snapshots()
	require.Len(t, spans, 1)

	s := spans[0]
	assert.Equal(t, "POST /api/v1/dialogs/{id}/submit", s.Name())
	attrs := spanAttrs(s)
	assert.Equal(t, "/api/v1/dialogs/{id}/submit", attrs["http.route"].AsString())
	assert.Equal(t, int64(http.StatusOK), attrs["http.status_code"].AsInt64())
	assert.Equal(t, "3f2a", attrs["dialog.id"].AsString())
	assert.Equal(t, "req-7", attrs["request.id"].AsString())
	assert.Equal(t, codes.Unset, s.Status().Code)
}

func TestOpenTelemetry_ErrorStatusOnlyFor5xx(t *testing.T) {
	for status, want := range map[int]codes.Code{
		http.StatusConflict:           codes.Unset,
		http.StatusServiceUnavailable: codes.Error,
	} {
		exporter := setupTracer(t)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/dialogs/d-1/submit", http.NoBody)
		dialogRouter(nil, status).ServeHTTP(httptest.NewRecorder(), req)

		spans := exporter.GetSpans().Snapshots()
		require.Len(t, spans, 1)
		assert.Equal(t, want, spans[0].Status().Code, "status %d", status)
	}
}

func TestOpenTelemetry_ContinuesIncomingTrace(t *testing.T) {
	exporter := setupTracer(t)

	const traceID = "4bf92f3577b34da6a3ce929d0e0e4736"
	req := httptest.NewRequest(http.MethodPost, "/api/v1/dialogs/d-1/submit", http.NoBody)
	req.Header.Set("traceparent", "00-"+traceID+"-00f067aa0ba902b7-01")
	dialogRouter(nil, http.StatusOK).ServeHTTP(httptest.NewRecorder(), req)

	spans := exporter.GetSpans().Snapshots()
	require.Len(t, spans, 1)
	assert.Equal(t, traceID, spans[0].SpanContext().TraceID().String())
	assert.True(t, spans[0].Parent().IsRemote())
}

func TestOpenTelemetry_ProbesAreNotTraced(t *testing.T) {
	exporter := setupTracer(t)

	rec := httptest.NewRecorder()
	dialogRouter(nil, http.StatusOK).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", http.NoBody))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, exporter.GetSpans())
}

func TestOpenTelemetry_RecordsMetrics(t *testing.T) {
	t.Parallel()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	metrics, err := telemetry.NewMetrics(mp, "taskdialog-test")
	require.NoError(t, err)

	h := dialogRouter(metrics, http.StatusConflict)
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/v1/dialogs/a/submit", http.NoBody))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/v1/dialogs/b/submit", http.NoBody))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health/ready", http.NoBody))

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	counts := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != "http.server.request.total" {
				continue
			}
			for _, dp := range m.Data.(metricdata.Sum[int64]).DataPoints {
				route, _ := dp.Attributes.Value(telemetry.AttrHTTPRoute)
				result, _ := dp.Attributes.Value(telemetry.AttrResult)
				counts[route.AsString()+" "+result.AsString()] += dp.Value
			}
		}
	}

	assert.Equal(t, map[string]int64{
		"/api/v1/dialogs/{id}/submit error": 2,
		"/health/ready success":             1,
	}, counts)
}

func TestOpenTelemetry_NilMetrics(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	dialogRouter(nil, http.StatusCreated).ServeHTTP(rec,
		httptest.NewRequest(http.MethodPost, "/api/v1/dialogs/d-1/submit", http.NoBody))

	assert.Equal(t, http.StatusCreated, rec.Code)
}
