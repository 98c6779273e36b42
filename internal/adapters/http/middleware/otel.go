package middleware

import (
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen11/taskdialog/internal/platform/telemetry"
)

const tracerName = "github.com/jsamuelsen11/taskdialog/internal/adapters/http/middleware"

// untracedPrefix marks the probe routes: they are counted but get no span.
const untracedPrefix = "/health/"

// OpenTelemetry continues the caller's W3C trace, wraps the request in a
// server span and records request metrics. Spans and metrics are labelled
// with the chi route pattern; a dialog's ID is a span attribute only. A nil
// metrics records nothing.
func OpenTelemetry(metrics *telemetry.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := newResponseWriter(w)

			if strings.HasPrefix(r.URL.Path, untracedPrefix) {
				next.ServeHTTP(rw, r)
				metrics.RecordServerRequest(r.Context(), r.Method, routeName(r), rw.statusCode, time.Since(start))
				return
			}

			ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
			ctx, span := otel.Tracer(tracerName).Start(ctx, r.Method+" "+r.URL.Path,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					attribute.String("http.method", r.Method),
					attribute.String("url.path", r.URL.Path),
				),
			)
			defer span.End()

			r = r.WithContext(ctx)
			next.ServeHTTP(rw, r)

			route, status := routeName(r), rw.statusCode
			span.SetName(r.Method + " " + route)
			span.SetAttributes(
				attribute.String("http.route", route),
				attribute.Int("http.status_code", status),
			)
			if id := dialogID(r); id != "" {
				span.SetAttributes(attribute.String("dialog.id", id))
			}
			if id := RequestIDFromContext(ctx); id != "" {
				span.SetAttributes(attribute.String("request.id", id))
			}
			if status >= http.StatusInternalServerError {
				span.SetStatus(codes.Error, http.StatusText(status))
			}

			metrics.RecordServerRequest(ctx, r.Method, route, status, time.Since(start))
		})
	}
}
