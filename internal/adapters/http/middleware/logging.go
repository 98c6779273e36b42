package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/jsamuelsen11/taskdialog/internal/platform/logging"
)

// Logging stores a request scoped logger (carrying the request and
// correlation IDs) in the context and logs the start and end of every
// request. Headers are logged, redacted, at debug level. The completion
// record names the matched route and, on dialog routes, the dialog.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ctx := r.Context()

			child := logger.With(
				slog.String("request_id", RequestIDFromContext(ctx)),
				slog.String("correlation_id", CorrelationIDFromContext(ctx)),
			)
			ctx = logging.WithLogger(ctx, child)
			r = r.WithContext(ctx)

			child.InfoContext(ctx, "request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
			)
			if child.Enabled(ctx, slog.LevelDebug) {
				child.LogAttrs(ctx, slog.LevelDebug, "request headers", RedactHeaders(r.Header)...)
			}

			rw := newResponseWriter(w)
			next.ServeHTTP(rw, r)

			attrs := []slog.Attr{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("route", routeName(r)),
				slog.Int("status", rw.statusCode),
				slog.Int64("bytes", rw.written),
				slog.Duration("duration", time.Since(start)),
			}
			if id := dialogID(r); id != "" {
				attrs = append(attrs, slog.String("dialog_id", id))
			}
			child.LogAttrs(ctx, completionLevel(rw.statusCode), "request completed", attrs...)
		})
	}
}

// completionLevel raises server errors to ERROR so they stand out.
func completionLevel(status int) slog.Level {
	if status >= http.StatusInternalServerError {
		return slog.LevelError
	}
	return slog.LevelInfo
}
