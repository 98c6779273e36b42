package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/taskdialog/internal/adapters/http/middleware"
)

type seenIDs struct {
	request     string
	correlation string
}

// serveIDs runs req through RequestID and CorrelationID and reports what the
// handler saw.
func serveIDs(t *testing.T, req *http.Request) (seenIDs, *httptest.ResponseRecorder) {
	t.Helper()

	var seen seenIDs
	h := middleware.Chain(middleware.RequestID(), middleware.CorrelationID())(
		http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			seen.request = middleware.RequestIDFromContext(r.Context())
			seen.correlation = middleware.CorrelationIDFromContext(r.Context())
		}),
	)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return seen, rec
}

func TestRequestID_GeneratesUUID(t *testing.T) {
	t.Parallel()

	seen, rec := serveIDs(t, httptest.NewRequest(http.MethodPost, "/dialogs", http.NoBody))

	parsed, err := uuid.Parse(seen.request)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(4), parsed.Version())
	assert.Equal(t, seen.request, rec.Header().Get("X-Request-ID"))

	assert.Equal(t, seen.request, seen.correlation, "correlation ID falls back to the request ID")
	assert.Equal(t, seen.request, rec.Header().Get("X-Correlation-ID"))
}

func TestRequestID_ReusesIncomingHeaders(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/dialogs/d1", http.NoBody)
	req.Header.Set("X-Request-ID", "req-123")
	req.Header.Set("X-Correlation-ID", "flow-9")

	seen, rec := serveIDs(t, req)

	assert.Equal(t, seenIDs{request: "req-123", correlation: "flow-9"}, seen)
	assert.Equal(t, "req-123", rec.Header().Get("X-Request-ID"))
	assert.Equal(t, "flow-9", rec.Header().Get("X-Correlation-ID"))
}

func TestRequestID_ReplacesMalformedHeaders(t *testing.T) {
	t.Parallel()

	for name, bad := range map[string]string{
		"too long":          strings.Repeat("a", 129),
		"contains space":    "abc def",
		"control character": "abc\x01def",
		"non-ascii":         "réq",
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
			req.Header["X-Request-Id"] = []string{bad}
			req.Header["X-Correlation-Id"] = []string{bad}

			seen, _ := serveIDs(t, req)

			_, err := uuid.Parse(seen.request)
			assert.NoError(t, err, "request ID %q should be generated", seen.request)
			assert.Equal(t, seen.request, seen.correlation)
		})
	}
}

func TestRequestID_UniquePerRequest(t *testing.T) {
	t.Parallel()

	ids := make(map[string]bool)
	for range 50 {
		seen, _ := serveIDs(t, httptest.NewRequest(http.MethodGet, "/", http.NoBody))
		ids[seen.request] = true
	}
	assert.Len(t, ids, 50)
}

func TestIDsFromEmptyContext(t *testing.T) {
	t.Parallel()

	assert.Empty(t, middleware.RequestIDFromContext(context.Background()))
	assert.Empty(t, middleware.CorrelationIDFromContext(context.Background()))

	ctx := middleware.WithRequestID(context.Background(), "r")
	ctx = middleware.WithCorrelationID(ctx, "c")
	assert.Equal(t, "r", middleware.RequestIDFromContext(ctx))
	assert.Equal(t, "c", middleware.CorrelationIDFromContext(ctx))
}
