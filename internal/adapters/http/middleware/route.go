package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// routeName returns the chi route pattern matched for r, such as
// "/api/v1/dialogs/{id}/submit", so that dialog IDs stay out of span names
// and metric attributes. Unrouted requests fall back to the raw path. Call
// it after the downstream handler has run.
func routeName(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return r.URL.Path
}

// dialogID returns the {id} path parameter of a dialog route, or "".
func dialogID(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		return rctx.URLParam("id")
	}
	return ""
}
