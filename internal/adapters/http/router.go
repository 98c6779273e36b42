// Package http provides the inbound HTTP adapter including routing and server lifecycle.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/taskdialog/internal/adapters/http/handlers"
)

// NewRouter creates an HTTP handler with all application routes registered.
// Middleware is applied globally in the order given.
func NewRouter(
	dialogHandler *handlers.DialogHandler,
	pageHandler *handlers.PageHandler,
	healthHandler *handlers.HealthHandler,
	middlewares ...func(http.Handler) http.Handler,
) http.Handler {
	r := chi.NewRouter()

	for _, mw := range middlewares {
		r.Use(mw)
	}

	// Health endpoints (outside /api/v1 prefix).
	r.Get("/health/live", healthHandler.Liveness)
	r.Get("/health/ready", healthHandler.Readiness)

	// Server-rendered dialog host.
	r.Get("/", pageHandler.Index)
	r.Post("/dialogs", pageHandler.OpenPage)
	r.Get("/dialogs/{id}", pageHandler.ShowPage)
	r.Post("/dialogs/{id}", pageHandler.ActPage)

	// API v1 routes.
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/dialogs", dialogHandler.OpenDialog)
		r.Get("/dialogs/{id}", dialogHandler.GetDialog)
		r.Put("/dialogs/{id}/fields/{field}", dialogHandler.EditField)
		r.Post("/dialogs/{id}/submit", dialogHandler.SubmitDialog)
		r.Post("/dialogs/{id}/close", dialogHandler.CloseDialog)
		r.Post("/dialogs/{id}/click", dialogHandler.ClickDialog)
	})

	return r
}

// FormTimeoutTarget is where a browser goes when its form post to the
// dialog host times out: the dialog page itself, or the index when the post
// was the one opening the dialog.
func FormTimeoutTarget(r *http.Request) string {
	if r.URL.Path == "/dialogs" {
		return "/"
	}
	return r.URL.Path
}
