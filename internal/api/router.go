package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hdahl/brage/internal/postservice"
)

// NewRouter creates a chi router with all API routes mounted.
// The read surface is public; only reindex sits behind Bearer auth.
// sseHandler, if non-nil, is mounted at GET /events. Assets are served
// from the site root, not under /api; see AssetHandler.
func NewRouter(svc *postservice.Service, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()

	// Published content, read-only.
	r.Get("/posts", h.ListPosts)
	r.Get("/posts/{slug}", h.GetPost)
	r.Get("/latest", h.Latest)
	r.Get("/search", h.Search)

	// Static site records.
	r.Get("/projects", h.Projects)
	r.Get("/tools", h.Tools)
	r.Get("/social", h.Social)

	// SSE endpoint for live updates.
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	// Admin surface.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(authEnabled, token))
		r.Post("/reindex", h.Reindex)
	})

	return r
}
