package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/hdahl/brage/internal/apperr"
	"github.com/hdahl/brage/internal/content"
	"github.com/hdahl/brage/internal/postservice"
)

// Handler holds API route handlers.
type Handler struct {
	svc *postservice.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *postservice.Service) *Handler {
	return &Handler{svc: svc}
}

// ListPosts handles GET /api/posts with optional pagination and filters.
func (h *Handler) ListPosts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))
	kind := q.Get("type")
	tag := q.Get("tag")

	items, total, err := h.svc.ListPosts(r.Context(), limit, offset, kind, tag)
	if err != nil {
		slog.Error("list posts failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, PostListResponse{Posts: items, Total: total})
}

// GetPost handles GET /api/posts/{slug}. The post checksum doubles as an
// ETag so unchanged documents answer with 304.
func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	if slug == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("slug is required"))
		return
	}
	post, err := h.svc.GetPost(r.Context(), slug)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			slog.Error("get post failed", slog.String("slug", slug), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}

	etag := `"` + post.Checksum + `"`
	if match := r.Header.Get("If-None-Match"); match != "" && strings.Trim(match, `"`) == post.Checksum {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	writeJSON(w, http.StatusOK, post)
}

// Latest handles GET /api/latest?n=5.
func (h *Handler) Latest(w http.ResponseWriter, r *http.Request) {
	n, _ := strconv.Atoi(r.URL.Query().Get("n"))
	if n <= 0 {
		n = 5
	}
	items, err := h.svc.Latest(r.Context(), n)
	if err != nil {
		slog.Error("latest failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"posts": items})
}

// Search handles GET /api/search.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'q' is required"))
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	results, err := h.svc.Search(r.Context(), q, limit)
	if err != nil {
		slog.Error("search failed", slog.String("query", q), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	out := make([]SearchResult, len(results))
	for i, res := range results {
		out[i] = SearchResult{Slug: res.Slug, Title: res.Title, Snippet: res.Snippet}
	}
	writeJSON(w, http.StatusOK, SearchResponse{Results: out})
}

// Projects handles GET /api/projects.
func (h *Handler) Projects(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"projects": content.Projects})
}

// Tools handles GET /api/tools.
func (h *Handler) Tools(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"tools": content.Tools})
}

// Social handles GET /api/social.
func (h *Handler) Social(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"social": content.Socials})
}

// Reindex handles POST /api/reindex (auth-protected). Returns 422 when
// the content set has invalid documents so callers can see what broke.
func (h *Handler) Reindex(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Reindex(r.Context()); err != nil {
		slog.Error("reindex failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusUnprocessableEntity, errorBody(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
