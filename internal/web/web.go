// Package web serves the HTML pages of the site from embedded templates.
package web

import (
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/hdahl/brage/internal/apperr"
	"github.com/hdahl/brage/internal/content"
	"github.com/hdahl/brage/internal/postservice"
)

//go:embed templates/*.html
var templateFS embed.FS

// Site holds the site-wide fields rendered into every page.
type Site struct {
	Title       string
	Author      string
	Description string
	BaseURL     string
	LatestCount int
}

// Handler renders the public HTML pages.
type Handler struct {
	svc  *postservice.Service
	site Site
	tmpl *template.Template
}

// NewHandler parses the embedded templates and returns a page handler.
func NewHandler(svc *postservice.Service, site Site) (*Handler, error) {
	if site.LatestCount <= 0 {
		site.LatestCount = 5
	}

	titler := cases.Title(language.English)
	funcs := template.FuncMap{
		"formatDate": func(t time.Time) string { return t.Format("Jan 2, 2006") },
		"titleize":   func(s string) string { return titler.String(s) },
		"safeHTML":   func(s string) template.HTML { return template.HTML(s) },
	}

	tmpl, err := template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Handler{svc: svc, site: site, tmpl: tmpl}, nil
}

// Routes returns a chi router with all page routes mounted.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Home)
	r.Get("/posts", h.Posts)
	r.Get("/posts/{slug}", h.Post)
	r.Get("/feed.xml", h.Feed)
	return r
}

type pageData struct {
	Site     Site
	Title    string
	Posts    []postservice.PostListItem
	Post     *postservice.PostDetail
	Projects []content.Project
	Tools    []content.Tool
	Socials  []content.Social
}

func (h *Handler) render(w http.ResponseWriter, name string, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.tmpl.ExecuteTemplate(w, name, data); err != nil {
		slog.Error("template render failed", slog.String("template", name), slog.String("error", err.Error()))
	}
}

// Home renders the landing page with the latest posts, projects, tools
// and social links.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	latest, err := h.svc.Latest(r.Context(), h.site.LatestCount)
	if err != nil {
		slog.Error("home: latest failed", slog.String("error", err.Error()))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	h.render(w, "home.html", pageData{
		Site:     h.site,
		Title:    h.site.Title,
		Posts:    latest,
		Projects: content.Projects,
		Tools:    content.Tools,
		Socials:  content.Socials,
	})
}

// Posts renders the full post archive, newest first.
func (h *Handler) Posts(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.AllPosts(r.Context())
	if err != nil {
		slog.Error("posts: list failed", slog.String("error", err.Error()))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	h.render(w, "posts.html", pageData{
		Site:  h.site,
		Title: "Posts",
		Posts: items,
	})
}

// Post renders a single published document. Draft slugs 404 like any
// other unknown slug.
func (h *Handler) Post(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	post, err := h.svc.GetPublishedPost(r.Context(), slug)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		slog.Error("post: get failed", slog.String("slug", slug), slog.String("error", err.Error()))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	h.render(w, "post.html", pageData{
		Site:  h.site,
		Title: post.Title,
		Post:  post,
	})
}
