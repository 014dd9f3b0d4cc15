package postservice

import (
	"context"
	"log/slog"
	"time"

	"github.com/hdahl/brage/internal/apperr"
	"github.com/hdahl/brage/internal/feed"
	"github.com/hdahl/brage/internal/index"
	"github.com/hdahl/brage/internal/models"
	"github.com/hdahl/brage/internal/storage"
)

// PostDetail is the full representation of a published document.
type PostDetail struct {
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary"`
	Kind        string    `json:"type"`
	Tags        []string  `json:"tags"`
	PublishedAt time.Time `json:"published_at"`
	Draft       bool      `json:"draft,omitempty"`
	Thumbnail   string    `json:"thumbnail,omitempty"`
	Body        string    `json:"body"`
	HTML        string    `json:"html"`
	Checksum    string    `json:"checksum"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PostListItem is a lightweight item in a list response.
type PostListItem struct {
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary"`
	Kind        string    `json:"type"`
	Tags        []string  `json:"tags"`
	PublishedAt time.Time `json:"published_at"`
	Thumbnail   string    `json:"thumbnail,omitempty"`
}

// Service coordinates storage and index operations.
type Service struct {
	store  storage.Provider
	db     *index.DB
	logger *slog.Logger
}

// NewService creates a new post service.
func NewService(store storage.Provider, db *index.DB, logger *slog.Logger) *Service {
	return &Service{store: store, db: db, logger: logger}
}

// GetPost returns the full document for a slug. Drafts are included so
// authors can preview them by direct link.
func (s *Service) GetPost(_ context.Context, slug string) (*PostDetail, error) {
	p, err := s.db.GetPost(slug)
	if err != nil {
		return nil, err
	}
	return detailFromPost(p), nil
}

// GetPublishedPost is like GetPost but treats draft slugs as missing.
// The public pages use it; drafts must not leak onto the site.
func (s *Service) GetPublishedPost(ctx context.Context, slug string) (*PostDetail, error) {
	p, err := s.GetPost(ctx, slug)
	if err != nil {
		return nil, err
	}
	if p.Draft {
		return nil, apperr.ErrNotFound
	}
	return p, nil
}

// ListPosts returns paginated published posts, newest first, with
// optional kind and tag filters.
func (s *Service) ListPosts(_ context.Context, limit, offset int, kind, tag string) ([]PostListItem, int, error) {
	rows, total, err := s.db.ListPosts(limit, offset, kind, tag)
	if err != nil {
		return nil, 0, err
	}
	items := make([]PostListItem, len(rows))
	for i, r := range rows {
		items[i] = listItemFromPost(r)
	}
	return items, total, nil
}

// Latest returns the n most recently published posts in descending
// publication order. Ties keep collection order.
func (s *Service) Latest(_ context.Context, n int) ([]PostListItem, error) {
	all, err := s.db.AllPublished()
	if err != nil {
		return nil, err
	}
	latest := feed.Latest(all, n)
	items := make([]PostListItem, len(latest))
	for i, p := range latest {
		items[i] = listItemFromPost(p)
	}
	return items, nil
}

// AllPosts returns every published post, newest first. The web archive
// uses it; unlike ListPosts it is not subject to the page-size cap.
func (s *Service) AllPosts(_ context.Context) ([]PostListItem, error) {
	all, err := s.db.AllPublished()
	if err != nil {
		return nil, err
	}
	sorted := feed.Latest(all, len(all))
	items := make([]PostListItem, len(sorted))
	for i, p := range sorted {
		items[i] = listItemFromPost(p)
	}
	return items, nil
}

// LatestPosts is like Latest but returns the full models, for renderers
// that need the document bodies (the Atom feed does).
func (s *Service) LatestPosts(_ context.Context, n int) ([]models.Post, error) {
	all, err := s.db.AllPublished()
	if err != nil {
		return nil, err
	}
	return feed.Latest(all, n), nil
}

// Search delegates full-text search to the index.
func (s *Service) Search(_ context.Context, query string, limit int) ([]index.SearchResult, error) {
	return s.db.Search(query, limit)
}

// Reindex runs a full sync of the content directory against the index.
func (s *Service) Reindex(_ context.Context) error {
	return index.Sync(s.db, s.store, s.logger)
}

func detailFromPost(p *models.Post) *PostDetail {
	return &PostDetail{
		Slug:        p.Slug,
		Title:       p.Title,
		Summary:     p.Summary,
		Kind:        p.Kind,
		Tags:        nonNilSlice(p.Tags),
		PublishedAt: p.PublishedAt,
		Draft:       p.Draft,
		Thumbnail:   p.Thumbnail,
		Body:        p.Body,
		HTML:        p.HTML,
		Checksum:    p.Checksum,
		UpdatedAt:   p.UpdatedAt,
	}
}

func listItemFromPost(p models.Post) PostListItem {
	return PostListItem{
		Slug:        p.Slug,
		Title:       p.Title,
		Summary:     p.Summary,
		Kind:        p.Kind,
		Tags:        nonNilSlice(p.Tags),
		PublishedAt: p.PublishedAt,
		Thumbnail:   p.Thumbnail,
	}
}

func nonNilSlice[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
