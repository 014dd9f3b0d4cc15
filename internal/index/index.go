package index

import "github.com/hdahl/brage/internal/models"

// SearchResult represents one search hit.
type SearchResult struct {
	Slug    string `json:"slug"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}

// PostIndex defines the interface for post indexing operations.
// Consumers should depend on this interface rather than the concrete *DB
// type to facilitate testing with mocks.
type PostIndex interface {
	UpsertPost(p models.Post) error
	DeletePost(slug string) error
	GetPost(slug string) (*models.Post, error)
	ListPosts(limit, offset int, kind, tag string) ([]models.Post, int, error)
	AllPublished() ([]models.Post, error)
	AllChecksums() (map[string]string, error)
	Search(query string, limit int) ([]SearchResult, error)
	Close() error
}

// Verify *DB satisfies PostIndex at compile time.
var _ PostIndex = (*DB)(nil)
