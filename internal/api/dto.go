package api

import (
	"github.com/hdahl/brage/internal/postservice"
)

// PostDetail is the full post response type (aliased from the domain layer).
type PostDetail = postservice.PostDetail

// PostListItem is a lightweight item in a list response (aliased from the domain layer).
type PostListItem = postservice.PostListItem

// PostListResponse wraps paginated post listings.
type PostListResponse struct {
	Posts []PostListItem `json:"posts"`
	Total int            `json:"total"`
}

// SearchResult is a single search hit in the API response.
type SearchResult struct {
	Slug    string `json:"slug"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}

// SearchResponse wraps search results.
type SearchResponse struct {
	Results []SearchResult `json:"results"`
}
