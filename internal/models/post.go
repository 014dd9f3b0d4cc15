// Package models defines the domain types for Brage.
package models

import "time"

// Document kinds accepted in front-matter.
const (
	KindBlog = "blog"
	KindNote = "note"
)

// Post represents a parsed Markdown document from the content directory.
// Posts are immutable at runtime; the set changes only when files on disk
// change.
type Post struct {
	Slug        string    `json:"slug"`
	Path        string    `json:"path"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary"`
	Kind        string    `json:"kind"`
	Tags        []string  `json:"tags,omitempty"`
	PublishedAt time.Time `json:"published_at"`
	Draft       bool      `json:"draft,omitempty"`
	Thumbnail   string    `json:"thumbnail,omitempty"`
	Body        string    `json:"body"`
	HTML        string    `json:"html"`
	Checksum    string    `json:"checksum"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// FileInfo is a lightweight representation returned by storage listings.
type FileInfo struct {
	Path      string    `json:"path"`
	Checksum  string    `json:"checksum"`
	UpdatedAt time.Time `json:"updated_at"`
}
