// Package parser extracts front-matter metadata and the Markdown body from
// content documents. Parsing is strict: a document with missing or
// malformed required fields is rejected so that bad content fails at load
// time, not at render time.
package parser

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/hdahl/brage/internal/models"
)

// meta is the front-matter wire format.
type meta struct {
	Title       string   `yaml:"title"`
	Summary     string   `yaml:"summary"`
	Type        string   `yaml:"type"`
	PublishedAt string   `yaml:"published_at"`
	Tags        []string `yaml:"tags"`
	Draft       bool     `yaml:"draft"`
	Thumbnail   string   `yaml:"thumbnail"`
}

func (m *meta) Validate() error {
	return validation.ValidateStruct(m,
		validation.Field(&m.Title, validation.Required),
		validation.Field(&m.Summary, validation.Required),
		validation.Field(&m.Type, validation.Required, validation.In(models.KindBlog, models.KindNote)),
		validation.Field(&m.PublishedAt, validation.Required),
	)
}

// Result holds the output of parsing a content document.
type Result struct {
	Title       string
	Summary     string
	Kind        string
	Tags        []string
	PublishedAt time.Time
	Draft       bool
	Thumbnail   string
	Body        string
}

// Accepted publication timestamp layouts. Dates without a time component
// resolve to midnight UTC.
var dateLayouts = []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"}

// Parse extracts and validates front-matter from raw document bytes and
// returns the metadata together with the Markdown body.
func Parse(data []byte) (*Result, error) {
	var m meta
	body, err := frontmatter.Parse(bytes.NewReader(data), &m)
	if err != nil {
		return nil, fmt.Errorf("parser: front-matter: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("parser: front-matter: %w", err)
	}

	published, err := parseDate(m.PublishedAt)
	if err != nil {
		return nil, fmt.Errorf("parser: published_at: %w", err)
	}

	tags := make([]string, 0, len(m.Tags))
	for _, tag := range m.Tags {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			tags = append(tags, tag)
		}
	}

	return &Result{
		Title:       m.Title,
		Summary:     m.Summary,
		Kind:        m.Type,
		Tags:        tags,
		PublishedAt: published,
		Draft:       m.Draft,
		Thumbnail:   m.Thumbnail,
		Body:        string(body),
	}, nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised timestamp %q (want YYYY-MM-DD or RFC 3339)", s)
}

// Slug returns the document slug for a content path: the filename stem,
// lowercased. Slugs must be unique across the whole content set; the
// index sync enforces that.
func Slug(path string) string {
	base := filepath.Base(path)
	return strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
}
