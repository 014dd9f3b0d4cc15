package index

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hdahl/brage/internal/apperr"
	"github.com/hdahl/brage/internal/models"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// postColumns is the scan order shared by every post query.
const postColumns = `slug, path, title, summary, kind, tags, published_at, draft, thumbnail, body, html, checksum, updated_at`

// UpsertPost inserts or replaces a post and its FTS entry within a
// transaction. A post whose slug is already claimed by a different path
// fails with apperr.ErrDuplicateSlug: slugs must be unique across the
// content set.
func (db *DB) UpsertPost(p models.Post) error {
	var existingPath string
	err := db.conn.QueryRow(`SELECT path FROM posts WHERE slug = ?`, p.Slug).Scan(&existingPath)
	if err == nil && existingPath != p.Path {
		return fmt.Errorf("index: slug %q claimed by both %s and %s: %w",
			p.Slug, existingPath, p.Path, apperr.ErrDuplicateSlug)
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	tagsJSON, _ := json.Marshal(p.Tags)

	_, err = tx.Exec(`
		INSERT INTO posts (slug, path, title, summary, kind, tags, published_at, draft, thumbnail, body, html, checksum, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(slug) DO UPDATE SET
			path         = excluded.path,
			title        = excluded.title,
			summary      = excluded.summary,
			kind         = excluded.kind,
			tags         = excluded.tags,
			published_at = excluded.published_at,
			draft        = excluded.draft,
			thumbnail    = excluded.thumbnail,
			body         = excluded.body,
			html         = excluded.html,
			checksum     = excluded.checksum,
			updated_at   = excluded.updated_at
	`, p.Slug, p.Path, p.Title, p.Summary, p.Kind, string(tagsJSON), p.PublishedAt,
		p.Draft, p.Thumbnail, p.Body, p.HTML, p.Checksum, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("index: upsert post: %w", err)
	}

	if err := ftsUpsert(tx, p.Slug, p.Title, p.Summary, p.Body, p.Tags, p.Draft); err != nil {
		return err
	}

	return tx.Commit()
}

// DeletePost removes a post and its FTS entry.
func (db *DB) DeletePost(slug string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	ftsDelete(tx, slug)
	_, _ = tx.Exec(`DELETE FROM posts WHERE slug = ?`, slug)

	return tx.Commit()
}

// GetPost returns a single post by slug, drafts included.
func (db *DB) GetPost(slug string) (*models.Post, error) {
	row := db.conn.QueryRow(`SELECT `+postColumns+` FROM posts WHERE slug = ?`, slug)
	p, err := scanPost(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("index: get post: %w", err)
	}
	return p, nil
}

// ListPosts returns published (non-draft) posts ordered newest first,
// with optional kind and tag filters. The second return value is the
// total match count before limit/offset.
func (db *DB) ListPosts(limit, offset int, kind, tag string) ([]models.Post, int, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	where := `draft = 0`
	args := []any{}
	if kind != "" {
		where += ` AND kind = ?`
		args = append(args, kind)
	}
	if tag != "" {
		// Tags are stored as a JSON array; match the quoted element.
		where += ` AND tags LIKE ?`
		args = append(args, `%"`+tag+`"%`)
	}

	var total int
	if err := db.conn.QueryRow(`SELECT count(*) FROM posts WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("index: count posts: %w", err)
	}

	// rowid breaks publication-date ties in insertion (collection) order.
	query := `SELECT ` + postColumns + ` FROM posts WHERE ` + where +
		` ORDER BY published_at DESC, rowid ASC LIMIT ? OFFSET ?`
	rows, err := db.conn.Query(query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("index: list posts: %w", err)
	}
	defer rows.Close()

	posts, err := collectPosts(rows)
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

// AllPublished returns every non-draft post in collection order (the
// order files were walked and indexed). The chronological sort on top of
// this is the feed package's job.
func (db *DB) AllPublished() ([]models.Post, error) {
	rows, err := db.conn.Query(`SELECT ` + postColumns + ` FROM posts WHERE draft = 0 ORDER BY rowid ASC`)
	if err != nil {
		return nil, fmt.Errorf("index: all published: %w", err)
	}
	defer rows.Close()
	return collectPosts(rows)
}

// AllChecksums returns every indexed checksum keyed by content path.
func (db *DB) AllChecksums() (map[string]string, error) {
	rows, err := db.conn.Query(`SELECT path, checksum FROM posts`)
	if err != nil {
		return nil, fmt.Errorf("index: all checksums: %w", err)
	}
	defer rows.Close()
	out := make(map[string]string)
	for rows.Next() {
		var p, cs string
		if err := rows.Scan(&p, &cs); err != nil {
			return nil, err
		}
		out[p] = cs
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPost(r rowScanner) (*models.Post, error) {
	var p models.Post
	var tagsJSON string
	if err := r.Scan(&p.Slug, &p.Path, &p.Title, &p.Summary, &p.Kind, &tagsJSON,
		&p.PublishedAt, &p.Draft, &p.Thumbnail, &p.Body, &p.HTML, &p.Checksum, &p.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(tagsJSON), &p.Tags); err != nil {
		p.Tags = nil
	}
	return &p, nil
}

func collectPosts(rows *sql.Rows) ([]models.Post, error) {
	var out []models.Post
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, fmt.Errorf("index: scan post: %w", err)
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}
