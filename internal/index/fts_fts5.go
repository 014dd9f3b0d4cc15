//go:build sqlite_fts5

package index

import (
	"database/sql"
	"fmt"
	"strings"
)

func initFTS(conn *sql.DB) error {
	_, err := conn.Exec(`
		CREATE VIRTUAL TABLE IF NOT EXISTS posts_fts USING fts5(
			slug UNINDEXED,
			title,
			summary,
			body,
			tags,
			tokenize = 'unicode61 remove_diacritics 2'
		);
	`)
	return err
}

func ftsUpsert(tx *sql.Tx, slug, title, summary, body string, tags []string, draft bool) error {
	_, _ = tx.Exec(`DELETE FROM posts_fts WHERE slug = ?`, slug)
	if draft {
		// Drafts never enter the search index.
		return nil
	}
	_, err := tx.Exec(`INSERT INTO posts_fts (slug, title, summary, body, tags) VALUES (?, ?, ?, ?, ?)`,
		slug, title, summary, body, strings.Join(tags, " "))
	if err != nil {
		return fmt.Errorf("index: upsert fts: %w", err)
	}
	return nil
}

func ftsDelete(tx *sql.Tx, slug string) {
	_, _ = tx.Exec(`DELETE FROM posts_fts WHERE slug = ?`, slug)
}

// Search performs an FTS5 full-text search and returns matching posts
// with snippets.
func (db *DB) Search(query string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.conn.Query(`
		SELECT slug,
		       title,
		       snippet(posts_fts, 3, '<b>', '</b>', '...', 64)
		FROM posts_fts
		WHERE posts_fts MATCH ?
		ORDER BY rank
		LIMIT ?
	`, query, limit)
	if err != nil {
		return nil, fmt.Errorf("index: search: %w", err)
	}
	defer rows.Close()

	var out []SearchResult
	for rows.Next() {
		var r SearchResult
		if err := rows.Scan(&r.Slug, &r.Title, &r.Snippet); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
