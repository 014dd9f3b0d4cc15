package index

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hdahl/brage/internal/checksum"
	"github.com/hdahl/brage/internal/models"
	"github.com/hdahl/brage/internal/parser"
	"github.com/hdahl/brage/internal/render"
	"github.com/hdahl/brage/internal/storage"
)

// Sync walks the content directory and brings the index up to date:
//   - new/changed files are parsed, rendered, and upserted
//   - files removed from disk are deleted from the index
//
// Documents with invalid front-matter or colliding slugs make Sync return
// an error naming every offending file, so a bad content set fails at
// startup rather than at render time. Valid documents are still indexed.
func Sync(db *DB, store storage.Provider, logger *slog.Logger) error {
	metas, err := store.List("")
	if err != nil {
		return err
	}

	// Slugs must be unique across the whole set; catch collisions before
	// touching the index so the error names both paths.
	slugs := make(map[string]string, len(metas))
	var errs []error
	for _, m := range metas {
		slug := parser.Slug(m.Path)
		if prev, dup := slugs[slug]; dup {
			errs = append(errs, fmt.Errorf("sync: slug %q used by both %s and %s", slug, prev, m.Path))
			continue
		}
		slugs[slug] = m.Path
	}

	checksums, err := db.AllChecksums()
	if err != nil {
		return err
	}

	disk := make(map[string]struct{}, len(metas))
	for _, m := range metas {
		disk[m.Path] = struct{}{}
	}

	// Remove stale entries first. A document renamed between runs keeps
	// its slug under a new path; its old row must be gone before the
	// upsert, or the slug-uniqueness check rejects the rename.
	for p := range checksums {
		if _, ok := disk[p]; !ok {
			if err := db.DeletePost(parser.Slug(p)); err != nil {
				logger.Warn("sync: delete failed", slog.String("path", p), slog.String("error", err.Error()))
			} else {
				logger.Debug("sync: removed stale", slog.String("path", p))
			}
			delete(checksums, p)
		}
	}

	for _, m := range metas {
		if checksums[m.Path] == m.Checksum {
			continue
		}

		data, readErr := store.Read(m.Path)
		if readErr != nil {
			errs = append(errs, fmt.Errorf("sync: read %s: %w", m.Path, readErr))
			continue
		}
		if idxErr := indexFile(db, m.Path, data); idxErr != nil {
			errs = append(errs, fmt.Errorf("sync: %s: %w", m.Path, idxErr))
		} else {
			logger.Debug("sync: indexed", slog.String("path", m.Path))
		}
	}

	return errors.Join(errs...)
}

// indexFile parses and renders a document and upserts it into the DB.
func indexFile(db *DB, path string, data []byte) error {
	res, err := parser.Parse(data)
	if err != nil {
		return err
	}
	html, err := render.HTML(res.Body)
	if err != nil {
		return err
	}

	return db.UpsertPost(models.Post{
		Slug:        parser.Slug(path),
		Path:        path,
		Title:       res.Title,
		Summary:     res.Summary,
		Kind:        res.Kind,
		Tags:        res.Tags,
		PublishedAt: res.PublishedAt,
		Draft:       res.Draft,
		Thumbnail:   res.Thumbnail,
		Body:        res.Body,
		HTML:        html,
		Checksum:    checksum.Sum(data),
		UpdatedAt:   time.Now(),
	})
}
