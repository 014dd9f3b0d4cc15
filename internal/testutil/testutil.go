// Package testutil provides shared test helpers for setting up content
// directories and databases.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/hdahl/brage/internal/index"
	"github.com/hdahl/brage/internal/storage"
)

// TestDB creates a temporary SQLite database that is automatically cleaned up.
func TestDB(t *testing.T) *index.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "brage-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := index.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestContent creates a temporary content directory with a storage.Provider.
func TestContent(t *testing.T) (string, storage.Provider) {
	t.Helper()
	contentDir := t.TempDir()
	store, err := storage.NewFS(contentDir)
	if err != nil {
		t.Fatal(err)
	}
	return contentDir, store
}

// WriteDoc writes a minimal valid document under root at rel.
func WriteDoc(t *testing.T, root, rel, title, date string) {
	t.Helper()
	doc := fmt.Sprintf(`---
title: %s
summary: Summary of %s
type: blog
published_at: %s
---

Body of %s.
`, title, title, date, title)
	writeFile(t, root, rel, doc)
}

// WriteDraft writes a valid document marked draft: true.
func WriteDraft(t *testing.T, root, rel, title, date string) {
	t.Helper()
	doc := fmt.Sprintf(`---
title: %s
summary: Summary of %s
type: blog
published_at: %s
draft: true
---

Body of %s.
`, title, title, date, title)
	writeFile(t, root, rel, doc)
}

func writeFile(t *testing.T, root, rel, doc string) {
	t.Helper()
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
}
