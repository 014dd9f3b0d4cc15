package index

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/hdahl/brage/internal/apperr"
	"github.com/hdahl/brage/internal/models"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	f, err := os.CreateTemp("", "brage-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	f.Close()
	t.Cleanup(func() { os.Remove(f.Name()) })

	db, err := Open(f.Name())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testPost(slug string, published time.Time) models.Post {
	return models.Post{
		Slug:        slug,
		Path:        slug + ".md",
		Title:       "Title " + slug,
		Summary:     "Summary " + slug,
		Kind:        models.KindBlog,
		Tags:        []string{"go"},
		PublishedAt: published,
		Body:        "Body of " + slug,
		HTML:        "<p>Body of " + slug + "</p>",
		Checksum:    "cs-" + slug,
		UpdatedAt:   time.Now(),
	}
}

func TestSchemaCreation(t *testing.T) {
	db := testDB(t)
	var count int
	if err := db.conn.QueryRow(`SELECT count(*) FROM posts`).Scan(&count); err != nil {
		t.Fatalf("posts table missing: %v", err)
	}
}

func TestUpsertAndGetPost(t *testing.T) {
	db := testDB(t)
	p := testPost("hello", time.Date(2024, 4, 28, 0, 0, 0, 0, time.UTC))
	if err := db.UpsertPost(p); err != nil {
		t.Fatalf("UpsertPost: %v", err)
	}
	got, err := db.GetPost("hello")
	if err != nil {
		t.Fatalf("GetPost: %v", err)
	}
	if got.Title != p.Title || got.Summary != p.Summary || got.Kind != p.Kind {
		t.Errorf("got %+v", got)
	}
	if !got.PublishedAt.Equal(p.PublishedAt) {
		t.Errorf("published_at = %v, want %v", got.PublishedAt, p.PublishedAt)
	}
	if len(got.Tags) != 1 || got.Tags[0] != "go" {
		t.Errorf("tags = %v", got.Tags)
	}
}

func TestGetPost_NotFound(t *testing.T) {
	db := testDB(t)
	_, err := db.GetPost("nope")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestUpsertUpdatesExisting(t *testing.T) {
	db := testDB(t)
	p := testPost("up", time.Now().UTC())
	_ = db.UpsertPost(p)
	p.Title = "New Title"
	p.Checksum = "cs-2"
	if err := db.UpsertPost(p); err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	got, _ := db.GetPost("up")
	if got.Title != "New Title" || got.Checksum != "cs-2" {
		t.Errorf("got %+v", got)
	}
}

func TestUpsert_DuplicateSlugDifferentPath(t *testing.T) {
	db := testDB(t)
	p := testPost("dup", time.Now().UTC())
	if err := db.UpsertPost(p); err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	p.Path = "other/dup.md"
	err := db.UpsertPost(p)
	if !errors.Is(err, apperr.ErrDuplicateSlug) {
		t.Errorf("err = %v, want ErrDuplicateSlug", err)
	}
}

func TestDeletePost(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertPost(testPost("bye", time.Now().UTC()))
	if err := db.DeletePost("bye"); err != nil {
		t.Fatalf("DeletePost: %v", err)
	}
	if _, err := db.GetPost("bye"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("post still present: %v", err)
	}
}

func TestListPosts_NewestFirstAndTotal(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertPost(testPost("older", time.Date(2024, 4, 28, 0, 0, 0, 0, time.UTC)))
	_ = db.UpsertPost(testPost("newer", time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC)))

	posts, total, err := db.ListPosts(10, 0, "", "")
	if err != nil {
		t.Fatalf("ListPosts: %v", err)
	}
	if total != 2 || len(posts) != 2 {
		t.Fatalf("total = %d, len = %d", total, len(posts))
	}
	if posts[0].Slug != "newer" || posts[1].Slug != "older" {
		t.Errorf("order = [%s %s]", posts[0].Slug, posts[1].Slug)
	}
}

func TestListPosts_TieKeepsInsertionOrder(t *testing.T) {
	db := testDB(t)
	ts := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	_ = db.UpsertPost(testPost("first", ts))
	_ = db.UpsertPost(testPost("second", ts))

	posts, _, err := db.ListPosts(10, 0, "", "")
	if err != nil {
		t.Fatalf("ListPosts: %v", err)
	}
	if posts[0].Slug != "first" || posts[1].Slug != "second" {
		t.Errorf("tie order = [%s %s], want [first second]", posts[0].Slug, posts[1].Slug)
	}
}

func TestListPosts_ExcludesDrafts(t *testing.T) {
	db := testDB(t)
	p := testPost("hidden", time.Now().UTC())
	p.Draft = true
	_ = db.UpsertPost(p)
	_ = db.UpsertPost(testPost("visible", time.Now().UTC()))

	posts, total, _ := db.ListPosts(10, 0, "", "")
	if total != 1 || len(posts) != 1 || posts[0].Slug != "visible" {
		t.Errorf("drafts leaked into listing: %+v", posts)
	}

	// Drafts remain fetchable by slug.
	if _, err := db.GetPost("hidden"); err != nil {
		t.Errorf("draft not fetchable: %v", err)
	}
}

func TestListPosts_KindAndTagFilter(t *testing.T) {
	db := testDB(t)
	blog := testPost("b1", time.Now().UTC())
	note := testPost("n1", time.Now().UTC())
	note.Kind = models.KindNote
	note.Tags = []string{"sqlite"}
	_ = db.UpsertPost(blog)
	_ = db.UpsertPost(note)

	posts, _, _ := db.ListPosts(10, 0, models.KindNote, "")
	if len(posts) != 1 || posts[0].Slug != "n1" {
		t.Errorf("kind filter: %+v", posts)
	}
	posts, _, _ = db.ListPosts(10, 0, "", "sqlite")
	if len(posts) != 1 || posts[0].Slug != "n1" {
		t.Errorf("tag filter: %+v", posts)
	}
	posts, _, _ = db.ListPosts(10, 0, "", "nope")
	if len(posts) != 0 {
		t.Errorf("unknown tag matched: %+v", posts)
	}
}

func TestAllPublished_CollectionOrder(t *testing.T) {
	db := testDB(t)
	// Insertion order is collection order regardless of dates.
	_ = db.UpsertPost(testPost("zeta", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	_ = db.UpsertPost(testPost("alpha", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)))

	posts, err := db.AllPublished()
	if err != nil {
		t.Fatalf("AllPublished: %v", err)
	}
	if len(posts) != 2 || posts[0].Slug != "zeta" || posts[1].Slug != "alpha" {
		t.Errorf("order = %+v", posts)
	}
}

func TestAllChecksums(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertPost(testPost("a", time.Now().UTC()))
	_ = db.UpsertPost(testPost("b", time.Now().UTC()))

	cs, err := db.AllChecksums()
	if err != nil {
		t.Fatalf("AllChecksums: %v", err)
	}
	if len(cs) != 2 || cs["a.md"] != "cs-a" || cs["b.md"] != "cs-b" {
		t.Errorf("checksums = %v", cs)
	}
}

func TestSearch_ExcludesDrafts(t *testing.T) {
	db := testDB(t)
	p := testPost("secret", time.Now().UTC())
	p.Draft = true
	p.Body = "confidential body text"
	_ = db.UpsertPost(p)

	results, err := db.Search("confidential", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("draft surfaced in search: %+v", results)
	}
}

func TestSearch_Basic(t *testing.T) {
	db := testDB(t)
	p := testPost("findme", time.Now().UTC())
	p.Body = "a very uniqueword appears here"
	_ = db.UpsertPost(p)

	results, err := db.Search("uniqueword", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].Slug != "findme" {
		t.Errorf("search results = %+v, want 1 hit for findme", results)
	}
}
