package postservice

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/hdahl/brage/internal/apperr"
	"github.com/hdahl/brage/internal/testutil"
)

func testService(t *testing.T) (*Service, string) {
	t.Helper()
	db := testutil.TestDB(t)
	root, store := testutil.TestContent(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(store, db, logger), root
}

func TestServiceGetPost(t *testing.T) {
	svc, root := testService(t)
	testutil.WriteDoc(t, root, "hello.md", "Hello World", "2024-04-28")
	if err := svc.Reindex(context.Background()); err != nil {
		t.Fatalf("Reindex: %v", err)
	}

	got, err := svc.GetPost(context.Background(), "hello")
	if err != nil {
		t.Fatalf("GetPost: %v", err)
	}
	if got.Title != "Hello World" {
		t.Errorf("title = %q", got.Title)
	}
	if got.HTML == "" {
		t.Error("expected rendered HTML")
	}
	if got.Tags == nil {
		t.Error("tags must be non-nil for JSON encoding")
	}
}

func TestServiceGetPost_NotFound(t *testing.T) {
	svc, _ := testService(t)
	_, err := svc.GetPost(context.Background(), "missing")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestServiceLatest(t *testing.T) {
	svc, root := testService(t)
	testutil.WriteDoc(t, root, "a.md", "Oldest", "2024-01-01")
	testutil.WriteDoc(t, root, "b.md", "Middle", "2024-02-01")
	testutil.WriteDoc(t, root, "c.md", "Newest", "2024-03-01")
	if err := svc.Reindex(context.Background()); err != nil {
		t.Fatalf("Reindex: %v", err)
	}

	items, err := svc.Latest(context.Background(), 2)
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("len = %d, want 2", len(items))
	}
	if items[0].Slug != "c" || items[1].Slug != "b" {
		t.Errorf("order = [%s %s], want [c b]", items[0].Slug, items[1].Slug)
	}
}

func TestServiceLatest_TiesKeepCollectionOrder(t *testing.T) {
	svc, root := testService(t)
	// Same date; lexical walk order is the collection order.
	testutil.WriteDoc(t, root, "alpha.md", "Alpha", "2024-05-01")
	testutil.WriteDoc(t, root, "beta.md", "Beta", "2024-05-01")
	if err := svc.Reindex(context.Background()); err != nil {
		t.Fatalf("Reindex: %v", err)
	}

	items, err := svc.Latest(context.Background(), 10)
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if items[0].Slug != "alpha" || items[1].Slug != "beta" {
		t.Errorf("tie order = [%s %s], want [alpha beta]", items[0].Slug, items[1].Slug)
	}
}

func TestServiceGetPublishedPost_HidesDrafts(t *testing.T) {
	svc, root := testService(t)
	testutil.WriteDraft(t, root, "wip.md", "Work In Progress", "2024-04-28")
	if err := svc.Reindex(context.Background()); err != nil {
		t.Fatalf("Reindex: %v", err)
	}

	// Direct fetch still works for author preview.
	got, err := svc.GetPost(context.Background(), "wip")
	if err != nil {
		t.Fatalf("GetPost: %v", err)
	}
	if !got.Draft {
		t.Error("draft flag not carried through")
	}

	// The published view treats the slug as missing.
	if _, err := svc.GetPublishedPost(context.Background(), "wip"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestServiceAllPosts_NotCapped(t *testing.T) {
	svc, root := testService(t)
	const total = 120
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < total; i++ {
		rel := fmt.Sprintf("post-%03d.md", i)
		date := start.AddDate(0, 0, i).Format("2006-01-02")
		testutil.WriteDoc(t, root, rel, fmt.Sprintf("Post %03d", i), date)
	}
	if err := svc.Reindex(context.Background()); err != nil {
		t.Fatalf("Reindex: %v", err)
	}

	items, err := svc.AllPosts(context.Background())
	if err != nil {
		t.Fatalf("AllPosts: %v", err)
	}
	if len(items) != total {
		t.Fatalf("len = %d, want %d (archive must not be page-capped)", len(items), total)
	}
	if items[0].Slug != "post-119" || items[total-1].Slug != "post-000" {
		t.Errorf("order = [%s ... %s], want newest first", items[0].Slug, items[total-1].Slug)
	}
}

func TestServiceListPosts(t *testing.T) {
	svc, root := testService(t)
	testutil.WriteDoc(t, root, "one.md", "One", "2024-01-01")
	testutil.WriteDoc(t, root, "two.md", "Two", "2024-02-01")
	if err := svc.Reindex(context.Background()); err != nil {
		t.Fatalf("Reindex: %v", err)
	}

	items, total, err := svc.ListPosts(context.Background(), 1, 0, "", "")
	if err != nil {
		t.Fatalf("ListPosts: %v", err)
	}
	if total != 2 || len(items) != 1 || items[0].Slug != "two" {
		t.Errorf("items = %+v, total = %d", items, total)
	}
}

func TestServiceSearch(t *testing.T) {
	svc, root := testService(t)
	testutil.WriteDoc(t, root, "findable.md", "Findable", "2024-01-01")
	if err := svc.Reindex(context.Background()); err != nil {
		t.Fatalf("Reindex: %v", err)
	}

	results, err := svc.Search(context.Background(), "Findable", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].Slug != "findable" {
		t.Errorf("results = %+v", results)
	}
}
