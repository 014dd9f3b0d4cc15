package index

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/hdahl/brage/internal/apperr"
	"github.com/hdahl/brage/internal/storage"
)

type watcherEnv struct {
	db   *DB
	root string

	mu     sync.Mutex
	events []string
}

func (e *watcherEnv) record(kind, slug string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.events = append(e.events, kind+":"+slug)
}

func (e *watcherEnv) sawEvent(want string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, ev := range e.events {
		if ev == want {
			return true
		}
	}
	return false
}

func startWatcher(t *testing.T) *watcherEnv {
	t.Helper()
	root := t.TempDir()
	store, err := storage.NewFS(root)
	if err != nil {
		t.Fatal(err)
	}
	env := &watcherEnv{db: testDB(t), root: root}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = Watch(ctx, env.db, store, root, discardLogger(), env.record)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	// Give the watcher a moment to register the root dir.
	time.Sleep(50 * time.Millisecond)
	return env
}

// eventually polls cond until it returns true or the deadline passes.
func eventually(t *testing.T, timeout time.Duration, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal(msg)
}

func TestWatcher_NewFileIndexed(t *testing.T) {
	env := startWatcher(t)
	writeDoc(t, env.root, "fresh.md", "Fresh", "2024-04-28")

	eventually(t, 3*time.Second, func() bool {
		_, err := env.db.GetPost("fresh")
		return err == nil
	}, "new file never indexed")

	eventually(t, 3*time.Second, func() bool {
		return env.sawEvent("created:fresh")
	}, "created callback never fired")
}

func TestWatcher_EditReindexes(t *testing.T) {
	env := startWatcher(t)
	writeDoc(t, env.root, "edit.md", "Before", "2024-04-28")
	eventually(t, 3*time.Second, func() bool {
		_, err := env.db.GetPost("edit")
		return err == nil
	}, "file never indexed")

	writeDoc(t, env.root, "edit.md", "After", "2024-04-28")
	eventually(t, 3*time.Second, func() bool {
		p, err := env.db.GetPost("edit")
		return err == nil && p.Title == "After"
	}, "edit never picked up")
}

func TestWatcher_InvalidDocOnlyLogs(t *testing.T) {
	env := startWatcher(t)
	if err := os.WriteFile(filepath.Join(env.root, "broken.md"), []byte("---\ntitle: Only Title\n---\nbody\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	// The watcher must keep running and index later valid files.
	writeDoc(t, env.root, "valid.md", "Valid", "2024-04-28")
	eventually(t, 3*time.Second, func() bool {
		_, err := env.db.GetPost("valid")
		return err == nil
	}, "watcher stopped after invalid doc")

	if _, err := env.db.GetPost("broken"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("invalid doc should not be indexed: %v", err)
	}
}

func TestWatcher_NewDirWatched(t *testing.T) {
	env := startWatcher(t)
	sub := filepath.Join(env.root, "notes")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	time.Sleep(100 * time.Millisecond)
	writeDoc(t, env.root, filepath.Join("notes", "nested.md"), "Nested", "2024-04-28")

	eventually(t, 3*time.Second, func() bool {
		_, err := env.db.GetPost("nested")
		return err == nil
	}, "file in new dir never indexed")
}

func TestWatcher_DeleteRemovesFromIndex(t *testing.T) {
	env := startWatcher(t)
	writeDoc(t, env.root, "doomed.md", "Doomed", "2024-04-28")
	eventually(t, 3*time.Second, func() bool {
		_, err := env.db.GetPost("doomed")
		return err == nil
	}, "file never indexed")

	if err := os.Remove(filepath.Join(env.root, "doomed.md")); err != nil {
		t.Fatal(err)
	}
	eventually(t, 3*time.Second, func() bool {
		_, err := env.db.GetPost("doomed")
		return errors.Is(err, apperr.ErrNotFound)
	}, "deleted file still in index")
	eventually(t, 3*time.Second, func() bool {
		return env.sawEvent("deleted:doomed")
	}, "deleted callback never fired")
}

func TestWatcher_RenameReconciles(t *testing.T) {
	env := startWatcher(t)
	writeDoc(t, env.root, "old-name.md", "Renamed", "2024-04-28")
	eventually(t, 3*time.Second, func() bool {
		_, err := env.db.GetPost("old-name")
		return err == nil
	}, "file never indexed")

	oldPath := filepath.Join(env.root, "old-name.md")
	newPath := filepath.Join(env.root, "new-name.md")
	if err := os.Rename(oldPath, newPath); err != nil {
		t.Fatal(err)
	}

	eventually(t, 5*time.Second, func() bool {
		_, oldErr := env.db.GetPost("old-name")
		_, newErr := env.db.GetPost("new-name")
		return errors.Is(oldErr, apperr.ErrNotFound) && newErr == nil
	}, "rename never reconciled")
}
