// Package storage defines the content directory abstraction.
package storage

import "github.com/hdahl/brage/internal/models"

// Provider is the read-only interface over the content directory. The
// server never writes content; files change underneath it via the editor
// or deploy process and the watcher picks the changes up.
type Provider interface {
	// List returns metadata for every .md file under dir (relative to the
	// content root), ordered lexically by path.
	List(dir string) ([]models.FileInfo, error)
	// Read returns the raw bytes of the file at path (relative to the
	// content root).
	Read(path string) ([]byte, error)
}
