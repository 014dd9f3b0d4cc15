// Package feed implements the chronological post listing.
//
// Latest is a pure selection over an immutable input set: it never errors,
// never mutates its input, and is deterministic, so calling it twice on
// the same posts yields identical output.
package feed

import (
	"sort"

	"github.com/hdahl/brage/internal/models"
)

// Latest returns at most n posts ordered by publication date, most recent
// first. Posts with equal timestamps keep their relative input order.
func Latest(posts []models.Post, n int) []models.Post {
	out := make([]models.Post, len(posts))
	copy(out, posts)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PublishedAt.After(out[j].PublishedAt)
	})

	if n < 0 {
		n = 0
	}
	if n < len(out) {
		out = out[:n]
	}
	return out
}
