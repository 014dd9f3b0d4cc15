package web

import (
	"encoding/xml"
	"log/slog"
	"net/http"
	"time"
)

// Atom feed types per RFC 4287. Only the elements the feed actually
// emits are modeled.
type atomFeed struct {
	XMLName xml.Name    `xml:"feed"`
	XMLNS   string      `xml:"xmlns,attr"`
	Title   string      `xml:"title"`
	Link    atomLink    `xml:"link"`
	Updated string      `xml:"updated"`
	ID      string      `xml:"id"`
	Author  atomAuthor  `xml:"author"`
	Entries []atomEntry `xml:"entry"`
}

type atomLink struct {
	Href string `xml:"href,attr"`
	Rel  string `xml:"rel,attr,omitempty"`
}

type atomAuthor struct {
	Name string `xml:"name"`
}

type atomEntry struct {
	Title   string      `xml:"title"`
	Link    atomLink    `xml:"link"`
	ID      string      `xml:"id"`
	Updated string      `xml:"updated"`
	Summary string      `xml:"summary"`
	Content atomContent `xml:"content"`
}

type atomContent struct {
	Type string `xml:"type,attr"`
	Body string `xml:",chardata"`
}

// Feed renders the Atom feed of the latest posts at GET /feed.xml.
func (h *Handler) Feed(w http.ResponseWriter, r *http.Request) {
	posts, err := h.svc.LatestPosts(r.Context(), 20)
	if err != nil {
		slog.Error("feed: latest failed", slog.String("error", err.Error()))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	updated := time.Now().UTC()
	if len(posts) > 0 {
		updated = posts[0].PublishedAt
	}

	feed := atomFeed{
		XMLNS:   "http://www.w3.org/2005/Atom",
		Title:   h.site.Title,
		Link:    atomLink{Href: h.site.BaseURL, Rel: "alternate"},
		Updated: updated.Format(time.RFC3339),
		ID:      h.site.BaseURL + "/",
		Author:  atomAuthor{Name: h.site.Author},
	}
	for _, p := range posts {
		url := h.site.BaseURL + "/posts/" + p.Slug
		feed.Entries = append(feed.Entries, atomEntry{
			Title:   p.Title,
			Link:    atomLink{Href: url},
			ID:      url,
			Updated: p.PublishedAt.Format(time.RFC3339),
			Summary: p.Summary,
			Content: atomContent{Type: "html", Body: p.HTML},
		})
	}

	w.Header().Set("Content-Type", "application/atom+xml; charset=utf-8")
	_, _ = w.Write([]byte(xml.Header))
	if err := xml.NewEncoder(w).Encode(feed); err != nil {
		slog.Error("feed: encode failed", slog.String("error", err.Error()))
	}
}
