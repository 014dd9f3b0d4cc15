// Package content holds the static, read-only records rendered on the
// portfolio pages: projects, tools, and social links. The records are
// plain in-code arrays; there is no runtime mutation.
package content

// Links points at the places a project or tool lives.
type Links struct {
	Repo     string `json:"repo,omitempty"`
	External string `json:"external,omitempty"`
}

// Project is a portfolio entry.
type Project struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags,omitempty"`
	Links       Links    `json:"links"`
	Thumbnail   string   `json:"thumbnail,omitempty"`
}

// Tool is a smaller utility entry, same shape as Project.
type Tool struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags,omitempty"`
	Links       Links    `json:"links"`
	Thumbnail   string   `json:"thumbnail,omitempty"`
}

// Social is a single social/profile link.
type Social struct {
	Label string `json:"label"`
	Href  string `json:"href"`
	Icon  string `json:"icon"`
}
