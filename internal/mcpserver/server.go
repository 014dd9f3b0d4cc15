// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes read-only site tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/hdahl/brage/internal/index"
	"github.com/hdahl/brage/internal/storage"
)

// Server wraps the MCP server with Brage tools.
type Server struct {
	mcp   *server.MCPServer
	store storage.Provider
	db    *index.DB
}

// New creates a new MCP server with all Brage tools registered. The
// surface is read-only: content authoring happens on disk, not over MCP.
func New(store storage.Provider, db *index.DB) *Server {
	s := &Server{store: store, db: db}

	s.mcp = server.NewMCPServer(
		"Brage",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("search_posts",
		mcp.WithDescription("Full-text search through post titles, summaries and bodies."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
	), s.searchPosts)

	s.mcp.AddTool(mcp.NewTool("read_post",
		mcp.WithDescription("Read the raw Markdown source of a post by slug."),
		mcp.WithString("slug", mcp.Required(), mcp.Description("Post slug (e.g. hello-world)")),
	), s.readPost)

	s.mcp.AddTool(mcp.NewTool("list_posts",
		mcp.WithDescription("List all published posts with slug, title and publication date."),
	), s.listPosts)

	s.mcp.AddTool(mcp.NewTool("get_post_format",
		mcp.WithDescription("Returns the canonical post document format. "+
			"Useful when drafting new documents for the content directory."),
	), s.getPostFormat)

	// Resource: post format contract.
	s.mcp.AddResource(
		mcp.NewResource("brage://post-format", "Post Format Contract",
			mcp.WithResourceDescription("Canonical Markdown document format for site posts."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readPostFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) searchPosts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	results, err := s.db.Search(query, 20)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) readPost(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	slug, err := req.RequireString("slug")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	post, err := s.db.GetPost(slug)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", slug)), nil
	}
	data, err := s.store.Read(post.Path)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("source missing: %s", post.Path)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func (s *Server) listPosts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	posts, err := s.db.AllPublished()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	lines := make([]string, 0, len(posts))
	for _, p := range posts {
		lines = append(lines, fmt.Sprintf("%s\t%s\t%s", p.Slug, p.PublishedAt.Format("2006-01-02"), p.Title))
	}
	return mcp.NewToolResultText(strings.Join(lines, "\n")), nil
}

func (s *Server) getPostFormat(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(PostFormatContract), nil
}

func (s *Server) readPostFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "brage://post-format",
			MIMEType: "text/markdown",
			Text:     PostFormatContract,
		},
	}, nil
}
