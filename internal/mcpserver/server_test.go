package mcpserver

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/hdahl/brage/internal/index"
	"github.com/hdahl/brage/internal/testutil"
)

func testServer(t *testing.T) (*Server, string, *index.DB) {
	t.Helper()
	db := testutil.TestDB(t)
	contentDir, store := testutil.TestContent(t)
	return New(store, db), contentDir, db
}

func seed(t *testing.T, srv *Server, root, rel, title, date string) {
	t.Helper()
	testutil.WriteDoc(t, root, rel, title, date)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if err := index.Sync(srv.db, srv.store, logger); err != nil {
		t.Fatalf("Sync: %v", err)
	}
}

func callTool(t *testing.T, srv *Server, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	// mcp-go has no direct "call tool" test helper, so the handler
	// functions are called directly.
	var result *mcp.CallToolResult
	var err error

	switch name {
	case "search_posts":
		result, err = srv.searchPosts(ctx, req)
	case "read_post":
		result, err = srv.readPost(ctx, req)
	case "list_posts":
		result, err = srv.listPosts(ctx, req)
	case "get_post_format":
		result, err = srv.getPostFormat(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}

	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestReadPost(t *testing.T) {
	srv, root, _ := testServer(t)
	seed(t, srv, root, "hello.md", "Hello", "2024-04-28")

	r := callTool(t, srv, "read_post", map[string]interface{}{"slug": "hello"})
	if r.IsError {
		t.Fatalf("read_post errored: %s", resultText(r))
	}
	text := resultText(r)
	if !strings.Contains(text, "title: Hello") {
		t.Errorf("raw source missing front-matter: %q", text)
	}
}

func TestReadPostMissing(t *testing.T) {
	srv, _, _ := testServer(t)
	r := callTool(t, srv, "read_post", map[string]interface{}{"slug": "nope"})
	if !r.IsError {
		t.Error("expected error result for missing post")
	}
}

func TestListPosts(t *testing.T) {
	srv, root, _ := testServer(t)
	seed(t, srv, root, "a.md", "Alpha", "2024-01-01")
	seed(t, srv, root, "b.md", "Beta", "2024-02-01")

	r := callTool(t, srv, "list_posts", map[string]interface{}{})
	text := resultText(r)
	if !strings.Contains(text, "Alpha") || !strings.Contains(text, "Beta") {
		t.Errorf("list missing posts: %q", text)
	}
}

func TestSearchPosts(t *testing.T) {
	srv, root, _ := testServer(t)
	seed(t, srv, root, "searchable.md", "Searchable", "2024-01-01")

	r := callTool(t, srv, "search_posts", map[string]interface{}{"query": "Searchable"})
	if r.IsError {
		t.Fatalf("search errored: %s", resultText(r))
	}
	if !strings.Contains(resultText(r), "searchable") {
		t.Errorf("search results missing slug: %q", resultText(r))
	}
}

func TestGetPostFormat(t *testing.T) {
	srv, _, _ := testServer(t)
	r := callTool(t, srv, "get_post_format", map[string]interface{}{})
	text := resultText(r)
	if !strings.Contains(text, "published_at") || !strings.Contains(text, "front-matter") {
		t.Errorf("contract missing expected sections: %q", text)
	}
}

func TestPostFormatResource(t *testing.T) {
	srv, _, _ := testServer(t)
	contents, err := srv.readPostFormatResource(context.Background(), mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatalf("resource read: %v", err)
	}
	if len(contents) != 1 {
		t.Fatalf("contents = %d, want 1", len(contents))
	}
	tc, ok := contents[0].(mcp.TextResourceContents)
	if !ok || tc.URI != "brage://post-format" {
		t.Errorf("unexpected resource: %+v", contents[0])
	}
}
