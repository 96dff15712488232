package server_test

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reoring/pathex/internal/server"
	"github.com/reoring/pathex/templates"
)

func newServer(t *testing.T) *server.Server {
	t.Helper()
	return server.New("pathex-test", "0.0.0", templates.Default(), nil)
}

func callTool(name string, args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.Len(t, res.Content, 1)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return tc.Text
}

func TestReadResource(t *testing.T) {
	s := newServer(t)
	ctx := context.Background()

	read := func(uri string) ([]mcp.ResourceContents, error) {
		var req mcp.ReadResourceRequest
		req.Params.URI = uri
		return s.ReadResource(ctx, req)
	}

	contents, err := read("docs://readme")
	require.NoError(t, err)
	require.Len(t, contents, 1)
	trc := contents[0].(mcp.TextResourceContents)
	assert.Equal(t, "text/markdown", trc.MIMEType)

	contents, err = read("test://dynamic/resource/42")
	require.NoError(t, err)
	assert.Equal(t, "This is sample resource 42", contents[0].(mcp.TextResourceContents).Text)

	_, err = read("test://dynamic/resource/abc")
	require.ErrorIs(t, err, templates.ErrNotFound)

	_, err = read("docs://nope")
	require.ErrorIs(t, err, templates.ErrNotFound)
}

func TestTools(t *testing.T) {
	s := newServer(t)
	ctx := context.Background()

	res, err := s.SayHello(ctx, callTool("say_hello", nil))
	require.NoError(t, err)
	assert.Equal(t, "hello", text(t, res))

	res, err = s.Echo(ctx, callTool("echo", map[string]any{"message": "hi"}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"message":"hi"}`, text(t, res))

	res, err = s.Sum(ctx, callTool("sum", map[string]any{"a": float64(3), "b": float64(4)}))
	require.NoError(t, err)
	assert.Equal(t, "7", text(t, res))

	res, err = s.Sub(ctx, callTool("sub", map[string]any{"a": float64(3), "b": float64(4)}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"result":-1}`, text(t, res))

	res, err = s.Sum(ctx, callTool("sum", map[string]any{"a": float64(3)}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestExtractTool(t *testing.T) {
	s := newServer(t)
	ctx := context.Background()

	res, err := s.Extract(ctx, callTool("extract", map[string]any{
		"candidate": "/dynamic/resource/42/axum",
		"pattern":   "/dynamic/resource/{id}/{name}",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)
	assert.JSONEq(t, `{"id":42,"name":"axum"}`, text(t, res))

	res, err = s.Extract(ctx, callTool("extract", map[string]any{
		"candidate": "/a/b",
		"pattern":   "/a/b/{c}",
	}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), "missing_params")
}

func TestCodeReviewPrompt(t *testing.T) {
	s := newServer(t)
	ctx := context.Background()

	var req mcp.GetPromptRequest
	req.Params.Name = "code_review"
	req.Params.Arguments = map[string]string{"pr_number": "17"}
	res, err := s.CodeReview(ctx, req)
	require.NoError(t, err)
	require.Len(t, res.Messages, 2)
	er, ok := res.Messages[1].Content.(mcp.EmbeddedResource)
	require.True(t, ok)
	assert.Equal(t, "git://pulls/17/diff", er.Resource.(mcp.TextResourceContents).URI)

	req.Params.Arguments = map[string]string{}
	_, err = s.CodeReview(ctx, req)
	assert.Error(t, err)
}

func TestServe_UnknownTransport(t *testing.T) {
	err := server.Serve(context.Background(), newServer(t), server.Config{Transport: "carrier-pigeon"})
	assert.ErrorContains(t, err, "unknown transport")
}
