package mcpserver_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Riti0208/microcms-fullstack-mcp-server/internal/mcpserver"
	"github.com/Riti0208/microcms-fullstack-mcp-server/internal/tools"
	"github.com/Riti0208/microcms-fullstack-mcp-server/pkg/cms"
	"github.com/Riti0208/microcms-fullstack-mcp-server/pkg/microcms"
)

func connect(t *testing.T, handler http.HandlerFunc) *mcp.ClientSession {
	t.Helper()

	api := httptest.NewServer(handler)
	t.Cleanup(api.Close)

	client, err := microcms.New(&cms.Config{BaseURL: api.URL, APIKey: "test-key"})
	require.NoError(t, err)

	server := mcpserver.New(tools.NewRouter(client), nil)

	ctx := context.Background()
	clientTransport, serverTransport := mcp.NewInMemoryTransports()

	serverSession, err := server.MCPServer().Connect(ctx, serverTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = serverSession.Close() })

	mcpClient := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)

	session, err := mcpClient.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })

	return session
}

func textOf(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()

	require.Len(t, result.Content, 1)

	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok)

	return text.Text
}

func TestServer_ListTools(t *testing.T) {
	t.Parallel()

	session := connect(t, func(writer http.ResponseWriter, request *http.Request) {})

	result, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)

	names := make([]string, 0, len(result.Tools))
	for _, tool := range result.Tools {
		names = append(names, tool.Name)
	}

	for _, spec := range tools.Tools() {
		assert.Contains(t, names, spec.Name)
	}
}

func TestServer_CallTool(t *testing.T) {
	t.Parallel()
	t.Run("create sends empty object body", func(t *testing.T) {
		t.Parallel()

		session := connect(t, func(writer http.ResponseWriter, request *http.Request) {
			assert.Equal(t, http.MethodPost, request.Method)
			assert.Equal(t, "/api/v1/blog", request.URL.Path)

			body, _ := io.ReadAll(request.Body)
			assert.JSONEq(t, `{}`, string(body))

			_, _ = writer.Write([]byte(`{"id":"generated"}`))
		})

		result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
			Name:      tools.ToolCreateContent,
			Arguments: map[string]any{"endpoint": "blog", "data": map[string]any{}},
		})
		require.NoError(t, err)
		assert.False(t, result.IsError)
		assert.Contains(t, textOf(t, result), "ID: generated")
	})

	t.Run("api failure is an error result", func(t *testing.T) {
		t.Parallel()

		session := connect(t, func(writer http.ResponseWriter, request *http.Request) {
			writer.WriteHeader(http.StatusNotFound)
		})

		result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
			Name:      tools.ToolDeleteContent,
			Arguments: map[string]any{"endpoint": "blog", "contentId": "missing"},
		})
		require.NoError(t, err)
		assert.True(t, result.IsError)
		assert.Contains(t, textOf(t, result), "404")
	})
}

func TestServer_ReadResource(t *testing.T) {
	t.Parallel()

	session := connect(t, func(writer http.ResponseWriter, request *http.Request) {
		assert.Equal(t, "/api/v1/blog/abc", request.URL.Path)
		_, _ = writer.Write([]byte(`{"id":"abc","title":"hello"}`))
	})

	result, err := session.ReadResource(context.Background(), &mcp.ReadResourceParams{URI: "microcms://blog/abc"})
	require.NoError(t, err)
	require.Len(t, result.Contents, 1)
	assert.Equal(t, "microcms://blog/abc", result.Contents[0].URI)
	assert.JSONEq(t, `{"id":"abc","title":"hello"}`, result.Contents[0].Text)
}
