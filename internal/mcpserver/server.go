// Package mcpserver exposes the tool router over the Model Context Protocol.
package mcpserver

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Riti0208/microcms-fullstack-mcp-server/internal/constants"
	"github.com/Riti0208/microcms-fullstack-mcp-server/internal/logging"
	"github.com/Riti0208/microcms-fullstack-mcp-server/internal/tools"
	"github.com/Riti0208/microcms-fullstack-mcp-server/pkg/cms"
)

// Server registers every tool and resource template of the router.
type Server struct {
	router *tools.Router
	server *mcp.Server
	logger cms.Logger
}

// New creates an MCP server backed by router. logger may be nil.
func New(router *tools.Router, logger cms.Logger) *Server {
	if logger == nil {
		logger = logging.NewNullLogger()
	}

	s := &Server{
		router: router,
		server: mcp.NewServer(&mcp.Implementation{
			Name:    constants.ServerName,
			Version: constants.ServerVersion,
		}, nil),
		logger: logger,
	}

	s.registerTools()
	s.registerResources()

	return s
}

// MCPServer returns the underlying SDK server.
func (s *Server) MCPServer() *mcp.Server {
	return s.server
}

// Run serves over stdin/stdout until ctx is done or the client disconnects.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("starting MCP server on stdio", map[string]interface{}{
		"name":    constants.ServerName,
		"version": constants.ServerVersion,
		"tools":   len(tools.Tools()),
	})

	err := s.server.Run(ctx, &mcp.StdioTransport{})
	if err != nil {
		return fmt.Errorf("running MCP server: %w", err)
	}

	return nil
}

func (s *Server) registerTools() {
	addTool(s.server, tools.ToolGetContents, s.router.GetContents)
	addTool(s.server, tools.ToolGetContent, s.router.GetContent)
	addTool(s.server, tools.ToolSearchContents, s.router.SearchContents)
	addTool(s.server, tools.ToolFilterContents, s.router.FilterContents)
	addTool(s.server, tools.ToolCreateContent, s.router.CreateContent)
	addTool(s.server, tools.ToolPutContent, s.router.PutContent)
	addTool(s.server, tools.ToolPatchContent, s.router.PatchContent)
	addTool(s.server, tools.ToolUpdateContent, s.router.UpdateContent)
	addTool(s.server, tools.ToolDeleteContent, s.router.DeleteContent)
	addTool(s.server, tools.ToolBatchCreateContents, s.router.BatchCreateContents)
}

// addTool registers a typed handler. The SDK infers the input schema from P.
func addTool[P any](server *mcp.Server, name string, handler func(context.Context, P) tools.Result) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        name,
		Description: tools.Description(name),
	}, func(ctx context.Context, _ *mcp.CallToolRequest, params P) (*mcp.CallToolResult, any, error) {
		result := handler(ctx, params)

		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: result.Text}},
			IsError: result.IsError,
		}, nil, nil
	})
}

func (s *Server) registerResources() {
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		Name:        "content",
		Description: "A single content item as JSON",
		URITemplate: tools.ContentResourceTemplate,
		MIMEType:    constants.ContentTypeJSON,
	}, s.readResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		Name:        "contents",
		Description: "The content list of an endpoint as JSON",
		URITemplate: tools.ContentsResourceTemplate,
		MIMEType:    constants.ContentTypeJSON,
	}, s.readResource)
}

func (s *Server) readResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	uri := req.Params.URI

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:  uri,
			Text: s.router.ReadResource(ctx, uri),
		}},
	}, nil
}
