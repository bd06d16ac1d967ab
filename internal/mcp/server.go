// Package mcp exposes the GitHub project automation tools over the
// Model Context Protocol's stdio transport. Unknown tool names and
// malformed argument objects are protocol errors raised by the
// transport library; every business failure is returned as a successful
// tool response flagged as an error, so the calling agent sees failures
// as data.
package mcp

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mdlayton/ghpmcp/internal/config"
	"github.com/mdlayton/ghpmcp/internal/gh"
)

const (
	serverName    = "ghpmcp"
	serverVersion = "1.0.0"
)

// Server holds the tool handlers and their dependencies. The GitHub
// client is the only upstream; the logger is the diagnostic side channel.
type Server struct {
	gh        *gh.Client
	log       *slog.Logger
	bodyField string
}

// New creates a Server around an authenticated GitHub client.
func New(client *gh.Client, defaults config.DefaultsConfig, log *slog.Logger) *Server {
	bodyField := defaults.BodyField
	if bodyField == "" {
		bodyField = "Description"
	}
	return &Server{
		gh:        client,
		log:       log,
		bodyField: bodyField,
	}
}

// Register adds every tool to the MCP server.
func (s *Server) Register(m *server.MCPServer) {
	s.registerProjectTools(m)
	s.registerIssueTools(m)
	s.registerItemTools(m)
}

// Serve runs the stdio transport until the client disconnects. Requests
// are handled one at a time, each to completion including all nested
// remote calls.
func (s *Server) Serve() error {
	m := server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(true),
	)
	s.Register(m)
	return server.ServeStdio(m)
}

// toolFunc is the business signature of a tool handler: validated
// arguments in, JSON-marshalable result out.
type toolFunc func(ctx context.Context, args map[string]interface{}) (interface{}, error)

// handle wraps a toolFunc into the transport handler shape. It logs
// every request and every error to the injected logger before
// responding, and renders failures as flagged tool results.
func (s *Server) handle(name string, fn toolFunc) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		s.log.Info("tool call", "tool", name)

		result, err := fn(ctx, request.GetArguments())
		if err != nil {
			s.log.Error("tool call failed", "tool", name, "kind", gh.KindOf(err), "error", err)
			return mcp.NewToolResultError(errorText(err)), nil
		}

		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			s.log.Error("tool result marshal failed", "tool", name, "error", err)
			return mcp.NewToolResultError(errorText(gh.Internalf("failed to encode result: %v", err))), nil
		}

		return mcp.NewToolResultText(string(data)), nil
	}
}
