package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"gitget/internal/application"
	"gitget/internal/ports"
)

// NewServer builds the gitget MCP server with every tool registered
func NewServer(ws *application.Workspace, index ports.PackageIndex, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"gitget-mcp",
		version,
		server.WithToolCapabilities(true),
	)

	s.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		pingHandler,
	)

	RegisterReadTools(s, ws, index)
	RegisterWriteTools(s, ws, index)
	return s
}

func pingHandler(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText("pong"), nil
}
