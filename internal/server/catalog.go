package server

import (
	"sort"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// ToolRegistry is the registration surface the tool packages build
// against. Satisfied by *CatalogServer and by *mcpserver.MCPServer.
type ToolRegistry interface {
	AddTool(tool mcp.Tool, handler mcpserver.ToolHandlerFunc)
}

// CatalogServer wraps an MCPServer and records the name of every tool
// registered through it, so the HTTP info endpoint can enumerate the
// catalog without a protocol round trip.
type CatalogServer struct {
	*mcpserver.MCPServer
	names []string
}

// NewCatalogServer wraps the given MCP server.
func NewCatalogServer(s *mcpserver.MCPServer) *CatalogServer {
	return &CatalogServer{MCPServer: s}
}

// AddTool registers the tool and records its name. Registration happens
// once at startup, before any request is served.
func (c *CatalogServer) AddTool(tool mcp.Tool, handler mcpserver.ToolHandlerFunc) {
	c.names = append(c.names, tool.Name)
	c.MCPServer.AddTool(tool, handler)
}

// ToolNames returns the registered tool names in sorted order.
func (c *CatalogServer) ToolNames() []string {
	names := make([]string, len(c.names))
	copy(names, c.names)
	sort.Strings(names)
	return names
}
