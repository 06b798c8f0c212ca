package server

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
)

func TestCatalogServerRecordsToolNames(t *testing.T) {
	mcpSrv := mcpserver.NewMCPServer("google-docs-mcp", "test", mcpserver.WithToolCapabilities(true))
	catalog := NewCatalogServer(mcpSrv)

	noop := func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText("ok"), nil
	}
	catalog.AddTool(mcp.NewTool("docs_insert_text"), noop)
	catalog.AddTool(mcp.NewTool("docs_get_document"), noop)

	assert.Equal(t, []string{"docs_get_document", "docs_insert_text"}, catalog.ToolNames())
}

func TestCatalogServerEmpty(t *testing.T) {
	catalog := NewCatalogServer(mcpserver.NewMCPServer("google-docs-mcp", "test"))
	assert.Empty(t, catalog.ToolNames())
}
