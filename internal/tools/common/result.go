package common

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/docsforge/google-docs-mcp/internal/auth"
	"github.com/docsforge/google-docs-mcp/internal/gdocs"
	"github.com/docsforge/google-docs-mcp/internal/server"
)

// envelope is the success payload shape shared by every tool: a short
// human-readable message plus structured data.
type envelope struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// SuccessResult builds a tool result carrying the standard success
// envelope. The data value must be JSON-serializable.
func SuccessResult(message string, data interface{}) (*mcp.CallToolResult, error) {
	payload, err := json.MarshalIndent(envelope{Message: message, Data: data}, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to serialize result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(payload)), nil
}

// ClientErrorResult maps a Docs client error to a tool error result.
// Protocol-level errors are reserved for transport failures, so API and
// credential problems always come back as tool results.
func ClientErrorResult(err error) *mcp.CallToolResult {
	var rateErr *gdocs.RateLimitError
	if errors.As(err, &rateErr) {
		return mcp.NewToolResultError(fmt.Sprintf(
			"Rate limited by the Google Docs API, retry after %s: %s",
			rateErr.RetryAfter, rateErr.Message))
	}

	var authErr *gdocs.AuthenticationError
	if errors.As(err, &authErr) {
		return mcp.NewToolResultError(fmt.Sprintf(
			"Authentication failed (HTTP %d): %s", authErr.StatusCode, authErr.Message))
	}

	var apiErr *gdocs.APIError
	if errors.As(err, &apiErr) {
		return mcp.NewToolResultError(apiErr.Message)
	}

	if auth.IsMissingToken(err) {
		return mcp.NewToolResultError(err.Error())
	}

	return mcp.NewToolResultError(fmt.Sprintf("Request failed: %v", err))
}

// ToolError maps a Docs client error to a tool result and records the
// rate-limit counter when metrics are configured. Handlers use this on
// every client error path.
func ToolError(ctx context.Context, sc *server.ServerContext, operation string, err error) *mcp.CallToolResult {
	if metrics := sc.Metrics(); metrics != nil {
		var rateErr *gdocs.RateLimitError
		if errors.As(err, &rateErr) {
			metrics.RecordRateLimited(ctx, operation)
		}
	}
	return ClientErrorResult(err)
}
