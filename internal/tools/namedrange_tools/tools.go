package namedrange_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/docsforge/google-docs-mcp/internal/instrumentation"
	"github.com/docsforge/google-docs-mcp/internal/server"
	"github.com/docsforge/google-docs-mcp/internal/tools/common"
)

// RegisterNamedRangeTools registers named range tools with the MCP
// server. The list tool is read-only; the rest mutate the document and
// are skipped in read-only mode.
func RegisterNamedRangeTools(s server.ToolRegistry, sc *server.ServerContext, readOnly bool) error {
	listTool := mcp.NewTool("docs_list_named_ranges",
		mcp.WithDescription("List every named range in a Google Doc"),
		mcp.WithString("documentId",
			mcp.Required(),
			mcp.Description("The ID of the Google Doc"),
		),
	)

	s.AddTool(listTool, common.InstrumentedToolHandlerWithOperation(
		"docs_list_named_ranges", instrumentation.OperationGet, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListNamedRanges(ctx, request, sc)
		}))

	if readOnly {
		return nil
	}

	createTool := mcp.NewTool("docs_create_named_range",
		mcp.WithDescription("Create a named range over an index range, giving the content a stable handle that survives edits elsewhere in the document"),
		mcp.WithString("documentId",
			mcp.Required(),
			mcp.Description("The ID of the Google Doc"),
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Name for the range (names are not unique, several ranges may share one)"),
		),
		mcp.WithNumber("startIndex",
			mcp.Required(),
			mcp.Min(1),
			mcp.Description("Start of the range (inclusive)"),
		),
		mcp.WithNumber("endIndex",
			mcp.Required(),
			mcp.Description("End of the range (exclusive, must be greater than startIndex)"),
		),
	)

	s.AddTool(createTool, common.InstrumentedToolHandlerWithOperation(
		"docs_create_named_range", instrumentation.OperationBatchUpdate, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleCreateNamedRange(ctx, request, sc)
		}))

	deleteTool := mcp.NewTool("docs_delete_named_range",
		mcp.WithDescription("Delete a named range, by ID or by name. At least one of namedRangeId and name is required"),
		mcp.WithString("documentId",
			mcp.Required(),
			mcp.Description("The ID of the Google Doc"),
		),
		mcp.WithString("namedRangeId", mcp.Description("ID of the named range to delete")),
		mcp.WithString("name", mcp.Description("Name of the range(s) to delete, used when namedRangeId is not given")),
	)

	s.AddTool(deleteTool, common.InstrumentedToolHandlerWithOperation(
		"docs_delete_named_range", instrumentation.OperationBatchUpdate, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleDeleteNamedRange(ctx, request, sc)
		}))

	replaceTool := mcp.NewTool("docs_replace_named_range",
		mcp.WithDescription("Replace the content of a named range with new text, by ID or by name. At least one of namedRangeId and name is required"),
		mcp.WithString("documentId",
			mcp.Required(),
			mcp.Description("The ID of the Google Doc"),
		),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("Replacement text"),
		),
		mcp.WithString("namedRangeId", mcp.Description("ID of the named range to replace")),
		mcp.WithString("name", mcp.Description("Name of the range(s) to replace, used when namedRangeId is not given")),
	)

	s.AddTool(replaceTool, common.InstrumentedToolHandlerWithOperation(
		"docs_replace_named_range", instrumentation.OperationBatchUpdate, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleReplaceNamedRange(ctx, request, sc)
		}))

	return nil
}

// rangeIdentifiers extracts the optional namedRangeId / name pair and
// rejects the call locally when neither is present. When both are given
// the ID wins, since the API treats the identifiers as mutually
// exclusive.
func rangeIdentifiers(args map[string]interface{}) (namedRangeID, name string, err error) {
	namedRangeID = common.OptionalString(args, "namedRangeId", "")
	name = common.OptionalString(args, "name", "")
	if namedRangeID == "" && name == "" {
		return "", "", fmt.Errorf("at least one of namedRangeId or name must be provided")
	}
	if namedRangeID != "" {
		name = ""
	}
	return namedRangeID, name, nil
}

func handleListNamedRanges(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	documentID, err := common.RequiredString(args, "documentId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := sc.ClientForRequest(ctx)
	if err != nil {
		return common.ToolError(ctx, sc, instrumentation.OperationGet, err), nil
	}

	ranges, err := client.NamedRanges(ctx, documentID)
	if err != nil {
		return common.ToolError(ctx, sc, instrumentation.OperationGet, err), nil
	}

	total := 0
	for _, group := range ranges {
		total += len(group.NamedRanges)
	}

	return common.SuccessResult(
		fmt.Sprintf("Document has %d named ranges under %d names", total, len(ranges)),
		map[string]interface{}{
			"documentId":  documentID,
			"namedRanges": ranges,
		})
}

func handleCreateNamedRange(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	documentID, err := common.RequiredString(args, "documentId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	name, err := common.RequiredString(args, "name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	startIndex, endIndex, err := common.RequiredRange(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := sc.ClientForRequest(ctx)
	if err != nil {
		return common.ToolError(ctx, sc, instrumentation.OperationBatchUpdate, err), nil
	}

	resp, err := client.CreateNamedRange(ctx, documentID, name, startIndex, endIndex)
	if err != nil {
		return common.ToolError(ctx, sc, instrumentation.OperationBatchUpdate, err), nil
	}

	namedRangeID := ""
	for _, reply := range resp.Replies {
		if reply.CreateNamedRange != nil {
			namedRangeID = reply.CreateNamedRange.NamedRangeId
		}
	}

	return common.SuccessResult(
		fmt.Sprintf("Created named range %q over [%d, %d)", name, startIndex, endIndex),
		map[string]interface{}{
			"namedRangeId": namedRangeID,
			"response":     resp,
		})
}

func handleDeleteNamedRange(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	documentID, err := common.RequiredString(args, "documentId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	namedRangeID, name, err := rangeIdentifiers(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := sc.ClientForRequest(ctx)
	if err != nil {
		return common.ToolError(ctx, sc, instrumentation.OperationBatchUpdate, err), nil
	}

	resp, err := client.DeleteNamedRange(ctx, documentID, namedRangeID, name)
	if err != nil {
		return common.ToolError(ctx, sc, instrumentation.OperationBatchUpdate, err), nil
	}

	identifier := namedRangeID
	if identifier == "" {
		identifier = name
	}
	return common.SuccessResult(fmt.Sprintf("Deleted named range %q", identifier), resp)
}

func handleReplaceNamedRange(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	documentID, err := common.RequiredString(args, "documentId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	text, err := common.RequiredString(args, "text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	namedRangeID, name, err := rangeIdentifiers(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := sc.ClientForRequest(ctx)
	if err != nil {
		return common.ToolError(ctx, sc, instrumentation.OperationBatchUpdate, err), nil
	}

	resp, err := client.ReplaceNamedRangeContent(ctx, documentID, namedRangeID, name, text)
	if err != nil {
		return common.ToolError(ctx, sc, instrumentation.OperationBatchUpdate, err), nil
	}

	identifier := namedRangeID
	if identifier == "" {
		identifier = name
	}
	return common.SuccessResult(
		fmt.Sprintf("Replaced content of named range %q", identifier), resp)
}
