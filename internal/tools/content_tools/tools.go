package content_tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	docs "google.golang.org/api/docs/v1"

	"github.com/docsforge/google-docs-mcp/internal/instrumentation"
	"github.com/docsforge/google-docs-mcp/internal/server"
	"github.com/docsforge/google-docs-mcp/internal/tools/common"
)

// RegisterContentTools registers text and content editing tools with the
// MCP server. All of these are write tools, so nothing is registered in
// read-only mode.
func RegisterContentTools(s server.ToolRegistry, sc *server.ServerContext, readOnly bool) error {
	if readOnly {
		return nil
	}

	insertTextTool := mcp.NewTool("docs_insert_text",
		mcp.WithDescription("Insert text at a specific index in a Google Doc"),
		mcp.WithString("documentId",
			mcp.Required(),
			mcp.Description("The ID of the Google Doc"),
		),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("The text to insert"),
		),
		mcp.WithNumber("index",
			mcp.Required(),
			mcp.Min(1),
			mcp.Description("Index to insert at (1 is the start of the body)"),
		),
	)

	s.AddTool(insertTextTool, common.InstrumentedToolHandlerWithOperation(
		"docs_insert_text", instrumentation.OperationBatchUpdate, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleInsertText(ctx, request, sc)
		}))

	appendTextTool := mcp.NewTool("docs_append_text",
		mcp.WithDescription("Append text to the end of a Google Doc"),
		mcp.WithString("documentId",
			mcp.Required(),
			mcp.Description("The ID of the Google Doc"),
		),
		mcp.WithString("text",
			mcp.Required(),
			mcp.Description("The text to append"),
		),
	)

	s.AddTool(appendTextTool, common.InstrumentedToolHandlerWithOperation(
		"docs_append_text", instrumentation.OperationBatchUpdate, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleAppendText(ctx, request, sc)
		}))

	deleteRangeTool := mcp.NewTool("docs_delete_range",
		mcp.WithDescription("Delete content in an index range of a Google Doc"),
		mcp.WithString("documentId",
			mcp.Required(),
			mcp.Description("The ID of the Google Doc"),
		),
		mcp.WithNumber("startIndex",
			mcp.Required(),
			mcp.Min(1),
			mcp.Description("Start of the range to delete (inclusive)"),
		),
		mcp.WithNumber("endIndex",
			mcp.Required(),
			mcp.Description("End of the range to delete (exclusive, must be greater than startIndex)"),
		),
	)

	s.AddTool(deleteRangeTool, common.InstrumentedToolHandlerWithOperation(
		"docs_delete_range", instrumentation.OperationBatchUpdate, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleDeleteRange(ctx, request, sc)
		}))

	replaceAllTool := mcp.NewTool("docs_replace_all_text",
		mcp.WithDescription("Replace every occurrence of a string in a Google Doc"),
		mcp.WithString("documentId",
			mcp.Required(),
			mcp.Description("The ID of the Google Doc"),
		),
		mcp.WithString("findText",
			mcp.Required(),
			mcp.Description("The text to find"),
		),
		mcp.WithString("replaceText",
			mcp.Required(),
			mcp.Description("The replacement text (may be empty to delete occurrences)"),
		),
		mcp.WithBoolean("matchCase",
			mcp.Description("Whether the search is case sensitive (default false)"),
		),
	)

	s.AddTool(replaceAllTool, common.InstrumentedToolHandlerWithOperation(
		"docs_replace_all_text", instrumentation.OperationBatchUpdate, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleReplaceAllText(ctx, request, sc)
		}))

	pageBreakTool := mcp.NewTool("docs_insert_page_break",
		mcp.WithDescription("Insert a page break at a specific index in a Google Doc"),
		mcp.WithString("documentId",
			mcp.Required(),
			mcp.Description("The ID of the Google Doc"),
		),
		mcp.WithNumber("index",
			mcp.Required(),
			mcp.Min(1),
			mcp.Description("Index to insert the page break at"),
		),
	)

	s.AddTool(pageBreakTool, common.InstrumentedToolHandlerWithOperation(
		"docs_insert_page_break", instrumentation.OperationBatchUpdate, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleInsertPageBreak(ctx, request, sc)
		}))

	batchUpdateTool := mcp.NewTool("docs_batch_update",
		mcp.WithDescription("Apply raw Google Docs API batchUpdate requests. Each entry is a Request object as defined by the Docs REST API, passed through unmodified"),
		mcp.WithString("documentId",
			mcp.Required(),
			mcp.Description("The ID of the Google Doc"),
		),
		mcp.WithArray("requests",
			mcp.Required(),
			mcp.Description("Array of Docs API Request objects"),
		),
		mcp.WithString("requiredRevisionId",
			mcp.Description("Apply only if the document is still at this revision"),
		),
	)

	s.AddTool(batchUpdateTool, common.InstrumentedToolHandlerWithOperation(
		"docs_batch_update", instrumentation.OperationBatchUpdate, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleBatchUpdate(ctx, request, sc)
		}))

	return nil
}

func handleInsertText(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	documentID, err := common.RequiredString(args, "documentId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	text, err := common.RequiredString(args, "text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	index, err := common.RequiredInt(args, "index")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if index < 1 {
		return mcp.NewToolResultError(fmt.Sprintf("index must be at least 1, got %d", index)), nil
	}

	client, err := sc.ClientForRequest(ctx)
	if err != nil {
		return common.ToolError(ctx, sc, instrumentation.OperationBatchUpdate, err), nil
	}

	resp, err := client.InsertText(ctx, documentID, text, index)
	if err != nil {
		return common.ToolError(ctx, sc, instrumentation.OperationBatchUpdate, err), nil
	}

	return common.SuccessResult(fmt.Sprintf("Inserted %d characters at index %d", len(text), index), resp)
}

func handleAppendText(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	documentID, err := common.RequiredString(args, "documentId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	text, err := common.RequiredString(args, "text")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := sc.ClientForRequest(ctx)
	if err != nil {
		return common.ToolError(ctx, sc, instrumentation.OperationBatchUpdate, err), nil
	}

	resp, err := client.Append(ctx, documentID, text)
	if err != nil {
		return common.ToolError(ctx, sc, instrumentation.OperationBatchUpdate, err), nil
	}

	return common.SuccessResult(fmt.Sprintf("Appended %d characters to the document", len(text)), resp)
}

func handleDeleteRange(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	documentID, err := common.RequiredString(args, "documentId")
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

	resp, err := client.DeleteRange(ctx, documentID, startIndex, endIndex)
	if err != nil {
		return common.ToolError(ctx, sc, instrumentation.OperationBatchUpdate, err), nil
	}

	return common.SuccessResult(fmt.Sprintf("Deleted range [%d, %d)", startIndex, endIndex), resp)
}

func handleReplaceAllText(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	documentID, err := common.RequiredString(args, "documentId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	findText, err := common.RequiredString(args, "findText")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	// replaceText must be present but may be empty: an empty replacement
	// deletes every occurrence.
	replaceText, ok := args["replaceText"].(string)
	if !ok {
		return mcp.NewToolResultError("replaceText is required"), nil
	}
	matchCase := common.OptionalBool(args, "matchCase", false)

	client, err := sc.ClientForRequest(ctx)
	if err != nil {
		return common.ToolError(ctx, sc, instrumentation.OperationBatchUpdate, err), nil
	}

	resp, err := client.ReplaceAllText(ctx, documentID, findText, replaceText, matchCase)
	if err != nil {
		return common.ToolError(ctx, sc, instrumentation.OperationBatchUpdate, err), nil
	}

	occurrences := int64(0)
	for _, reply := range resp.Replies {
		if reply.ReplaceAllText != nil {
			occurrences += reply.ReplaceAllText.OccurrencesChanged
		}
	}

	return common.SuccessResult(fmt.Sprintf("Replaced %d occurrences", occurrences), resp)
}

func handleInsertPageBreak(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	documentID, err := common.RequiredString(args, "documentId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	index, err := common.RequiredInt(args, "index")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if index < 1 {
		return mcp.NewToolResultError(fmt.Sprintf("index must be at least 1, got %d", index)), nil
	}

	client, err := sc.ClientForRequest(ctx)
	if err != nil {
		return common.ToolError(ctx, sc, instrumentation.OperationBatchUpdate, err), nil
	}

	resp, err := client.InsertPageBreak(ctx, documentID, index)
	if err != nil {
		return common.ToolError(ctx, sc, instrumentation.OperationBatchUpdate, err), nil
	}

	return common.SuccessResult(fmt.Sprintf("Inserted page break at index %d", index), resp)
}

func handleBatchUpdate(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	documentID, err := common.RequiredString(args, "documentId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	rawRequests, ok := args["requests"].([]interface{})
	if !ok || len(rawRequests) == 0 {
		return mcp.NewToolResultError("requests is required and must be a non-empty array"), nil
	}

	// Round-trip through JSON so the loosely typed request objects become
	// docs.Request values without replicating the API's field catalog here.
	encoded, err := json.Marshal(rawRequests)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Invalid requests array: %v", err)), nil
	}
	var requests []*docs.Request
	if err := json.Unmarshal(encoded, &requests); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Invalid requests array: %v", err)), nil
	}

	client, err := sc.ClientForRequest(ctx)
	if err != nil {
		return common.ToolError(ctx, sc, instrumentation.OperationBatchUpdate, err), nil
	}

	requiredRevisionID := common.OptionalString(args, "requiredRevisionId", "")
	var resp *docs.BatchUpdateDocumentResponse
	if requiredRevisionID != "" {
		resp, err = client.BatchUpdateWithRevision(ctx, documentID, requests, requiredRevisionID)
	} else {
		resp, err = client.BatchUpdate(ctx, documentID, requests)
	}
	if err != nil {
		return common.ToolError(ctx, sc, instrumentation.OperationBatchUpdate, err), nil
	}

	return common.SuccessResult(fmt.Sprintf("Applied %d requests", len(requests)), resp)
}
