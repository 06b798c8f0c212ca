package headerfooter_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/docsforge/google-docs-mcp/internal/instrumentation"
	"github.com/docsforge/google-docs-mcp/internal/server"
	"github.com/docsforge/google-docs-mcp/internal/tools/common"
)

var headerFooterTypes = []string{"DEFAULT", "FIRST_PAGE_ONLY"}

// RegisterHeaderFooterTools registers header, footer and footnote tools
// with the MCP server. All of these are write tools, so nothing is
// registered in read-only mode.
func RegisterHeaderFooterTools(s server.ToolRegistry, sc *server.ServerContext, readOnly bool) error {
	if readOnly {
		return nil
	}

	createHeaderTool := mcp.NewTool("docs_create_header",
		mcp.WithDescription("Create a header in a Google Doc"),
		mcp.WithString("documentId",
			mcp.Required(),
			mcp.Description("The ID of the Google Doc"),
		),
		mcp.WithString("type",
			mcp.Description("Header type (default DEFAULT)"),
			mcp.Enum(headerFooterTypes...),
		),
	)

	s.AddTool(createHeaderTool, common.InstrumentedToolHandlerWithOperation(
		"docs_create_header", instrumentation.OperationBatchUpdate, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleCreateHeader(ctx, request, sc)
		}))

	createFooterTool := mcp.NewTool("docs_create_footer",
		mcp.WithDescription("Create a footer in a Google Doc"),
		mcp.WithString("documentId",
			mcp.Required(),
			mcp.Description("The ID of the Google Doc"),
		),
		mcp.WithString("type",
			mcp.Description("Footer type (default DEFAULT)"),
			mcp.Enum(headerFooterTypes...),
		),
	)

	s.AddTool(createFooterTool, common.InstrumentedToolHandlerWithOperation(
		"docs_create_footer", instrumentation.OperationBatchUpdate, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleCreateFooter(ctx, request, sc)
		}))

	deleteHeaderTool := mcp.NewTool("docs_delete_header",
		mcp.WithDescription("Delete a header from a Google Doc"),
		mcp.WithString("documentId",
			mcp.Required(),
			mcp.Description("The ID of the Google Doc"),
		),
		mcp.WithString("headerId",
			mcp.Required(),
			mcp.Description("ID of the header to delete (see the document's documentStyle)"),
		),
	)

	s.AddTool(deleteHeaderTool, common.InstrumentedToolHandlerWithOperation(
		"docs_delete_header", instrumentation.OperationBatchUpdate, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleDeleteHeader(ctx, request, sc)
		}))

	deleteFooterTool := mcp.NewTool("docs_delete_footer",
		mcp.WithDescription("Delete a footer from a Google Doc"),
		mcp.WithString("documentId",
			mcp.Required(),
			mcp.Description("The ID of the Google Doc"),
		),
		mcp.WithString("footerId",
			mcp.Required(),
			mcp.Description("ID of the footer to delete (see the document's documentStyle)"),
		),
	)

	s.AddTool(deleteFooterTool, common.InstrumentedToolHandlerWithOperation(
		"docs_delete_footer", instrumentation.OperationBatchUpdate, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleDeleteFooter(ctx, request, sc)
		}))

	createFootnoteTool := mcp.NewTool("docs_create_footnote",
		mcp.WithDescription("Insert a footnote reference at a specific index in a Google Doc"),
		mcp.WithString("documentId",
			mcp.Required(),
			mcp.Description("The ID of the Google Doc"),
		),
		mcp.WithNumber("index",
			mcp.Required(),
			mcp.Min(1),
			mcp.Description("Index to insert the footnote reference at"),
		),
	)

	s.AddTool(createFootnoteTool, common.InstrumentedToolHandlerWithOperation(
		"docs_create_footnote", instrumentation.OperationBatchUpdate, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleCreateFootnote(ctx, request, sc)
		}))

	return nil
}

func headerFooterType(args map[string]interface{}) (string, error) {
	value := common.OptionalString(args, "type", "DEFAULT")
	for _, t := range headerFooterTypes {
		if t == value {
			return value, nil
		}
	}
	return "", fmt.Errorf("invalid type %q, must be one of DEFAULT, FIRST_PAGE_ONLY", value)
}

func handleCreateHeader(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	documentID, err := common.RequiredString(args, "documentId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	headerType, err := headerFooterType(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := sc.ClientForRequest(ctx)
	if err != nil {
		return common.ToolError(ctx, sc, instrumentation.OperationBatchUpdate, err), nil
	}

	resp, err := client.CreateHeader(ctx, documentID, headerType)
	if err != nil {
		return common.ToolError(ctx, sc, instrumentation.OperationBatchUpdate, err), nil
	}

	headerID := ""
	for _, reply := range resp.Replies {
		if reply.CreateHeader != nil {
			headerID = reply.CreateHeader.HeaderId
		}
	}

	return common.SuccessResult(
		fmt.Sprintf("Created %s header", headerType),
		map[string]interface{}{
			"headerId": headerID,
			"response": resp,
		})
}

func handleCreateFooter(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	documentID, err := common.RequiredString(args, "documentId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	footerType, err := headerFooterType(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := sc.ClientForRequest(ctx)
	if err != nil {
		return common.ToolError(ctx, sc, instrumentation.OperationBatchUpdate, err), nil
	}

	resp, err := client.CreateFooter(ctx, documentID, footerType)
	if err != nil {
		return common.ToolError(ctx, sc, instrumentation.OperationBatchUpdate, err), nil
	}

	footerID := ""
	for _, reply := range resp.Replies {
		if reply.CreateFooter != nil {
			footerID = reply.CreateFooter.FooterId
		}
	}

	return common.SuccessResult(
		fmt.Sprintf("Created %s footer", footerType),
		map[string]interface{}{
			"footerId": footerID,
			"response": resp,
		})
}

func handleDeleteHeader(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	documentID, err := common.RequiredString(args, "documentId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	headerID, err := common.RequiredString(args, "headerId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := sc.ClientForRequest(ctx)
	if err != nil {
		return common.ToolError(ctx, sc, instrumentation.OperationBatchUpdate, err), nil
	}

	resp, err := client.DeleteHeader(ctx, documentID, headerID)
	if err != nil {
		return common.ToolError(ctx, sc, instrumentation.OperationBatchUpdate, err), nil
	}

	return common.SuccessResult(fmt.Sprintf("Deleted header %s", headerID), resp)
}

func handleDeleteFooter(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	documentID, err := common.RequiredString(args, "documentId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	footerID, err := common.RequiredString(args, "footerId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := sc.ClientForRequest(ctx)
	if err != nil {
		return common.ToolError(ctx, sc, instrumentation.OperationBatchUpdate, err), nil
	}

	resp, err := client.DeleteFooter(ctx, documentID, footerID)
	if err != nil {
		return common.ToolError(ctx, sc, instrumentation.OperationBatchUpdate, err), nil
	}

	return common.SuccessResult(fmt.Sprintf("Deleted footer %s", footerID), resp)
}

func handleCreateFootnote(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
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

	resp, err := client.CreateFootnote(ctx, documentID, index)
	if err != nil {
		return common.ToolError(ctx, sc, instrumentation.OperationBatchUpdate, err), nil
	}

	footnoteID := ""
	for _, reply := range resp.Replies {
		if reply.CreateFootnote != nil {
			footnoteID = reply.CreateFootnote.FootnoteId
		}
	}

	return common.SuccessResult(
		fmt.Sprintf("Created footnote at index %d", index),
		map[string]interface{}{
			"footnoteId": footnoteID,
			"response":   resp,
		})
}
