package document_tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	docs "google.golang.org/api/docs/v1"

	"github.com/docsforge/google-docs-mcp/internal/gdocs"
	"github.com/docsforge/google-docs-mcp/internal/instrumentation"
	"github.com/docsforge/google-docs-mcp/internal/server"
	"github.com/docsforge/google-docs-mcp/internal/tools/common"
)

// RegisterDocumentTools registers document-level tools with the MCP server.
// Write tools are skipped in read-only mode.
func RegisterDocumentTools(s server.ToolRegistry, sc *server.ServerContext, readOnly bool) error {
	getDocumentTool := mcp.NewTool("docs_get_document",
		mcp.WithDescription("Get a Google Doc by document ID"),
		mcp.WithString("documentId",
			mcp.Required(),
			mcp.Description("The ID of the Google Doc"),
		),
		mcp.WithString("format",
			mcp.Description("Output format: 'json' (default) or 'text'"),
			mcp.Enum("json", "text"),
		),
	)

	s.AddTool(getDocumentTool, common.InstrumentedToolHandlerWithOperation(
		"docs_get_document", instrumentation.OperationGet, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetDocument(ctx, request, sc)
		}))

	outlineTool := mcp.NewTool("docs_get_document_outline",
		mcp.WithDescription("Get the structural outline of a Google Doc: every body element with its index range, useful for addressing insert and delete operations"),
		mcp.WithString("documentId",
			mcp.Required(),
			mcp.Description("The ID of the Google Doc"),
		),
	)

	s.AddTool(outlineTool, common.InstrumentedToolHandlerWithOperation(
		"docs_get_document_outline", instrumentation.OperationGet, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetDocumentOutline(ctx, request, sc)
		}))

	if readOnly {
		return nil
	}

	createDocumentTool := mcp.NewTool("docs_create_document",
		mcp.WithDescription("Create a new Google Doc with the given title"),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Title of the new document"),
		),
	)

	s.AddTool(createDocumentTool, common.InstrumentedToolHandlerWithOperation(
		"docs_create_document", instrumentation.OperationCreate, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleCreateDocument(ctx, request, sc)
		}))

	updateStyleTool := mcp.NewTool("docs_update_document_style",
		mcp.WithDescription("Update document-wide style: page margins and page size, in points"),
		mcp.WithString("documentId",
			mcp.Required(),
			mcp.Description("The ID of the Google Doc"),
		),
		mcp.WithNumber("marginTop", mcp.Description("Top margin in points")),
		mcp.WithNumber("marginBottom", mcp.Description("Bottom margin in points")),
		mcp.WithNumber("marginLeft", mcp.Description("Left margin in points")),
		mcp.WithNumber("marginRight", mcp.Description("Right margin in points")),
		mcp.WithNumber("pageWidth", mcp.Description("Page width in points")),
		mcp.WithNumber("pageHeight", mcp.Description("Page height in points")),
	)

	s.AddTool(updateStyleTool, common.InstrumentedToolHandlerWithOperation(
		"docs_update_document_style", instrumentation.OperationBatchUpdate, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleUpdateDocumentStyle(ctx, request, sc)
		}))

	return nil
}

func handleGetDocument(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	documentID, err := common.RequiredString(args, "documentId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	format := common.OptionalString(args, "format", "json")
	if format != "json" && format != "text" {
		return mcp.NewToolResultError(fmt.Sprintf("Invalid format %q, must be 'json' or 'text'", format)), nil
	}

	client, err := sc.ClientForRequest(ctx)
	if err != nil {
		return common.ToolError(ctx, sc, instrumentation.OperationGet, err), nil
	}

	doc, err := client.Get(ctx, documentID)
	if err != nil {
		return common.ToolError(ctx, sc, instrumentation.OperationGet, err), nil
	}

	switch format {
	case "text":
		return common.SuccessResult("Retrieved document text", map[string]interface{}{
			"documentId": doc.DocumentId,
			"title":      doc.Title,
			"text":       gdocs.DocumentText(doc),
		})
	default:
		jsonBytes, err := json.Marshal(doc)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to serialize document: %v", err)), nil
		}
		return common.SuccessResult("Retrieved document", json.RawMessage(jsonBytes))
	}
}

func handleGetDocumentOutline(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	documentID, err := common.RequiredString(args, "documentId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := sc.ClientForRequest(ctx)
	if err != nil {
		return common.ToolError(ctx, sc, instrumentation.OperationGet, err), nil
	}

	doc, err := client.Get(ctx, documentID)
	if err != nil {
		return common.ToolError(ctx, sc, instrumentation.OperationGet, err), nil
	}

	outline := gdocs.DocumentOutline(doc)
	return common.SuccessResult(
		fmt.Sprintf("Document %q has %d structural elements", doc.Title, len(outline)),
		map[string]interface{}{
			"documentId": doc.DocumentId,
			"title":      doc.Title,
			"revisionId": doc.RevisionId,
			"outline":    outline,
		})
}

func handleCreateDocument(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	title, err := common.RequiredString(args, "title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := sc.ClientForRequest(ctx)
	if err != nil {
		return common.ToolError(ctx, sc, instrumentation.OperationCreate, err), nil
	}

	doc, err := client.Create(ctx, title)
	if err != nil {
		return common.ToolError(ctx, sc, instrumentation.OperationCreate, err), nil
	}

	return common.SuccessResult(
		fmt.Sprintf("Created document %q", doc.Title),
		map[string]interface{}{
			"documentId": doc.DocumentId,
			"title":      doc.Title,
			"revisionId": doc.RevisionId,
		})
}

func handleUpdateDocumentStyle(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	documentID, err := common.RequiredString(args, "documentId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	style := &docs.DocumentStyle{}
	var fields []string
	setMargin := func(key, field string, assign func(*docs.Dimension)) error {
		value, ok := args[key].(float64)
		if !ok {
			return nil
		}
		if value <= 0 {
			return fmt.Errorf("%s must be greater than 0, got %g", key, value)
		}
		assign(&docs.Dimension{Magnitude: value, Unit: "PT"})
		fields = append(fields, field)
		return nil
	}

	if err := setMargin("marginTop", "marginTop", func(d *docs.Dimension) { style.MarginTop = d }); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := setMargin("marginBottom", "marginBottom", func(d *docs.Dimension) { style.MarginBottom = d }); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := setMargin("marginLeft", "marginLeft", func(d *docs.Dimension) { style.MarginLeft = d }); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := setMargin("marginRight", "marginRight", func(d *docs.Dimension) { style.MarginRight = d }); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	pageWidth := common.OptionalFloat(args, "pageWidth", 0)
	pageHeight := common.OptionalFloat(args, "pageHeight", 0)
	if pageWidth > 0 || pageHeight > 0 {
		if pageWidth <= 0 || pageHeight <= 0 {
			return mcp.NewToolResultError("pageWidth and pageHeight must both be set and greater than 0"), nil
		}
		style.PageSize = &docs.Size{
			Width:  &docs.Dimension{Magnitude: pageWidth, Unit: "PT"},
			Height: &docs.Dimension{Magnitude: pageHeight, Unit: "PT"},
		}
		fields = append(fields, "pageSize")
	}

	if len(fields) == 0 {
		return mcp.NewToolResultError("at least one style property must be provided"), nil
	}

	client, err := sc.ClientForRequest(ctx)
	if err != nil {
		return common.ToolError(ctx, sc, instrumentation.OperationBatchUpdate, err), nil
	}

	resp, err := client.UpdateDocumentStyle(ctx, documentID, style, strings.Join(fields, ","))
	if err != nil {
		return common.ToolError(ctx, sc, instrumentation.OperationBatchUpdate, err), nil
	}

	return common.SuccessResult("Updated document style", resp)
}
