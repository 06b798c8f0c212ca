package image_tools

import (
	"context"
	"fmt"
	"net/url"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/docsforge/google-docs-mcp/internal/instrumentation"
	"github.com/docsforge/google-docs-mcp/internal/server"
	"github.com/docsforge/google-docs-mcp/internal/tools/common"
)

// RegisterImageTools registers image and positioned object tools with the
// MCP server. All of these are write tools, so nothing is registered in
// read-only mode.
func RegisterImageTools(s server.ToolRegistry, sc *server.ServerContext, readOnly bool) error {
	if readOnly {
		return nil
	}

	insertImageTool := mcp.NewTool("docs_insert_image",
		mcp.WithDescription("Insert an inline image from a publicly accessible URI"),
		mcp.WithString("documentId",
			mcp.Required(),
			mcp.Description("The ID of the Google Doc"),
		),
		mcp.WithString("uri",
			mcp.Required(),
			mcp.Description("Publicly accessible http(s) URI of the image"),
		),
		mcp.WithNumber("index",
			mcp.Required(),
			mcp.Min(1),
			mcp.Description("Index to insert the image at"),
		),
		mcp.WithNumber("width", mcp.Description("Image width in points, must be greater than 0 and paired with height")),
		mcp.WithNumber("height", mcp.Description("Image height in points, must be greater than 0 and paired with width")),
	)

	s.AddTool(insertImageTool, common.InstrumentedToolHandlerWithOperation(
		"docs_insert_image", instrumentation.OperationBatchUpdate, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleInsertImage(ctx, request, sc)
		}))

	replaceImageTool := mcp.NewTool("docs_replace_image",
		mcp.WithDescription("Replace an existing image with one from a publicly accessible URI"),
		mcp.WithString("documentId",
			mcp.Required(),
			mcp.Description("The ID of the Google Doc"),
		),
		mcp.WithString("imageObjectId",
			mcp.Required(),
			mcp.Description("Object ID of the image to replace"),
		),
		mcp.WithString("uri",
			mcp.Required(),
			mcp.Description("Publicly accessible http(s) URI of the replacement image"),
		),
	)

	s.AddTool(replaceImageTool, common.InstrumentedToolHandlerWithOperation(
		"docs_replace_image", instrumentation.OperationBatchUpdate, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleReplaceImage(ctx, request, sc)
		}))

	deleteObjectTool := mcp.NewTool("docs_delete_object",
		mcp.WithDescription("Delete a positioned object such as an anchored image"),
		mcp.WithString("documentId",
			mcp.Required(),
			mcp.Description("The ID of the Google Doc"),
		),
		mcp.WithString("objectId",
			mcp.Required(),
			mcp.Description("ID of the positioned object to delete"),
		),
	)

	s.AddTool(deleteObjectTool, common.InstrumentedToolHandlerWithOperation(
		"docs_delete_object", instrumentation.OperationBatchUpdate, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleDeleteObject(ctx, request, sc)
		}))

	return nil
}

// validImageURI accepts absolute http(s) URIs only. The API fetches the
// image itself, so anything else fails remotely anyway; rejecting locally
// saves the round trip.
func validImageURI(raw string) error {
	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("uri is not a valid URL: %v", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("uri must use http or https, got %q", raw)
	}
	if parsed.Host == "" {
		return fmt.Errorf("uri must be absolute, got %q", raw)
	}
	return nil
}

func handleInsertImage(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	documentID, err := common.RequiredString(args, "documentId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	uri, err := common.RequiredString(args, "uri")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := validImageURI(uri); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	index, err := common.RequiredInt(args, "index")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if index < 1 {
		return mcp.NewToolResultError(fmt.Sprintf("index must be at least 1, got %d", index)), nil
	}

	// The API sizes an image with a complete ObjectSize, so the
	// dimensions come as a pair or not at all.
	width := common.OptionalFloat(args, "width", 0)
	height := common.OptionalFloat(args, "height", 0)
	_, hasWidth := args["width"]
	_, hasHeight := args["height"]
	if hasWidth != hasHeight {
		return mcp.NewToolResultError("width and height must be provided together"), nil
	}
	if hasWidth {
		if width <= 0 {
			return mcp.NewToolResultError(fmt.Sprintf("width must be greater than 0, got %g", width)), nil
		}
		if height <= 0 {
			return mcp.NewToolResultError(fmt.Sprintf("height must be greater than 0, got %g", height)), nil
		}
	}

	client, err := sc.ClientForRequest(ctx)
	if err != nil {
		return common.ToolError(ctx, sc, instrumentation.OperationBatchUpdate, err), nil
	}

	resp, err := client.InsertInlineImage(ctx, documentID, uri, index, width, height)
	if err != nil {
		return common.ToolError(ctx, sc, instrumentation.OperationBatchUpdate, err), nil
	}

	return common.SuccessResult(fmt.Sprintf("Inserted image at index %d", index), resp)
}

func handleReplaceImage(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	documentID, err := common.RequiredString(args, "documentId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	imageObjectID, err := common.RequiredString(args, "imageObjectId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	uri, err := common.RequiredString(args, "uri")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := validImageURI(uri); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := sc.ClientForRequest(ctx)
	if err != nil {
		return common.ToolError(ctx, sc, instrumentation.OperationBatchUpdate, err), nil
	}

	resp, err := client.ReplaceImage(ctx, documentID, imageObjectID, uri)
	if err != nil {
		return common.ToolError(ctx, sc, instrumentation.OperationBatchUpdate, err), nil
	}

	return common.SuccessResult(fmt.Sprintf("Replaced image %s", imageObjectID), resp)
}

func handleDeleteObject(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	documentID, err := common.RequiredString(args, "documentId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	objectID, err := common.RequiredString(args, "objectId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := sc.ClientForRequest(ctx)
	if err != nil {
		return common.ToolError(ctx, sc, instrumentation.OperationBatchUpdate, err), nil
	}

	resp, err := client.DeletePositionedObject(ctx, documentID, objectID)
	if err != nil {
		return common.ToolError(ctx, sc, instrumentation.OperationBatchUpdate, err), nil
	}

	return common.SuccessResult(fmt.Sprintf("Deleted object %s", objectID), resp)
}
