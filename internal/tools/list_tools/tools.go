package list_tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/docsforge/google-docs-mcp/internal/instrumentation"
	"github.com/docsforge/google-docs-mcp/internal/server"
	"github.com/docsforge/google-docs-mcp/internal/tools/common"
)

// bulletPresets are the glyph presets the API accepts for
// createParagraphBullets.
var bulletPresets = []string{
	"BULLET_DISC_CIRCLE_SQUARE",
	"BULLET_DIAMONDX_ARROW3D_SQUARE",
	"BULLET_CHECKBOX",
	"BULLET_ARROW_DIAMOND_DISC",
	"BULLET_STAR_CIRCLE_SQUARE",
	"BULLET_ARROW3D_CIRCLE_SQUARE",
	"BULLET_LEFTTRIANGLE_DIAMOND_DISC",
	"BULLET_DIAMONDX_HOLLOWDIAMOND_SQUARE",
	"BULLET_DIAMOND_CIRCLE_SQUARE",
	"NUMBERED_DECIMAL_ALPHA_ROMAN",
	"NUMBERED_DECIMAL_ALPHA_ROMAN_PARENS",
	"NUMBERED_DECIMAL_NESTED",
	"NUMBERED_UPPERALPHA_ALPHA_ROMAN",
	"NUMBERED_UPPERROMAN_UPPERALPHA_DECIMAL",
	"NUMBERED_ZERODECIMAL_ALPHA_ROMAN",
}

// RegisterListTools registers bullet list tools with the MCP server. Both
// tools are write tools, so nothing is registered in read-only mode.
func RegisterListTools(s server.ToolRegistry, sc *server.ServerContext, readOnly bool) error {
	if readOnly {
		return nil
	}

	createBulletsTool := mcp.NewTool("docs_create_bullets",
		mcp.WithDescription("Turn the paragraphs in an index range into a bulleted or numbered list"),
		mcp.WithString("documentId",
			mcp.Required(),
			mcp.Description("The ID of the Google Doc"),
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
		mcp.WithString("bulletPreset",
			mcp.Description("Glyph preset (default BULLET_DISC_CIRCLE_SQUARE)"),
			mcp.Enum(bulletPresets...),
		),
	)

	s.AddTool(createBulletsTool, common.InstrumentedToolHandlerWithOperation(
		"docs_create_bullets", instrumentation.OperationBatchUpdate, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleCreateBullets(ctx, request, sc)
		}))

	deleteBulletsTool := mcp.NewTool("docs_delete_bullets",
		mcp.WithDescription("Remove bullets from the paragraphs in an index range"),
		mcp.WithString("documentId",
			mcp.Required(),
			mcp.Description("The ID of the Google Doc"),
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

	s.AddTool(deleteBulletsTool, common.InstrumentedToolHandlerWithOperation(
		"docs_delete_bullets", instrumentation.OperationBatchUpdate, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleDeleteBullets(ctx, request, sc)
		}))

	return nil
}

func handleCreateBullets(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	documentID, err := common.RequiredString(args, "documentId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	startIndex, endIndex, err := common.RequiredRange(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	preset := common.OptionalString(args, "bulletPreset", "BULLET_DISC_CIRCLE_SQUARE")
	valid := false
	for _, p := range bulletPresets {
		if p == preset {
			valid = true
			break
		}
	}
	if !valid {
		return mcp.NewToolResultError(fmt.Sprintf("Invalid bulletPreset %q", preset)), nil
	}

	client, err := sc.ClientForRequest(ctx)
	if err != nil {
		return common.ToolError(ctx, sc, instrumentation.OperationBatchUpdate, err), nil
	}

	resp, err := client.CreateBullets(ctx, documentID, startIndex, endIndex, preset)
	if err != nil {
		return common.ToolError(ctx, sc, instrumentation.OperationBatchUpdate, err), nil
	}

	return common.SuccessResult(
		fmt.Sprintf("Applied %s bullets over [%d, %d)", preset, startIndex, endIndex), resp)
}

func handleDeleteBullets(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
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

	resp, err := client.DeleteBullets(ctx, documentID, startIndex, endIndex)
	if err != nil {
		return common.ToolError(ctx, sc, instrumentation.OperationBatchUpdate, err), nil
	}

	return common.SuccessResult(
		fmt.Sprintf("Removed bullets over [%d, %d)", startIndex, endIndex), resp)
}
