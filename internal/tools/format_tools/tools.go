package format_tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	docs "google.golang.org/api/docs/v1"

	"github.com/docsforge/google-docs-mcp/internal/instrumentation"
	"github.com/docsforge/google-docs-mcp/internal/server"
	"github.com/docsforge/google-docs-mcp/internal/tools/common"
)

var namedStyleTypes = []string{
	"NORMAL_TEXT", "TITLE", "SUBTITLE",
	"HEADING_1", "HEADING_2", "HEADING_3", "HEADING_4", "HEADING_5", "HEADING_6",
}

var alignments = []string{"START", "CENTER", "END", "JUSTIFIED"}

// RegisterFormatTools registers text and paragraph formatting tools with
// the MCP server. Both tools are write tools, so nothing is registered in
// read-only mode.
func RegisterFormatTools(s server.ToolRegistry, sc *server.ServerContext, readOnly bool) error {
	if readOnly {
		return nil
	}

	textStyleTool := mcp.NewTool("docs_update_text_style",
		mcp.WithDescription("Update character formatting over an index range of a Google Doc"),
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
		mcp.WithBoolean("bold", mcp.Description("Set bold on or off")),
		mcp.WithBoolean("italic", mcp.Description("Set italic on or off")),
		mcp.WithBoolean("underline", mcp.Description("Set underline on or off")),
		mcp.WithBoolean("strikethrough", mcp.Description("Set strikethrough on or off")),
		mcp.WithNumber("fontSize",
			mcp.Min(1),
			mcp.Description("Font size in points"),
		),
		mcp.WithString("fontFamily", mcp.Description("Font family name, e.g. 'Arial'")),
		mcp.WithString("foregroundColor", mcp.Description("Text color as a hex string, e.g. '#ff0000'")),
		mcp.WithString("backgroundColor", mcp.Description("Highlight color as a hex string, e.g. '#ffff00'")),
		mcp.WithString("linkUrl", mcp.Description("Turn the range into a link to this URL")),
	)

	s.AddTool(textStyleTool, common.InstrumentedToolHandlerWithOperation(
		"docs_update_text_style", instrumentation.OperationBatchUpdate, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleUpdateTextStyle(ctx, request, sc)
		}))

	paragraphStyleTool := mcp.NewTool("docs_update_paragraph_style",
		mcp.WithDescription("Update paragraph formatting over an index range of a Google Doc"),
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
		mcp.WithString("namedStyleType",
			mcp.Description("Paragraph style preset"),
			mcp.Enum(namedStyleTypes...),
		),
		mcp.WithString("alignment",
			mcp.Description("Paragraph alignment"),
			mcp.Enum(alignments...),
		),
		mcp.WithNumber("lineSpacing", mcp.Description("Line spacing as a percentage, 100 is single spaced")),
		mcp.WithNumber("spaceAbove", mcp.Description("Space above the paragraph in points")),
		mcp.WithNumber("spaceBelow", mcp.Description("Space below the paragraph in points")),
		mcp.WithNumber("indentStart", mcp.Description("Indentation from the start edge in points")),
	)

	s.AddTool(paragraphStyleTool, common.InstrumentedToolHandlerWithOperation(
		"docs_update_paragraph_style", instrumentation.OperationBatchUpdate, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleUpdateParagraphStyle(ctx, request, sc)
		}))

	return nil
}

func handleUpdateTextStyle(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	documentID, err := common.RequiredString(args, "documentId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	startIndex, endIndex, err := common.RequiredRange(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	style := &docs.TextStyle{}
	var fields []string

	if bold, ok := args["bold"].(bool); ok {
		style.Bold = bold
		style.ForceSendFields = append(style.ForceSendFields, "Bold")
		fields = append(fields, "bold")
	}
	if italic, ok := args["italic"].(bool); ok {
		style.Italic = italic
		style.ForceSendFields = append(style.ForceSendFields, "Italic")
		fields = append(fields, "italic")
	}
	if underline, ok := args["underline"].(bool); ok {
		style.Underline = underline
		style.ForceSendFields = append(style.ForceSendFields, "Underline")
		fields = append(fields, "underline")
	}
	if strikethrough, ok := args["strikethrough"].(bool); ok {
		style.Strikethrough = strikethrough
		style.ForceSendFields = append(style.ForceSendFields, "Strikethrough")
		fields = append(fields, "strikethrough")
	}
	if fontSize, ok := args["fontSize"].(float64); ok {
		if fontSize < 1 {
			return mcp.NewToolResultError(fmt.Sprintf("fontSize must be at least 1, got %g", fontSize)), nil
		}
		style.FontSize = &docs.Dimension{Magnitude: fontSize, Unit: "PT"}
		fields = append(fields, "fontSize")
	}
	if fontFamily := common.OptionalString(args, "fontFamily", ""); fontFamily != "" {
		style.WeightedFontFamily = &docs.WeightedFontFamily{FontFamily: fontFamily}
		fields = append(fields, "weightedFontFamily")
	}
	if hex := common.OptionalString(args, "foregroundColor", ""); hex != "" {
		color, err := common.ParseHexColor(hex)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid foregroundColor: %v", err)), nil
		}
		style.ForegroundColor = color
		fields = append(fields, "foregroundColor")
	}
	if hex := common.OptionalString(args, "backgroundColor", ""); hex != "" {
		color, err := common.ParseHexColor(hex)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid backgroundColor: %v", err)), nil
		}
		style.BackgroundColor = color
		fields = append(fields, "backgroundColor")
	}
	if linkURL := common.OptionalString(args, "linkUrl", ""); linkURL != "" {
		style.Link = &docs.Link{Url: linkURL}
		fields = append(fields, "link")
	}

	if len(fields) == 0 {
		return mcp.NewToolResultError("at least one style property must be provided"), nil
	}

	client, err := sc.ClientForRequest(ctx)
	if err != nil {
		return common.ToolError(ctx, sc, instrumentation.OperationBatchUpdate, err), nil
	}

	resp, err := client.UpdateTextStyle(ctx, documentID, startIndex, endIndex, style, strings.Join(fields, ","))
	if err != nil {
		return common.ToolError(ctx, sc, instrumentation.OperationBatchUpdate, err), nil
	}

	return common.SuccessResult(
		fmt.Sprintf("Updated text style over [%d, %d)", startIndex, endIndex), resp)
}

func handleUpdateParagraphStyle(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	documentID, err := common.RequiredString(args, "documentId")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	startIndex, endIndex, err := common.RequiredRange(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	style := &docs.ParagraphStyle{}
	var fields []string

	if namedStyle := common.OptionalString(args, "namedStyleType", ""); namedStyle != "" {
		if !contains(namedStyleTypes, namedStyle) {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid namedStyleType %q", namedStyle)), nil
		}
		style.NamedStyleType = namedStyle
		fields = append(fields, "namedStyleType")
	}
	if alignment := common.OptionalString(args, "alignment", ""); alignment != "" {
		if !contains(alignments, alignment) {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid alignment %q", alignment)), nil
		}
		style.Alignment = alignment
		fields = append(fields, "alignment")
	}
	if lineSpacing, ok := args["lineSpacing"].(float64); ok {
		if lineSpacing <= 0 {
			return mcp.NewToolResultError(fmt.Sprintf("lineSpacing must be greater than 0, got %g", lineSpacing)), nil
		}
		style.LineSpacing = lineSpacing
		fields = append(fields, "lineSpacing")
	}
	if spaceAbove, ok := args["spaceAbove"].(float64); ok {
		style.SpaceAbove = &docs.Dimension{Magnitude: spaceAbove, Unit: "PT"}
		fields = append(fields, "spaceAbove")
	}
	if spaceBelow, ok := args["spaceBelow"].(float64); ok {
		style.SpaceBelow = &docs.Dimension{Magnitude: spaceBelow, Unit: "PT"}
		fields = append(fields, "spaceBelow")
	}
	if indentStart, ok := args["indentStart"].(float64); ok {
		style.IndentStart = &docs.Dimension{Magnitude: indentStart, Unit: "PT"}
		fields = append(fields, "indentStart")
	}

	if len(fields) == 0 {
		return mcp.NewToolResultError("at least one style property must be provided"), nil
	}

	client, err := sc.ClientForRequest(ctx)
	if err != nil {
		return common.ToolError(ctx, sc, instrumentation.OperationBatchUpdate, err), nil
	}

	resp, err := client.UpdateParagraphStyle(ctx, documentID, startIndex, endIndex, style, strings.Join(fields, ","))
	if err != nil {
		return common.ToolError(ctx, sc, instrumentation.OperationBatchUpdate, err), nil
	}

	return common.SuccessResult(
		fmt.Sprintf("Updated paragraph style over [%d, %d)", startIndex, endIndex), resp)
}

func contains(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return false
}
