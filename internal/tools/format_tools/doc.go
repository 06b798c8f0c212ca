// Package format_tools provides MCP tools for formatting document content.
//
// Two tools are registered: one for character styles (bold, fonts, colors,
// links) and one for paragraph styles (heading presets, alignment, spacing,
// indentation). Both address content by index range and send only the
// fields the caller set, so untouched formatting is preserved.
package format_tools
