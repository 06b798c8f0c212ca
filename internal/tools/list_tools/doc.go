// Package list_tools provides MCP tools for turning paragraphs into
// bulleted or numbered lists and removing bullets again.
package list_tools
