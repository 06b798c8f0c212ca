// Package content_tools provides MCP tools for editing document content.
//
// This package registers tools that allow AI assistants to:
//   - Insert text at an index or append it to the end of the body
//   - Delete an index range
//   - Replace every occurrence of a string
//   - Insert page breaks
//   - Apply raw batchUpdate requests for operations no dedicated tool covers
//
// Every tool here mutates the document, so the whole package is skipped in
// read-only mode.
package content_tools
