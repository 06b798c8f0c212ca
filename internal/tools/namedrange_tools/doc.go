// Package namedrange_tools provides MCP tools for named ranges: stable
// handles over document content that survive edits elsewhere in the
// document.
//
// The delete and replace tools accept either the range's ID or its name.
// Supplying neither is rejected locally before any API call.
package namedrange_tools
