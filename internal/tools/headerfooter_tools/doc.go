// Package headerfooter_tools provides MCP tools for headers, footers and
// footnotes. Create tools return the ID of the new segment so follow-up
// edits can address it.
package headerfooter_tools
