// Package table_tools provides MCP tools for editing tables in a Google
// Doc.
//
// Cells are addressed by the index where the table element starts plus
// zero-based row and column coordinates; the outline tool in
// document_tools reports table start indexes and dimensions. Deleting a
// whole table is expressed as deleting the index range the table element
// covers.
package table_tools
