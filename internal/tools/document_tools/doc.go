// Package document_tools provides MCP tools for document-level operations.
//
// This package registers tools that allow AI assistants to:
//   - Create new Google Docs
//   - Retrieve a document as raw JSON or extracted plain text
//   - Inspect a document's structural outline with index ranges
//   - Update document-wide style such as margins and page size
//
// The outline tool is the intended starting point for editing workflows:
// every insert and delete tool addresses content by the index ranges it
// reports.
package document_tools
