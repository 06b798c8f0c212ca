// Package image_tools provides MCP tools for images and positioned
// objects: inserting an inline image from a public URI, swapping an
// existing image, and deleting anchored objects.
package image_tools
