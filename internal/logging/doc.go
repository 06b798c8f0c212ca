// Package logging provides structured logging utilities for the Google Docs
// MCP server.
//
// This package centralizes logging patterns to ensure consistent, structured
// logging throughout the codebase using the standard library's slog package.
//
// # Key Features
//
//   - Structured logging with slog
//   - Consistent attribute naming across the codebase
//   - Token masking for credential-bearing requests
//
// # Usage Patterns
//
// Create a logger with standard attributes:
//
//	logger := logging.WithTool(slog.Default(), "docs_insert_text")
//	logger.Info("tool invoked",
//	    logging.Document(documentID),
//	    logging.Status("success"))
//
// Mask credentials before logging:
//
//	logger.Debug("resolved bearer token",
//	    slog.String("token", logging.SanitizeToken(token)))
//
// # Security Considerations
//
// Bearer tokens pass through every request. They are never logged directly;
// SanitizeToken reduces them to a length indicator, as even partial token
// prefixes can aid attacks.
package logging
