// Package server provides the server context, HTTP transport, health
// probes, and metrics endpoint for the Google Docs MCP server.
//
// ServerContext resolves a Docs API client per request: bearer
// credentials attached to the request context win, a static token
// configured at startup is the fallback, and requests with neither are
// rejected before any network call. Clients are never cached across
// requests, so one caller's token cannot leak into another's session.
//
// HTTPServer serves the streamable MCP endpoint at /mcp with bearer
// extraction, an unauthenticated info page at the root, and optional
// health endpoints. HealthChecker implements Kubernetes-style liveness
// and readiness probes that answer without consulting credentials.
// MetricsServer exposes Prometheus metrics on a separate listener.
package server
