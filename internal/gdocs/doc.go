// Package gdocs wraps the Google Docs REST API for the MCP tool layer.
//
// The Client is a stateless façade: it is constructed per request from the
// caller's credentials and holds no state beyond the underlying service
// handle. Every mutation funnels through the single BatchUpdate primitive,
// which concentrates request marshaling and error classification in one
// place; the per-operation methods are thin constructors of docs.Request
// values. Responses from the remote service are returned as-is and never
// cached - the Docs service is the system of record.
//
// Remote failures are classified into three typed errors:
//
//   - AuthenticationError for 401/403 responses
//   - RateLimitError for 429 responses, carrying the Retry-After duration
//   - APIError for any other non-2xx response
//
// Nothing is retried; a rate limit or transient error surfaces immediately
// to the caller.
package gdocs
