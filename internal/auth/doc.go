// Package auth resolves per-request Google credentials.
//
// Every inbound MCP call carries its own bearer token in the Authorization
// header. The resolver copies that token into the request context on the
// HTTP transport; handlers retrieve it with FromContext. Credentials are
// request-scoped and never shared between concurrent calls, which keeps
// the server stateless and multi-tenant safe.
package auth
