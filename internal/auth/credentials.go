package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/docsforge/google-docs-mcp/internal/logging"
)

// HeaderName is the single inbound header the server recognizes for
// per-request credentials.
const HeaderName = "Authorization"

// ErrMissingToken is returned when a request carries no usable bearer token.
var ErrMissingToken = fmt.Errorf("missing Google access token: provide an '%s: Bearer <token>' header", HeaderName)

// Credentials holds the per-request Google access token. The value is
// created when the request arrives, never mutated, and discarded when the
// request completes.
type Credentials struct {
	AccessToken string
}

type contextKey struct{}

// ContextWithCredentials returns a context carrying the given credentials.
func ContextWithCredentials(ctx context.Context, creds Credentials) context.Context {
	return context.WithValue(ctx, contextKey{}, creds)
}

// FromContext extracts the request credentials. It fails closed: a context
// without a token, or with an empty one, yields ErrMissingToken. No format
// validation is performed beyond non-emptiness; the Docs API rejects
// invalid tokens at HTTP time.
func FromContext(ctx context.Context) (Credentials, error) {
	creds, ok := ctx.Value(contextKey{}).(Credentials)
	if !ok || creds.AccessToken == "" {
		return Credentials{}, ErrMissingToken
	}
	return creds, nil
}

// HTTPContextFunc copies the bearer token from the Authorization header
// into the context. It is installed on the streamable HTTP transport so
// that tool handlers see the credentials of the request they serve.
//
// A missing or malformed header leaves the context unchanged; the failure
// surfaces later, from FromContext, as a structured rejection naming the
// required header.
func HTTPContextFunc(ctx context.Context, r *http.Request) context.Context {
	token := ParseBearer(r.Header.Get(HeaderName))
	if token == "" {
		slog.Debug("request carried no bearer credentials")
		return ctx
	}
	slog.Debug("resolved bearer token", slog.String("token", logging.SanitizeToken(token)))
	return ContextWithCredentials(ctx, Credentials{AccessToken: token})
}

// ParseBearer extracts the token from an "Authorization: Bearer <token>"
// header value. Returns "" when the value is empty or not a bearer scheme.
func ParseBearer(headerValue string) string {
	if headerValue == "" {
		return ""
	}
	scheme, token, found := strings.Cut(headerValue, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}

// IsMissingToken reports whether err is the missing-credential rejection.
func IsMissingToken(err error) bool {
	return errors.Is(err, ErrMissingToken)
}
