package server

import (
	"context"
	"sync"

	"google.golang.org/api/option"

	"github.com/docsforge/google-docs-mcp/internal/auth"
	"github.com/docsforge/google-docs-mcp/internal/gdocs"
	"github.com/docsforge/google-docs-mcp/internal/instrumentation"
)

// ClientFactory builds a Docs client from resolved credentials. Tests
// substitute a factory pointing at a local HTTP server.
type ClientFactory func(ctx context.Context, creds auth.Credentials, opts ...option.ClientOption) (*gdocs.Client, error)

// ServerContext holds the context for the MCP server.
//
// Docs clients are built per request from the credentials carried in the
// request context. Nothing is cached between requests, so tokens from one
// caller never leak into another's API calls.
type ServerContext struct {
	ctx         context.Context
	cancel      context.CancelFunc
	factory     ClientFactory
	staticToken string
	clientOpts  []option.ClientOption
	metrics     *instrumentation.Metrics
	auditLogger *instrumentation.AuditLogger
	mu          sync.RWMutex
	shutdown    bool
}

// ServerContextOption configures a ServerContext.
type ServerContextOption func(*ServerContext)

// WithStaticToken sets a fallback access token used when the request
// context carries no credentials. This serves the stdio transport, where
// there is no HTTP request to carry an Authorization header.
func WithStaticToken(token string) ServerContextOption {
	return func(sc *ServerContext) {
		sc.staticToken = token
	}
}

// WithClientFactory overrides how Docs clients are constructed.
func WithClientFactory(factory ClientFactory) ServerContextOption {
	return func(sc *ServerContext) {
		sc.factory = factory
	}
}

// WithClientOptions appends Google API client options applied to every
// constructed client.
func WithClientOptions(opts ...option.ClientOption) ServerContextOption {
	return func(sc *ServerContext) {
		sc.clientOpts = append(sc.clientOpts, opts...)
	}
}

// NewServerContext creates a new server context.
func NewServerContext(ctx context.Context, opts ...ServerContextOption) (*ServerContext, error) {
	shutdownCtx, cancel := context.WithCancel(ctx)

	sc := &ServerContext{
		ctx:     shutdownCtx,
		cancel:  cancel,
		factory: gdocs.NewClient,
	}
	for _, opt := range opts {
		opt(sc)
	}
	return sc, nil
}

// Context returns the server context.
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// ClientForRequest builds a Docs client from the credentials carried in
// the request context. When the context carries none, the static token
// configured at startup is used instead. With neither, the request fails
// closed with auth.ErrMissingToken.
func (sc *ServerContext) ClientForRequest(ctx context.Context) (*gdocs.Client, error) {
	creds, err := auth.FromContext(ctx)
	if err != nil {
		sc.mu.RLock()
		token := sc.staticToken
		sc.mu.RUnlock()
		if token == "" {
			return nil, err
		}
		creds = auth.Credentials{AccessToken: token}
	}

	sc.mu.RLock()
	factory := sc.factory
	opts := sc.clientOpts
	sc.mu.RUnlock()

	return factory(ctx, creds, opts...)
}

// SetMetrics sets the metrics recorder used by instrumented tool handlers.
func (sc *ServerContext) SetMetrics(metrics *instrumentation.Metrics) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.metrics = metrics
}

// Metrics returns the metrics recorder, or nil when instrumentation is
// disabled.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.metrics
}

// SetAuditLogger sets the audit logger used by instrumented tool handlers.
func (sc *ServerContext) SetAuditLogger(logger *instrumentation.AuditLogger) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.auditLogger = logger
}

// AuditLogger returns the audit logger, or nil when audit logging is
// disabled.
func (sc *ServerContext) AuditLogger() *instrumentation.AuditLogger {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.auditLogger
}

// HasStaticToken reports whether a fallback token was configured at
// startup.
func (sc *ServerContext) HasStaticToken() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.staticToken != ""
}

// IsShutdown returns whether the server has been shutdown.
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown shuts down the server context.
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.cancel()
	return nil
}
