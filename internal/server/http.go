package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/docsforge/google-docs-mcp/internal/auth"
	"github.com/docsforge/google-docs-mcp/internal/instrumentation"
)

// HTTPServer serves the MCP protocol over streamable HTTP. Each request's
// Authorization header is turned into request-scoped credentials before
// dispatch; the server itself holds no tokens.
type HTTPServer struct {
	mcpServer     *mcpserver.MCPServer
	serverContext *ServerContext
	httpServer    *http.Server
	healthChecker *HealthChecker
	metrics       *instrumentation.Metrics
	serverName    string
	serverVersion string
	toolNames     []string
}

// NewHTTPServer creates an HTTP server for the given MCP server.
func NewHTTPServer(mcpServer *mcpserver.MCPServer, sc *ServerContext, serverName, serverVersion string) *HTTPServer {
	return &HTTPServer{
		mcpServer:     mcpServer,
		serverContext: sc,
		serverName:    serverName,
		serverVersion: serverVersion,
	}
}

// SetHealthChecker wires health check endpoints into the server.
func (s *HTTPServer) SetHealthChecker(hc *HealthChecker) {
	s.healthChecker = hc
}

// SetMetrics enables HTTP request metrics.
func (s *HTTPServer) SetMetrics(metrics *instrumentation.Metrics) {
	s.metrics = metrics
}

// SetToolNames provides the registered tool catalog for the info
// endpoint.
func (s *HTTPServer) SetToolNames(names []string) {
	s.toolNames = names
}

// Handler builds the HTTP handler tree: the MCP endpoint with bearer
// extraction, health endpoints, and an unauthenticated info page at the
// root.
func (s *HTTPServer) Handler() http.Handler {
	mux := http.NewServeMux()

	streamable := mcpserver.NewStreamableHTTPServer(s.mcpServer,
		mcpserver.WithEndpointPath("/mcp"),
		mcpserver.WithHTTPContextFunc(auth.HTTPContextFunc),
	)
	mux.Handle("/mcp", s.instrument("/mcp", streamable))

	if s.healthChecker != nil {
		s.healthChecker.RegisterHealthEndpoints(mux)
	}

	mux.Handle("/", s.instrument("/", http.HandlerFunc(s.serveInfo)))

	return mux
}

// instrument wraps a handler with request counting when metrics are
// enabled.
func (s *HTTPServer) instrument(path string, next http.Handler) http.Handler {
	if s.metrics == nil {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)
		s.metrics.RecordHTTPRequest(r.Context(), r.Method, path, recorder.status, time.Since(start))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// serverInfo is the unauthenticated description served at the root: what
// this server is and how to authenticate against it.
type serverInfo struct {
	Name           string   `json:"name"`
	Version        string   `json:"version"`
	Description    string   `json:"description"`
	Endpoint       string   `json:"endpoint"`
	Authentication string   `json:"authentication"`
	RequiredScopes []string `json:"requiredScopes"`
	Tools          []string `json:"tools"`
}

func (s *HTTPServer) serveInfo(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	info := serverInfo{
		Name:           s.serverName,
		Version:        s.serverVersion,
		Description:    "MCP server exposing Google Docs reading and editing tools",
		Endpoint:       "/mcp",
		Authentication: "Authorization: Bearer <google-access-token> on every /mcp request",
		RequiredScopes: []string{
			"https://www.googleapis.com/auth/documents",
			"https://www.googleapis.com/auth/documents.readonly",
		},
		Tools: s.toolNames,
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(info); err != nil {
		http.Error(w, "failed to encode server info", http.StatusInternalServerError)
	}
}

// Start begins serving on addr and blocks until the server stops.
func (s *HTTPServer) Start(addr string) error {
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *HTTPServer) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
