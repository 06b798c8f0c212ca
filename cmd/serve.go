package cmd

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/docsforge/google-docs-mcp/internal/instrumentation"
	"github.com/docsforge/google-docs-mcp/internal/server"
	"github.com/docsforge/google-docs-mcp/internal/tools/content_tools"
	"github.com/docsforge/google-docs-mcp/internal/tools/document_tools"
	"github.com/docsforge/google-docs-mcp/internal/tools/format_tools"
	"github.com/docsforge/google-docs-mcp/internal/tools/headerfooter_tools"
	"github.com/docsforge/google-docs-mcp/internal/tools/image_tools"
	"github.com/docsforge/google-docs-mcp/internal/tools/list_tools"
	"github.com/docsforge/google-docs-mcp/internal/tools/namedrange_tools"
	"github.com/docsforge/google-docs-mcp/internal/tools/table_tools"
)

// MetricsConfig holds configuration for the metrics server
type MetricsConfig struct {
	// Enabled determines whether to start the metrics server (default: true)
	Enabled bool

	// Addr is the address for the metrics server (e.g., ":9090")
	Addr string
}

func newServeCmd() *cobra.Command {
	var (
		debugMode   bool
		transport   string
		httpAddr    string
		yolo        bool
		accessToken string
		// Metrics server configuration
		metricsEnabled bool
		metricsAddr    string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server",
		Long: `Start the Model Context Protocol (MCP) server exposing Google Docs
reading and editing tools for AI assistants.

Supports multiple transport types:
  - stdio: Standard input/output (default)
  - streamable-http: Streamable HTTP transport

Safety Mode:
  By default, the server operates in read-only mode, providing only safe operations.
  Use --yolo to enable write operations (inserting text, deleting ranges, etc.)

Authentication:
  HTTP Transport:
    Every request to the MCP endpoint must carry a Google OAuth access token:
      Authorization: Bearer <access-token>
    The token needs the documents scope (or documents.readonly for read-only use).

  STDIO Transport:
    Provide a static access token via --access-token or the
    GOOGLE_ACCESS_TOKEN env var. The token is used for all requests.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if debugMode {
				slog.SetLogLoggerLevel(slog.LevelDebug)
			}

			// Build metrics config
			metricsConfig := MetricsConfig{
				Enabled: metricsEnabled,
				Addr:    metricsAddr,
			}

			return runServe(transport, httpAddr, yolo, resolveAccessToken(accessToken), metricsConfig)
		},
	}

	cmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	cmd.Flags().StringVar(&transport, "transport", "stdio", "Transport type: stdio or streamable-http")
	cmd.Flags().StringVar(&httpAddr, "http-addr", ":8080", "HTTP server address (for streamable-http transport)")
	cmd.Flags().BoolVar(&yolo, "yolo", false, "Enable write operations (default is read-only mode)")
	cmd.Flags().StringVar(&accessToken, "access-token", "", "Static Google OAuth access token. Can also use GOOGLE_ACCESS_TOKEN env var.")

	// Metrics server flags
	cmd.Flags().BoolVar(&metricsEnabled, "metrics-enabled", true, "Enable the metrics server on a dedicated port. Can also use METRICS_ENABLED env var.")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", ":9090", "Metrics server address. Can also use METRICS_ADDR env var.")

	return cmd
}

// resolveAccessToken returns the static token from the flag, falling back
// to the GOOGLE_ACCESS_TOKEN environment variable.
func resolveAccessToken(flagValue string) string {
	if token := strings.TrimSpace(flagValue); token != "" {
		return token
	}
	return strings.TrimSpace(os.Getenv("GOOGLE_ACCESS_TOKEN"))
}

func runServe(transport, httpAddr string, yolo bool, accessToken string, metricsConfig MetricsConfig) error {
	// Setup graceful shutdown
	shutdownCtx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Load metrics config from environment if not set via flags
	if !metricsConfig.Enabled {
		if os.Getenv("METRICS_ENABLED") == "true" {
			metricsConfig.Enabled = true
		}
	}
	if metricsConfig.Addr == "" || metricsConfig.Addr == ":9090" {
		if addr := os.Getenv("METRICS_ADDR"); addr != "" {
			metricsConfig.Addr = addr
		}
	}

	// Initialize instrumentation provider
	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version

	provider, err := instrumentation.NewProvider(shutdownCtx, instrConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		if err := provider.Shutdown(shutdownCtx); err != nil {
			if transport != "stdio" {
				log.Printf("Error during instrumentation shutdown: %v", err)
			}
		}
	}()

	// Start metrics server if enabled and not in stdio mode
	var metricsServer *server.MetricsServer
	if transport != "stdio" && metricsConfig.Enabled && provider.Enabled() {
		var err error
		metricsServer, err = server.NewMetricsServer(server.MetricsServerConfig{
			Addr:                    metricsConfig.Addr,
			Enabled:                 true,
			InstrumentationProvider: provider,
		})
		if err != nil {
			return fmt.Errorf("failed to create metrics server: %w", err)
		}

		// Use ready channel to confirm metrics server started successfully
		metricsReady := make(chan struct{})
		metricsErr := make(chan error, 1)
		go func() {
			if err := metricsServer.StartWithReadySignal(metricsReady); err != nil && err != http.ErrServerClosed {
				metricsErr <- err
			}
			close(metricsErr)
		}()

		// Wait for metrics server to be ready or fail
		select {
		case <-metricsReady:
			log.Printf("Metrics server started on %s", metricsServer.Addr())
		case err := <-metricsErr:
			return fmt.Errorf("metrics server failed to start: %w", err)
		case <-time.After(5 * time.Second):
			return fmt.Errorf("metrics server startup timed out")
		}
	}

	// Create server context. A static token becomes the fallback credential;
	// without one, every request must carry its own bearer token.
	var contextOpts []server.ServerContextOption
	if accessToken != "" {
		contextOpts = append(contextOpts, server.WithStaticToken(accessToken))
	} else if transport == "stdio" {
		log.Printf("Warning: no access token configured; tool calls will fail until GOOGLE_ACCESS_TOKEN is set")
	}

	serverContext, err := server.NewServerContext(shutdownCtx, contextOpts...)
	if err != nil {
		return fmt.Errorf("failed to create server context: %w", err)
	}

	// Set metrics and audit logger on server context for tool instrumentation
	if provider.Enabled() {
		serverContext.SetMetrics(provider.Metrics())
		serverContext.SetAuditLogger(instrumentation.NewAuditLoggerWithConfig(nil, instrConfig.AuditLogging))
	}
	defer func() {
		// Shutdown metrics server first
		if metricsServer != nil {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := metricsServer.Shutdown(shutdownCtx); err != nil {
				log.Printf("Error during metrics server shutdown: %v", err)
			}
		}
		if err := serverContext.Shutdown(); err != nil {
			if transport != "stdio" {
				log.Printf("Error during server context shutdown: %v", err)
			}
		}
	}()

	// Create MCP server
	serverOpts := []mcpserver.ServerOption{
		mcpserver.WithToolCapabilities(true),
	}
	if provider.Enabled() {
		metrics := provider.Metrics()
		hooks := &mcpserver.Hooks{}
		hooks.AddOnRegisterSession(func(ctx context.Context, _ mcpserver.ClientSession) {
			metrics.IncrementActiveSessions(ctx)
		})
		hooks.AddOnUnregisterSession(func(ctx context.Context, _ mcpserver.ClientSession) {
			metrics.DecrementActiveSessions(ctx)
		})
		serverOpts = append(serverOpts, mcpserver.WithHooks(hooks))
	}
	mcpSrv := mcpserver.NewMCPServer("google-docs-mcp", version, serverOpts...)
	catalog := server.NewCatalogServer(mcpSrv)

	// readOnly is the inverse of yolo
	readOnly := !yolo

	// Log the mode for visibility (only for non-stdio transports)
	if transport != "stdio" {
		if readOnly {
			log.Println("Starting server in READ-ONLY mode (use --yolo to enable write operations)")
		} else {
			log.Println("Starting server with WRITE operations enabled (--yolo flag is set)")
		}
	}

	// Register all tools
	if err := registerAllTools(catalog, serverContext, readOnly); err != nil {
		return err
	}

	// Start the appropriate server based on transport type
	switch transport {
	case "stdio":
		return runStdioServer(mcpSrv)
	case "streamable-http":
		fmt.Printf("Starting google-docs-mcp server with %s transport...\n", transport)
		return runStreamableHTTPServer(shutdownCtx, mcpSrv, serverContext, httpAddr, catalog.ToolNames(), provider)
	default:
		return fmt.Errorf("unsupported transport type: %s (supported: stdio, streamable-http)", transport)
	}
}

func runStdioServer(mcpSrv *mcpserver.MCPServer) error {
	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := mcpserver.ServeStdio(mcpSrv); err != nil {
			serverDone <- err
		}
	}()

	err := <-serverDone
	if err != nil {
		return fmt.Errorf("server stopped with error: %w", err)
	}
	return nil
}

// registerAllTools registers all MCP tools
func registerAllTools(mcpSrv server.ToolRegistry, ctx *server.ServerContext, readOnly bool) error {
	// Define all tool registrations
	type toolRegistration struct {
		name     string
		register func() error
	}

	registrations := []toolRegistration{
		{
			name: "Document",
			register: func() error {
				return document_tools.RegisterDocumentTools(mcpSrv, ctx, readOnly)
			},
		},
		{
			name: "Content",
			register: func() error {
				return content_tools.RegisterContentTools(mcpSrv, ctx, readOnly)
			},
		},
		{
			name: "Format",
			register: func() error {
				return format_tools.RegisterFormatTools(mcpSrv, ctx, readOnly)
			},
		},
		{
			name: "Table",
			register: func() error {
				return table_tools.RegisterTableTools(mcpSrv, ctx, readOnly)
			},
		},
		{
			name: "Image",
			register: func() error {
				return image_tools.RegisterImageTools(mcpSrv, ctx, readOnly)
			},
		},
		{
			name: "List",
			register: func() error {
				return list_tools.RegisterListTools(mcpSrv, ctx, readOnly)
			},
		},
		{
			name: "Named Range",
			register: func() error {
				return namedrange_tools.RegisterNamedRangeTools(mcpSrv, ctx, readOnly)
			},
		},
		{
			name: "Header/Footer",
			register: func() error {
				return headerfooter_tools.RegisterHeaderFooterTools(mcpSrv, ctx, readOnly)
			},
		},
	}

	// Register all tools
	for _, reg := range registrations {
		if err := reg.register(); err != nil {
			return fmt.Errorf("failed to register %s tools: %w", reg.name, err)
		}
	}

	return nil
}

func runStreamableHTTPServer(ctx context.Context, mcpSrv *mcpserver.MCPServer, serverContext *server.ServerContext, addr string, toolNames []string, instrProvider *instrumentation.Provider) error {
	httpSrv := server.NewHTTPServer(mcpSrv, serverContext, "google-docs-mcp", version)
	httpSrv.SetToolNames(toolNames)

	healthChecker := server.NewHealthChecker(serverContext)
	httpSrv.SetHealthChecker(healthChecker)

	if instrProvider.Enabled() {
		httpSrv.SetMetrics(instrProvider.Metrics())
	}

	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		log.Printf("HTTP server listening on %s", addr)
		if err := httpSrv.Start(addr); err != nil && err != http.ErrServerClosed {
			serverDone <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Println("Shutting down HTTP server...")
		healthChecker.SetReady(false)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("error during HTTP server shutdown: %w", err)
		}
		return nil
	case err := <-serverDone:
		if err != nil {
			return fmt.Errorf("server stopped with error: %w", err)
		}
		return nil
	}
}
