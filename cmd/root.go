package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command for the google-docs-mcp application
var rootCmd = &cobra.Command{
	Use:   "google-docs-mcp",
	Short: "MCP server for reading and editing Google Docs",
	Long: `google-docs-mcp is an MCP (Model Context Protocol) server that exposes
Google Docs reading and editing tools to AI assistants.

It can run over:
  - stdio (default), for local MCP clients
  - streamable HTTP, for shared deployments with per-request bearer tokens`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "google-docs-mcp version %s\n" .Version}}`)

	// If no subcommand is provided, run the serve command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newVersionCmd())
}
