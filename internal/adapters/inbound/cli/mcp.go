package cli

import (
	mcpadapter "github.com/abdidvp/distkit/internal/adapters/inbound/mcp"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

func newMCPCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the distkit MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd(g))
	return cmd
}

func newMCPServeCmd(g *globals) *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start distkit MCP server (stdio)",
		Long:  "Start the distkit MCP server using stdio transport. This lets AI coding assistants archive and validate distributions.",
		RunE: func(cmd *cobra.Command, args []string) error {
			s := mcpadapter.NewDistkitMCPServer(configPath, g.log())
			return server.ServeStdio(s)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to config file (default ./.distkit.yaml)")

	return cmd
}
