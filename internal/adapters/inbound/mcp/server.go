package mcp

import (
	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/server"
)

// NewDistkitMCPServer creates a new MCP server with all distkit tools and
// resources registered. configPath is the validation config used by every
// call; empty means ./.distkit.yaml or the built-in defaults.
func NewDistkitMCPServer(configPath string, logger *log.Logger) *server.MCPServer {
	if logger == nil {
		logger = log.Default()
	}

	s := server.NewMCPServer(
		"distkit",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, configPath, logger)
	registerResources(s, configPath)

	return s
}
