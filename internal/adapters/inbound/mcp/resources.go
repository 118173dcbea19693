package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/abdidvp/distkit/internal/adapters/outbound/config"
	"github.com/abdidvp/distkit/internal/domain/check"
)

// registerResources registers all distkit MCP resources on the given server.
func registerResources(s *server.MCPServer, configPath string) {
	// 1. distkit://config - effective validation config
	s.AddResource(
		mcplib.NewResource(
			"distkit://config",
			"Validation Config",
			mcplib.WithResourceDescription("Effective validation settings after merging .distkit.yaml over the defaults"),
			mcplib.WithMIMEType("application/json"),
		),
		handleConfigResource(configPath),
	)

	// 2. distkit://checks - ordered check suite
	s.AddResource(
		mcplib.NewResource(
			"distkit://checks",
			"Check Suite",
			mcplib.WithResourceDescription("Ordered list of checks run by distkit_validate"),
			mcplib.WithMIMEType("application/json"),
		),
		handleChecksResource(),
	)
}

func handleConfigResource(configPath string) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		cfg, err := config.New().Load(configPath)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		return jsonResource("distkit://config", cfg)
	}
}

type checkInfo struct {
	Index int    `json:"index"`
	ID    string `json:"id"`
	Name  string `json:"name"`
}

func handleChecksResource() server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		suite := check.Suite()
		infos := make([]checkInfo, len(suite))
		for i, c := range suite {
			infos[i] = checkInfo{Index: i + 1, ID: c.Slug(), Name: c.Name}
		}
		return jsonResource("distkit://checks", infos)
	}
}

func jsonResource(uri string, v interface{}) ([]mcplib.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling %s: %w", uri, err)
	}
	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
