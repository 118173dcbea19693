package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/abdidvp/distkit/internal/adapters/outbound/archive"
	"github.com/abdidvp/distkit/internal/adapters/outbound/config"
	"github.com/abdidvp/distkit/internal/adapters/outbound/gitinfo"
	"github.com/abdidvp/distkit/internal/adapters/outbound/process"
	"github.com/abdidvp/distkit/internal/adapters/outbound/scanner"
	"github.com/abdidvp/distkit/internal/adapters/outbound/treecopy"
	"github.com/abdidvp/distkit/internal/application"
	"github.com/abdidvp/distkit/internal/domain"
)

// registerTools registers all distkit MCP tools on the given server.
func registerTools(s *server.MCPServer, configPath string, logger *log.Logger) {
	// 1. distkit_validate
	s.AddTool(
		mcplib.NewTool("distkit_validate",
			mcplib.WithDescription("Run the full check suite against an extracted Python distribution and return the report as JSON"),
			mcplib.WithString("dist_dir",
				mcplib.Required(),
				mcplib.Description("Root directory of the extracted distribution"),
			),
		),
		handleValidate(configPath, logger),
	)

	// 2. distkit_archive
	s.AddTool(
		mcplib.NewTool("distkit_archive",
			mcplib.WithDescription("Package a directory into a sorted .tar.gz archive"),
			mcplib.WithString("source_dir",
				mcplib.Required(),
				mcplib.Description("Directory to archive"),
			),
			mcplib.WithString("output_file",
				mcplib.Required(),
				mcplib.Description("Path of the archive to write"),
			),
			mcplib.WithString("prefix", mcplib.Description("Path prefix for every archive entry")),
		),
		handleArchive(logger),
	)

	// 3. distkit_layout
	s.AddTool(
		mcplib.NewTool("distkit_layout",
			mcplib.WithDescription("Resolve the interpreter layout of a distribution without running any check"),
			mcplib.WithString("dist_dir",
				mcplib.Required(),
				mcplib.Description("Root directory of the extracted distribution"),
			),
		),
		handleLayout(configPath),
	)
}

func newValidateService(logger *log.Logger) *application.ValidateService {
	return application.NewValidateService(
		config.New(),
		process.New(logger),
		treecopy.New(scanner.New()),
	)
}

func handleValidate(configPath string, logger *log.Logger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		distDir, err := request.RequireString("dist_dir")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		report, err := newValidateService(logger).Validate(ctx, distDir, application.ValidateOptions{
			ConfigPath: configPath,
		})
		if err != nil {
			return errorResult(fmt.Sprintf("validation failed: %v", err)), nil
		}

		return jsonResult(report)
	}
}

func handleArchive(logger *log.Logger) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		source, err := request.RequireString("source_dir")
		if err != nil {
			return errorResult(err.Error()), nil
		}
		output, err := request.RequireString("output_file")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		prefix, _ := request.GetArguments()["prefix"].(string)

		svc := application.NewArchiveService(scanner.New(), archive.New(logger), gitinfo.New())
		result, err := svc.Create(domain.ArchiveJob{
			Source: source,
			Output: output,
			Prefix: prefix,
		})
		if err != nil {
			return errorResult(fmt.Sprintf("archive failed: %v", err)), nil
		}

		return jsonResult(result)
	}
}

func handleLayout(configPath string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		distDir, err := request.RequireString("dist_dir")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		svc := application.NewValidateService(config.New(), nil, nil)
		layout, _, err := svc.ResolveLayout(filepath.Clean(distDir), configPath)
		if err != nil {
			return errorResult(fmt.Sprintf("resolving layout failed: %v", err)), nil
		}

		return jsonResult(struct {
			domain.Layout
			Env map[string]string `json:"env,omitempty"`
		}{layout, layout.Overrides(os.Getenv("PATH"))})
	}
}

// jsonResult marshals v to indented JSON and wraps it in a CallToolResult.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
