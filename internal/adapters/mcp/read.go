package mcp

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"gopkg.in/yaml.v3"

	"gitget/internal/application"
	"gitget/internal/application/commands"
	"gitget/internal/domain"
	"gitget/internal/ports"
)

// RegisterReadTools adds all read-only manifest tools to the MCP server.
// index may be nil, in which case search_packages is not offered.
func RegisterReadTools(s *server.MCPServer, ws *application.Workspace, index ports.PackageIndex) {
	s.AddTool(listPackagesTool(), listPackagesHandler(ws))
	s.AddTool(getPackageTool(), getPackageHandler(ws))
	s.AddTool(getConfigTool(), getConfigHandler(ws))
	if index != nil {
		s.AddTool(searchPackagesTool(), searchPackagesHandler(ws, index))
	}
}

// --- list_packages ---

func listPackagesTool() mcp.Tool {
	return mcp.NewTool("list_packages",
		mcp.WithDescription("List tracked repositories with their path and description. Optionally filter by owner or topic."),
		mcp.WithString("owner",
			mcp.Description("Only list packages from this owner or group"),
		),
		mcp.WithString("topic",
			mcp.Description("Only list packages tagged with this topic"),
		),
	)
}

func listPackagesHandler(ws *application.Workspace) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		owner := req.GetString("owner", "")
		topic := req.GetString("topic", "")

		m, _, err := ws.Load(ctx)
		if err != nil {
			return toolError(err)
		}

		var records []domain.PackageRecord
		for _, rec := range m.Records() {
			if owner != "" && !strings.EqualFold(rec.Owner, owner) {
				continue
			}
			if topic != "" && !slices.Contains(rec.Topics, topic) {
				continue
			}
			records = append(records, rec)
		}
		return formatRecords(records)
	}
}

// --- get_package ---

func getPackageTool() mcp.Tool {
	return mcp.NewTool("get_package",
		mcp.WithDescription("Get the full record of one package as YAML."),
		mcp.WithString("name",
			mcp.Description("Package name or absolute path of its clone"),
			mcp.Required(),
		),
	)
}

func getPackageHandler(ws *application.Workspace) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name := req.GetString("name", "")

		result, err := commands.NewShowCommand(ws, name).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		out, err := yaml.Marshal(result.Record)
		if err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(string(out)), nil
	}
}

// --- search_packages ---

func searchPackagesTool() mcp.Tool {
	return mcp.NewTool("search_packages",
		mcp.WithDescription("Search packages by name, owner, description, topic or language. Results are ranked by relevance."),
		mcp.WithString("query",
			mcp.Description("Search query, at least two characters"),
			mcp.Required(),
		),
	)
}

func searchPackagesHandler(ws *application.Workspace, index ports.PackageIndex) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := req.GetString("query", "")
		if len(strings.TrimSpace(query)) < 2 {
			return toolError(fmt.Errorf("query must be at least two characters"))
		}

		results, err := commands.NewSearchCommand(ws, index, query).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if len(results) == 0 {
			return mcp.NewToolResultText("No results found."), nil
		}

		var sb strings.Builder
		for _, r := range results {
			fmt.Fprintf(&sb, "%s  %s  %s\n", r.Name, r.Path, r.Description)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- get_config ---

func getConfigTool() mcp.Tool {
	return mcp.NewTool("get_config",
		mcp.WithDescription("Read the manifest configuration. Without a key returns every entry."),
		mcp.WithString("key",
			mcp.Description("Configuration key, e.g. editor or --git-args"),
		),
	)
}

func getConfigHandler(ws *application.Workspace) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		key := req.GetString("key", "")

		var (
			result *commands.ConfigResult
			err    error
		)
		if key == "" {
			result, err = commands.NewConfigListCommand(ws).Execute(ctx)
		} else {
			result, err = commands.NewConfigGetCommand(ws, key).Execute(ctx)
		}
		if err != nil {
			return toolError(err)
		}

		var sb strings.Builder
		for _, e := range result.Entries {
			fmt.Fprintf(&sb, "%s: %v\n", e.Key, e.Value)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatRecords(records []domain.PackageRecord) (*mcp.CallToolResult, error) {
	if len(records) == 0 {
		return mcp.NewToolResultText("No results."), nil
	}
	var sb strings.Builder
	for _, rec := range records {
		fmt.Fprintf(&sb, "%s  %s  %s\n", rec.Name, rec.Path, rec.Description)
	}
	return mcp.NewToolResultText(sb.String()), nil
}
