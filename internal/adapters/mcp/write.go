package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"gitget/internal/application"
	"gitget/internal/application/commands"
	"gitget/internal/domain"
	"gitget/internal/ports"
)

// RegisterWriteTools adds the manifest-changing tools to the MCP server.
// When index is set, it is updated in the same call.
func RegisterWriteTools(s *server.MCPServer, ws *application.Workspace, index ports.PackageIndex) {
	s.AddTool(untrackTool(), untrackHandler(ws, index))
	s.AddTool(renameTool(), renameHandler(ws, index))
}

// --- untrack_package ---

func untrackTool() mcp.Tool {
	return mcp.NewTool("untrack_package",
		mcp.WithDescription("Stop tracking a package. The clone on disk is kept."),
		mcp.WithString("name",
			mcp.Description("Package name or absolute path of its clone"),
			mcp.Required(),
		),
	)
}

func untrackHandler(ws *application.Workspace, index ports.PackageIndex) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name := req.GetString("name", "")

		result, err := commands.NewUntrackCommand(ws, name).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		if err := updateIndex(index, func(tx ports.IndexTx) error {
			return tx.DeleteEntry(result.Name)
		}); err != nil {
			return toolError(err)
		}

		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- rename_package ---

func renameTool() mcp.Tool {
	return mcp.NewTool("rename_package",
		mcp.WithDescription("Rename a package in the manifest, optionally renaming its clone directory too."),
		mcp.WithString("name",
			mcp.Description("Current package name"),
			mcp.Required(),
		),
		mcp.WithString("new_name",
			mcp.Description("New package name"),
			mcp.Required(),
		),
		mcp.WithBoolean("move_files",
			mcp.Description("Also rename the clone directory to new_name"),
		),
	)
}

func renameHandler(ws *application.Workspace, index ports.PackageIndex) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name := req.GetString("name", "")
		newName := req.GetString("new_name", "")

		cmdWS := ws
		if req.GetBool("move_files", false) {
			opts := domain.MergeOptions(domain.Options{domain.OptMoveFiles: true}, ws.Options)
			cmdWS = application.NewWorkspace(ws.Store, ws.Path, opts)
		}

		result, err := commands.NewRenameCommand(cmdWS, name, newName).Execute(ctx)
		if err != nil {
			return toolError(err)
		}

		if err := updateIndex(index, func(tx ports.IndexTx) error {
			if err := tx.DeleteEntry(result.NewName); err != nil {
				return err
			}
			return tx.RenameEntry(result.OldName, result.NewName)
		}); err != nil {
			return toolError(err)
		}

		return mcp.NewToolResultText(result.Message), nil
	}
}

// updateIndex runs fn in one index transaction; a nil index is skipped
func updateIndex(index ports.PackageIndex, fn func(ports.IndexTx) error) error {
	if index == nil {
		return nil
	}
	tx, err := index.BeginTx()
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}
