package commands

import (
	"context"
	"errors"

	"gitget/internal/application"
	"gitget/internal/domain"
	"gitget/internal/logging"
	"gitget/internal/ports"
)

// OpenerFactory builds an editor opener for the configured editor, which
// may be empty
type OpenerFactory func(configured string) ports.EditorOpener

// EditResult contains the result of an edit operation
type EditResult struct {
	Path    string
	Message string
}

// EditCommand opens the manifest in an editor
type EditCommand struct {
	ws        *application.Workspace
	newOpener OpenerFactory
}

// NewEditCommand creates a new EditCommand
func NewEditCommand(ws *application.Workspace, newOpener OpenerFactory) *EditCommand {
	return &EditCommand{ws: ws, newOpener: newOpener}
}

// Execute runs the edit command. A corrupt manifest is still opened so it
// can be fixed by hand.
func (c *EditCommand) Execute(ctx context.Context) (*EditResult, error) {
	editor := ""
	m, _, err := c.ws.Load(ctx)
	switch {
	case err == nil:
		editor = m.Configuration.Editor
	case errors.Is(err, domain.ErrManifestCorrupt):
		logging.FromContext(ctx).Warn("manifest does not parse, using the default editor", "error", err)
	default:
		return nil, err
	}

	if err := c.newOpener(editor).OpenFile(c.ws.Path); err != nil {
		return nil, err
	}
	return &EditResult{Path: c.ws.Path, Message: "Edited " + c.ws.Path}, nil
}
