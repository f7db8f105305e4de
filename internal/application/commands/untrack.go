package commands

import (
	"context"
	"fmt"

	"gitget/internal/application"
)

// UntrackResult contains the result of an untrack operation
type UntrackResult struct {
	Name    string
	Path    string
	Message string
}

// UntrackCommand drops a package from the manifest and keeps its files
type UntrackCommand struct {
	ws         *application.Workspace
	NameOrPath string
}

// NewUntrackCommand creates a new UntrackCommand
func NewUntrackCommand(ws *application.Workspace, nameOrPath string) *UntrackCommand {
	return &UntrackCommand{ws: ws, NameOrPath: nameOrPath}
}

// Validate checks if the untrack operation is valid
func (c *UntrackCommand) Validate() error {
	return application.ValidateRequired("nameOrPath", c.NameOrPath)
}

// Execute runs the untrack command
func (c *UntrackCommand) Execute(ctx context.Context) (*UntrackResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	m, _, err := c.ws.Load(ctx)
	if err != nil {
		return nil, err
	}
	rec, err := m.Lookup(c.NameOrPath)
	if err != nil {
		return nil, err
	}

	m.Delete(rec.Name)
	if err := c.ws.Save(m); err != nil {
		return nil, err
	}

	return &UntrackResult{
		Name:    rec.Name,
		Path:    rec.Path,
		Message: fmt.Sprintf("Untracked %s (files kept at %s)", rec.Name, rec.Path),
	}, nil
}
