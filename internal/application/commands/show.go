package commands

import (
	"context"

	"gitget/internal/application"
	"gitget/internal/domain"
)

// ShowResult contains one package record
type ShowResult struct {
	Record domain.PackageRecord
}

// ShowCommand looks up a single package
type ShowCommand struct {
	ws         *application.Workspace
	NameOrPath string
}

// NewShowCommand creates a new ShowCommand
func NewShowCommand(ws *application.Workspace, nameOrPath string) *ShowCommand {
	return &ShowCommand{ws: ws, NameOrPath: nameOrPath}
}

// Validate checks if the show operation is valid
func (c *ShowCommand) Validate() error {
	return application.ValidateRequired("nameOrPath", c.NameOrPath)
}

// Execute runs the show command
func (c *ShowCommand) Execute(ctx context.Context) (*ShowResult, error) {
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
	return &ShowResult{Record: rec}, nil
}
