package commands

import (
	"context"
	"fmt"

	"gitget/internal/application"
	"gitget/internal/ports"
)

// SetupResult contains the result of a setup operation
type SetupResult struct {
	Path    string
	Message string
}

// SetupCommand creates an empty manifest
type SetupCommand struct {
	store ports.ManifestStore
	Path  string
}

// NewSetupCommand creates a new SetupCommand
func NewSetupCommand(store ports.ManifestStore, path string) *SetupCommand {
	return &SetupCommand{store: store, Path: path}
}

// Validate checks if the setup operation is valid
func (c *SetupCommand) Validate() error {
	return application.ValidateRequired("path", c.Path)
}

// Execute runs the setup command
func (c *SetupCommand) Execute(ctx context.Context) (*SetupResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := c.store.Create(c.Path); err != nil {
		return nil, err
	}
	return &SetupResult{
		Path:    c.Path,
		Message: fmt.Sprintf("Created package file %s", c.Path),
	}, nil
}
