package commands

import (
	"context"
	"fmt"
	"os"

	"gitget/internal/application"
	"gitget/internal/domain"
	"gitget/internal/ports"
)

// RemoveResult contains the result of a remove operation
type RemoveResult struct {
	Name string
	Path string
	// Removed is false when the user declined
	Removed      bool
	FilesDeleted bool
	Message      string
}

// RemoveCommand untracks a package and deletes its directory
type RemoveCommand struct {
	ws         *application.Workspace
	prompter   ports.Prompter
	NameOrPath string
}

// NewRemoveCommand creates a new RemoveCommand
func NewRemoveCommand(ws *application.Workspace, prompter ports.Prompter, nameOrPath string) *RemoveCommand {
	return &RemoveCommand{ws: ws, prompter: prompter, NameOrPath: nameOrPath}
}

// Validate checks if the remove operation is valid
func (c *RemoveCommand) Validate() error {
	return application.ValidateRequired("nameOrPath", c.NameOrPath)
}

// Execute asks for confirmation unless --soft is set. The manifest is
// written before the files are deleted.
func (c *RemoveCommand) Execute(ctx context.Context) (*RemoveResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	m, opts, err := c.ws.Load(ctx)
	if err != nil {
		return nil, err
	}
	rec, err := m.Lookup(c.NameOrPath)
	if err != nil {
		return nil, err
	}

	result := &RemoveResult{Name: rec.Name, Path: rec.Path}
	soft := opts.Bool(domain.OptSoft)

	if !soft {
		ok, err := c.prompter.Confirm(fmt.Sprintf("Are you sure you want to delete %s? [y/N]", rec.Path))
		if err != nil {
			return nil, err
		}
		if !ok {
			result.Message = "Nothing removed"
			return result, nil
		}
	}

	m.Delete(rec.Name)
	if err := c.ws.Save(m); err != nil {
		return nil, err
	}
	result.Removed = true

	if soft {
		result.Message = fmt.Sprintf("Untracked %s", rec.Name)
		return result, nil
	}

	if err := os.RemoveAll(rec.Path); err != nil {
		return result, &domain.FilesystemError{Op: "delete", Path: rec.Path, Err: err}
	}
	result.FilesDeleted = true
	result.Message = fmt.Sprintf("Removed %s and deleted %s", rec.Name, rec.Path)
	return result, nil
}
