package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gitget/internal/application"
	"gitget/internal/domain"
)

// RenameResult contains the result of a rename operation
type RenameResult struct {
	OldName string
	NewName string
	Path    string
	Message string
}

// RenameCommand renames a package, optionally renaming its directory
type RenameCommand struct {
	ws      *application.Workspace
	Name    string
	NewName string
}

// NewRenameCommand creates a new RenameCommand
func NewRenameCommand(ws *application.Workspace, name, newName string) *RenameCommand {
	return &RenameCommand{ws: ws, Name: name, NewName: newName}
}

// Validate checks if the rename operation is valid
func (c *RenameCommand) Validate() error {
	if err := application.ValidateRequired("name", c.Name); err != nil {
		return err
	}
	return application.ValidatePackageName("newName", c.NewName)
}

// Execute runs the rename command. The manifest is left untouched when
// the new name is taken.
func (c *RenameCommand) Execute(ctx context.Context) (*RenameResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	m, opts, err := c.ws.Load(ctx)
	if err != nil {
		return nil, err
	}
	rec, err := m.Lookup(c.Name)
	if err != nil {
		return nil, err
	}
	if _, ok := m.Get(c.NewName); ok {
		return nil, application.NameCollision(c.NewName)
	}

	oldName := rec.Name
	if opts.Bool(domain.OptMoveFiles) {
		dest := filepath.Join(filepath.Dir(rec.Path), c.NewName)
		if owner, ok := m.NameForPath(dest); ok {
			return nil, application.PathCollision(dest, owner)
		}
		if _, err := os.Stat(dest); err == nil {
			return nil, application.PathCollision(dest, "")
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to stat %s: %w", dest, err)
		}
		if err := os.Rename(rec.Path, dest); err != nil {
			return nil, &domain.FilesystemError{Op: "move", Path: rec.Path, Err: err}
		}
		rec.Path = dest
	}

	m.Delete(oldName)
	rec.Name = c.NewName
	m.Put(rec)
	if err := c.ws.Save(m); err != nil {
		return nil, err
	}

	return &RenameResult{
		OldName: oldName,
		NewName: rec.Name,
		Path:    rec.Path,
		Message: fmt.Sprintf("Renamed %s to %s", oldName, rec.Name),
	}, nil
}
