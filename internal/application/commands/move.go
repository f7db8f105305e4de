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

// MoveResult contains the result of a move operation
type MoveResult struct {
	Name    string
	OldPath string
	NewPath string
	Message string
}

// MoveCommand moves a package's directory and updates its path
type MoveCommand struct {
	ws       *application.Workspace
	Name     string
	Location string
}

// NewMoveCommand creates a new MoveCommand
func NewMoveCommand(ws *application.Workspace, name, location string) *MoveCommand {
	return &MoveCommand{ws: ws, Name: name, Location: location}
}

// Validate checks if the move operation is valid
func (c *MoveCommand) Validate() error {
	if err := application.ValidateRequired("name", c.Name); err != nil {
		return err
	}
	return application.ValidateRequired("location", c.Location)
}

// Execute runs the move command. An existing directory as location means
// "move into it".
func (c *MoveCommand) Execute(ctx context.Context) (*MoveResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	m, _, err := c.ws.Load(ctx)
	if err != nil {
		return nil, err
	}
	rec, err := m.Lookup(c.Name)
	if err != nil {
		return nil, err
	}

	dest, err := filepath.Abs(c.Location)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve location: %w", err)
	}
	if info, err := os.Stat(dest); err == nil && info.IsDir() {
		dest = filepath.Join(dest, filepath.Base(rec.Path))
	}
	if filepath.Clean(dest) == filepath.Clean(rec.Path) {
		return nil, &application.ValidationError{Field: "location", Message: "package is already at " + dest}
	}

	if owner, ok := m.NameForPath(dest); ok {
		return nil, application.PathCollision(dest, owner)
	}
	if _, err := os.Stat(dest); err == nil {
		return nil, application.PathCollision(dest, "")
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to stat %s: %w", dest, err)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return nil, &domain.FilesystemError{Op: "create", Path: filepath.Dir(dest), Err: err}
	}
	if err := os.Rename(rec.Path, dest); err != nil {
		return nil, &domain.FilesystemError{Op: "move", Path: rec.Path, Err: err}
	}

	oldPath := rec.Path
	rec.Path = dest
	m.Put(rec)
	if err := c.ws.Save(m); err != nil {
		return nil, err
	}

	return &MoveResult{
		Name:    rec.Name,
		OldPath: oldPath,
		NewPath: dest,
		Message: fmt.Sprintf("Moved %s to %s", rec.Name, dest),
	}, nil
}
