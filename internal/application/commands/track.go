package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gitget/internal/application"
	"gitget/internal/domain"
	"gitget/internal/logging"
	"gitget/internal/ports"
)

// TrackResult contains the result of a track operation
type TrackResult struct {
	Added   []string
	Skipped []string
	Message string
}

// TrackCommand adds existing clones to the manifest
type TrackCommand struct {
	ws      *application.Workspace
	builder ports.RecordBuilder
	Pattern string
}

// NewTrackCommand creates a new TrackCommand. pattern is a directory or a
// glob matching directories.
func NewTrackCommand(ws *application.Workspace, builder ports.RecordBuilder, pattern string) *TrackCommand {
	return &TrackCommand{ws: ws, builder: builder, Pattern: pattern}
}

// Validate checks if the track operation is valid
func (c *TrackCommand) Validate() error {
	if err := application.ValidateRequired("pattern", c.Pattern); err != nil {
		return err
	}
	if _, err := filepath.Match(c.Pattern, ""); err != nil {
		return &application.ValidationError{Field: "pattern", Message: err.Error()}
	}
	return nil
}

// Execute builds a record for every matching directory. Names and paths
// already tracked are skipped; failed builds are counted and the rest are
// still saved.
func (c *TrackCommand) Execute(ctx context.Context) (*TrackResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	m, _, err := c.ws.Load(ctx)
	if err != nil {
		return nil, err
	}

	dirs, err := matchDirectories(c.Pattern)
	if err != nil {
		return nil, err
	}
	if len(dirs) == 0 {
		return nil, fmt.Errorf("%w: no directories match %s", domain.ErrPackageNotFound, c.Pattern)
	}

	logger := logging.FromContext(ctx)
	result := &TrackResult{}
	failed := 0

	for _, dir := range dirs {
		name := filepath.Base(dir)
		if _, ok := m.Get(name); ok {
			logger.Warn("skipping, name already tracked", "name", name, "path", dir)
			result.Skipped = append(result.Skipped, dir)
			continue
		}
		if owner, ok := m.NameForPath(dir); ok {
			logger.Warn("skipping, path already tracked", "path", dir, "package", owner)
			result.Skipped = append(result.Skipped, dir)
			continue
		}

		rec, err := c.builder.BuildFromPath(ctx, name, dir)
		if err != nil {
			logger.Error("track failed", "path", dir, "error", err)
			failed++
			continue
		}
		m.Put(rec)
		result.Added = append(result.Added, name)
	}

	if len(result.Added) > 0 {
		if err := c.ws.Save(m); err != nil {
			return nil, err
		}
	}

	result.Message = fmt.Sprintf("Tracked %d packages", len(result.Added))
	if failed > 0 {
		return result, &application.BatchError{Op: "track", Failed: failed, Total: len(dirs) - len(result.Skipped)}
	}
	return result, nil
}

// matchDirectories expands pattern and keeps absolute directory paths
func matchDirectories(pattern string) ([]string, error) {
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %s: %w", pattern, err)
	}
	var dirs []string
	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil || !info.IsDir() {
			continue
		}
		abs, err := filepath.Abs(match)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", match, err)
		}
		dirs = append(dirs, abs)
	}
	return dirs, nil
}
