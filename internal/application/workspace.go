package application

import (
	"context"

	"gitget/internal/domain"
	"gitget/internal/ports"
)

// Workspace is the manifest a command operates on: the store, the
// resolved manifest path and the options given on the command line.
type Workspace struct {
	Store   ports.ManifestStore
	Path    string
	Options domain.Options
}

// NewWorkspace creates a Workspace
func NewWorkspace(store ports.ManifestStore, path string, cliOptions domain.Options) *Workspace {
	if cliOptions == nil {
		cliOptions = domain.Options{}
	}
	return &Workspace{Store: store, Path: path, Options: cliOptions}
}

// Load reads the manifest and returns it with the merged options
func (w *Workspace) Load(ctx context.Context) (*domain.Manifest, domain.Options, error) {
	return w.Store.Load(ctx, w.Path, w.Options)
}

// Save persists the manifest
func (w *Workspace) Save(m *domain.Manifest) error {
	return w.Store.Persist(w.Path, m)
}
