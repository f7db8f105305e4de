package ports

import (
	"context"

	"gitget/internal/domain"
)

// ManifestStore reads and writes the package manifest at an explicit path
type ManifestStore interface {
	// Load reads the manifest, upgrading and rewriting older formats, and
	// returns it with cliOptions merged over the configured defaults.
	Load(ctx context.Context, path string, cliOptions domain.Options) (*domain.Manifest, domain.Options, error)

	// Persist writes the manifest back to path
	Persist(path string, manifest *domain.Manifest) error

	// Create writes an empty manifest; it fails if path already exists
	Create(path string) error
}

// RecordBuilder produces package records from a local clone or a URL
type RecordBuilder interface {
	BuildFromPath(ctx context.Context, name, path string) (domain.PackageRecord, error)
	BuildFromURL(ctx context.Context, url, name, path string) (domain.PackageRecord, error)
}
