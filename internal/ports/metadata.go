package ports

import (
	"context"

	"gitget/internal/domain"
)

// MetadataProvider fetches repository metadata from one hosting service
type MetadataProvider interface {
	// Name identifies the provider in logs and errors
	Name() string

	// Supports reports whether the provider serves the given host
	Supports(host string) bool

	// FetchMetadata returns the metadata for ref and the API quota left
	// after the call. The rate limit may be nil when the provider has none.
	FetchMetadata(ctx context.Context, ref domain.RepoRef) (*domain.Metadata, *domain.RateLimit, error)
}
